package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/product_catalog/internal/domain"
)

func orderColumns() []string {
	return []string{"id", "product_id", "product_name", "unit_price", "quantity", "total", "created_at"}
}

func TestOrderRepository_Create_StoresSnapshotAsGiven(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	assigned := uuid.New()
	productID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(productID, "Laptop", int64(128000), 2, int64(999), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(assigned.String(), now))

	order := &domain.Order{
		ProductID:   productID,
		ProductName: "Laptop",
		UnitPrice:   128000,
		Quantity:    2,
		// Deliberately not unit_price * quantity: stored exactly as supplied.
		Total: 999,
	}

	err := repo.Create(context.Background(), order)

	assert.NoError(t, err)
	assert.Equal(t, assigned, order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM orders`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(orderColumns()))

	order, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, order)
}

func TestOrderRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM orders`).
		WillReturnRows(sqlmock.NewRows(orderColumns()).
			AddRow(uuid.New().String(), uuid.New().String(), "Laptop", int64(128000), 2, int64(256000), now).
			AddRow(uuid.New().String(), uuid.New().String(), "Mouse", int64(2500), 1, int64(2500), now))

	orders, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, "Laptop", orders[0].ProductName)
}
