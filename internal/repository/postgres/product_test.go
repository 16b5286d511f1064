package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/product_catalog/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func productColumns() []string {
	return []string{"id", "name", "price", "stock", "description", "image_url", "created_at", "updated_at"}
}

func TestProductRepository_Create_AssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	assigned := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("Laptop", int64(128000), 3, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(assigned.String(), now, now))

	product := &domain.Product{
		Name:  "Laptop",
		Price: 128000,
		Stock: 3,
	}

	err := repo.Create(context.Background(), product)

	assert.NoError(t, err)
	assert.Equal(t, assigned, product.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_CreateThenGet_RoundTrip(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	assigned := uuid.New()
	now := time.Now()
	desc := "A fine laptop"

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("Laptop", int64(128000), 3, desc, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(assigned.String(), now, now))

	mock.ExpectQuery(`SELECT (.+) FROM products\s+WHERE id = \$1`).
		WithArgs(assigned).
		WillReturnRows(sqlmock.NewRows(productColumns()).
			AddRow(assigned.String(), "Laptop", int64(128000), 3, desc, nil, now, now))

	created := &domain.Product{
		Name:        "Laptop",
		Price:       128000,
		Stock:       3,
		Description: &desc,
	}
	require.NoError(t, repo.Create(context.Background(), created))

	fetched, err := repo.GetByID(context.Background(), assigned)
	require.NoError(t, err)

	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Price, fetched.Price)
	assert.Equal(t, created.Stock, fetched.Stock)
	assert.Equal(t, *created.Description, *fetched.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM products`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(productColumns()))

	product, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, product)
}

func TestProductRepository_GetByIDForUpdate_LocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM products\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(productColumns()).
			AddRow(id.String(), "Laptop", int64(128000), 3, nil, nil, now, now))

	product, err := repo.GetByIDForUpdate(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, id, product.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByNameExcludingID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	excluded := uuid.New()
	otherID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM products\s+WHERE name = \$1 AND id <> \$2`).
		WithArgs("Laptop", excluded).
		WillReturnRows(sqlmock.NewRows(productColumns()).
			AddRow(otherID.String(), "Laptop", int64(99000), 1, nil, nil, now, now))

	product, err := repo.FindByNameExcludingID(context.Background(), "Laptop", excluded)

	assert.NoError(t, err)
	assert.Equal(t, otherID, product.ID)
}

func TestProductRepository_FindByNameExcludingID_NoMatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	excluded := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM products\s+WHERE name = \$1 AND id <> \$2`).
		WithArgs("Laptop", excluded).
		WillReturnRows(sqlmock.NewRows(productColumns()))

	product, err := repo.FindByNameExcludingID(context.Background(), "Laptop", excluded)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, product)
}

func TestProductRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	id := uuid.New()

	mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepository_Delete_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	id := uuid.New()

	mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), id)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
