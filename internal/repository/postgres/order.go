package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/product_catalog/internal/domain"
)

// OrderRepository implements domain.OrderRepository for PostgreSQL
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new PostgreSQL order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order and assigns its ID
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (product_id, product_name, unit_price, quantity, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	order.CreatedAt = time.Now()

	err := ext(ctx, r.db).QueryRowxContext(
		ctx,
		query,
		order.ProductID,
		order.ProductName,
		order.UnitPrice,
		order.Quantity,
		order.Total,
		order.CreatedAt,
	).Scan(
		&order.ID,
		&order.CreatedAt,
	)

	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, product_id, product_name, unit_price, quantity, total, created_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &order, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &order, nil
}

// List retrieves all orders, newest first
func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT id, product_id, product_name, unit_price, quantity, total, created_at
		FROM orders
		ORDER BY created_at DESC
	`

	var orders []*domain.Order
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &orders, query)
	if err != nil {
		return nil, err
	}

	return orders, nil
}
