package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Order records a single-product purchase. ProductName, UnitPrice and Total
// are snapshots supplied by the caller at order time and are never
// re-derived from live product state.
type Order struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id" validate:"required"`
	ProductName string    `json:"product_name" db:"product_name" validate:"required"`
	UnitPrice   int64     `json:"unit_price" db:"unit_price" validate:"gte=0"`
	Quantity    int       `json:"quantity" db:"quantity" validate:"required,gt=0"`
	Total       int64     `json:"total" db:"total" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Create inserts a new order and assigns its ID
	Create(ctx context.Context, order *Order) error

	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// List retrieves all orders, newest first
	List(ctx context.Context) ([]*Order, error)
}
