package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" validate:"required,min=1,max=255"`
	Price       int64     `json:"price" db:"price" validate:"gte=0"`
	Stock       int       `json:"stock" db:"stock" validate:"gte=0"`
	Description *string   `json:"description,omitempty" db:"description"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductDetails carries the mutable fields applied by a full product update.
// ImageURL is deliberately absent: it only changes when an image is attached.
type ProductDetails struct {
	Name        string
	Price       int64
	Stock       int
	Description *string
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// Create inserts a new product and assigns its ID
	Create(ctx context.Context, product *Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// GetByIDForUpdate retrieves a product by ID and locks its row for the
	// duration of the surrounding transaction
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)

	// List retrieves all products
	List(ctx context.Context) ([]*Product, error)

	// FindByName retrieves products whose name matches exactly
	FindByName(ctx context.Context, name string) ([]*Product, error)

	// SearchByName retrieves products whose name contains the given substring
	SearchByName(ctx context.Context, substring string) ([]*Product, error)

	// FindByNameExcludingID retrieves a product with the given name whose ID
	// differs from excludeID, or ErrNotFound when no such product exists
	FindByNameExcludingID(ctx context.Context, name string, excludeID uuid.UUID) (*Product, error)

	// Update persists all mutable fields of an existing product
	Update(ctx context.Context, product *Product) error

	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error
}

// Transactor runs a function inside a single database transaction. All
// repository calls made with the context passed to fn share that transaction;
// fn returning an error rolls every write back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
