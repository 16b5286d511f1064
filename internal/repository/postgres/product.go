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

// ProductRepository implements domain.ProductRepository for PostgreSQL
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product and assigns its ID
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, price, stock, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	err := ext(ctx, r.db).QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Price,
		product.Stock,
		product.Description,
		product.ImageURL,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(
		&product.ID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, price, stock, description, image_url, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// GetByIDForUpdate retrieves a product by ID and locks its row until the
// surrounding transaction ends. Concurrent purchases of the same product
// serialize on this lock.
func (r *ProductRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, price, stock, description, image_url, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var product domain.Product
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// List retrieves all products
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, price, stock, description, image_url, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`

	var products []*domain.Product
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &products, query)
	if err != nil {
		return nil, err
	}

	return products, nil
}

// FindByName retrieves products whose name matches exactly
func (r *ProductRepository) FindByName(ctx context.Context, name string) ([]*domain.Product, error) {
	query := `
		SELECT id, name, price, stock, description, image_url, created_at, updated_at
		FROM products
		WHERE name = $1
		ORDER BY created_at DESC
	`

	var products []*domain.Product
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &products, query, name)
	if err != nil {
		return nil, err
	}

	return products, nil
}

// SearchByName retrieves products whose name contains the given substring
func (r *ProductRepository) SearchByName(ctx context.Context, substring string) ([]*domain.Product, error) {
	query := `
		SELECT id, name, price, stock, description, image_url, created_at, updated_at
		FROM products
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`

	var products []*domain.Product
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &products, query, substring)
	if err != nil {
		return nil, err
	}

	return products, nil
}

// FindByNameExcludingID retrieves a product with the given name whose ID
// differs from excludeID. Returns ErrNotFound when no such product exists.
func (r *ProductRepository) FindByNameExcludingID(ctx context.Context, name string, excludeID uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, price, stock, description, image_url, created_at, updated_at
		FROM products
		WHERE name = $1 AND id <> $2
		LIMIT 1
	`

	var product domain.Product
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &product, query, name, excludeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// Update persists all mutable fields of an existing product
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, price = $2, stock = $3, description = $4, image_url = $5, updated_at = $6
		WHERE id = $7
		RETURNING updated_at
	`

	product.UpdatedAt = time.Now()

	err := ext(ctx, r.db).QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Price,
		product.Stock,
		product.Description,
		product.ImageURL,
		product.UpdatedAt,
		product.ID,
	).Scan(&product.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := ext(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
