package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pesokrava/product_catalog/internal/domain"
	"github.com/Pesokrava/product_catalog/internal/pkg/logger"
	"github.com/Pesokrava/product_catalog/internal/pkg/validator"
)

// ImageStore persists uploaded image bytes and returns the public URL path
// of the stored file
type ImageStore interface {
	Save(productID uuid.UUID, filename string, data []byte) (string, error)
}

// ProductCache caches product lookups
type ProductCache interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	InvalidateProduct(ctx context.Context, id uuid.UUID) error
}

// ImageUpload carries the raw bytes of an uploaded image together with the
// client's original filename
type ImageUpload struct {
	Filename string
	Data     []byte
}

// Service handles product lifecycle business logic
type Service struct {
	repo   domain.ProductRepository
	tx     domain.Transactor
	images ImageStore
	cache  ProductCache
	logger *logger.Logger
}

// NewService creates a new product service
func NewService(
	repo domain.ProductRepository,
	tx domain.Transactor,
	images ImageStore,
	cache ProductCache,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:   repo,
		tx:     tx,
		images: images,
		cache:  cache,
		logger: log,
	}
}

// Create persists a new product. The price must be zero or greater. Name
// uniqueness is not checked here: duplicate names are allowed at creation
// and only rejected by Update.
func (s *Service) Create(ctx context.Context, product *domain.Product) error {
	if product.Price < 0 {
		return fmt.Errorf("price must be zero or greater: %w", domain.ErrInvalidInput)
	}

	if violations := validator.Check(product); violations != nil {
		s.logger.Debugf("Product validation failed: %v", violations)
		return fmt.Errorf("%s %s: %w", violations[0].Field, violations[0].Message, domain.ErrInvalidInput)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product created successfully")

	return nil
}

// GetByID retrieves a product by ID, read-through cached
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if product, err := s.cache.GetProduct(ctx, id); err == nil {
		s.logger.Debugf("Cache hit for product %s", id)
		return product, nil
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Product not found: %s", id)
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		s.logger.Error("Failed to get product", err)
		return nil, err
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.logger.Warnf("Failed to cache product %s: %v", id, err)
	}

	return product, nil
}

// Search returns products whose name matches exactly, or every product when
// no name filter is supplied
func (s *Service) Search(ctx context.Context, name string) ([]*domain.Product, error) {
	var products []*domain.Product
	var err error

	if name == "" {
		products, err = s.repo.List(ctx)
	} else {
		products, err = s.repo.FindByName(ctx, name)
	}

	if err != nil {
		s.logger.Error("Failed to search products", err)
		return nil, err
	}

	return products, nil
}

// SearchSubstring returns products whose name contains the given substring
func (s *Service) SearchSubstring(ctx context.Context, substring string) ([]*domain.Product, error) {
	products, err := s.repo.SearchByName(ctx, substring)
	if err != nil {
		s.logger.Error("Failed to search products by substring", err)
		return nil, err
	}

	return products, nil
}

// UpdateWithImage replaces a product's mutable fields and optionally attaches
// a new image, all inside one transaction. The duplicate-name check runs
// against the new name excluding the product itself; on violation nothing
// reaches storage. When no image is supplied the previous image URL is kept.
func (s *Service) UpdateWithImage(ctx context.Context, id uuid.UUID, details domain.ProductDetails, image *ImageUpload) (*domain.Product, error) {
	var updated *domain.Product

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		product, err := s.repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
			}
			return err
		}

		// The file write happens before the database write so a failed
		// write aborts the whole operation. The reverse failure leaves an
		// orphan file behind; that is accepted and logged, filesystems do
		// not join the database transaction.
		if image != nil && len(image.Data) > 0 {
			url, err := s.images.Save(id, image.Filename, image.Data)
			if err != nil {
				s.logger.Error("Failed to store product image", err)
				return fmt.Errorf("store image for product %s: %w", id, err)
			}
			product.ImageURL = &url
		}

		product.Name = details.Name
		product.Price = details.Price
		product.Stock = details.Stock
		product.Description = details.Description

		if _, err := s.repo.FindByNameExcludingID(ctx, product.Name, id); err == nil {
			return fmt.Errorf("product name %q is already in use: %w", product.Name, domain.ErrDuplicateName)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if err := s.repo.Update(ctx, product); err != nil {
			return err
		}

		updated = product
		return nil
	})

	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrDuplicateName) {
			s.logger.Error("Failed to update product", err)
		}
		return nil, err
	}

	if err := s.cache.InvalidateProduct(ctx, id); err != nil {
		s.logger.Warnf("Failed to invalidate cache for product %s: %v", id, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": id,
		"name":       updated.Name,
	}).Info("Product updated successfully")

	return updated, nil
}

// UpdateImageOnly attaches an image to a product without touching any other
// field. A missing or empty upload is a no-op that still succeeds.
func (s *Service) UpdateImageOnly(ctx context.Context, id uuid.UUID, image *ImageUpload) (*domain.Product, error) {
	var updated *domain.Product

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		product, err := s.repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
			}
			return err
		}

		if image == nil || len(image.Data) == 0 {
			updated = product
			return nil
		}

		url, err := s.images.Save(id, image.Filename, image.Data)
		if err != nil {
			s.logger.Error("Failed to store product image", err)
			return fmt.Errorf("store image for product %s: %w", id, err)
		}
		product.ImageURL = &url

		if err := s.repo.Update(ctx, product); err != nil {
			return err
		}

		updated = product
		return nil
	})

	if err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateProduct(ctx, id); err != nil {
		s.logger.Warnf("Failed to invalidate cache for product %s: %v", id, err)
	}

	return updated, nil
}

// Delete removes a product outright. Image files are not cleaned up.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		s.logger.Error("Failed to delete product", err)
		return err
	}

	if err := s.cache.InvalidateProduct(ctx, id); err != nil {
		s.logger.Warnf("Failed to invalidate cache for product %s: %v", id, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": id,
	}).Info("Product deleted successfully")

	return nil
}
