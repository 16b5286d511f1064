package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/product_catalog/internal/domain"
	"github.com/Pesokrava/product_catalog/internal/pkg/logger"
	"github.com/Pesokrava/product_catalog/internal/pkg/validator"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// ProductCache invalidates cached product state after a purchase
type ProductCache interface {
	InvalidateProduct(ctx context.Context, id uuid.UUID) error
}

// OrderEvent is published after an order has been committed
type OrderEvent struct {
	EventType string        `json:"event_type"`
	Timestamp time.Time     `json:"timestamp"`
	ProductID uuid.UUID     `json:"product_id"`
	Order     *domain.Order `json:"order"`
}

// Service handles order placement and stock accounting
type Service struct {
	orders    domain.OrderRepository
	products  domain.ProductRepository
	tx        domain.Transactor
	cache     ProductCache
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new order service
func NewService(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	tx domain.Transactor,
	cache ProductCache,
	publisher EventPublisher,
	log *logger.Logger,
) *Service {
	return &Service{
		orders:    orders,
		products:  products,
		tx:        tx,
		cache:     cache,
		publisher: publisher,
		logger:    log,
	}
}

// PlaceOrder checks stock for the referenced product and, inside one
// transaction, decrements it and records the order. The row lock taken by
// the product lookup serializes concurrent purchases of the same product,
// so two orders can never jointly overdraw the stock. Snapshot fields
// (product name, unit price, total) are stored exactly as supplied.
func (s *Service) PlaceOrder(ctx context.Context, order *domain.Order) error {
	if violations := validator.Check(order); violations != nil {
		s.logger.Debugf("Order validation failed: %v", violations)
		return fmt.Errorf("%s %s: %w", violations[0].Field, violations[0].Message, domain.ErrInvalidInput)
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		product, err := s.products.GetByIDForUpdate(ctx, order.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("product %s: %w", order.ProductID, domain.ErrNotFound)
			}
			return err
		}

		if product.Stock < order.Quantity {
			return fmt.Errorf("product %q has %d in stock, %d requested: %w",
				product.Name, product.Stock, order.Quantity, domain.ErrInsufficientStock)
		}

		product.Stock -= order.Quantity
		if err := s.products.Update(ctx, product); err != nil {
			return err
		}

		return s.orders.Create(ctx, order)
	})

	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrInsufficientStock) {
			s.logger.Error("Failed to place order", err)
		}
		return err
	}

	// Post-commit concerns are best effort: the order stands even when the
	// cache or the event stream is unavailable.
	if err := s.cache.InvalidateProduct(ctx, order.ProductID); err != nil {
		s.logger.Warnf("Failed to invalidate cache for product %s: %v", order.ProductID, err)
	}

	s.publishEvent(ctx, order)

	s.logger.WithFields(map[string]interface{}{
		"order_id":   order.ID,
		"product_id": order.ProductID,
		"quantity":   order.Quantity,
	}).Info("Order placed successfully")

	return nil
}

// GetByID retrieves an order by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Order not found: %s", id)
			return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
		}
		s.logger.Error("Failed to get order", err)
		return nil, err
	}

	return order, nil
}

// List retrieves all orders, newest first
func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list orders", err)
		return nil, err
	}

	return orders, nil
}

func (s *Service) publishEvent(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}

	event := OrderEvent{
		EventType: "orders.created",
		Timestamp: time.Now(),
		ProductID: order.ProductID,
		Order:     order,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal order event", err)
		return
	}

	if err := s.publisher.Publish(ctx, "orders.created", data); err != nil {
		s.logger.Warnf("Failed to publish order event for order %s: %v", order.ID, err)
	}
}
