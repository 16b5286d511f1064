package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Pesokrava/product_catalog/internal/delivery/http/request"
	"github.com/Pesokrava/product_catalog/internal/delivery/http/response"
	"github.com/Pesokrava/product_catalog/internal/domain"
	"github.com/Pesokrava/product_catalog/internal/pkg/logger"
	"github.com/Pesokrava/product_catalog/internal/pkg/validator"
	"github.com/Pesokrava/product_catalog/internal/usecase/order"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	service *order.Service
	logger  *logger.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *order.Service, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  log,
	}
}

// CreateOrderRequest represents the request body for placing an order. The
// snapshot fields (product name, unit price, total) come from the caller
// and are stored as given.
type CreateOrderRequest struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	ProductName string    `json:"product_name" validate:"required"`
	UnitPrice   int64     `json:"unit_price" validate:"gte=0"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	Total       int64     `json:"total" validate:"gte=0"`
}

// Create handles POST /api/v1/orders
// @Summary Place an order
// @Description Place an order for a product, decrementing its stock
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest true "Order details"
// @Success 201 {object} map[string]interface{} "Order placed successfully"
// @Failure 400 {object} map[string]string "Invalid request or insufficient stock"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /orders [post]
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if violations := validator.Check(&req); violations != nil {
		response.Violations(w, violations)
		return
	}

	ord := &domain.Order{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
		Total:       req.Total,
	}

	if err := h.service.PlaceOrder(r.Context(), ord); err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, ord)
}

// GetByID handles GET /api/v1/orders/:id
// @Summary Get an order by ID
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} map[string]interface{} "Order details"
// @Failure 400 {object} map[string]string "Invalid order ID"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ord, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, ord)
}

// List handles GET /api/v1/orders
// @Summary List all orders
// @Tags Orders
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "List of orders"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	if orders == nil {
		orders = []*domain.Order{}
	}

	response.Success(w, orders)
}

// handleError maps domain errors to HTTP responses
func (h *OrderHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Internal error in order handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
