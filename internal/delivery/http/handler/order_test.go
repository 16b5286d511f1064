package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/product_catalog/internal/domain"
)

func TestOrderHandler_Create_Success(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockProducts := new(MockProductRepository)
	router := newOrderRouter(mockOrders, mockProducts)

	productID := uuid.New()
	product := &domain.Product{ID: productID, Name: "Laptop", Price: 128000, Stock: 5}

	mockProducts.On("GetByIDForUpdate", mock.Anything, productID).Return(product, nil)
	mockProducts.On("Update", mock.Anything, product).Return(nil)
	mockOrders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	reqBody := CreateOrderRequest{
		ProductID:   productID,
		ProductName: "Laptop",
		UnitPrice:   128000,
		Quantity:    2,
		Total:       256000,
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 3, product.Stock)
	mockOrders.AssertExpectations(t)
	mockProducts.AssertExpectations(t)
}

func TestOrderHandler_Create_InsufficientStock(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockProducts := new(MockProductRepository)
	router := newOrderRouter(mockOrders, mockProducts)

	productID := uuid.New()
	product := &domain.Product{ID: productID, Name: "Laptop", Price: 128000, Stock: 1}

	mockProducts.On("GetByIDForUpdate", mock.Anything, productID).Return(product, nil)

	reqBody := CreateOrderRequest{
		ProductID:   productID,
		ProductName: "Laptop",
		UnitPrice:   128000,
		Quantity:    2,
		Total:       256000,
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "stock")
	mockOrders.AssertNotCalled(t, "Create")
}

func TestOrderHandler_Create_ProductNotFound(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockProducts := new(MockProductRepository)
	router := newOrderRouter(mockOrders, mockProducts)

	productID := uuid.New()
	mockProducts.On("GetByIDForUpdate", mock.Anything, productID).Return(nil, domain.ErrNotFound)

	reqBody := CreateOrderRequest{
		ProductID:   productID,
		ProductName: "Ghost",
		UnitPrice:   100,
		Quantity:    1,
		Total:       100,
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockOrders.AssertNotCalled(t, "Create")
}

func TestOrderHandler_Create_ZeroQuantity(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockProducts := new(MockProductRepository)
	router := newOrderRouter(mockOrders, mockProducts)

	reqBody := CreateOrderRequest{
		ProductID:   uuid.New(),
		ProductName: "Laptop",
		UnitPrice:   128000,
		Quantity:    0,
		Total:       0,
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockProducts.AssertNotCalled(t, "GetByIDForUpdate")
}

func TestOrderHandler_GetByID_Success(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockProducts := new(MockProductRepository)
	router := newOrderRouter(mockOrders, mockProducts)

	orderID := uuid.New()
	expected := &domain.Order{ID: orderID, ProductName: "Laptop", Quantity: 1, Total: 128000}

	mockOrders.On("GetByID", mock.Anything, orderID).Return(expected, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockOrders.AssertExpectations(t)
}

func TestOrderHandler_GetByID_NotFound(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockProducts := new(MockProductRepository)
	router := newOrderRouter(mockOrders, mockProducts)

	orderID := uuid.New()
	mockOrders.On("GetByID", mock.Anything, orderID).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHandler_List_Empty(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockProducts := new(MockProductRepository)
	router := newOrderRouter(mockOrders, mockProducts)

	mockOrders.On("List", mock.Anything).Return([]*domain.Order{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}
