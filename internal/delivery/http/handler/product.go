package handler

import (
	"errors"
	"net/http"

	"github.com/Pesokrava/product_catalog/internal/delivery/http/request"
	"github.com/Pesokrava/product_catalog/internal/delivery/http/response"
	"github.com/Pesokrava/product_catalog/internal/domain"
	"github.com/Pesokrava/product_catalog/internal/pkg/logger"
	"github.com/Pesokrava/product_catalog/internal/pkg/validator"
	"github.com/Pesokrava/product_catalog/internal/usecase/product"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service       *product.Service
	maxUploadSize int64
	logger        *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *product.Service, maxUploadSize int64, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service:       service,
		maxUploadSize: maxUploadSize,
		logger:        log,
	}
}

// ProductRequest represents the product fields accepted on create and update
type ProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Price       *int64  `json:"price" validate:"required,gte=0"`
	Stock       *int    `json:"stock" validate:"required,gte=0"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// Create handles POST /api/v1/products
// @Summary Create a new product
// @Description Create a new product with name, price, stock, and description
// @Tags Products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product details"
// @Success 201 {object} map[string]interface{} "Product created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if violations := validator.Check(&req); violations != nil {
		response.Violations(w, violations)
		return
	}

	prod := &domain.Product{
		Name:        req.Name,
		Price:       *req.Price,
		Stock:       *req.Stock,
		Description: req.Description,
	}

	if err := h.service.Create(r.Context(), prod); err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, prod)
}

// GetByID handles GET /api/v1/products/:id
// @Summary Get a product by ID
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} map[string]interface{} "Product details"
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	prod, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, prod)
}

// List handles GET /api/v1/products
// @Summary List or search products
// @Description List all products, search by exact name (?name=), or by name substring (?q=)
// @Tags Products
// @Accept json
// @Produce json
// @Param name query string false "Exact product name"
// @Param q query string false "Name substring"
// @Success 200 {object} map[string]interface{} "List of products"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		products []*domain.Product
		err      error
	)

	if q := r.URL.Query().Get("q"); q != "" {
		products, err = h.service.SearchSubstring(r.Context(), q)
	} else {
		products, err = h.service.Search(r.Context(), r.URL.Query().Get("name"))
	}

	if err != nil {
		h.handleError(w, err)
		return
	}

	if products == nil {
		products = []*domain.Product{}
	}

	response.Success(w, products)
}

// Update handles PUT /api/v1/products/:id
// @Summary Update a product, optionally replacing its image
// @Description Multipart request: "productDetails" JSON part plus optional "imageFile" part
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param productDetails formData string true "Product details as JSON"
// @Param imageFile formData file false "Replacement image"
// @Success 200 {object} map[string]interface{} "Product updated successfully"
// @Failure 400 {object} map[string]string "Invalid request or duplicate name"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := request.DecodeMultipartJSON(r, "productDetails", h.maxUploadSize, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product details")
		return
	}

	if violations := validator.Check(&req); violations != nil {
		response.Violations(w, violations)
		return
	}

	file, err := request.GetMultipartFile(r, "imageFile", h.maxUploadSize)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image upload")
		return
	}

	details := domain.ProductDetails{
		Name:        req.Name,
		Price:       *req.Price,
		Stock:       *req.Stock,
		Description: req.Description,
	}

	var upload *product.ImageUpload
	if file != nil {
		upload = &product.ImageUpload{Filename: file.Filename, Data: file.Data}
	}

	prod, err := h.service.UpdateWithImage(r.Context(), id, details, upload)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, prod)
}

// UploadImage handles POST /api/v1/products/:id/image
// @Summary Attach an image to a product
// @Description Multipart request with an "imageFile" part; only the image URL changes
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param imageFile formData file false "Image to attach"
// @Success 200 {object} map[string]interface{} "Product with updated image URL"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id}/image [post]
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	file, err := request.GetMultipartFile(r, "imageFile", h.maxUploadSize)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image upload")
		return
	}

	var upload *product.ImageUpload
	if file != nil {
		upload = &product.ImageUpload{Filename: file.Filename, Data: file.Data}
	}

	prod, err := h.service.UpdateImageOnly(r.Context(), id, upload)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, prod)
}

// Delete handles DELETE /api/v1/products/:id
// @Summary Delete a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 204 "Product deleted successfully"
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// handleError maps domain errors to HTTP responses. Expected failures pass
// their message through; anything else becomes an opaque 500.
func (h *ProductHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateName):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Internal error in product handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
