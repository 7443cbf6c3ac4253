// internal/handlers/product.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/japolo/catalog-api/internal/core/domain"
	"github.com/japolo/catalog-api/internal/core/ports"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	repo   ports.ProductRepository
	logger *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(repo ports.ProductRepository, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		repo:   repo,
		logger: logger.With(slog.String("handler", "products")),
	}
}

// List handles GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.repo.GetAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get product",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.repo.Create(ctx, req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create product",
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	h.logger.InfoContext(ctx, "product created",
		slog.Int64("id", product.ID),
		slog.String("name", product.Name))

	respondJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.repo.Update(ctx, id, req.ToDomain())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update product",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	h.logger.InfoContext(ctx, "product updated", slog.Int64("id", id))

	respondJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete product",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	h.logger.InfoContext(ctx, "product deleted", slog.Int64("id", id))

	respondJSON(w, http.StatusNoContent, nil)
}

// ProductRequest represents the request body for creating or updating a
// product. Price and Stock are pointers so that a missing field can be told
// apart from a zero value.
type ProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
}

// Validate checks required fields before any repository call
func (r *ProductRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Description == "" {
		return fmt.Errorf("description is required")
	}
	if r.Price == nil {
		return fmt.Errorf("price is required")
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	if r.Stock == nil {
		return fmt.Errorf("stock is required")
	}
	if *r.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	return nil
}

// ToDomain converts the request to a domain model
func (r *ProductRequest) ToDomain() domain.Product {
	return domain.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Stock:       *r.Stock,
	}
}
