package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/service/product"
)

type barcodeResolver interface {
	Lookup(ctx context.Context, id string) (domain.Product, error)
}

type productService interface {
	Search(ctx context.Context, in product.SearchInput) ([]domain.Product, error)
	CreateManual(ctx context.Context, in product.ManualProductInput) (domain.Product, error)
}

// ProductHandler serves product lookup, search and manual creation.
type ProductHandler struct {
	barcode  barcodeResolver
	products productService
	log      *slog.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(barcode barcodeResolver, products productService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		barcode:  barcode,
		products: products,
		log:      logger.With("handler", "products"),
	}
}

// ByBarcode handles GET /api/v1/products/barcode/{barcode}.
func (h *ProductHandler) ByBarcode(w http.ResponseWriter, r *http.Request) {
	p, err := h.barcode.Lookup(r.Context(), r.PathValue("barcode"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// Search handles GET /api/v1/products/search?q=&source=&limit=.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	source := domain.SourceOpenFoodFacts
	if raw := r.URL.Query().Get("source"); raw != "" {
		source = domain.Source(raw)
	}

	products, err := h.products.Search(r.Context(), product.SearchInput{
		Source: source,
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductList(products))
}

// Create handles POST /api/v1/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	p, err := h.products.CreateManual(r.Context(), product.ManualProductInput{
		Name:            req.Name,
		Brand:           req.Brand,
		Barcode:         req.Barcode,
		Macros:          req.Macronutrients.toDomain(),
		Micros:          req.Micronutrients.toDomain(),
		IsLiquid:        req.IsLiquid,
		VolumeMLPer100g: req.VolumeMLPer100g,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(p))
}
