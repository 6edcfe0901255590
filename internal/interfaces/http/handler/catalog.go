package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/restaurant/backend/internal/application/catalog"
)

// CatalogHandler exposes the storefront product catalog read-only
type CatalogHandler struct {
	BaseHandler
	catalog *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
	}

	rg.GET("/categories", h.ListCategories)
}

// ListProducts returns storefront products, optionally filtered by ?category
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		products, err := h.catalog.ListProductsByCategory(c.Request.Context(), category)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, products)
		return
	}

	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetProduct returns one product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListCategories returns the category directory
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	categories, err := h.catalog.ListCategories(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}
