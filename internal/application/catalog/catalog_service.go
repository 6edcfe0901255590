package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/catalog"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CatalogService exposes read access to the storefront catalog. The
// kitchen engine never mutates products or categories; it only resolves
// them for planning and filtering.
type CatalogService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ProductResponse is the API view of a catalog product
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
	Price        decimal.Decimal `json:"price"`
	IsVisible    bool            `json:"is_visible"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CategoryResponse is the API view of a catalog category
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	IsVisible bool      `json:"is_visible"`
}

func toProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		CategoryName: p.CategoryName,
		Price:        p.Price,
		IsVisible:    p.IsVisible,
		CreatedAt:    p.CreatedAt,
	}
}

// GetProduct returns one product
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// ListProducts returns products matching the filter
func (s *CatalogService) ListProducts(ctx context.Context, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}
	return responses, nil
}

// ListProductsByCategory returns the products in one category
func (s *CatalogService) ListProductsByCategory(ctx context.Context, categoryName string) ([]ProductResponse, error) {
	products, err := s.productRepo.FindByCategory(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}
	return responses, nil
}

// ListCategories returns all categories
func (s *CatalogService) ListCategories(ctx context.Context, filter shared.Filter) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		c := &categories[i]
		responses = append(responses, CategoryResponse{
			ID:        c.ID,
			Name:      c.Name,
			Type:      string(c.Type),
			IsVisible: c.IsVisible,
		})
	}
	return responses, nil
}
