package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
)

// ProductRepository defines read access to the storefront product catalog
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindByCategory finds all products in a category
	FindByCategory(ctx context.Context, categoryName string) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
}

// CategoryRepository defines read access to the category table
type CategoryRepository interface {
	// FindByName finds a category by its unique name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll finds all categories
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
}
