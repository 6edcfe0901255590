package recipe

import (
	"context"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
)

// Repository defines the interface for recipe persistence.
// Implementations must load ingredient lines with the root.
type Repository interface {
	// FindByID finds a recipe by its ID, lines included
	FindByID(ctx context.Context, id uuid.UUID) (*Recipe, error)

	// FindByProduct finds the recipe linked to a product, lines included.
	// Returns shared.ErrNotFound for unplannable products.
	FindByProduct(ctx context.Context, productID uuid.UUID) (*Recipe, error)

	// FindByProducts finds recipes for multiple products, keyed by product ID.
	// Products without a recipe are simply absent from the result.
	FindByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*Recipe, error)

	// FindAll finds all recipes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Recipe, error)

	// Save creates or updates a recipe together with its lines
	Save(ctx context.Context, r *Recipe) error

	// Delete removes a recipe and its lines. Admin action only.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts recipes matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
