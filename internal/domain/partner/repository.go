package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
)

// SupplierRepository defines read access to the supplier directory
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindAll finds all suppliers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)

	// Exists reports whether a supplier with the given ID exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
