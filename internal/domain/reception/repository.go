package reception

import (
	"context"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
)

// Repository defines the interface for reception persistence
type Repository interface {
	// FindByID finds a reception by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Reception, error)

	// FindAll finds receptions matching the filter, newest intake first
	FindAll(ctx context.Context, filter shared.Filter) ([]Reception, error)

	// FindBySupplier finds receptions for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]Reception, error)

	// Save creates or updates a reception header
	Save(ctx context.Context, r *Reception) error

	// Count counts receptions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
