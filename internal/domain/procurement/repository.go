package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
)

// Repository defines the interface for procurement list persistence.
// Items are child entities persisted through the list aggregate.
type Repository interface {
	// FindByID finds a list by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*ProcurementList, error)

	// FindAll finds lists matching the filter, items included
	FindAll(ctx context.Context, filter shared.Filter) ([]ProcurementList, error)

	// FindByStatus finds lists in the given status
	FindByStatus(ctx context.Context, status ListStatus, filter shared.Filter) ([]ProcurementList, error)

	// Save creates or updates a list together with its items
	Save(ctx context.Context, list *ProcurementList) error

	// Delete removes a list and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts lists matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
