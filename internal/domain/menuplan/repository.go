package menuplan

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for daily menu plan persistence
type Repository interface {
	// FindByDate finds all plan entries for a date
	FindByDate(ctx context.Context, date time.Time) ([]DailyMenuPlanEntry, error)

	// FindByDateRange finds all plan entries with dates in [from, to]
	FindByDateRange(ctx context.Context, from, to time.Time) ([]DailyMenuPlanEntry, error)

	// ReplaceForDate deletes every entry for the date and inserts the given
	// entries. Callers that need atomicity with other writes run this inside
	// a transaction scope.
	ReplaceForDate(ctx context.Context, date time.Time, entries []DailyMenuPlanEntry) error

	// DeleteForDate removes all entries for a date
	DeleteForDate(ctx context.Context, date time.Time) error

	// FindByProduct finds plan entries referencing a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]DailyMenuPlanEntry, error)
}
