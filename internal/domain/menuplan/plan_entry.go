package menuplan

import (
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
)

// DailyMenuPlanEntry is one planned product on a calendar date. The full
// plan for a date is the set of entries sharing that date; it is replaced
// wholesale on commit, never patched row by row.
type DailyMenuPlanEntry struct {
	shared.BaseEntity
	PlanDate  time.Time `gorm:"type:date;not null;uniqueIndex:idx_plan_date_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_plan_date_product,priority:2"`
	// Portions is the planned portion count; nil means unlimited (the
	// storefront sells without a counter, and the entry draws no stock).
	Portions *int `gorm:""`
	// SpecificExtrasIDs optionally overrides which extras the storefront
	// offers with this product, comma-joined product IDs.
	SpecificExtrasIDs string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DailyMenuPlanEntry) TableName() string {
	return "daily_menu_plan_entries"
}

// NewDailyMenuPlanEntry creates a plan entry for a date
func NewDailyMenuPlanEntry(planDate time.Time, productID uuid.UUID, portions *int) (*DailyMenuPlanEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if portions != nil && *portions < 0 {
		return nil, shared.NewDomainError("INVALID_PORTIONS", "Portions cannot be negative")
	}
	return &DailyMenuPlanEntry{
		BaseEntity: shared.NewBaseEntity(),
		PlanDate:   normalizeDate(planDate),
		ProductID:  productID,
		Portions:   portions,
	}, nil
}

// PortionCount returns the planned portions, zero when unlimited/unset.
// Unconfigured entries deliberately contribute nothing to demand.
func (e *DailyMenuPlanEntry) PortionCount() int {
	if e.Portions == nil {
		return 0
	}
	return *e.Portions
}

// normalizeDate strips the time-of-day component
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
