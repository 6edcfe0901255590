package inventory

import (
	"github.com/restaurant/backend/internal/domain/shared"
)

// StorageLocation names a physical place batches are stored (pantry,
// walk-in, freezer). Batches reference it optionally.
type StorageLocation struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (StorageLocation) TableName() string {
	return "storage_locations"
}
