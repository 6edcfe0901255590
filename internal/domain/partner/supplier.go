package partner

import (
	"github.com/restaurant/backend/internal/domain/shared"
)

// Supplier is a directory entry for goods suppliers. Receptions and
// procurement items reference it for display; existence is the only
// validation performed against it.
type Supplier struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(255);not null"`
	ContactName string `gorm:"type:varchar(255)"`
	Phone       string `gorm:"type:varchar(50)"`
	Email       string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}
