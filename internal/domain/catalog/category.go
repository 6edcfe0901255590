package catalog

import (
	"github.com/restaurant/backend/internal/domain/shared"
)

// CategoryType classifies how a category is fulfilled
type CategoryType string

const (
	// CategoryTypeDelivery marks categories sold through the delivery storefront
	CategoryTypeDelivery CategoryType = "delivery"
	// CategoryTypeCatering marks categories sold through catering/daily menus
	CategoryTypeCatering CategoryType = "catering"
)

// IsValid returns true if the category type is valid
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeDelivery || t == CategoryTypeCatering
}

// Category resolves a product's free-text category name to a type
// classification. Owned by the storefront; read-only here.
type Category struct {
	shared.BaseEntity
	Name      string       `gorm:"type:varchar(100);not null;uniqueIndex"`
	Type      CategoryType `gorm:"type:varchar(20);not null"`
	IsVisible bool         `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}
