package catalog

import (
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is the storefront catalog entry for a sellable dish.
// The catalog is owned by the storefront; the kitchen engine reads it to
// resolve planned products and category filters, and never mutates it.
type Product struct {
	shared.BaseEntity
	Name         string          `gorm:"type:varchar(255);not null"`
	CategoryName string          `gorm:"type:varchar(100);not null;index"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsVisible    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}
