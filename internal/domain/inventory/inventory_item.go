package inventory

import (
	"time"

	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryItem is the canonical ingredient/raw-material catalog entry.
// Identity is immutable; name, unit and default VAT rate are mutable
// metadata. Stock itself lives in batches; the item aggregates them.
type InventoryItem struct {
	shared.BaseAggregateRoot
	Name       string          `gorm:"type:varchar(255);not null"`
	Unit       string          `gorm:"type:varchar(20);not null"` // "kg", "l", "buc"
	VATPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`

	// Associations - loaded lazily
	Batches []InventoryBatch `gorm:"foreignKey:ItemID;references:ID"`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates a new inventory item
func NewInventoryItem(name, unit string, vatPercent decimal.Decimal) (*InventoryItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit of measure cannot be empty")
	}
	if vatPercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VAT", "VAT percent cannot be negative")
	}
	return &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Unit:              unit,
		VATPercent:        vatPercent,
		Batches:           make([]InventoryBatch, 0),
	}, nil
}

// UpdateMetadata changes the mutable metadata of the item
func (i *InventoryItem) UpdateMetadata(name, unit string, vatPercent decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit of measure cannot be empty")
	}
	if vatPercent.IsNegative() {
		return shared.NewDomainError("INVALID_VAT", "VAT percent cannot be negative")
	}
	i.Name = name
	i.Unit = unit
	i.VATPercent = vatPercent
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// AvailableQuantity sums the positive batch quantities. Batches driven
// negative by a confirmed shortage override do not reduce this figure;
// use NetQuantity for the full position.
func (i *InventoryItem) AvailableQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, b := range i.Batches {
		if b.Quantity.GreaterThan(decimal.Zero) {
			total = total.Add(b.Quantity)
		}
	}
	return total
}

// NetQuantity sums all batch quantities including negative ones
func (i *InventoryItem) NetQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, b := range i.Batches {
		total = total.Add(b.Quantity)
	}
	return total
}

// LatestBatch returns the most recently created batch, or nil if the item
// has none. Ties on creation time resolve to the lexicographically highest
// batch ID so the choice is deterministic.
func (i *InventoryItem) LatestBatch() *InventoryBatch {
	var latest *InventoryBatch
	for idx := range i.Batches {
		b := &i.Batches[idx]
		if latest == nil {
			latest = b
			continue
		}
		if b.CreatedAt.After(latest.CreatedAt) {
			latest = b
		} else if b.CreatedAt.Equal(latest.CreatedAt) && b.ID.String() > latest.ID.String() {
			latest = b
		}
	}
	return latest
}

// RepresentativePrice returns the last known net purchase price across the
// item's batches, zero if the item has never been received.
func (i *InventoryItem) RepresentativePrice() decimal.Decimal {
	if b := i.LatestBatch(); b != nil {
		return b.PurchasePrice
	}
	return decimal.Zero
}
