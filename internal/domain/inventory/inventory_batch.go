package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryBatch is one received lot of an inventory item. InitialQuantity
// records what was received; Quantity is the remaining amount, mutated only
// by ledger movements and corrective edits. Quantity never exceeds
// InitialQuantity, but it may go negative when a shortage is explicitly
// confirmed during plan commit.
type InventoryBatch struct {
	shared.BaseEntity
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	InitialQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PurchasePrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"` // net, per unit
	VATPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	ExpirationDate  *time.Time      `gorm:"type:date"`
	LocationID      *uuid.UUID      `gorm:"type:uuid;index"`
	ReceptionID     *uuid.UUID      `gorm:"type:uuid;index"` // provenance
}

// TableName returns the table name for GORM
func (InventoryBatch) TableName() string {
	return "inventory_batches"
}

// NewInventoryBatch creates a new batch with remaining quantity equal to
// the received quantity.
func NewInventoryBatch(
	itemID uuid.UUID,
	quantity decimal.Decimal,
	netPrice decimal.Decimal,
	vatPercent decimal.Decimal,
	expirationDate *time.Time,
	locationID *uuid.UUID,
) (*InventoryBatch, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Batch quantity must be positive")
	}
	if netPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if vatPercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VAT", "VAT percent cannot be negative")
	}
	return &InventoryBatch{
		BaseEntity:      shared.NewBaseEntity(),
		ItemID:          itemID,
		InitialQuantity: quantity,
		Quantity:        quantity,
		PurchasePrice:   netPrice,
		VATPercent:      vatPercent,
		ExpirationDate:  expirationDate,
		LocationID:      locationID,
	}, nil
}

// WithReception marks the reception this batch was minted from
func (b *InventoryBatch) WithReception(receptionID uuid.UUID) *InventoryBatch {
	b.ReceptionID = &receptionID
	return b
}

// Correct adjusts a batch after receipt: the remaining quantity shifts by
// the same delta as the initial quantity and the net price is overwritten.
// VAT percent is immutable here; corrections never touch it.
func (b *InventoryBatch) Correct(newInitialQuantity, newPrice decimal.Decimal) error {
	if newInitialQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Corrected quantity cannot be negative")
	}
	if newPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Corrected price cannot be negative")
	}

	delta := newInitialQuantity.Sub(b.InitialQuantity)
	b.InitialQuantity = newInitialQuantity
	b.Quantity = b.Quantity.Add(delta)
	b.PurchasePrice = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// Apply shifts the remaining quantity by a signed delta. Consumption under
// a confirmed shortage may push it negative; growth is capped at the
// initial quantity.
func (b *InventoryBatch) Apply(delta decimal.Decimal) error {
	next := b.Quantity.Add(delta)
	if next.GreaterThan(b.InitialQuantity) {
		return shared.NewDomainError("INVALID_QUANTITY", "Batch quantity cannot exceed initial quantity")
	}
	b.Quantity = next
	b.UpdatedAt = time.Now()
	return nil
}

// HasStock returns true if the batch has remaining quantity
func (b *InventoryBatch) HasStock() bool {
	return b.Quantity.GreaterThan(decimal.Zero)
}

// IsExpired returns true if the batch has an expiry date in the past.
// Expiry is recorded for reporting only; nothing blocks consumption.
func (b *InventoryBatch) IsExpired() bool {
	if b.ExpirationDate == nil {
		return false
	}
	return b.ExpirationDate.Before(time.Now())
}

// WillExpireWithin returns true if the batch expires within the duration
func (b *InventoryBatch) WillExpireWithin(d time.Duration) bool {
	if b.ExpirationDate == nil {
		return false
	}
	return b.ExpirationDate.Before(time.Now().Add(d))
}

// GrossPrice returns the per-unit gross price derived from net and VAT
func (b *InventoryBatch) GrossPrice() decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Add(b.VATPercent.Div(decimal.NewFromInt(100)))
	return b.PurchasePrice.Mul(multiplier).Round(4)
}

// RemainingValue returns remaining quantity times net price
func (b *InventoryBatch) RemainingValue() decimal.Decimal {
	return b.Quantity.Mul(b.PurchasePrice)
}
