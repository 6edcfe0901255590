package procurement

import (
	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/restaurant/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProcurementItem is one line of a shopping list. ItemName is denormalized
// so lists can carry goods outside the canonical inventory catalog; ItemID
// links back when the line does map to a known item. The net price is the
// durable quantity - gross and VAT changes recompute around it.
type ProcurementItem struct {
	shared.BaseEntity
	ListID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName          string          `gorm:"type:varchar(255);not null"`
	ItemID            *uuid.UUID      `gorm:"type:uuid;index"`
	Unit              string          `gorm:"type:varchar(20)"`
	QuantityRequested decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	QuantityBought    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PriceNet          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // per unit
	PriceGross        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // per unit
	VATPercent        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	IsBought          bool            `gorm:"not null;default:false"`
	SupplierID        *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ProcurementItem) TableName() string {
	return "procurement_items"
}

// ItemInput carries the fields for a new procurement line
type ItemInput struct {
	ItemName          string
	ItemID            *uuid.UUID
	Unit              string
	QuantityRequested decimal.Decimal
	VATPercent        decimal.Decimal
}

// newProcurementItem validates and builds a line for AddItem
func newProcurementItem(listID uuid.UUID, input ItemInput) (*ProcurementItem, error) {
	if input.ItemName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if input.QuantityRequested.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity cannot be negative")
	}
	if input.VATPercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VAT", "VAT percent cannot be negative")
	}
	return &ProcurementItem{
		BaseEntity:        shared.NewBaseEntity(),
		ListID:            listID,
		ItemName:          input.ItemName,
		ItemID:            input.ItemID,
		Unit:              input.Unit,
		QuantityRequested: input.QuantityRequested,
		QuantityBought:    decimal.Zero,
		PriceNet:          decimal.Zero,
		PriceGross:        decimal.Zero,
		VATPercent:        input.VATPercent,
		IsBought:          false,
	}, nil
}

// vatRate returns the line's VAT rate value object
func (i *ProcurementItem) vatRate() valueobject.VATRate {
	return valueobject.MustVATRate(i.VATPercent)
}

// SetGrossPrice sets the gross unit price and derives net from it
func (i *ProcurementItem) SetGrossPrice(gross decimal.Decimal) error {
	if gross.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	i.PriceGross = gross
	i.PriceNet = i.vatRate().GrossToNet(gross)
	return nil
}

// SetNetPrice sets the net unit price and derives gross from it
func (i *ProcurementItem) SetNetPrice(net decimal.Decimal) error {
	if net.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	i.PriceNet = net
	i.PriceGross = i.vatRate().NetToGross(net)
	return nil
}

// SetVATPercent changes the VAT rate and recomputes gross from the durable net
func (i *ProcurementItem) SetVATPercent(percent decimal.Decimal) error {
	rate, err := valueobject.NewVATRate(percent)
	if err != nil {
		return shared.NewDomainError("INVALID_VAT", "VAT percent cannot be negative")
	}
	i.VATPercent = percent
	i.PriceGross = rate.NetToGross(i.PriceNet)
	return nil
}

// SetBought marks the line bought/unbought with the actual quantity
func (i *ProcurementItem) SetBought(bought bool, quantityBought decimal.Decimal) error {
	if quantityBought.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Bought quantity cannot be negative")
	}
	i.IsBought = bought
	i.QuantityBought = quantityBought
	return nil
}

// SetSupplier records where the line was (or will be) bought
func (i *ProcurementItem) SetSupplier(supplierID *uuid.UUID) {
	i.SupplierID = supplierID
}

// effectiveQuantity is the bought quantity when set, otherwise the requested one
func (i *ProcurementItem) effectiveQuantity() decimal.Decimal {
	if i.QuantityBought.GreaterThan(decimal.Zero) {
		return i.QuantityBought
	}
	return i.QuantityRequested
}

// LineNetTotal returns quantity times net unit price
func (i *ProcurementItem) LineNetTotal() decimal.Decimal {
	return i.effectiveQuantity().Mul(i.PriceNet)
}

// LineGrossTotal returns quantity times gross unit price
func (i *ProcurementItem) LineGrossTotal() decimal.Decimal {
	return i.effectiveQuantity().Mul(i.PriceGross)
}
