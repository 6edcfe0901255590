package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/procurement"
	"github.com/shopspring/decimal"
)

// ListResponse is the API view of a procurement list with its lines
type ListResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	ShopperName string         `json:"shopper_name"`
	Status      string         `json:"status"`
	TotalNet    decimal.Decimal `json:"total_net"`
	TotalGross  decimal.Decimal `json:"total_gross"`
	ClosedAt    *time.Time     `json:"closed_at,omitempty"`
	Items       []ItemResponse `json:"items"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ItemResponse is the API view of one procurement line
type ItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ItemName          string          `json:"item_name"`
	ItemID            *uuid.UUID      `json:"item_id,omitempty"`
	Unit              string          `json:"unit,omitempty"`
	QuantityRequested decimal.Decimal `json:"quantity_requested"`
	QuantityBought    decimal.Decimal `json:"quantity_bought"`
	PriceNet          decimal.Decimal `json:"price_net"`
	PriceGross        decimal.Decimal `json:"price_gross"`
	VATPercent        decimal.Decimal `json:"vat_percent"`
	IsBought          bool            `json:"is_bought"`
	SupplierID        *uuid.UUID      `json:"supplier_id,omitempty"`
}

// ToListResponse maps a domain list to its response
func ToListResponse(l *procurement.ProcurementList) ListResponse {
	items := make([]ItemResponse, 0, len(l.Items))
	for i := range l.Items {
		items = append(items, ToItemResponse(&l.Items[i]))
	}
	return ListResponse{
		ID:          l.ID,
		Name:        l.Name,
		ShopperName: l.ShopperName,
		Status:      string(l.Status),
		TotalNet:    l.TotalNet,
		TotalGross:  l.TotalGross,
		ClosedAt:    l.ClosedAt,
		Items:       items,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// ToItemResponse maps a domain line to its response
func ToItemResponse(i *procurement.ProcurementItem) ItemResponse {
	return ItemResponse{
		ID:                i.ID,
		ItemName:          i.ItemName,
		ItemID:            i.ItemID,
		Unit:              i.Unit,
		QuantityRequested: i.QuantityRequested,
		QuantityBought:    i.QuantityBought,
		PriceNet:          i.PriceNet,
		PriceGross:        i.PriceGross,
		VATPercent:        i.VATPercent,
		IsBought:          i.IsBought,
		SupplierID:        i.SupplierID,
	}
}

// UpdateItemInput carries a partial edit of one procurement line.
// Nil fields are left untouched. PriceGross wins over PriceNet when both
// are sent; the VAT change applies before any price change.
type UpdateItemInput struct {
	PriceNet       *decimal.Decimal
	PriceGross     *decimal.Decimal
	VATPercent     *decimal.Decimal
	IsBought       *bool
	QuantityBought *decimal.Decimal
	SupplierID     *uuid.UUID
	ClearSupplier  bool
}
