package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ItemResponse is the API view of an inventory item
type ItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	VATPercent decimal.Decimal `json:"vat_percent"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToItemResponse maps a domain item to its response
func ToItemResponse(item *inventory.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:         item.ID,
		Name:       item.Name,
		Unit:       item.Unit,
		VATPercent: item.VATPercent,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

// BatchResponse is the API view of an inventory batch
type BatchResponse struct {
	ID              uuid.UUID       `json:"id"`
	ItemID          uuid.UUID       `json:"item_id"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	Quantity        decimal.Decimal `json:"quantity"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	GrossPrice      decimal.Decimal `json:"gross_price"`
	VATPercent      decimal.Decimal `json:"vat_percent"`
	ExpirationDate  *time.Time      `json:"expiration_date,omitempty"`
	LocationID      *uuid.UUID      `json:"location_id,omitempty"`
	ReceptionID     *uuid.UUID      `json:"reception_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToBatchResponse maps a domain batch to its response
func ToBatchResponse(b *inventory.InventoryBatch) BatchResponse {
	return BatchResponse{
		ID:              b.ID,
		ItemID:          b.ItemID,
		InitialQuantity: b.InitialQuantity,
		Quantity:        b.Quantity,
		PurchasePrice:   b.PurchasePrice,
		GrossPrice:      b.GrossPrice(),
		VATPercent:      b.VATPercent,
		ExpirationDate:  b.ExpirationDate,
		LocationID:      b.LocationID,
		ReceptionID:     b.ReceptionID,
		CreatedAt:       b.CreatedAt,
	}
}

// TransactionResponse is the API view of a ledger row
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	Type            string          `json:"type"`
	ItemID          uuid.UUID       `json:"item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Reason          string          `json:"reason"`
	Operator        string          `json:"operator"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// ToTransactionResponse maps a domain transaction to its response
func ToTransactionResponse(tx *inventory.InventoryTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		Type:            tx.Type.String(),
		ItemID:          tx.ItemID,
		Quantity:        tx.Quantity,
		Reason:          tx.Reason,
		Operator:        tx.Operator,
		TransactionDate: tx.TransactionDate,
	}
}

// AvailabilityRow reports one item's stock position
type AvailabilityRow struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}
