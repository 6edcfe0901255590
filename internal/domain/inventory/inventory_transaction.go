package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a stock movement
type TransactionType string

const (
	// TransactionTypeIn represents stock entering the ledger (reception, correction)
	TransactionTypeIn TransactionType = "IN"
	// TransactionTypeOut represents stock leaving the ledger (production draw, waste)
	TransactionTypeOut TransactionType = "OUT"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIn || t == TransactionTypeOut
}

// InventoryTransaction is the append-only audit trail of stock movement.
// Rows are never updated or deleted. Batches remain authoritative for the
// current position; transactions must reconcile with batch deltas.
type InventoryTransaction struct {
	shared.BaseEntity
	Type            TransactionType `gorm:"type:varchar(10);not null;index"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"` // positive magnitude, direction from Type
	Reason          string          `gorm:"type:varchar(255);not null"`
	Operator        string          `gorm:"type:varchar(255);not null"`
	TransactionDate time.Time       `gorm:"type:timestamptz;not null;index"`
}

// TableName returns the table name for GORM
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// NewInventoryTransaction creates a new ledger row
func NewInventoryTransaction(
	txType TransactionType,
	itemID uuid.UUID,
	quantity decimal.Decimal,
	reason string,
	operator string,
) (*InventoryTransaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Movement reason is required")
	}
	if operator == "" {
		operator = "system"
	}
	return &InventoryTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		Type:            txType,
		ItemID:          itemID,
		Quantity:        quantity,
		Reason:          reason,
		Operator:        operator,
		TransactionDate: time.Now(),
	}, nil
}

// SignedQuantity returns the quantity with direction applied
func (t *InventoryTransaction) SignedQuantity() decimal.Decimal {
	if t.Type == TransactionTypeOut {
		return t.Quantity.Neg()
	}
	return t.Quantity
}
