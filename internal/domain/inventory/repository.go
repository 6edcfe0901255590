package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryItemRepository defines the interface for inventory item persistence
type InventoryItemRepository interface {
	// FindByID finds an inventory item by its ID (metadata only)
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByIDWithBatches finds an item with its batches preloaded
	FindByIDWithBatches(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByIDs finds multiple items by their IDs (metadata only)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]InventoryItem, error)

	// FindAll finds all items matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)

	// Save creates or updates an inventory item
	Save(ctx context.Context, item *InventoryItem) error

	// Delete deletes an inventory item
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// InventoryBatchRepository defines the interface for batch persistence
type InventoryBatchRepository interface {
	// FindByID finds a batch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryBatch, error)

	// FindByItem finds all batches for an item, newest first
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]InventoryBatch, error)

	// FindLatestByItem finds the most recent batch for an item, ties broken
	// by highest batch ID. Returns shared.ErrNotFound if the item has none.
	FindLatestByItem(ctx context.Context, itemID uuid.UUID) (*InventoryBatch, error)

	// FindLatestByItems finds the most recent batch per item
	FindLatestByItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*InventoryBatch, error)

	// FindExpiringWithin finds batches with stock expiring within the given days
	FindExpiringWithin(ctx context.Context, days int) ([]InventoryBatch, error)

	// SumAvailableByItems sums positive batch quantities per item
	SumAvailableByItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)

	// SumNetByItems sums all batch quantities per item, negatives included
	SumNetByItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)

	// Save creates or updates a batch
	Save(ctx context.Context, batch *InventoryBatch) error

	// SaveAll creates or updates multiple batches
	SaveAll(ctx context.Context, batches []InventoryBatch) error
}

// InventoryTransactionRepository defines the append-only ledger persistence.
// There are intentionally no update or delete operations.
type InventoryTransactionRepository interface {
	// Append adds a new transaction row
	Append(ctx context.Context, tx *InventoryTransaction) error

	// AppendAll adds multiple transaction rows
	AppendAll(ctx context.Context, txs []InventoryTransaction) error

	// FindByItem finds transactions for an item, newest first
	FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]InventoryTransaction, error)

	// FindAll finds transactions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryTransaction, error)

	// Count counts transactions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StorageLocationRepository defines read access to storage locations
type StorageLocationRepository interface {
	// FindByID finds a location by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StorageLocation, error)

	// FindAll finds all locations
	FindAll(ctx context.Context, filter shared.Filter) ([]StorageLocation, error)
}
