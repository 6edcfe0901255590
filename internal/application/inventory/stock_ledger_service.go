package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/inventory"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockLedgerService owns inventory items, their batches and the
// append-only movement ledger. Movements are recorded at the item level:
// the delta lands on the most recent batch rather than being allocated to
// specific lots, so the ledger and the batch table always reconcile.
type StockLedgerService struct {
	itemRepo  inventory.InventoryItemRepository
	batchRepo inventory.InventoryBatchRepository
	txRepo    inventory.InventoryTransactionRepository
	scope     TransactionScope
}

// NewStockLedgerService creates a new StockLedgerService
func NewStockLedgerService(
	itemRepo inventory.InventoryItemRepository,
	batchRepo inventory.InventoryBatchRepository,
	txRepo inventory.InventoryTransactionRepository,
	scope TransactionScope,
) *StockLedgerService {
	return &StockLedgerService{
		itemRepo:  itemRepo,
		batchRepo: batchRepo,
		txRepo:    txRepo,
		scope:     scope,
	}
}

// CreateItemInput carries the fields for a new inventory item
type CreateItemInput struct {
	Name       string
	Unit       string
	VATPercent decimal.Decimal
}

// CreateItem adds a new entry to the ingredient catalog
func (s *StockLedgerService) CreateItem(ctx context.Context, input CreateItemInput) (*ItemResponse, error) {
	item, err := inventory.NewInventoryItem(input.Name, input.Unit, input.VATPercent)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// UpdateItem changes an item's mutable metadata
func (s *StockLedgerService) UpdateItem(ctx context.Context, id uuid.UUID, input CreateItemInput) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.UpdateMetadata(input.Name, input.Unit, input.VATPercent); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// GetItem retrieves a single item
func (s *StockLedgerService) GetItem(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// ListItems retrieves items matching the filter
func (s *StockLedgerService) ListItems(ctx context.Context, filter shared.Filter) ([]ItemResponse, int64, error) {
	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToItemResponse(&items[i]))
	}
	return responses, total, nil
}

// AvailableQuantities returns stock per item. The default view sums only
// positive batch quantities, which is what planning compares against;
// includeNegative switches to the net position so overdrawn items are
// visible for what they are.
func (s *StockLedgerService) AvailableQuantities(ctx context.Context, itemIDs []uuid.UUID, includeNegative bool) (map[uuid.UUID]decimal.Decimal, error) {
	if len(itemIDs) == 0 {
		return map[uuid.UUID]decimal.Decimal{}, nil
	}
	if includeNegative {
		return s.batchRepo.SumNetByItems(ctx, itemIDs)
	}
	return s.batchRepo.SumAvailableByItems(ctx, itemIDs)
}

// RecordMovementInput carries one manual stock movement
type RecordMovementInput struct {
	Type     inventory.TransactionType
	ItemID   uuid.UUID
	Quantity decimal.Decimal
	Reason   string
	Operator string
}

// RecordMovement appends a ledger transaction and applies the matching
// delta to the batch table. An inbound movement mints an adjustment batch
// priced at the item's last known purchase price; an outbound movement
// draws down the most recent batch and may push it negative.
func (s *StockLedgerService) RecordMovement(ctx context.Context, input RecordMovementInput) (*TransactionResponse, error) {
	tx, err := inventory.NewInventoryTransaction(input.Type, input.ItemID, input.Quantity, input.Reason, input.Operator)
	if err != nil {
		return nil, err
	}
	if _, err := s.itemRepo.FindByID(ctx, input.ItemID); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := ApplyMovement(ctx, repos.BatchRepo(), tx); err != nil {
			return err
		}
		return repos.TransactionRepo().Append(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// ApplyMovement applies one ledger row's delta to the batch table. The plan
// commit path calls it too, so both write stock identically.
func ApplyMovement(ctx context.Context, batchRepo inventory.InventoryBatchRepository, tx *inventory.InventoryTransaction) error {
	latest, err := batchRepo.FindLatestByItem(ctx, tx.ItemID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	if tx.Type == inventory.TransactionTypeIn {
		price := decimal.Zero
		if latest != nil {
			price = latest.PurchasePrice
		}
		batch, err := inventory.NewInventoryBatch(tx.ItemID, tx.Quantity, price, decimal.Zero, nil, nil)
		if err != nil {
			return err
		}
		return batchRepo.Save(ctx, batch)
	}

	// Outbound with no batch history still needs somewhere to land so the
	// net position goes negative; mint an empty batch and draw it down.
	if latest == nil {
		empty, err := inventory.NewInventoryBatch(tx.ItemID, tx.Quantity, decimal.Zero, decimal.Zero, nil, nil)
		if err != nil {
			return err
		}
		empty.InitialQuantity = decimal.Zero
		empty.Quantity = decimal.Zero
		latest = empty
	}
	if err := latest.Apply(tx.Quantity.Neg()); err != nil {
		return err
	}
	return batchRepo.Save(ctx, latest)
}

// CorrectBatch adjusts a received batch's quantity and net price after the
// fact. The remaining quantity shifts by the initial-quantity delta and a
// reconciling ledger row is appended; VAT is never touched.
func (s *StockLedgerService) CorrectBatch(ctx context.Context, batchID uuid.UUID, newInitialQuantity, newPrice decimal.Decimal, operator string) (*BatchResponse, error) {
	if newInitialQuantity.IsNegative() || newPrice.IsNegative() {
		return nil, shared.ErrInvalidInput.WithDetails("corrected quantity and price must be non-negative")
	}

	var corrected *inventory.InventoryBatch
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByID(ctx, batchID)
		if err != nil {
			return err
		}
		delta := newInitialQuantity.Sub(batch.InitialQuantity)
		if err := batch.Correct(newInitialQuantity, newPrice); err != nil {
			return err
		}
		if err := repos.BatchRepo().Save(ctx, batch); err != nil {
			return err
		}
		corrected = batch

		if delta.IsZero() {
			return nil
		}
		txType := inventory.TransactionTypeIn
		if delta.IsNegative() {
			txType = inventory.TransactionTypeOut
		}
		reason := fmt.Sprintf("batch correction %s", batch.ID)
		tx, err := inventory.NewInventoryTransaction(txType, batch.ItemID, delta.Abs(), reason, operator)
		if err != nil {
			return err
		}
		return repos.TransactionRepo().Append(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	resp := ToBatchResponse(corrected)
	return &resp, nil
}

// ListBatches retrieves all batches for an item, newest first
func (s *StockLedgerService) ListBatches(ctx context.Context, itemID uuid.UUID) ([]BatchResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return nil, err
	}
	batches, err := s.batchRepo.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	responses := make([]BatchResponse, 0, len(batches))
	for i := range batches {
		responses = append(responses, ToBatchResponse(&batches[i]))
	}
	return responses, nil
}

// ListTransactions retrieves ledger rows matching the filter
func (s *StockLedgerService) ListTransactions(ctx context.Context, filter shared.Filter) ([]TransactionResponse, int64, error) {
	txs, err := s.txRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		responses = append(responses, ToTransactionResponse(&txs[i]))
	}
	return responses, total, nil
}

// ExpiringBatches reports batches with stock expiring within the given days
func (s *StockLedgerService) ExpiringBatches(ctx context.Context, withinDays int) ([]BatchResponse, error) {
	batches, err := s.batchRepo.FindExpiringWithin(ctx, withinDays)
	if err != nil {
		return nil, err
	}
	responses := make([]BatchResponse, 0, len(batches))
	for i := range batches {
		responses = append(responses, ToBatchResponse(&batches[i]))
	}
	return responses, nil
}
