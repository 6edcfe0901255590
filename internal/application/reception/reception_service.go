package reception

import (
	"context"

	"github.com/google/uuid"
	appinv "github.com/restaurant/backend/internal/application/inventory"
	"github.com/restaurant/backend/internal/domain/inventory"
	"github.com/restaurant/backend/internal/domain/partner"
	"github.com/restaurant/backend/internal/domain/reception"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/restaurant/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ReceptionService records goods receipts. A receipt and the batches it
// mints land in one database transaction; afterward the document is
// immutable and per-batch corrections go through the stock ledger.
type ReceptionService struct {
	receptionRepo reception.Repository
	supplierRepo  partner.SupplierRepository
	itemRepo      inventory.InventoryItemRepository
	scope         appinv.TransactionScope
}

// NewReceptionService creates a new ReceptionService
func NewReceptionService(
	receptionRepo reception.Repository,
	supplierRepo partner.SupplierRepository,
	itemRepo inventory.InventoryItemRepository,
	scope appinv.TransactionScope,
) *ReceptionService {
	return &ReceptionService{
		receptionRepo: receptionRepo,
		supplierRepo:  supplierRepo,
		itemRepo:      itemRepo,
		scope:         scope,
	}
}

// RecordReception validates the document and its lines, then atomically
// writes the header, mints one batch per line and appends matching IN
// ledger rows. Line prices normalize to net through the VAT rate; the
// document total is the sum of the line gross totals.
func (s *ReceptionService) RecordReception(ctx context.Context, input RecordReceptionInput) (*ReceptionResponse, error) {
	if len(input.Lines) == 0 {
		return nil, shared.ErrInvalidInput.WithDetails("a reception needs at least one line")
	}

	exists, err := s.supplierRepo.Exists(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound.WithDetails("unknown supplier " + input.SupplierID.String())
	}

	rec, err := reception.NewReception(
		input.SupplierID,
		input.DocumentType,
		input.DocumentNumber,
		input.DocumentDate,
		input.IntakeDate,
		input.OperatorName,
	)
	if err != nil {
		return nil, err
	}

	if err := s.validateLineItems(ctx, input.Lines); err != nil {
		return nil, err
	}

	batches := make([]inventory.InventoryBatch, 0, len(input.Lines))
	ledger := make([]inventory.InventoryTransaction, 0, len(input.Lines))
	for _, line := range input.Lines {
		net, gross, err := normalizePrices(line)
		if err != nil {
			return nil, err
		}
		batch, err := inventory.NewInventoryBatch(
			line.ItemID,
			line.Quantity,
			net,
			line.VATPercent,
			line.ExpirationDate,
			line.LocationID,
		)
		if err != nil {
			return nil, err
		}
		batch.WithReception(rec.ID)
		batches = append(batches, *batch)

		tx, err := inventory.NewInventoryTransaction(
			inventory.TransactionTypeIn,
			line.ItemID,
			line.Quantity,
			"reception "+input.DocumentNumber,
			input.OperatorName,
		)
		if err != nil {
			return nil, err
		}
		ledger = append(ledger, *tx)

		rec.AddLineValue(line.Quantity.Mul(gross))
	}

	err = s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if err := repos.ReceptionRepo().Save(ctx, rec); err != nil {
			return err
		}
		if err := repos.BatchRepo().SaveAll(ctx, batches); err != nil {
			return err
		}
		return repos.TransactionRepo().AppendAll(ctx, ledger)
	})
	if err != nil {
		return nil, err
	}

	resp := ToReceptionResponse(rec)
	return &resp, nil
}

// normalizePrices derives the (net, gross) unit price pair from whichever
// side the caller provided.
func normalizePrices(line ReceptionLineInput) (net, gross decimal.Decimal, err error) {
	rate, err := valueobject.NewVATRate(line.VATPercent)
	if err != nil {
		return decimal.Zero, decimal.Zero, shared.ErrInvalidInput.WithDetails("vat percent cannot be negative")
	}
	switch {
	case line.PriceNet != nil && line.PriceGross != nil:
		return decimal.Zero, decimal.Zero, shared.ErrInvalidInput.WithDetails("a line carries either a net or a gross price, not both")
	case line.PriceNet != nil:
		if line.PriceNet.IsNegative() {
			return decimal.Zero, decimal.Zero, shared.ErrInvalidInput.WithDetails("price cannot be negative")
		}
		return *line.PriceNet, rate.NetToGross(*line.PriceNet), nil
	case line.PriceGross != nil:
		if line.PriceGross.IsNegative() {
			return decimal.Zero, decimal.Zero, shared.ErrInvalidInput.WithDetails("price cannot be negative")
		}
		return rate.GrossToNet(*line.PriceGross), *line.PriceGross, nil
	default:
		return decimal.Zero, decimal.Zero, shared.ErrInvalidInput.WithDetails("a line needs a net or a gross price")
	}
}

// validateLineItems checks that every received item exists in the catalog
func (s *ReceptionService) validateLineItems(ctx context.Context, lines []ReceptionLineInput) error {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ItemID)
	}
	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]bool, len(items))
	for i := range items {
		known[items[i].ID] = true
	}
	for _, l := range lines {
		if !known[l.ItemID] {
			return shared.ErrNotFound.WithDetails("unknown inventory item " + l.ItemID.String())
		}
	}
	return nil
}

// GetReception returns one goods receipt
func (s *ReceptionService) GetReception(ctx context.Context, id uuid.UUID) (*ReceptionResponse, error) {
	rec, err := s.receptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToReceptionResponse(rec)
	return &resp, nil
}

// ListReceptions returns receipts matching the filter, newest intake first
func (s *ReceptionService) ListReceptions(ctx context.Context, filter shared.Filter) ([]ReceptionResponse, int64, error) {
	recs, err := s.receptionRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.receptionRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ReceptionResponse, 0, len(recs))
	for i := range recs {
		responses = append(responses, ToReceptionResponse(&recs[i]))
	}
	return responses, total, nil
}

// ListBySupplier returns receipts for one supplier
func (s *ReceptionService) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]ReceptionResponse, error) {
	recs, err := s.receptionRepo.FindBySupplier(ctx, supplierID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ReceptionResponse, 0, len(recs))
	for i := range recs {
		responses = append(responses, ToReceptionResponse(&recs[i]))
	}
	return responses, nil
}

// ListSuppliers returns the supplier directory
func (s *ReceptionService) ListSuppliers(ctx context.Context, filter shared.Filter) ([]SupplierResponse, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return responses, nil
}
