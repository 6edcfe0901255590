package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/application/planning"
	"github.com/restaurant/backend/internal/domain/partner"
	"github.com/restaurant/backend/internal/domain/procurement"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProcurementService drives the shopping list lifecycle from creation
// through in-store edits to the one-way finalize. Lists can also be seeded
// straight from a demand shortfall so the shopper starts from real numbers.
type ProcurementService struct {
	listRepo     procurement.Repository
	supplierRepo partner.SupplierRepository
}

// NewProcurementService creates a new ProcurementService
func NewProcurementService(listRepo procurement.Repository, supplierRepo partner.SupplierRepository) *ProcurementService {
	return &ProcurementService{
		listRepo:     listRepo,
		supplierRepo: supplierRepo,
	}
}

// CreateList opens a new empty shopping list
func (s *ProcurementService) CreateList(ctx context.Context, name, shopperName string) (*ListResponse, error) {
	list, err := procurement.NewProcurementList(name, shopperName)
	if err != nil {
		return nil, err
	}
	if err := s.listRepo.Save(ctx, list); err != nil {
		return nil, err
	}
	resp := ToListResponse(list)
	return &resp, nil
}

// GetList returns a list with its lines
func (s *ProcurementService) GetList(ctx context.Context, id uuid.UUID) (*ListResponse, error) {
	list, err := s.listRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToListResponse(list)
	return &resp, nil
}

// ListLists returns lists matching the filter
func (s *ProcurementService) ListLists(ctx context.Context, filter shared.Filter) ([]ListResponse, int64, error) {
	lists, err := s.listRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.listRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ListResponse, 0, len(lists))
	for i := range lists {
		responses = append(responses, ToListResponse(&lists[i]))
	}
	return responses, total, nil
}

// AddItem appends a line to an open list
func (s *ProcurementService) AddItem(ctx context.Context, listID uuid.UUID, input procurement.ItemInput) (*ItemResponse, error) {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	item, err := list.AddItem(input)
	if err != nil {
		return nil, err
	}
	if err := s.listRepo.Save(ctx, list); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// UpdateItem applies a partial edit to one line of an open list
func (s *ProcurementService) UpdateItem(ctx context.Context, listID, itemID uuid.UUID, input UpdateItemInput) (*ItemResponse, error) {
	if input.SupplierID != nil {
		exists, err := s.supplierRepo.Exists(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.ErrNotFound.WithDetails("unknown supplier " + input.SupplierID.String())
		}
	}

	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	err = list.UpdateItem(itemID, func(item *procurement.ProcurementItem) error {
		if input.VATPercent != nil {
			if err := item.SetVATPercent(*input.VATPercent); err != nil {
				return err
			}
		}
		switch {
		case input.PriceGross != nil:
			if err := item.SetGrossPrice(*input.PriceGross); err != nil {
				return err
			}
		case input.PriceNet != nil:
			if err := item.SetNetPrice(*input.PriceNet); err != nil {
				return err
			}
		}
		if input.IsBought != nil || input.QuantityBought != nil {
			bought := item.IsBought
			if input.IsBought != nil {
				bought = *input.IsBought
			}
			qty := item.QuantityBought
			if input.QuantityBought != nil {
				qty = *input.QuantityBought
			}
			if err := item.SetBought(bought, qty); err != nil {
				return err
			}
		}
		if input.ClearSupplier {
			item.SetSupplier(nil)
		} else if input.SupplierID != nil {
			item.SetSupplier(input.SupplierID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.listRepo.Save(ctx, list); err != nil {
		return nil, err
	}
	item, err := list.Item(itemID)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// RemoveItem drops a line from an open list
func (s *ProcurementService) RemoveItem(ctx context.Context, listID, itemID uuid.UUID) error {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return err
	}
	if err := list.RemoveItem(itemID); err != nil {
		return err
	}
	return s.listRepo.Save(ctx, list)
}

// Finalize closes a list irreversibly and freezes its totals
func (s *ProcurementService) Finalize(ctx context.Context, listID uuid.UUID) (*ListResponse, error) {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if err := list.Finalize(); err != nil {
		return nil, err
	}
	if err := s.listRepo.Save(ctx, list); err != nil {
		return nil, err
	}
	resp := ToListResponse(list)
	return &resp, nil
}

// GenerateFromShortfall seeds a new list from demand rows. Only rows with
// something to buy become lines, and quantities round up to whole units so
// the shopper never under-purchases.
func (s *ProcurementService) GenerateFromShortfall(ctx context.Context, name, shopperName string, rows []planning.ShortfallRow) (*ListResponse, error) {
	list, err := procurement.NewProcurementList(name, shopperName)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if !row.ToBuy.GreaterThan(decimal.Zero) {
			continue
		}
		itemID := row.ItemID
		item, err := list.AddItem(procurement.ItemInput{
			ItemName:          row.ItemName,
			ItemID:            &itemID,
			Unit:              row.Unit,
			QuantityRequested: row.ToBuy.Ceil(),
			VATPercent:        row.VATPercent,
		})
		if err != nil {
			return nil, err
		}
		if err := item.SetNetPrice(row.PurchasePrice); err != nil {
			return nil, err
		}
	}

	if err := s.listRepo.Save(ctx, list); err != nil {
		return nil, err
	}
	resp := ToListResponse(list)
	return &resp, nil
}
