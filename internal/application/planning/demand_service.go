package planning

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/catalog"
	"github.com/restaurant/backend/internal/domain/inventory"
	"github.com/restaurant/backend/internal/domain/menuplan"
	"github.com/restaurant/backend/internal/domain/recipe"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DemandService aggregates planned portions into per-ingredient demand and
// compares it against current stock. It only reads; committing a plan and
// drawing stock is PlanCommitService's job.
type DemandService struct {
	planRepo    menuplan.Repository
	recipeRepo  recipe.Repository
	productRepo catalog.ProductRepository
	itemRepo    inventory.InventoryItemRepository
	batchRepo   inventory.InventoryBatchRepository
}

// NewDemandService creates a new DemandService
func NewDemandService(
	planRepo menuplan.Repository,
	recipeRepo recipe.Repository,
	productRepo catalog.ProductRepository,
	itemRepo inventory.InventoryItemRepository,
	batchRepo inventory.InventoryBatchRepository,
) *DemandService {
	return &DemandService{
		planRepo:    planRepo,
		recipeRepo:  recipeRepo,
		productRepo: productRepo,
		itemRepo:    itemRepo,
		batchRepo:   batchRepo,
	}
}

// CalculateNeeds expands the selected plan rows through their recipes,
// sums the ingredient demand and joins stock and price metadata. Products
// without a recipe are skipped; nil or zero portions contribute nothing.
// An empty plan yields an empty result, not an error.
func (s *DemandService) CalculateNeeds(ctx context.Context, query NeedsQuery) ([]ShortfallRow, error) {
	rows, err := s.resolvePlanRows(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []ShortfallRow{}, nil
	}

	if query.CategoryFilter != "" {
		rows, err = s.filterByCategory(ctx, rows, query.CategoryFilter)
		if err != nil {
			return nil, err
		}
	}

	required, err := s.aggregateDemand(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(required) == 0 {
		return []ShortfallRow{}, nil
	}

	return s.buildShortfall(ctx, required, query.ShortfallOnly)
}

// resolvePlanRows returns the explicit override rows when given, otherwise
// the committed plan entries in the date range.
func (s *DemandService) resolvePlanRows(ctx context.Context, query NeedsQuery) ([]PlanRow, error) {
	if len(query.Rows) > 0 {
		return query.Rows, nil
	}
	if query.DateFrom == nil || query.DateTo == nil {
		return nil, shared.ErrInvalidInput.WithDetails("either explicit rows or a date range is required")
	}
	if query.DateTo.Before(*query.DateFrom) {
		return nil, shared.ErrInvalidInput.WithDetails("date_to cannot precede date_from")
	}

	entries, err := s.planRepo.FindByDateRange(ctx, *query.DateFrom, *query.DateTo)
	if err != nil {
		return nil, err
	}
	rows := make([]PlanRow, 0, len(entries))
	for i := range entries {
		rows = append(rows, PlanRow{ProductID: entries[i].ProductID, Portions: entries[i].Portions})
	}
	return rows, nil
}

// filterByCategory keeps only rows whose product belongs to the category
func (s *DemandService) filterByCategory(ctx context.Context, rows []PlanRow, category string) ([]PlanRow, error) {
	products, err := s.productRepo.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	inCategory := make(map[uuid.UUID]bool, len(products))
	for i := range products {
		inCategory[products[i].ID] = true
	}
	filtered := make([]PlanRow, 0, len(rows))
	for _, r := range rows {
		if inCategory[r.ProductID] {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// aggregateDemand sums ingredient draw over all rows. The same product may
// appear more than once (multi-date ranges); its portions accumulate.
func (s *DemandService) aggregateDemand(ctx context.Context, rows []PlanRow) (map[uuid.UUID]decimal.Decimal, error) {
	productIDs := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]bool, len(rows))
	for _, r := range rows {
		if !seen[r.ProductID] {
			seen[r.ProductID] = true
			productIDs = append(productIDs, r.ProductID)
		}
	}

	recipes, err := s.recipeRepo.FindByProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	required := make(map[uuid.UUID]decimal.Decimal)
	for _, row := range rows {
		r, ok := recipes[row.ProductID]
		if !ok {
			continue // no recipe, not plannable, skip silently
		}
		portions := 0
		if row.Portions != nil {
			portions = *row.Portions
		}
		for itemID, qty := range r.RequiredFor(decimal.NewFromInt(int64(portions))) {
			required[itemID] = required[itemID].Add(qty)
		}
	}
	return required, nil
}

// buildShortfall joins the aggregated demand with item metadata, available
// stock and the representative purchase price.
func (s *DemandService) buildShortfall(ctx context.Context, required map[uuid.UUID]decimal.Decimal, shortfallOnly bool) ([]ShortfallRow, error) {
	itemIDs := make([]uuid.UUID, 0, len(required))
	for id := range required {
		itemIDs = append(itemIDs, id)
	}

	items, err := s.itemRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	stock, err := s.batchRepo.SumAvailableByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	latest, err := s.batchRepo.FindLatestByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]ShortfallRow, 0, len(items))
	for i := range items {
		item := &items[i]
		req := required[item.ID]
		available := stock[item.ID]
		toBuy := req.Sub(available)
		if toBuy.IsNegative() {
			toBuy = decimal.Zero
		}
		if shortfallOnly && toBuy.IsZero() {
			continue
		}
		price := decimal.Zero
		if b := latest[item.ID]; b != nil {
			price = b.PurchasePrice
		}
		rows = append(rows, ShortfallRow{
			ItemID:        item.ID,
			ItemName:      item.Name,
			Unit:          item.Unit,
			Required:      req,
			Stock:         available,
			ToBuy:         toBuy,
			PurchasePrice: price,
			VATPercent:    item.VATPercent,
			EstimatedCost: toBuy.Mul(price),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ItemName != rows[j].ItemName {
			return rows[i].ItemName < rows[j].ItemName
		}
		return rows[i].ItemID.String() < rows[j].ItemID.String()
	})
	return rows, nil
}

// NeedsForDate is a convenience wrapper for a single committed date
func (s *DemandService) NeedsForDate(ctx context.Context, date time.Time, shortfallOnly bool) ([]ShortfallRow, error) {
	return s.CalculateNeeds(ctx, NeedsQuery{
		DateFrom:      &date,
		DateTo:        &date,
		ShortfallOnly: shortfallOnly,
	})
}
