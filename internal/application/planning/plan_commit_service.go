package planning

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	appinv "github.com/restaurant/backend/internal/application/inventory"
	"github.com/restaurant/backend/internal/domain/catalog"
	"github.com/restaurant/backend/internal/domain/inventory"
	"github.com/restaurant/backend/internal/domain/menuplan"
	"github.com/restaurant/backend/internal/domain/recipe"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PlanCommitService validates and commits the daily menu plan. A commit
// replaces the date's plan wholesale and draws the recipe-implied stock in
// the same database transaction, so either both happen or neither does.
//
// Committing the same date twice deducts stock twice; callers are expected
// to commit a date once. There is no per-date lock against concurrent
// commits either.
type PlanCommitService struct {
	planRepo    menuplan.Repository
	recipeRepo  recipe.Repository
	productRepo catalog.ProductRepository
	itemRepo    inventory.InventoryItemRepository
	batchRepo   inventory.InventoryBatchRepository
	scope       appinv.TransactionScope
}

// NewPlanCommitService creates a new PlanCommitService
func NewPlanCommitService(
	planRepo menuplan.Repository,
	recipeRepo recipe.Repository,
	productRepo catalog.ProductRepository,
	itemRepo inventory.InventoryItemRepository,
	batchRepo inventory.InventoryBatchRepository,
	scope appinv.TransactionScope,
) *PlanCommitService {
	return &PlanCommitService{
		planRepo:    planRepo,
		recipeRepo:  recipeRepo,
		productRepo: productRepo,
		itemRepo:    itemRepo,
		batchRepo:   batchRepo,
		scope:       scope,
	}
}

// productDraw is one product's share of the ingredient draw
type productDraw struct {
	productID   uuid.UUID
	productName string
	required    map[uuid.UUID]decimal.Decimal
}

// CommitPlan validates the selections, checks stock coverage and then
// atomically replaces the date's plan and draws the required stock.
//
// Validation order is fixed: portion completeness first, then recipe
// presence, then stock coverage. A shortage is refused with shortage
// details unless ConfirmShortage is set, in which case batches are drawn
// negative.
func (s *PlanCommitService) CommitPlan(ctx context.Context, input CommitPlanInput) ([]PlanEntryResponse, error) {
	if len(input.Selections) == 0 {
		return nil, shared.ErrInvalidInput.WithDetails("a plan needs at least one product")
	}

	products, err := s.loadProducts(ctx, input.Selections)
	if err != nil {
		return nil, err
	}

	if err := s.checkPortions(input.Selections, products); err != nil {
		return nil, err
	}

	draws, err := s.resolveDraws(ctx, input.Selections, products)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, d := range draws {
		for itemID, qty := range d.required {
			totals[itemID] = totals[itemID].Add(qty)
		}
	}

	if !input.ConfirmShortage {
		if err := s.checkCoverage(ctx, totals); err != nil {
			return nil, err
		}
	}

	entries := make([]menuplan.DailyMenuPlanEntry, 0, len(input.Selections))
	for _, sel := range input.Selections {
		entry, err := menuplan.NewDailyMenuPlanEntry(input.Date, sel.ProductID, sel.Portions)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	dateLabel := input.Date.Format("2006-01-02")
	err = s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		for _, d := range draws {
			reason := fmt.Sprintf("daily plan %s %s", dateLabel, d.productName)
			for _, itemID := range sortedItemIDs(d.required) {
				qty := d.required[itemID]
				tx, err := inventory.NewInventoryTransaction(inventory.TransactionTypeOut, itemID, qty, reason, input.Operator)
				if err != nil {
					return err
				}
				if err := appinv.ApplyMovement(ctx, repos.BatchRepo(), tx); err != nil {
					return err
				}
				if err := repos.TransactionRepo().Append(ctx, tx); err != nil {
					return err
				}
			}
		}
		return repos.PlanRepo().ReplaceForDate(ctx, input.Date, entries)
	})
	if err != nil {
		return nil, err
	}

	responses := make([]PlanEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToPlanEntryResponse(&entries[i]))
	}
	return responses, nil
}

// loadProducts resolves every selected product, refusing duplicates and
// unknown products.
func (s *PlanCommitService) loadProducts(ctx context.Context, selections []PlanRow) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(selections))
	seen := make(map[uuid.UUID]bool, len(selections))
	for _, sel := range selections {
		if seen[sel.ProductID] {
			return nil, shared.ErrInvalidInput.WithDetails("product appears more than once in the plan")
		}
		seen[sel.ProductID] = true
		ids = append(ids, sel.ProductID)
	}

	found, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		products[found[i].ID] = &found[i]
	}
	for _, id := range ids {
		if products[id] == nil {
			return nil, shared.ErrNotFound.WithDetails("unknown product " + id.String())
		}
	}
	return products, nil
}

// checkPortions refuses the commit when any selection has a missing or
// non-positive portion count, naming the offending products.
func (s *PlanCommitService) checkPortions(selections []PlanRow, products map[uuid.UUID]*catalog.Product) error {
	var offenders []string
	for _, sel := range selections {
		if sel.Portions == nil || *sel.Portions <= 0 {
			offenders = append(offenders, products[sel.ProductID].Name)
		}
	}
	if len(offenders) > 0 {
		sort.Strings(offenders)
		return shared.ErrIncompletePortions.WithDetails(offenders)
	}
	return nil
}

// resolveDraws expands each selection through its recipe. A single missing
// recipe refuses the whole commit.
func (s *PlanCommitService) resolveDraws(ctx context.Context, selections []PlanRow, products map[uuid.UUID]*catalog.Product) ([]productDraw, error) {
	ids := make([]uuid.UUID, 0, len(selections))
	for _, sel := range selections {
		ids = append(ids, sel.ProductID)
	}
	recipes, err := s.recipeRepo.FindByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, sel := range selections {
		if recipes[sel.ProductID] == nil {
			missing = append(missing, products[sel.ProductID].Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, shared.ErrMissingRecipe.WithDetails(missing)
	}

	draws := make([]productDraw, 0, len(selections))
	for _, sel := range selections {
		r := recipes[sel.ProductID]
		portions := decimal.NewFromInt(int64(*sel.Portions))
		draws = append(draws, productDraw{
			productID:   sel.ProductID,
			productName: products[sel.ProductID].Name,
			required:    r.RequiredFor(portions),
		})
	}
	return draws, nil
}

// checkCoverage compares the aggregated draw against available stock and
// refuses with shortage details when anything is short.
func (s *PlanCommitService) checkCoverage(ctx context.Context, totals map[uuid.UUID]decimal.Decimal) error {
	if len(totals) == 0 {
		return nil
	}
	itemIDs := sortedItemIDs(totals)
	available, err := s.batchRepo.SumAvailableByItems(ctx, itemIDs)
	if err != nil {
		return err
	}
	items, err := s.itemRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return err
	}
	names := make(map[uuid.UUID]string, len(items))
	for i := range items {
		names[items[i].ID] = items[i].Name
	}

	var shortages []ShortageDetail
	for _, itemID := range itemIDs {
		required := totals[itemID]
		stock := available[itemID]
		if stock.LessThan(required) {
			shortages = append(shortages, ShortageDetail{
				ItemID:    itemID,
				Name:      names[itemID],
				Required:  required,
				Available: stock,
			})
		}
	}
	if len(shortages) > 0 {
		return shared.ErrInsufficientStock.WithDetails(shortages)
	}
	return nil
}

// GetPlan returns the committed entries for a date
func (s *PlanCommitService) GetPlan(ctx context.Context, date time.Time) ([]PlanEntryResponse, error) {
	entries, err := s.planRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	responses := make([]PlanEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToPlanEntryResponse(&entries[i]))
	}
	return responses, nil
}

// ListPlans returns the committed entries in a date range
func (s *PlanCommitService) ListPlans(ctx context.Context, from, to time.Time) ([]PlanEntryResponse, error) {
	if to.Before(from) {
		return nil, shared.ErrInvalidInput.WithDetails("date_to cannot precede date_from")
	}
	entries, err := s.planRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	responses := make([]PlanEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToPlanEntryResponse(&entries[i]))
	}
	return responses, nil
}

// sortedItemIDs returns the map keys in a stable order so ledger rows and
// batch writes happen deterministically.
func sortedItemIDs(m map[uuid.UUID]decimal.Decimal) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
