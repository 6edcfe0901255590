package planning

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/catalog"
	"github.com/restaurant/backend/internal/domain/inventory"
	"github.com/restaurant/backend/internal/domain/menuplan"
	"github.com/restaurant/backend/internal/domain/recipe"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type demandFixture struct {
	svc         *DemandService
	planRepo    *MockPlanRepository
	recipeRepo  *MockRecipeRepository
	productRepo *MockProductRepository
	itemRepo    *MockItemRepository
	batchRepo   *MockBatchRepository
}

func newDemandFixture(t *testing.T) *demandFixture {
	t.Helper()
	f := &demandFixture{
		planRepo:    new(MockPlanRepository),
		recipeRepo:  new(MockRecipeRepository),
		productRepo: new(MockProductRepository),
		itemRepo:    new(MockItemRepository),
		batchRepo:   new(MockBatchRepository),
	}
	f.svc = NewDemandService(f.planRepo, f.recipeRepo, f.productRepo, f.itemRepo, f.batchRepo)
	return f
}

func mustRecipe(t *testing.T, productID uuid.UUID, lines ...recipe.LineInput) *recipe.Recipe {
	t.Helper()
	r, err := recipe.NewRecipe(productID, "")
	require.NoError(t, err)
	require.NoError(t, r.SetLines(lines))
	return r
}

func mustItem(t *testing.T, name, unit string, vat int64) *inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem(name, unit, decimal.NewFromInt(vat))
	require.NoError(t, err)
	return item
}

func mustBatch(t *testing.T, itemID uuid.UUID, qty, price float64) *inventory.InventoryBatch {
	t.Helper()
	b, err := inventory.NewInventoryBatch(itemID, decimal.NewFromFloat(qty), decimal.NewFromFloat(price), decimal.Zero, nil, nil)
	require.NoError(t, err)
	return b
}

func intPtr(n int) *int { return &n }

func TestDemandService_CalculateNeeds_Shortfall(t *testing.T) {
	f := newDemandFixture(t)

	sarmale := &catalog.Product{BaseEntity: shared.NewBaseEntity(), Name: "Sarmale", CategoryName: "catering"}
	varza := mustItem(t, "varza", "kg", 9)
	r := mustRecipe(t, sarmale.ID, recipe.LineInput{ItemID: varza.ID, QuantityPerPortion: decimal.NewFromFloat(0.3)})

	f.recipeRepo.On("FindByProducts", mock.Anything, []uuid.UUID{sarmale.ID}).
		Return(map[uuid.UUID]*recipe.Recipe{sarmale.ID: r}, nil)
	f.itemRepo.On("FindByIDs", mock.Anything, mock.Anything).
		Return([]inventory.InventoryItem{*varza}, nil)
	f.batchRepo.On("SumAvailableByItems", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]decimal.Decimal{varza.ID: decimal.NewFromInt(10)}, nil)
	f.batchRepo.On("FindLatestByItems", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*inventory.InventoryBatch{varza.ID: mustBatch(t, varza.ID, 10, 2.5)}, nil)

	rows, err := f.svc.CalculateNeeds(context.Background(), NeedsQuery{
		Rows: []PlanRow{{ProductID: sarmale.ID, Portions: intPtr(40)}},
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "varza", row.ItemName)
	assert.Equal(t, "kg", row.Unit)
	assert.True(t, row.Required.Equal(decimal.NewFromInt(12)), "required = %s", row.Required)
	assert.True(t, row.Stock.Equal(decimal.NewFromInt(10)))
	assert.True(t, row.ToBuy.Equal(decimal.NewFromInt(2)), "to_buy = %s", row.ToBuy)
	assert.True(t, row.PurchasePrice.Equal(decimal.NewFromFloat(2.5)))
	assert.True(t, row.EstimatedCost.Equal(decimal.NewFromInt(5)), "estimated_cost = %s", row.EstimatedCost)
}

func TestDemandService_CalculateNeeds_SurplusClampsToZero(t *testing.T) {
	f := newDemandFixture(t)

	productID := uuid.New()
	ulei := mustItem(t, "ulei", "l", 19)
	r := mustRecipe(t, productID, recipe.LineInput{ItemID: ulei.ID, QuantityPerPortion: decimal.NewFromFloat(0.05)})

	f.recipeRepo.On("FindByProducts", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*recipe.Recipe{productID: r}, nil)
	f.itemRepo.On("FindByIDs", mock.Anything, mock.Anything).
		Return([]inventory.InventoryItem{*ulei}, nil)
	f.batchRepo.On("SumAvailableByItems", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]decimal.Decimal{ulei.ID: decimal.NewFromInt(100)}, nil)
	f.batchRepo.On("FindLatestByItems", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*inventory.InventoryBatch{ulei.ID: mustBatch(t, ulei.ID, 100, 8)}, nil)

	rows, err := f.svc.CalculateNeeds(context.Background(), NeedsQuery{
		Rows: []PlanRow{{ProductID: productID, Portions: intPtr(10)}},
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ToBuy.IsZero())
	assert.True(t, rows[0].EstimatedCost.IsZero())

	// shortfall-only view drops the fully covered row
	rows, err = f.svc.CalculateNeeds(context.Background(), NeedsQuery{
		Rows:          []PlanRow{{ProductID: productID, Portions: intPtr(10)}},
		ShortfallOnly: true,
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDemandService_CalculateNeeds_SkipsRecipelessAndNilPortions(t *testing.T) {
	f := newDemandFixture(t)

	withRecipe := uuid.New()
	noRecipe := uuid.New()
	varza := mustItem(t, "varza", "kg", 9)
	r := mustRecipe(t, withRecipe, recipe.LineInput{ItemID: varza.ID, QuantityPerPortion: decimal.NewFromInt(1)})

	f.recipeRepo.On("FindByProducts", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*recipe.Recipe{withRecipe: r}, nil)
	f.itemRepo.On("FindByIDs", mock.Anything, mock.Anything).
		Return([]inventory.InventoryItem{*varza}, nil)
	f.batchRepo.On("SumAvailableByItems", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]decimal.Decimal{}, nil)
	f.batchRepo.On("FindLatestByItems", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*inventory.InventoryBatch{}, nil)

	rows, err := f.svc.CalculateNeeds(context.Background(), NeedsQuery{
		Rows: []PlanRow{
			{ProductID: withRecipe, Portions: intPtr(5)},
			{ProductID: noRecipe, Portions: intPtr(100)}, // silently excluded
			{ProductID: withRecipe, Portions: nil},       // contributes nothing
		},
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Required.Equal(decimal.NewFromInt(5)))
	// never received, so the price defaults to zero
	assert.True(t, rows[0].PurchasePrice.IsZero())
}

func TestDemandService_CalculateNeeds_DateRange(t *testing.T) {
	f := newDemandFixture(t)

	productID := uuid.New()
	varza := mustItem(t, "varza", "kg", 9)
	r := mustRecipe(t, productID, recipe.LineInput{ItemID: varza.ID, QuantityPerPortion: decimal.NewFromInt(2)})

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	day1, err := menuplan.NewDailyMenuPlanEntry(from, productID, intPtr(3))
	require.NoError(t, err)
	day2, err := menuplan.NewDailyMenuPlanEntry(to, productID, intPtr(4))
	require.NoError(t, err)

	f.planRepo.On("FindByDateRange", mock.Anything, from, to).
		Return([]menuplan.DailyMenuPlanEntry{*day1, *day2}, nil)
	f.recipeRepo.On("FindByProducts", mock.Anything, []uuid.UUID{productID}).
		Return(map[uuid.UUID]*recipe.Recipe{productID: r}, nil)
	f.itemRepo.On("FindByIDs", mock.Anything, mock.Anything).
		Return([]inventory.InventoryItem{*varza}, nil)
	f.batchRepo.On("SumAvailableByItems", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]decimal.Decimal{}, nil)
	f.batchRepo.On("FindLatestByItems", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*inventory.InventoryBatch{}, nil)

	rows, err := f.svc.CalculateNeeds(context.Background(), NeedsQuery{DateFrom: &from, DateTo: &to})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	// 3 + 4 portions across the two days, 2 kg each
	assert.True(t, rows[0].Required.Equal(decimal.NewFromInt(14)))
}

func TestDemandService_CalculateNeeds_CategoryFilter(t *testing.T) {
	f := newDemandFixture(t)

	catering := &catalog.Product{BaseEntity: shared.NewBaseEntity(), Name: "Sarmale", CategoryName: "catering"}
	delivery := uuid.New()
	varza := mustItem(t, "varza", "kg", 9)
	r := mustRecipe(t, catering.ID, recipe.LineInput{ItemID: varza.ID, QuantityPerPortion: decimal.NewFromInt(1)})

	f.productRepo.On("FindByCategory", mock.Anything, "catering").
		Return([]catalog.Product{*catering}, nil)
	f.recipeRepo.On("FindByProducts", mock.Anything, []uuid.UUID{catering.ID}).
		Return(map[uuid.UUID]*recipe.Recipe{catering.ID: r}, nil)
	f.itemRepo.On("FindByIDs", mock.Anything, mock.Anything).
		Return([]inventory.InventoryItem{*varza}, nil)
	f.batchRepo.On("SumAvailableByItems", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]decimal.Decimal{}, nil)
	f.batchRepo.On("FindLatestByItems", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*inventory.InventoryBatch{}, nil)

	rows, err := f.svc.CalculateNeeds(context.Background(), NeedsQuery{
		Rows: []PlanRow{
			{ProductID: catering.ID, Portions: intPtr(2)},
			{ProductID: delivery, Portions: intPtr(50)},
		},
		CategoryFilter: "catering",
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Required.Equal(decimal.NewFromInt(2)))
}

func TestDemandService_CalculateNeeds_EmptyPlan(t *testing.T) {
	f := newDemandFixture(t)

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	f.planRepo.On("FindByDateRange", mock.Anything, from, from).
		Return([]menuplan.DailyMenuPlanEntry{}, nil)

	rows, err := f.svc.CalculateNeeds(context.Background(), NeedsQuery{DateFrom: &from, DateTo: &from})

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDemandService_CalculateNeeds_RejectsMissingRange(t *testing.T) {
	f := newDemandFixture(t)

	_, err := f.svc.CalculateNeeds(context.Background(), NeedsQuery{})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestDemandService_CalculateNeeds_IsIdempotent(t *testing.T) {
	f := newDemandFixture(t)

	productID := uuid.New()
	varza := mustItem(t, "varza", "kg", 9)
	r := mustRecipe(t, productID, recipe.LineInput{ItemID: varza.ID, QuantityPerPortion: decimal.NewFromInt(1)})

	f.recipeRepo.On("FindByProducts", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*recipe.Recipe{productID: r}, nil)
	f.itemRepo.On("FindByIDs", mock.Anything, mock.Anything).
		Return([]inventory.InventoryItem{*varza}, nil)
	f.batchRepo.On("SumAvailableByItems", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]decimal.Decimal{varza.ID: decimal.NewFromInt(3)}, nil)
	f.batchRepo.On("FindLatestByItems", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*inventory.InventoryBatch{}, nil)

	query := NeedsQuery{Rows: []PlanRow{{ProductID: productID, Portions: intPtr(5)}}}

	first, err := f.svc.CalculateNeeds(context.Background(), query)
	require.NoError(t, err)
	second, err := f.svc.CalculateNeeds(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
