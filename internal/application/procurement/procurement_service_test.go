package procurement

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/application/planning"
	"github.com/restaurant/backend/internal/domain/partner"
	"github.com/restaurant/backend/internal/domain/procurement"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockListRepository is a mock implementation of procurement.Repository
type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.ProcurementList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.ProcurementList), args.Error(1)
}

func (m *MockListRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.ProcurementList, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ProcurementList), args.Error(1)
}

func (m *MockListRepository) FindByStatus(ctx context.Context, status procurement.ListStatus, filter shared.Filter) ([]procurement.ProcurementList, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.ProcurementList), args.Error(1)
}

func (m *MockListRepository) Save(ctx context.Context, list *procurement.ProcurementList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newProcurementFixture(t *testing.T) (*ProcurementService, *MockListRepository, *MockSupplierRepository) {
	t.Helper()
	listRepo := new(MockListRepository)
	supplierRepo := new(MockSupplierRepository)
	return NewProcurementService(listRepo, supplierRepo), listRepo, supplierRepo
}

func openListWithLine(t *testing.T) (*procurement.ProcurementList, uuid.UUID) {
	t.Helper()
	list, err := procurement.NewProcurementList("piata sambata", "Radu")
	require.NoError(t, err)
	item, err := list.AddItem(procurement.ItemInput{
		ItemName:          "varza",
		Unit:              "kg",
		QuantityRequested: decimal.NewFromInt(5),
		VATPercent:        decimal.NewFromInt(19),
	})
	require.NoError(t, err)
	return list, item.ID
}

func boolPtr(b bool) *bool                      { return &b }
func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestProcurementService_CreateList(t *testing.T) {
	svc, listRepo, _ := newProcurementFixture(t)

	listRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.ProcurementList")).Return(nil)

	resp, err := svc.CreateList(context.Background(), "piata sambata", "Radu")

	require.NoError(t, err)
	assert.Equal(t, "open", resp.Status)
	assert.Equal(t, "Radu", resp.ShopperName)
	assert.Empty(t, resp.Items)
}

func TestProcurementService_UpdateItem_GrossDerivesNet(t *testing.T) {
	svc, listRepo, _ := newProcurementFixture(t)
	list, itemID := openListWithLine(t)

	listRepo.On("FindByID", mock.Anything, list.ID).Return(list, nil)
	listRepo.On("Save", mock.Anything, list).Return(nil)

	resp, err := svc.UpdateItem(context.Background(), list.ID, itemID, UpdateItemInput{
		PriceGross: decPtr(decimal.NewFromFloat(2.38)),
	})

	require.NoError(t, err)
	assert.True(t, resp.PriceNet.Equal(decimal.NewFromInt(2)), "net = %s", resp.PriceNet)
	assert.True(t, resp.PriceGross.Equal(decimal.NewFromFloat(2.38)))
}

func TestProcurementService_UpdateItem_VATChangeKeepsNet(t *testing.T) {
	svc, listRepo, _ := newProcurementFixture(t)
	list, itemID := openListWithLine(t)

	listRepo.On("FindByID", mock.Anything, list.ID).Return(list, nil)
	listRepo.On("Save", mock.Anything, list).Return(nil)

	_, err := svc.UpdateItem(context.Background(), list.ID, itemID, UpdateItemInput{
		PriceNet: decPtr(decimal.NewFromInt(3)),
	})
	require.NoError(t, err)

	resp, err := svc.UpdateItem(context.Background(), list.ID, itemID, UpdateItemInput{
		VATPercent: decPtr(decimal.NewFromInt(9)),
	})

	require.NoError(t, err)
	// net is durable, gross recomputes
	assert.True(t, resp.PriceNet.Equal(decimal.NewFromInt(3)))
	assert.True(t, resp.PriceGross.Equal(decimal.NewFromFloat(3.27)), "gross = %s", resp.PriceGross)
}

func TestProcurementService_UpdateItem_UnknownSupplier(t *testing.T) {
	svc, listRepo, supplierRepo := newProcurementFixture(t)
	supplierID := uuid.New()

	supplierRepo.On("Exists", mock.Anything, supplierID).Return(false, nil)

	_, err := svc.UpdateItem(context.Background(), uuid.New(), uuid.New(), UpdateItemInput{
		SupplierID: &supplierID,
	})

	require.ErrorIs(t, err, shared.ErrNotFound)
	listRepo.AssertNotCalled(t, "FindByID")
}

func TestProcurementService_Finalize(t *testing.T) {
	svc, listRepo, _ := newProcurementFixture(t)
	list, itemID := openListWithLine(t)

	// second, never-bought line must not count toward totals
	_, err := list.AddItem(procurement.ItemInput{
		ItemName:          "cartofi",
		Unit:              "kg",
		QuantityRequested: decimal.NewFromInt(10),
		VATPercent:        decimal.NewFromInt(9),
	})
	require.NoError(t, err)

	require.NoError(t, list.UpdateItem(itemID, func(i *procurement.ProcurementItem) error {
		if err := i.SetNetPrice(decimal.NewFromInt(2)); err != nil {
			return err
		}
		return i.SetBought(true, decimal.NewFromInt(10))
	}))

	listRepo.On("FindByID", mock.Anything, list.ID).Return(list, nil)
	listRepo.On("Save", mock.Anything, list).Return(nil)

	resp, err := svc.Finalize(context.Background(), list.ID)

	require.NoError(t, err)
	assert.Equal(t, "closed", resp.Status)
	require.NotNil(t, resp.ClosedAt)
	assert.True(t, resp.TotalNet.Equal(decimal.NewFromInt(20)), "total net = %s", resp.TotalNet)
	assert.True(t, resp.TotalGross.Equal(decimal.NewFromFloat(23.8)), "total gross = %s", resp.TotalGross)

	// finalize is one-way
	_, err = svc.Finalize(context.Background(), list.ID)
	require.ErrorIs(t, err, shared.ErrListClosed)
}

func TestProcurementService_ClosedListRejectsEdits(t *testing.T) {
	svc, listRepo, _ := newProcurementFixture(t)
	list, itemID := openListWithLine(t)
	require.NoError(t, list.Finalize())

	listRepo.On("FindByID", mock.Anything, list.ID).Return(list, nil)

	_, err := svc.AddItem(context.Background(), list.ID, procurement.ItemInput{ItemName: "ceapa"})
	require.ErrorIs(t, err, shared.ErrListClosed)

	_, err = svc.UpdateItem(context.Background(), list.ID, itemID, UpdateItemInput{IsBought: boolPtr(true)})
	require.ErrorIs(t, err, shared.ErrListClosed)

	err = svc.RemoveItem(context.Background(), list.ID, itemID)
	require.ErrorIs(t, err, shared.ErrListClosed)

	listRepo.AssertNotCalled(t, "Save")
}

func TestProcurementService_GenerateFromShortfall(t *testing.T) {
	svc, listRepo, _ := newProcurementFixture(t)

	varzaID := uuid.New()
	uleiID := uuid.New()
	rows := []planning.ShortfallRow{
		{
			ItemID:        varzaID,
			ItemName:      "varza",
			Unit:          "kg",
			ToBuy:         decimal.NewFromFloat(1.7),
			PurchasePrice: decimal.NewFromFloat(2.5),
			VATPercent:    decimal.NewFromInt(9),
		},
		{
			ItemID:   uleiID,
			ItemName: "ulei",
			Unit:     "l",
			ToBuy:    decimal.Zero, // covered, no line
		},
	}

	var saved *procurement.ProcurementList
	listRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.ProcurementList")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*procurement.ProcurementList)
		}).Return(nil)

	resp, err := svc.GenerateFromShortfall(context.Background(), "lipsuri 2 martie", "Radu", rows)

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	line := resp.Items[0]
	assert.Equal(t, "varza", line.ItemName)
	require.NotNil(t, line.ItemID)
	assert.Equal(t, varzaID, *line.ItemID)
	// 1.7 rounds up so the kitchen is never short
	assert.True(t, line.QuantityRequested.Equal(decimal.NewFromInt(2)), "qty = %s", line.QuantityRequested)
	assert.True(t, line.PriceNet.Equal(decimal.NewFromFloat(2.5)))
	require.NotNil(t, saved)
	assert.Len(t, saved.Items, 1)
}
