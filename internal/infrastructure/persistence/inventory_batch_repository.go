package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/inventory"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInventoryBatchRepository implements InventoryBatchRepository using GORM
type GormInventoryBatchRepository struct {
	db *gorm.DB
}

// NewGormInventoryBatchRepository creates a new GormInventoryBatchRepository
func NewGormInventoryBatchRepository(db *gorm.DB) *GormInventoryBatchRepository {
	return &GormInventoryBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormInventoryBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryBatch, error) {
	var batch inventory.InventoryBatch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByItem finds all batches for an item, newest first
func (r *GormInventoryBatchRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.InventoryBatch, error) {
	var batches []inventory.InventoryBatch
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC, id DESC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindLatestByItem finds the most recent batch for an item. Ties on the
// creation timestamp are broken by the highest batch ID.
func (r *GormInventoryBatchRepository) FindLatestByItem(ctx context.Context, itemID uuid.UUID) (*inventory.InventoryBatch, error) {
	var batch inventory.InventoryBatch
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC, id DESC").
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindLatestByItems finds the most recent batch per item. Items without
// batches are absent from the result.
func (r *GormInventoryBatchRepository) FindLatestByItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*inventory.InventoryBatch, error) {
	result := make(map[uuid.UUID]*inventory.InventoryBatch)
	if len(itemIDs) == 0 {
		return result, nil
	}

	var batches []inventory.InventoryBatch
	if err := r.db.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Order("created_at DESC, id DESC").
		Find(&batches).Error; err != nil {
		return nil, err
	}

	for i := range batches {
		b := &batches[i]
		if _, seen := result[b.ItemID]; !seen {
			result[b.ItemID] = b
		}
	}
	return result, nil
}

// FindExpiringWithin finds batches with remaining stock expiring within the
// given number of days, soonest first
func (r *GormInventoryBatchRepository) FindExpiringWithin(ctx context.Context, days int) ([]inventory.InventoryBatch, error) {
	cutoff := time.Now().AddDate(0, 0, days)

	var batches []inventory.InventoryBatch
	if err := r.db.WithContext(ctx).
		Where("expiration_date IS NOT NULL AND expiration_date <= ? AND quantity > 0", cutoff).
		Order("expiration_date ASC, id ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// SumAvailableByItems sums positive batch quantities per item
func (r *GormInventoryBatchRepository) SumAvailableByItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	return r.sumByItems(ctx, itemIDs, true)
}

// SumNetByItems sums all batch quantities per item, negatives included
func (r *GormInventoryBatchRepository) SumNetByItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	return r.sumByItems(ctx, itemIDs, false)
}

type batchQuantitySum struct {
	ItemID uuid.UUID       `gorm:"column:item_id"`
	Total  decimal.Decimal `gorm:"column:total"`
}

func (r *GormInventoryBatchRepository) sumByItems(ctx context.Context, itemIDs []uuid.UUID, positiveOnly bool) (map[uuid.UUID]decimal.Decimal, error) {
	result := make(map[uuid.UUID]decimal.Decimal)
	if len(itemIDs) == 0 {
		return result, nil
	}

	query := r.db.WithContext(ctx).
		Model(&inventory.InventoryBatch{}).
		Select("item_id, COALESCE(SUM(quantity), 0) AS total").
		Where("item_id IN ?", itemIDs)
	if positiveOnly {
		query = query.Where("quantity > 0")
	}

	var sums []batchQuantitySum
	if err := query.Group("item_id").Scan(&sums).Error; err != nil {
		return nil, err
	}

	for _, s := range sums {
		result[s.ItemID] = s.Total
	}
	return result, nil
}

// Save creates or updates a batch
func (r *GormInventoryBatchRepository) Save(ctx context.Context, batch *inventory.InventoryBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// SaveAll creates or updates multiple batches
func (r *GormInventoryBatchRepository) SaveAll(ctx context.Context, batches []inventory.InventoryBatch) error {
	if len(batches) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&batches).Error
}

// Ensure GormInventoryBatchRepository implements InventoryBatchRepository
var _ inventory.InventoryBatchRepository = (*GormInventoryBatchRepository)(nil)
