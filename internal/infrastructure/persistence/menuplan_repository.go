package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/menuplan"
	"gorm.io/gorm"
)

// GormMenuPlanRepository implements menuplan.Repository using GORM
type GormMenuPlanRepository struct {
	db *gorm.DB
}

// NewGormMenuPlanRepository creates a new GormMenuPlanRepository
func NewGormMenuPlanRepository(db *gorm.DB) *GormMenuPlanRepository {
	return &GormMenuPlanRepository{db: db}
}

// FindByDate finds all plan entries for a date
func (r *GormMenuPlanRepository) FindByDate(ctx context.Context, date time.Time) ([]menuplan.DailyMenuPlanEntry, error) {
	var entries []menuplan.DailyMenuPlanEntry
	if err := r.db.WithContext(ctx).
		Where("plan_date = ?", truncateToDay(date)).
		Order("created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByDateRange finds all plan entries with dates in [from, to]
func (r *GormMenuPlanRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]menuplan.DailyMenuPlanEntry, error) {
	var entries []menuplan.DailyMenuPlanEntry
	if err := r.db.WithContext(ctx).
		Where("plan_date >= ? AND plan_date <= ?", truncateToDay(from), truncateToDay(to)).
		Order("plan_date ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceForDate deletes every entry for the date and inserts the given
// entries. Runs in its own transaction unless already inside one.
func (r *GormMenuPlanRepository) ReplaceForDate(ctx context.Context, date time.Time, entries []menuplan.DailyMenuPlanEntry) error {
	day := truncateToDay(date)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_date = ?", day).
			Delete(&menuplan.DailyMenuPlanEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

// DeleteForDate removes all entries for a date
func (r *GormMenuPlanRepository) DeleteForDate(ctx context.Context, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("plan_date = ?", truncateToDay(date)).
		Delete(&menuplan.DailyMenuPlanEntry{}).Error
}

// FindByProduct finds plan entries referencing a product, newest date first
func (r *GormMenuPlanRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]menuplan.DailyMenuPlanEntry, error) {
	var entries []menuplan.DailyMenuPlanEntry
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("plan_date DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// truncateToDay strips the time-of-day component
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Ensure GormMenuPlanRepository implements menuplan.Repository
var _ menuplan.Repository = (*GormMenuPlanRepository)(nil)
