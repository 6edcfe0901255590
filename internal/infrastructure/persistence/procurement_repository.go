package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/procurement"
	"github.com/restaurant/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProcurementRepository implements procurement.Repository using GORM.
// Items are persisted through the list aggregate.
type GormProcurementRepository struct {
	db *gorm.DB
}

// NewGormProcurementRepository creates a new GormProcurementRepository
func NewGormProcurementRepository(db *gorm.DB) *GormProcurementRepository {
	return &GormProcurementRepository{db: db}
}

// FindByID finds a list by its ID, items included
func (r *GormProcurementRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.ProcurementList, error) {
	var list procurement.ProcurementList
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&list, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// FindAll finds lists matching the filter, items included
func (r *GormProcurementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.ProcurementList, error) {
	var lists []procurement.ProcurementList
	query := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.ProcurementList{}).Preload("Items"), filter)

	if err := query.Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// FindByStatus finds lists in the given status
func (r *GormProcurementRepository) FindByStatus(ctx context.Context, status procurement.ListStatus, filter shared.Filter) ([]procurement.ProcurementList, error) {
	var lists []procurement.ProcurementList
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&procurement.ProcurementList{}).
			Preload("Items").
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// Save creates or updates a list together with its items. Items removed
// from the aggregate are deleted.
func (r *GormProcurementRepository) Save(ctx context.Context, list *procurement.ProcurementList) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(list).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(list.Items))
		for i, item := range list.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("list_id = ? AND id NOT IN ?", list.ID, currentItemIDs).
				Delete(&procurement.ProcurementItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("list_id = ?", list.ID).
				Delete(&procurement.ProcurementItem{}).Error; err != nil {
				return err
			}
		}

		for i := range list.Items {
			list.Items[i].ListID = list.ID
			if err := tx.Save(&list.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a list and its items
func (r *GormProcurementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&procurement.ProcurementItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&procurement.ProcurementList{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts lists matching the filter
func (r *GormProcurementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&procurement.ProcurementList{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormProcurementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProcurementRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR shopper_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "shopper_name":
			query = query.Where("shopper_name = ?", value)
		}
	}

	return query
}

// Ensure GormProcurementRepository implements procurement.Repository
var _ procurement.Repository = (*GormProcurementRepository)(nil)
