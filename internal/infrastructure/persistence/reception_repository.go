package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/reception"
	"github.com/restaurant/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormReceptionRepository implements reception.Repository using GORM
type GormReceptionRepository struct {
	db *gorm.DB
}

// NewGormReceptionRepository creates a new GormReceptionRepository
func NewGormReceptionRepository(db *gorm.DB) *GormReceptionRepository {
	return &GormReceptionRepository{db: db}
}

// FindByID finds a reception by its ID
func (r *GormReceptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*reception.Reception, error) {
	var rec reception.Reception
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindAll finds receptions matching the filter, newest intake first
func (r *GormReceptionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]reception.Reception, error) {
	var recs []reception.Reception
	query := r.applyFilter(r.db.WithContext(ctx).Model(&reception.Reception{}), filter)

	if err := query.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// FindBySupplier finds receptions for a supplier
func (r *GormReceptionRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]reception.Reception, error) {
	var recs []reception.Reception
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&reception.Reception{}).
			Where("supplier_id = ?", supplierID),
		filter,
	)

	if err := query.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// Save creates or updates a reception header
func (r *GormReceptionRepository) Save(ctx context.Context, rec *reception.Reception) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// Count counts receptions matching the filter
func (r *GormReceptionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&reception.Reception{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormReceptionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("intake_date DESC, created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReceptionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("document_number ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "document_type":
			query = query.Where("document_type = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "intake_from":
			query = query.Where("intake_date >= ?", value)
		case "intake_to":
			query = query.Where("intake_date <= ?", value)
		}
	}

	return query
}

// Ensure GormReceptionRepository implements reception.Repository
var _ reception.Repository = (*GormReceptionRepository)(nil)
