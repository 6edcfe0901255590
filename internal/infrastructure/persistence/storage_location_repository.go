package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/inventory"
	"github.com/restaurant/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStorageLocationRepository implements StorageLocationRepository using GORM
type GormStorageLocationRepository struct {
	db *gorm.DB
}

// NewGormStorageLocationRepository creates a new GormStorageLocationRepository
func NewGormStorageLocationRepository(db *gorm.DB) *GormStorageLocationRepository {
	return &GormStorageLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormStorageLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StorageLocation, error) {
	var location inventory.StorageLocation
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindAll finds all locations
func (r *GormStorageLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StorageLocation, error) {
	var locations []inventory.StorageLocation
	query := r.db.WithContext(ctx).Model(&inventory.StorageLocation{}).Order("name ASC")

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Ensure GormStorageLocationRepository implements StorageLocationRepository
var _ inventory.StorageLocationRepository = (*GormStorageLocationRepository)(nil)
