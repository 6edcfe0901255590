package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/recipe"
	"github.com/restaurant/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRecipeRepository implements recipe.Repository using GORM.
// Ingredient lines are always loaded with the root.
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// FindByID finds a recipe by its ID, lines included
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindByProduct finds the recipe linked to a product, lines included
func (r *GormRecipeRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&rec, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindByProducts finds recipes for multiple products, keyed by product ID.
// Products without a recipe are absent from the result.
func (r *GormRecipeRepository) FindByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*recipe.Recipe, error) {
	result := make(map[uuid.UUID]*recipe.Recipe)
	if len(productIDs) == 0 {
		return result, nil
	}

	var recipes []recipe.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("product_id IN ?", productIDs).
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	for i := range recipes {
		result[recipes[i].ProductID] = &recipes[i]
	}
	return result, nil
}

// FindAll finds all recipes matching the filter, lines included
func (r *GormRecipeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	query := r.applyFilter(r.db.WithContext(ctx).Model(&recipe.Recipe{}).Preload("Lines"), filter)

	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Save creates or updates a recipe together with its lines. Lines removed
// from the aggregate are deleted.
func (r *GormRecipeRepository) Save(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(rec).Error; err != nil {
			return err
		}

		currentLineIDs := make([]uuid.UUID, len(rec.Lines))
		for i, line := range rec.Lines {
			currentLineIDs[i] = line.ID
		}

		if len(currentLineIDs) > 0 {
			if err := tx.Where("recipe_id = ? AND id NOT IN ?", rec.ID, currentLineIDs).
				Delete(&recipe.RecipeLine{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("recipe_id = ?", rec.ID).
				Delete(&recipe.RecipeLine{}).Error; err != nil {
				return err
			}
		}

		for i := range rec.Lines {
			rec.Lines[i].RecipeID = rec.ID
			if err := tx.Save(&rec.Lines[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a recipe and its lines
func (r *GormRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&recipe.RecipeLine{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&recipe.Recipe{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts recipes matching the filter
func (r *GormRecipeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&recipe.Recipe{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormRecipeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormRecipeRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("notes ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}

	return query
}

// Ensure GormRecipeRepository implements recipe.Repository
var _ recipe.Repository = (*GormRecipeRepository)(nil)
