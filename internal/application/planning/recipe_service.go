package planning

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/catalog"
	"github.com/restaurant/backend/internal/domain/inventory"
	"github.com/restaurant/backend/internal/domain/recipe"
	"github.com/restaurant/backend/internal/domain/shared"
)

// RecipeService manages the product-to-ingredients mapping. Each product
// carries at most one recipe; the resolver is what planning and commit use
// to expand portions into ingredient draw.
type RecipeService struct {
	recipeRepo  recipe.Repository
	productRepo catalog.ProductRepository
	itemRepo    inventory.InventoryItemRepository
}

// NewRecipeService creates a new RecipeService
func NewRecipeService(
	recipeRepo recipe.Repository,
	productRepo catalog.ProductRepository,
	itemRepo inventory.InventoryItemRepository,
) *RecipeService {
	return &RecipeService{
		recipeRepo:  recipeRepo,
		productRepo: productRepo,
		itemRepo:    itemRepo,
	}
}

// ResolveByProduct returns the recipe linked to a product, lines included
func (s *RecipeService) ResolveByProduct(ctx context.Context, productID uuid.UUID) (*RecipeResponse, error) {
	r, err := s.recipeRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := ToRecipeResponse(r)
	return &resp, nil
}

// GetRecipe returns a recipe by its own ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*RecipeResponse, error) {
	r, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRecipeResponse(r)
	return &resp, nil
}

// ListRecipes returns recipes matching the filter
func (s *RecipeService) ListRecipes(ctx context.Context, filter shared.Filter) ([]RecipeResponse, int64, error) {
	recipes, err := s.recipeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.recipeRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		responses = append(responses, ToRecipeResponse(&recipes[i]))
	}
	return responses, total, nil
}

// SaveRecipeInput carries a recipe create or update
type SaveRecipeInput struct {
	ProductID uuid.UUID
	Notes     string
	Lines     []recipe.LineInput
}

// CreateRecipe links a new recipe to a product. Fails with ALREADY_EXISTS
// when the product already has one.
func (s *RecipeService) CreateRecipe(ctx context.Context, input SaveRecipeInput) (*RecipeResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		return nil, err
	}
	if _, err := s.recipeRepo.FindByProduct(ctx, input.ProductID); err == nil {
		return nil, shared.ErrAlreadyExists.WithDetails("product already has a recipe")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	r, err := recipe.NewRecipe(input.ProductID, input.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.validateLineItems(ctx, input.Lines); err != nil {
		return nil, err
	}
	if err := r.SetLines(input.Lines); err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToRecipeResponse(r)
	return &resp, nil
}

// UpdateRecipe replaces a recipe's notes and lines wholesale
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, notes string, lines []recipe.LineInput) (*RecipeResponse, error) {
	r, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateLineItems(ctx, lines); err != nil {
		return nil, err
	}
	r.SetNotes(notes)
	if err := r.SetLines(lines); err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToRecipeResponse(r)
	return &resp, nil
}

// DeleteRecipe removes a recipe and its lines
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	if _, err := s.recipeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.recipeRepo.Delete(ctx, id)
}

// validateLineItems checks that every referenced ingredient exists
func (s *RecipeService) validateLineItems(ctx context.Context, lines []recipe.LineInput) error {
	if len(lines) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ItemID)
	}
	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]bool, len(items))
	for i := range items {
		known[items[i].ID] = true
	}
	for _, l := range lines {
		if !known[l.ItemID] {
			return shared.ErrNotFound.WithDetails("unknown ingredient item " + l.ItemID.String())
		}
	}
	return nil
}
