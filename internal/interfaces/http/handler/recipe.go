package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/application/planning"
	"github.com/restaurant/backend/internal/domain/recipe"
	"github.com/shopspring/decimal"
)

// RecipeHandler handles recipe endpoints
type RecipeHandler struct {
	BaseHandler
	recipes *planning.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipes *planning.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// RecipeLineRequest is one ingredient line in a recipe request
type RecipeLineRequest struct {
	ItemID             string  `json:"item_id" binding:"required,uuid"`
	QuantityPerPortion float64 `json:"quantity_per_portion" binding:"gte=0"`
}

// CreateRecipeRequest is the request body for creating a recipe
type CreateRecipeRequest struct {
	ProductID string              `json:"product_id" binding:"required,uuid"`
	Notes     string              `json:"notes"`
	Lines     []RecipeLineRequest `json:"lines" binding:"dive"`
}

// UpdateRecipeRequest is the request body for updating a recipe
type UpdateRecipeRequest struct {
	Notes string              `json:"notes"`
	Lines []RecipeLineRequest `json:"lines" binding:"dive"`
}

// RegisterRoutes registers recipe routes
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recipes := rg.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}

	rg.GET("/products/:id/recipe", h.ResolveByProduct)
}

// ListRecipes returns all recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	recipes, total, err := h.recipes.ListRecipes(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, recipes, total, req.Page, req.PageSize)
}

// GetRecipe returns one recipe with its lines
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID format")
		return
	}

	rec, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// ResolveByProduct returns the recipe linked to a product
func (h *RecipeHandler) ResolveByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	rec, err := h.recipes.ResolveByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// CreateRecipe links a new recipe to a product
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	lines, err := toLineInputs(req.Lines)
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	rec, err := h.recipes.CreateRecipe(c.Request.Context(), planning.SaveRecipeInput{
		ProductID: productID,
		Notes:     req.Notes,
		Lines:     lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rec)
}

// UpdateRecipe replaces a recipe's notes and ingredient lines
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID format")
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lines, err := toLineInputs(req.Lines)
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	rec, err := h.recipes.UpdateRecipe(c.Request.Context(), id, req.Notes, lines)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// DeleteRecipe removes a recipe. Admin action; committed plans that
// referenced it are unaffected.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID format")
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// toLineInputs converts request lines to domain line inputs
func toLineInputs(lines []RecipeLineRequest) ([]recipe.LineInput, error) {
	result := make([]recipe.LineInput, 0, len(lines))
	for _, line := range lines {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, err
		}
		result = append(result, recipe.LineInput{
			ItemID:             itemID,
			QuantityPerPortion: decimal.NewFromFloat(line.QuantityPerPortion),
		})
	}
	return result, nil
}
