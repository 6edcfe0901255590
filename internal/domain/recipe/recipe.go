package recipe

import (
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Recipe maps one catalog product to the raw ingredients needed to prepare
// it. It is the aggregate root for recipe operations; lines are child
// entities persisted through the root. At most one recipe exists per
// product - a product without one is unplannable.
type Recipe struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Notes     string    `gorm:"type:text"`

	Lines []RecipeLine `gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeLine is one ingredient requirement: the quantity of an inventory
// item needed to produce a single portion of the linked product.
type RecipeLine struct {
	shared.BaseEntity
	RecipeID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityPerPortion decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (RecipeLine) TableName() string {
	return "recipe_lines"
}

// NewRecipe creates a new recipe for a product
func NewRecipe(productID uuid.UUID, notes string) (*Recipe, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	return &Recipe{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Notes:             notes,
		Lines:             make([]RecipeLine, 0),
	}, nil
}

// SetNotes replaces the free-text preparation notes
func (r *Recipe) SetNotes(notes string) {
	r.Notes = notes
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// SetLines replaces the ingredient lines wholesale. Quantities must be
// non-negative; duplicate items are rejected so aggregation stays unambiguous.
func (r *Recipe) SetLines(lines []LineInput) error {
	seen := make(map[uuid.UUID]bool, len(lines))
	newLines := make([]RecipeLine, 0, len(lines))
	for _, in := range lines {
		if in.ItemID == uuid.Nil {
			return shared.NewDomainError("INVALID_ITEM", "Ingredient item ID cannot be empty")
		}
		if in.QuantityPerPortion.IsNegative() {
			return shared.NewDomainError("INVALID_QUANTITY", "Quantity per portion cannot be negative")
		}
		if seen[in.ItemID] {
			return shared.NewDomainError("DUPLICATE_ITEM", "Ingredient appears more than once")
		}
		seen[in.ItemID] = true
		newLines = append(newLines, RecipeLine{
			BaseEntity:         shared.NewBaseEntity(),
			RecipeID:           r.ID,
			ItemID:             in.ItemID,
			QuantityPerPortion: in.QuantityPerPortion,
		})
	}

	r.Lines = newLines
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// LineInput carries one ingredient line for SetLines
type LineInput struct {
	ItemID             uuid.UUID
	QuantityPerPortion decimal.Decimal
}

// IsEmpty returns true if the recipe has no ingredient lines.
// An empty recipe is still a valid recipe: the product is plannable
// and simply draws no stock.
func (r *Recipe) IsEmpty() bool {
	return len(r.Lines) == 0
}

// RequiredFor returns the ingredient draw for the given portion count,
// keyed by item ID. Zero portions yield an empty map.
func (r *Recipe) RequiredFor(portions decimal.Decimal) map[uuid.UUID]decimal.Decimal {
	required := make(map[uuid.UUID]decimal.Decimal)
	if portions.LessThanOrEqual(decimal.Zero) {
		return required
	}
	for _, line := range r.Lines {
		if line.QuantityPerPortion.IsZero() {
			continue
		}
		required[line.ItemID] = line.QuantityPerPortion.Mul(portions)
	}
	return required
}
