package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/menuplan"
	"github.com/restaurant/backend/internal/domain/recipe"
	"github.com/shopspring/decimal"
)

// RecipeResponse is the API view of a recipe with its ingredient lines
type RecipeResponse struct {
	ID        uuid.UUID            `json:"id"`
	ProductID uuid.UUID            `json:"product_id"`
	Notes     string               `json:"notes,omitempty"`
	Lines     []RecipeLineResponse `json:"lines"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// RecipeLineResponse is one ingredient requirement in a recipe
type RecipeLineResponse struct {
	ItemID             uuid.UUID       `json:"item_id"`
	QuantityPerPortion decimal.Decimal `json:"quantity_per_portion"`
}

// ToRecipeResponse maps a domain recipe to its response
func ToRecipeResponse(r *recipe.Recipe) RecipeResponse {
	lines := make([]RecipeLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, RecipeLineResponse{
			ItemID:             l.ItemID,
			QuantityPerPortion: l.QuantityPerPortion,
		})
	}
	return RecipeResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		Notes:     r.Notes,
		Lines:     lines,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// PlanRow names one product with an explicit portion count, used when the
// caller previews needs for a plan that has not been committed yet.
type PlanRow struct {
	ProductID uuid.UUID `json:"product_id"`
	Portions  *int      `json:"portions"`
}

// NeedsQuery selects which plan entries feed the demand aggregation.
// Either a date range over committed plans or an explicit row override;
// rows win when both are present.
type NeedsQuery struct {
	DateFrom       *time.Time `json:"date_from,omitempty"`
	DateTo         *time.Time `json:"date_to,omitempty"`
	Rows           []PlanRow  `json:"rows,omitempty"`
	CategoryFilter string     `json:"category_filter,omitempty"`
	ShortfallOnly  bool       `json:"shortfall_only,omitempty"`
}

// ShortfallRow reports one ingredient's aggregated demand against stock
type ShortfallRow struct {
	ItemID        uuid.UUID       `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Unit          string          `json:"unit"`
	Required      decimal.Decimal `json:"required"`
	Stock         decimal.Decimal `json:"stock"`
	ToBuy         decimal.Decimal `json:"to_buy"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	VATPercent    decimal.Decimal `json:"vat_percent"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

// ShortageDetail names one ingredient the stock cannot cover
type ShortageDetail struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Name      string          `json:"name"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
}

// CommitPlanInput carries one plan commit request
type CommitPlanInput struct {
	Date            time.Time
	Selections      []PlanRow
	ConfirmShortage bool
	Operator        string
}

// PlanEntryResponse is the API view of one committed plan entry
type PlanEntryResponse struct {
	ID                uuid.UUID `json:"id"`
	PlanDate          time.Time `json:"plan_date"`
	ProductID         uuid.UUID `json:"product_id"`
	Portions          *int      `json:"portions"`
	SpecificExtrasIDs string    `json:"specific_extras_ids,omitempty"`
}

// ToPlanEntryResponse maps a domain plan entry to its response
func ToPlanEntryResponse(e *menuplan.DailyMenuPlanEntry) PlanEntryResponse {
	return PlanEntryResponse{
		ID:                e.ID,
		PlanDate:          e.PlanDate,
		ProductID:         e.ProductID,
		Portions:          e.Portions,
		SpecificExtrasIDs: e.SpecificExtrasIDs,
	}
}
