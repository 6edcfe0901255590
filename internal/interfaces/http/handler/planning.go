package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/application/planning"
)

// PlanningHandler handles demand aggregation and daily plan endpoints
type PlanningHandler struct {
	BaseHandler
	demand *planning.DemandService
	plans  *planning.PlanCommitService
}

// NewPlanningHandler creates a new PlanningHandler
func NewPlanningHandler(demand *planning.DemandService, plans *planning.PlanCommitService) *PlanningHandler {
	return &PlanningHandler{demand: demand, plans: plans}
}

// PlanRowRequest is one product selection in a needs or commit request
type PlanRowRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Portions  *int   `json:"portions"`
}

// NeedsRequest selects which plan entries feed the demand aggregation.
// Explicit rows override the date range when both are present.
type NeedsRequest struct {
	DateFrom       string           `json:"date_from"`
	DateTo         string           `json:"date_to"`
	Rows           []PlanRowRequest `json:"rows" binding:"dive"`
	CategoryFilter string           `json:"category_filter"`
	ShortfallOnly  bool             `json:"shortfall_only"`
}

// CommitPlanRequest is the request body for committing a daily plan
type CommitPlanRequest struct {
	Selections      []PlanRowRequest `json:"selections" binding:"required,dive"`
	ConfirmShortage bool             `json:"confirm_shortage"`
}

// RegisterRoutes registers demand and plan routes
func (h *PlanningHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/demand/needs", h.CalculateNeeds)

	plans := rg.Group("/plans")
	{
		plans.GET("", h.ListPlans)
		plans.GET("/:date", h.GetPlan)
		plans.PUT("/:date", h.CommitPlan)
	}
}

// CalculateNeeds aggregates ingredient demand against current stock.
// Pure read; nothing is deducted.
func (h *PlanningHandler) CalculateNeeds(c *gin.Context) {
	var req NeedsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	query := planning.NeedsQuery{
		CategoryFilter: req.CategoryFilter,
		ShortfallOnly:  req.ShortfallOnly,
	}

	if req.DateFrom != "" {
		from, err := parseDate(req.DateFrom)
		if err != nil {
			h.BadRequest(c, "Invalid date_from format")
			return
		}
		query.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := parseDate(req.DateTo)
		if err != nil {
			h.BadRequest(c, "Invalid date_to format")
			return
		}
		query.DateTo = &to
	}

	rows, err := toPlanRows(req.Rows)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	query.Rows = rows

	needs, err := h.demand.CalculateNeeds(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, needs)
}

// ListPlans returns committed plan entries in ?from / ?to
func (h *PlanningHandler) ListPlans(c *gin.Context) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		h.BadRequest(c, "Invalid from date")
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		h.BadRequest(c, "Invalid to date")
		return
	}

	entries, err := h.plans.ListPlans(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// GetPlan returns the committed plan for a date
func (h *PlanningHandler) GetPlan(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	entries, err := h.plans.GetPlan(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// CommitPlan atomically replaces the plan for a date and deducts
// ingredient stock. A 422 with details is returned when portions are
// missing, recipes are missing, or stock is short and unconfirmed.
func (h *PlanningHandler) CommitPlan(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	var req CommitPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	selections, err := toPlanRows(req.Selections)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	entries, err := h.plans.CommitPlan(c.Request.Context(), planning.CommitPlanInput{
		Date:            date,
		Selections:      selections,
		ConfirmShortage: req.ConfirmShortage,
		Operator:        getOperator(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// toPlanRows converts request rows to application plan rows
func toPlanRows(rows []PlanRowRequest) ([]planning.PlanRow, error) {
	result := make([]planning.PlanRow, 0, len(rows))
	for _, row := range rows {
		productID, err := uuid.Parse(row.ProductID)
		if err != nil {
			return nil, err
		}
		result = append(result, planning.PlanRow{
			ProductID: productID,
			Portions:  row.Portions,
		})
	}
	return result, nil
}
