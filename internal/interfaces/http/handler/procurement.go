package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/application/planning"
	procurementapp "github.com/restaurant/backend/internal/application/procurement"
	"github.com/restaurant/backend/internal/domain/procurement"
	"github.com/shopspring/decimal"
)

// ProcurementHandler handles procurement list endpoints
type ProcurementHandler struct {
	BaseHandler
	lists  *procurementapp.ProcurementService
	demand *planning.DemandService
}

// NewProcurementHandler creates a new ProcurementHandler
func NewProcurementHandler(lists *procurementapp.ProcurementService, demand *planning.DemandService) *ProcurementHandler {
	return &ProcurementHandler{lists: lists, demand: demand}
}

// CreateListRequest is the request body for creating a list
type CreateListRequest struct {
	Name        string `json:"name" binding:"required"`
	ShopperName string `json:"shopper_name" binding:"required"`
}

// AddListItemRequest is the request body for adding a line to a list
type AddListItemRequest struct {
	ItemName          string  `json:"item_name" binding:"required"`
	ItemID            *string `json:"item_id" binding:"omitempty,uuid"`
	Unit              string  `json:"unit"`
	QuantityRequested float64 `json:"quantity_requested" binding:"gte=0"`
	VATPercent        float64 `json:"vat_percent" binding:"gte=0"`
}

// UpdateListItemRequest edits a line while shopping. Absent fields are
// left untouched; a gross price wins over a net one.
type UpdateListItemRequest struct {
	PriceNet       *float64 `json:"price_net" binding:"omitempty,gte=0"`
	PriceGross     *float64 `json:"price_gross" binding:"omitempty,gte=0"`
	VATPercent     *float64 `json:"vat_percent" binding:"omitempty,gte=0"`
	IsBought       *bool    `json:"is_bought"`
	QuantityBought *float64 `json:"quantity_bought" binding:"omitempty,gte=0"`
	SupplierID     *string  `json:"supplier_id" binding:"omitempty,uuid"`
	ClearSupplier  bool     `json:"clear_supplier"`
}

// GenerateListRequest builds a list from the current shortfall
type GenerateListRequest struct {
	Name        string `json:"name" binding:"required"`
	ShopperName string `json:"shopper_name" binding:"required"`
	Needs       NeedsRequest
}

// RegisterRoutes registers procurement routes
func (h *ProcurementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	lists := rg.Group("/procurement/lists")
	{
		lists.GET("", h.ListLists)
		lists.GET("/:id", h.GetList)
		lists.POST("", h.CreateList)
		lists.POST("/generate", h.GenerateFromShortfall)
		lists.POST("/:id/items", h.AddItem)
		lists.PATCH("/:id/items/:itemId", h.UpdateItem)
		lists.DELETE("/:id/items/:itemId", h.RemoveItem)
		lists.POST("/:id/finalize", h.Finalize)
	}
}

// ListLists returns procurement lists
func (h *ProcurementHandler) ListLists(c *gin.Context) {
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	filter := toFilter(req)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	lists, total, err := h.lists.ListLists(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, lists, total, req.Page, req.PageSize)
}

// GetList returns one list with its lines
func (h *ProcurementHandler) GetList(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid list ID format")
		return
	}

	list, err := h.lists.GetList(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// CreateList opens an empty shopping list
func (h *ProcurementHandler) CreateList(c *gin.Context) {
	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	list, err := h.lists.CreateList(c.Request.Context(), req.Name, req.ShopperName)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, list)
}

// GenerateFromShortfall opens a list pre-filled from the current shortfall.
// Quantities are rounded up to whole units for the market.
func (h *ProcurementHandler) GenerateFromShortfall(c *gin.Context) {
	var req GenerateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	query := planning.NeedsQuery{
		CategoryFilter: req.Needs.CategoryFilter,
		ShortfallOnly:  true,
	}
	if req.Needs.DateFrom != "" {
		from, err := parseDate(req.Needs.DateFrom)
		if err != nil {
			h.BadRequest(c, "Invalid date_from format")
			return
		}
		query.DateFrom = &from
	}
	if req.Needs.DateTo != "" {
		to, err := parseDate(req.Needs.DateTo)
		if err != nil {
			h.BadRequest(c, "Invalid date_to format")
			return
		}
		query.DateTo = &to
	}
	rows, err := toPlanRows(req.Needs.Rows)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	query.Rows = rows

	shortfall, err := h.demand.CalculateNeeds(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	list, err := h.lists.GenerateFromShortfall(c.Request.Context(), req.Name, req.ShopperName, shortfall)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, list)
}

// AddItem adds a line to an open list
func (h *ProcurementHandler) AddItem(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid list ID format")
		return
	}

	var req AddListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := procurement.ItemInput{
		ItemName:          req.ItemName,
		Unit:              req.Unit,
		QuantityRequested: decimal.NewFromFloat(req.QuantityRequested),
		VATPercent:        decimal.NewFromFloat(req.VATPercent),
	}
	if req.ItemID != nil {
		itemID, err := uuid.Parse(*req.ItemID)
		if err != nil {
			h.BadRequest(c, "Invalid item ID format")
			return
		}
		input.ItemID = &itemID
	}

	item, err := h.lists.AddItem(c.Request.Context(), listID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateItem edits a line while shopping
func (h *ProcurementHandler) UpdateItem(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid list ID format")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req UpdateListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := procurementapp.UpdateItemInput{
		PriceNet:       toDecimalPtr(req.PriceNet),
		PriceGross:     toDecimalPtr(req.PriceGross),
		VATPercent:     toDecimalPtr(req.VATPercent),
		IsBought:       req.IsBought,
		QuantityBought: toDecimalPtr(req.QuantityBought),
		ClearSupplier:  req.ClearSupplier,
	}
	if req.SupplierID != nil {
		supplierID, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			h.BadRequest(c, "Invalid supplier ID format")
			return
		}
		input.SupplierID = &supplierID
	}

	item, err := h.lists.UpdateItem(c.Request.Context(), listID, itemID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// RemoveItem removes a line from an open list
func (h *ProcurementHandler) RemoveItem(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid list ID format")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.lists.RemoveItem(c.Request.Context(), listID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Finalize closes a list and freezes its totals over bought lines
func (h *ProcurementHandler) Finalize(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid list ID format")
		return
	}

	list, err := h.lists.Finalize(c.Request.Context(), listID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// toDecimalPtr converts an optional float to an optional decimal
func toDecimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}
