package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/restaurant/backend/internal/application/inventory"
	"github.com/restaurant/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// parseDate parses a date string, full timestamps accepted
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// InventoryHandler handles ingredient catalog and stock ledger endpoints
type InventoryHandler struct {
	BaseHandler
	ledger       *inventoryapp.StockLedgerService
	locationRepo inventory.StorageLocationRepository
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(ledger *inventoryapp.StockLedgerService, locationRepo inventory.StorageLocationRepository) *InventoryHandler {
	return &InventoryHandler{
		ledger:       ledger,
		locationRepo: locationRepo,
	}
}

// SaveItemRequest is the request body for creating or updating an item
type SaveItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	Unit       string  `json:"unit" binding:"required"`
	VATPercent float64 `json:"vat_percent" binding:"gte=0"`
}

// AvailabilityRequest selects the items to report stock for
type AvailabilityRequest struct {
	ItemIDs         []string `json:"item_ids" binding:"required,dive,uuid"`
	IncludeNegative bool     `json:"include_negative"`
}

// RecordMovementRequest is the request body for a manual ledger movement
type RecordMovementRequest struct {
	Type     string  `json:"type" binding:"required,oneof=IN OUT"`
	ItemID   string  `json:"item_id" binding:"required,uuid"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Reason   string  `json:"reason" binding:"required"`
}

// CorrectBatchRequest is the request body for a corrective batch edit
type CorrectBatchRequest struct {
	InitialQuantity float64 `json:"initial_quantity" binding:"gte=0"`
	PurchasePrice   float64 `json:"purchase_price" binding:"gte=0"`
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/inventory/items")
	{
		items.GET("", h.ListItems)
		items.GET("/:id", h.GetItem)
		items.POST("", h.CreateItem)
		items.PUT("/:id", h.UpdateItem)
		items.GET("/:id/batches", h.ListBatches)
	}

	batches := rg.Group("/inventory/batches")
	{
		batches.GET("/expiring", h.ExpiringBatches)
		batches.PATCH("/:id", h.CorrectBatch)
	}

	rg.GET("/inventory/transactions", h.ListTransactions)
	rg.POST("/inventory/transactions", h.RecordMovement)
	rg.POST("/inventory/availability", h.Availability)
	rg.GET("/inventory/locations", h.ListLocations)
}

// ListItems returns the ingredient catalog
func (h *InventoryHandler) ListItems(c *gin.Context) {
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	items, total, err := h.ledger.ListItems(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, req.Page, req.PageSize)
}

// GetItem returns one catalog entry
func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.ledger.GetItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// CreateItem adds a catalog entry
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.ledger.CreateItem(c.Request.Context(), inventoryapp.CreateItemInput{
		Name:       req.Name,
		Unit:       req.Unit,
		VATPercent: decimal.NewFromFloat(req.VATPercent),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateItem edits a catalog entry
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.ledger.UpdateItem(c.Request.Context(), id, inventoryapp.CreateItemInput{
		Name:       req.Name,
		Unit:       req.Unit,
		VATPercent: decimal.NewFromFloat(req.VATPercent),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// ListBatches returns the batches of an item, newest first
func (h *InventoryHandler) ListBatches(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	batches, err := h.ledger.ListBatches(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// ExpiringBatches returns batches with stock expiring within ?days (default 7)
func (h *InventoryHandler) ExpiringBatches(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := parseIntParam(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "Invalid days parameter")
			return
		}
		days = parsed
	}

	batches, err := h.ledger.ExpiringBatches(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// CorrectBatch applies a corrective edit to a batch and reconciles the ledger
func (h *InventoryHandler) CorrectBatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}

	var req CorrectBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.ledger.CorrectBatch(
		c.Request.Context(),
		id,
		decimal.NewFromFloat(req.InitialQuantity),
		decimal.NewFromFloat(req.PurchasePrice),
		getOperator(c),
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// ListTransactions returns ledger rows, newest first
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	filter := toFilter(req)
	if itemID := c.Query("item_id"); itemID != "" {
		parsed, err := uuid.Parse(itemID)
		if err != nil {
			h.BadRequest(c, "Invalid item ID format")
			return
		}
		filter.Filters["item_id"] = parsed
	}
	if txType := c.Query("type"); txType != "" {
		filter.Filters["type"] = txType
	}

	txs, total, err := h.ledger.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, txs, total, req.Page, req.PageSize)
}

// RecordMovement appends a manual IN/OUT ledger movement
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	var req RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	tx, err := h.ledger.RecordMovement(c.Request.Context(), inventoryapp.RecordMovementInput{
		Type:     inventory.TransactionType(req.Type),
		ItemID:   itemID,
		Quantity: decimal.NewFromFloat(req.Quantity),
		Reason:   req.Reason,
		Operator: getOperator(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// Availability reports stock per item. IncludeNegative switches between
// the net position and the positive-batches-only view.
func (h *InventoryHandler) Availability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	itemIDs := make([]uuid.UUID, 0, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid item ID format")
			return
		}
		itemIDs = append(itemIDs, id)
	}

	quantities, err := h.ledger.AvailableQuantities(c.Request.Context(), itemIDs, req.IncludeNegative)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result := make(map[string]decimal.Decimal, len(quantities))
	for id, qty := range quantities {
		result[id.String()] = qty
	}
	h.Success(c, result)
}

// ListLocations returns the storage location directory
func (h *InventoryHandler) ListLocations(c *gin.Context) {
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	locations, err := h.locationRepo.FindAll(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, locations)
}
