package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	receptionapp "github.com/restaurant/backend/internal/application/reception"
	"github.com/restaurant/backend/internal/domain/reception"
	"github.com/shopspring/decimal"
)

// ReceptionHandler handles goods receipt and supplier endpoints
type ReceptionHandler struct {
	BaseHandler
	receptions *receptionapp.ReceptionService
}

// NewReceptionHandler creates a new ReceptionHandler
func NewReceptionHandler(receptions *receptionapp.ReceptionService) *ReceptionHandler {
	return &ReceptionHandler{receptions: receptions}
}

// ReceptionLineRequest is one received lot. Exactly one of price_net and
// price_gross must be set.
type ReceptionLineRequest struct {
	ItemID         string   `json:"item_id" binding:"required,uuid"`
	Quantity       float64  `json:"quantity" binding:"required,gt=0"`
	PriceNet       *float64 `json:"price_net" binding:"omitempty,gte=0"`
	PriceGross     *float64 `json:"price_gross" binding:"omitempty,gte=0"`
	VATPercent     float64  `json:"vat_percent" binding:"gte=0"`
	ExpirationDate string   `json:"expiration_date"`
	LocationID     *string  `json:"location_id" binding:"omitempty,uuid"`
}

// RecordReceptionRequest is the request body for recording a goods receipt
type RecordReceptionRequest struct {
	SupplierID     string                 `json:"supplier_id" binding:"required,uuid"`
	DocumentType   string                 `json:"document_type" binding:"required,oneof=invoice waybill proforma receipt"`
	DocumentNumber string                 `json:"document_number" binding:"required"`
	DocumentDate   string                 `json:"document_date" binding:"required"`
	IntakeDate     string                 `json:"intake_date" binding:"required"`
	Lines          []ReceptionLineRequest `json:"lines" binding:"required,dive"`
}

// RegisterRoutes registers reception and supplier routes
func (h *ReceptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receptions := rg.Group("/receptions")
	{
		receptions.GET("", h.ListReceptions)
		receptions.GET("/:id", h.GetReception)
		receptions.POST("", h.RecordReception)
	}

	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("", h.ListSuppliers)
		suppliers.GET("/:id/receptions", h.ListBySupplier)
	}
}

// ListReceptions returns goods receipts, newest intake first
func (h *ReceptionHandler) ListReceptions(c *gin.Context) {
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	receptions, total, err := h.receptions.ListReceptions(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, receptions, total, req.Page, req.PageSize)
}

// GetReception returns one goods receipt header
func (h *ReceptionHandler) GetReception(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid reception ID format")
		return
	}

	rec, err := h.receptions.GetReception(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// RecordReception books a goods receipt: header, one batch per line and
// matching IN ledger rows, all in one transaction
func (h *ReceptionHandler) RecordReception(c *gin.Context) {
	var req RecordReceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}
	documentDate, err := parseDate(req.DocumentDate)
	if err != nil {
		h.BadRequest(c, "Invalid document_date format")
		return
	}
	intakeDate, err := parseDate(req.IntakeDate)
	if err != nil {
		h.BadRequest(c, "Invalid intake_date format")
		return
	}

	lines := make([]receptionapp.ReceptionLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			h.BadRequest(c, "Invalid item ID format")
			return
		}

		input := receptionapp.ReceptionLineInput{
			ItemID:     itemID,
			Quantity:   decimal.NewFromFloat(line.Quantity),
			PriceNet:   toDecimalPtr(line.PriceNet),
			PriceGross: toDecimalPtr(line.PriceGross),
			VATPercent: decimal.NewFromFloat(line.VATPercent),
		}
		if line.ExpirationDate != "" {
			expiration, err := parseDate(line.ExpirationDate)
			if err != nil {
				h.BadRequest(c, "Invalid expiration_date format")
				return
			}
			input.ExpirationDate = &expiration
		}
		if line.LocationID != nil {
			locationID, err := uuid.Parse(*line.LocationID)
			if err != nil {
				h.BadRequest(c, "Invalid location ID format")
				return
			}
			input.LocationID = &locationID
		}
		lines = append(lines, input)
	}

	rec, err := h.receptions.RecordReception(c.Request.Context(), receptionapp.RecordReceptionInput{
		SupplierID:     supplierID,
		DocumentType:   reception.DocumentType(req.DocumentType),
		DocumentNumber: req.DocumentNumber,
		DocumentDate:   documentDate,
		IntakeDate:     intakeDate,
		OperatorName:   getOperator(c),
		Lines:          lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rec)
}

// ListSuppliers returns the supplier directory
func (h *ReceptionHandler) ListSuppliers(c *gin.Context) {
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	suppliers, err := h.receptions.ListSuppliers(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// ListBySupplier returns the goods receipts booked for a supplier
func (h *ReceptionHandler) ListBySupplier(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	receptions, err := h.receptions.ListBySupplier(c.Request.Context(), supplierID, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receptions)
}
