package reception

import (
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/partner"
	"github.com/restaurant/backend/internal/domain/reception"
	"github.com/shopspring/decimal"
)

// RecordReceptionInput carries one goods-receipt request
type RecordReceptionInput struct {
	SupplierID     uuid.UUID
	DocumentType   reception.DocumentType
	DocumentNumber string
	DocumentDate   time.Time
	IntakeDate     time.Time
	OperatorName   string
	Lines          []ReceptionLineInput
}

// ReceptionLineInput is one received lot. Exactly one of PriceNet and
// PriceGross must be set; the other is derived through the VAT rate.
type ReceptionLineInput struct {
	ItemID         uuid.UUID
	Quantity       decimal.Decimal
	PriceNet       *decimal.Decimal
	PriceGross     *decimal.Decimal
	VATPercent     decimal.Decimal
	ExpirationDate *time.Time
	LocationID     *uuid.UUID
}

// ReceptionResponse is the API view of a goods receipt
type ReceptionResponse struct {
	ID             uuid.UUID       `json:"id"`
	SupplierID     uuid.UUID       `json:"supplier_id"`
	DocumentType   string          `json:"document_type"`
	DocumentNumber string          `json:"document_number"`
	DocumentDate   time.Time       `json:"document_date"`
	IntakeDate     time.Time       `json:"intake_date"`
	TotalValue     decimal.Decimal `json:"total_value"`
	CreatedByName  string          `json:"created_by_name"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToReceptionResponse maps a domain reception to its response
func ToReceptionResponse(r *reception.Reception) ReceptionResponse {
	return ReceptionResponse{
		ID:             r.ID,
		SupplierID:     r.SupplierID,
		DocumentType:   string(r.DocumentType),
		DocumentNumber: r.DocumentNumber,
		DocumentDate:   r.DocumentDate,
		IntakeDate:     r.IntakeDate,
		TotalValue:     r.TotalValue,
		CreatedByName:  r.CreatedByName,
		CreatedAt:      r.CreatedAt,
	}
}

// SupplierResponse is the API view of a supplier directory entry
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
}

// ToSupplierResponse maps a domain supplier to its response
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
	}
}
