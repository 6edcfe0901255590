package reception

import (
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DocumentType identifies the supplier document backing a goods receipt
type DocumentType string

const (
	DocumentTypeInvoice  DocumentType = "invoice"
	DocumentTypeWaybill  DocumentType = "waybill"
	DocumentTypeProforma DocumentType = "proforma"
	DocumentTypeReceipt  DocumentType = "receipt"
)

// IsValid returns true if the document type is valid
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeInvoice, DocumentTypeWaybill, DocumentTypeProforma, DocumentTypeReceipt:
		return true
	}
	return false
}

// Reception records one goods-receipt event against a supplier document.
// It is created once, its lines mint inventory batches atomically with it,
// and it is never edited in bulk afterward - individual batch corrections
// go through the stock ledger.
type Reception struct {
	shared.BaseAggregateRoot
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	DocumentType   DocumentType    `gorm:"type:varchar(20);not null"`
	DocumentNumber string          `gorm:"type:varchar(100);not null"`
	DocumentDate   time.Time       `gorm:"type:date;not null"`
	IntakeDate     time.Time       `gorm:"type:date;not null;index"`
	TotalValue     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // gross
	CreatedByName  string          `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (Reception) TableName() string {
	return "receptions"
}

// NewReception creates a reception header. TotalValue starts at zero and
// accumulates as lines are priced.
func NewReception(
	supplierID uuid.UUID,
	docType DocumentType,
	docNumber string,
	docDate, intakeDate time.Time,
	createdByName string,
) (*Reception, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if !docType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Invalid document type")
	}
	if docNumber == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Document number cannot be empty")
	}
	if createdByName == "" {
		createdByName = "system"
	}
	return &Reception{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		DocumentType:      docType,
		DocumentNumber:    docNumber,
		DocumentDate:      docDate,
		IntakeDate:        intakeDate,
		TotalValue:        decimal.Zero,
		CreatedByName:     createdByName,
	}, nil
}

// AddLineValue accumulates one line's gross total into the document value
func (r *Reception) AddLineValue(lineGrossTotal decimal.Decimal) {
	r.TotalValue = r.TotalValue.Add(lineGrossTotal)
	r.UpdatedAt = time.Now()
}
