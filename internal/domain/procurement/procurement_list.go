package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ListStatus represents the lifecycle state of a procurement list
type ListStatus string

const (
	// ListStatusOpen allows items to be added, edited and removed
	ListStatusOpen ListStatus = "open"
	// ListStatusClosed freezes the list forever; there is no reopen path
	ListStatusClosed ListStatus = "closed"
)

// ProcurementList is a named shopping list worked by one shopper. Open
// lists are mutable; closing is one-way and freezes summary totals over
// the bought items.
type ProcurementList struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(255);not null"`
	ShopperName string          `gorm:"type:varchar(255);not null"`
	Status      ListStatus      `gorm:"type:varchar(20);not null;default:'open';index"`
	TotalNet    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalGross  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ClosedAt    *time.Time

	Items []ProcurementItem `gorm:"foreignKey:ListID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProcurementList) TableName() string {
	return "procurement_lists"
}

// NewProcurementList creates a new open list
func NewProcurementList(name, shopperName string) (*ProcurementList, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "List name cannot be empty")
	}
	return &ProcurementList{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ShopperName:       shopperName,
		Status:            ListStatusOpen,
		TotalNet:          decimal.Zero,
		TotalGross:        decimal.Zero,
		Items:             make([]ProcurementItem, 0),
	}, nil
}

// IsClosed returns true once the list has been finalized
func (l *ProcurementList) IsClosed() bool {
	return l.Status == ListStatusClosed
}

// guardOpen rejects mutation of closed lists
func (l *ProcurementList) guardOpen() error {
	if l.IsClosed() {
		return shared.ErrListClosed
	}
	return nil
}

// AddItem appends a line to an open list
func (l *ProcurementList) AddItem(input ItemInput) (*ProcurementItem, error) {
	if err := l.guardOpen(); err != nil {
		return nil, err
	}
	item, err := newProcurementItem(l.ID, input)
	if err != nil {
		return nil, err
	}
	l.Items = append(l.Items, *item)
	l.touch()
	return &l.Items[len(l.Items)-1], nil
}

// RemoveItem drops a line from an open list
func (l *ProcurementList) RemoveItem(itemID uuid.UUID) error {
	if err := l.guardOpen(); err != nil {
		return err
	}
	for idx := range l.Items {
		if l.Items[idx].ID == itemID {
			l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
			l.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Item returns a pointer to the line with the given ID
func (l *ProcurementList) Item(itemID uuid.UUID) (*ProcurementItem, error) {
	for idx := range l.Items {
		if l.Items[idx].ID == itemID {
			return &l.Items[idx], nil
		}
	}
	return nil, shared.ErrNotFound
}

// UpdateItem applies a mutation to a line of an open list
func (l *ProcurementList) UpdateItem(itemID uuid.UUID, mutate func(*ProcurementItem) error) error {
	if err := l.guardOpen(); err != nil {
		return err
	}
	item, err := l.Item(itemID)
	if err != nil {
		return err
	}
	if err := mutate(item); err != nil {
		return err
	}
	item.UpdatedAt = time.Now()
	l.touch()
	return nil
}

// Finalize closes the list irreversibly and freezes summary totals.
// Only bought items count; requested-but-unbought lines are excluded.
func (l *ProcurementList) Finalize() error {
	if err := l.guardOpen(); err != nil {
		return err
	}

	totalNet := decimal.Zero
	totalGross := decimal.Zero
	for _, item := range l.Items {
		if !item.IsBought {
			continue
		}
		totalNet = totalNet.Add(item.LineNetTotal())
		totalGross = totalGross.Add(item.LineGrossTotal())
	}

	now := time.Now()
	l.Status = ListStatusClosed
	l.TotalNet = totalNet
	l.TotalGross = totalGross
	l.ClosedAt = &now
	l.touch()
	return nil
}

func (l *ProcurementList) touch() {
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}
