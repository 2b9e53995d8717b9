package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Quote is a finalized cart. TotalAmount is always the item subtotals plus
// the design and install fees; it is never edited on its own.
type Quote struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Reference    string           `gorm:"size:40;uniqueIndex;not null" json:"reference"`
	Date         time.Time        `gorm:"not null;index" json:"date"`
	CustomerID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName string           `gorm:"size:255" json:"customer_name"`
	TotalAmount  float64          `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	DownPayment  float64          `gorm:"type:decimal(15,2);default:0" json:"down_payment"`
	DesignFee    float64          `gorm:"type:decimal(15,2);default:0" json:"design_fee"`
	InstallFee   float64          `gorm:"type:decimal(15,2);default:0" json:"install_fee"`
	Status       enum.QuoteStatus `gorm:"size:40;not null;default:'draft';index" json:"status"`
	DeadlineDays int              `gorm:"default:0" json:"deadline_days"`
	Notes        *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy    *uuid.UUID       `gorm:"type:uuid;index" json:"created_by,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// ItemsSubtotal sums the line subtotals.
func (q *Quote) ItemsSubtotal() float64 {
	var sum float64
	for _, it := range q.Items {
		sum += it.Subtotal
	}
	return sum
}

// Total is the stored quote total.
func (q *Quote) Total() float64 {
	return q.TotalAmount
}

// ProductionCost sums the cost snapshots of every line.
func (q *Quote) ProductionCost() float64 {
	return productionCost(q.Items)
}

// QuoteItem is one priced line. Subtotal = UnitPrice × billable quantity,
// where the billable quantity depends on the calculator mode.
type QuoteItem struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID               uuid.UUID           `gorm:"type:uuid;not null;index" json:"-"`
	Position              int                 `gorm:"not null" json:"position"`
	ProductID             uuid.UUID           `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName           string              `gorm:"size:255" json:"product_name"`
	Mode                  enum.CalculatorMode `gorm:"size:20;not null" json:"mode"`
	Quantity              int                 `gorm:"not null" json:"quantity"`
	Width                 float64             `gorm:"default:0" json:"width"`
	Height                float64             `gorm:"default:0" json:"height"`
	UnitPrice             float64             `gorm:"type:decimal(15,4);not null" json:"unit_price"`
	Subtotal              float64             `gorm:"type:decimal(15,2);not null" json:"subtotal"`
	Billable              float64             `gorm:"column:billable_quantity;type:decimal(15,4);default:0" json:"billable_quantity"`
	LabelData             LabelData           `gorm:"type:text" json:"label_data"`
	Requirements          Requirements        `gorm:"serializer:json;type:text" json:"requirements,omitempty"`
	UnitCost              float64             `gorm:"type:decimal(15,4);default:0" json:"unit_cost"`
	ProductionTimeMinutes float64             `gorm:"default:0" json:"production_time_minutes"`
	CreatedAt             time.Time           `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new quote item
func (qi *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteItem model
func (QuoteItem) TableName() string {
	return "quote_items"
}

// BillableQuantity is the multiplier of UnitPrice: area for sticker and
// wrap lines, 1 for laser, quantity×area for standard m2 lines. Lines built
// without a stored quantity fall back to Subtotal / UnitPrice.
func (qi *QuoteItem) BillableQuantity() float64 {
	if qi.Billable > 0 {
		return qi.Billable
	}
	if qi.UnitPrice == 0 {
		return 0
	}
	return qi.Subtotal / qi.UnitPrice
}

// Cost is the production cost snapshot of the line.
func (qi *QuoteItem) Cost() float64 {
	return qi.UnitCost * qi.BillableQuantity()
}

// Clone deep-copies the line, including label data and requirements.
func (qi QuoteItem) Clone() QuoteItem {
	qi.LabelData = qi.LabelData.Clone()
	qi.Requirements = qi.Requirements.Clone()
	return qi
}

func productionCost(items []QuoteItem) float64 {
	var sum float64
	for i := range items {
		sum += items[i].Cost()
	}
	return sum
}
