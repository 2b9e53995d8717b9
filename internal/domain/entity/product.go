package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Product represents a catalog entry. SalePrice is derived from cost, time
// and waste unless SalePriceOverridden is set, in which case the stored
// value is kept as entered.
type Product struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Name                  string              `gorm:"size:255;not null" json:"name"`
	Code                  string              `gorm:"size:100;index" json:"code"`
	Category              string              `gorm:"size:100;index" json:"category"`
	Mode                  enum.CalculatorMode `gorm:"size:20" json:"mode,omitempty"`
	UnitType              enum.UnitType       `gorm:"size:5;not null;default:'un'" json:"unit_type"`
	CostPrice             float64             `gorm:"type:decimal(15,4);default:0" json:"cost_price"`
	ProductionTimeMinutes float64             `gorm:"default:0" json:"production_time_minutes"`
	WastePercent          float64             `gorm:"type:decimal(5,2);default:0" json:"waste_percent"`
	SalePrice             float64             `gorm:"type:decimal(15,4);default:0" json:"sale_price"`
	SalePriceOverridden   bool                `gorm:"default:false" json:"sale_price_overridden"`
	Stock                 int                 `gorm:"default:0" json:"stock"`
	AvailableRollWidths   []float64           `gorm:"serializer:json;type:text" json:"available_roll_widths"`
	SupplierBaseCost      float64             `gorm:"type:decimal(15,4);default:0" json:"supplier_base_cost"`
	SuggestedMarkup       float64             `gorm:"type:decimal(8,4);default:1" json:"suggested_markup"`
	Notes                 *string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
	DeletedAt             gorm.DeletedAt      `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// DefaultRollWidth is the first configured roll width, or 0.
func (p *Product) DefaultRollWidth() float64 {
	if len(p.AvailableRollWidths) == 0 {
		return 0
	}
	return p.AvailableRollWidths[0]
}
