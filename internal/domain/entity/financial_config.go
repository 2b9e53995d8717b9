package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/pricing"
	"gorm.io/gorm"
)

// FinancialConfig is the shop-wide pricing configuration. There is one row;
// callers load it per request and pass it by value.
type FinancialConfig struct {
	ID                      uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	ProductiveHoursPerMonth float64     `gorm:"default:0" json:"productive_hours_per_month"`
	TaxPercent              float64     `gorm:"type:decimal(5,2);default:0" json:"tax_percent"`
	CommissionPercent       float64     `gorm:"type:decimal(5,2);default:0" json:"commission_percent"`
	TargetProfitMargin      float64     `gorm:"type:decimal(5,2);default:0" json:"target_profit_margin"`
	MachineHourRate         float64     `gorm:"type:decimal(15,2);default:0" json:"machine_hour_rate"`
	HourlyRate              float64     `gorm:"type:decimal(15,4);default:0" json:"hourly_rate"`
	FixedCosts              []FixedCost `gorm:"foreignKey:FinancialConfigID;constraint:OnDelete:CASCADE" json:"fixed_costs"`
	Equipment               []Equipment `gorm:"foreignKey:FinancialConfigID;constraint:OnDelete:CASCADE" json:"equipment"`
	CreatedAt               time.Time   `json:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at"`
}

func (c *FinancialConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (FinancialConfig) TableName() string {
	return "financial_configs"
}

// Rates returns the percentage stack used by the pricing formula.
func (c FinancialConfig) Rates() pricing.Rates {
	return pricing.Rates{
		TargetProfitMargin: c.TargetProfitMargin,
		TaxPercent:         c.TaxPercent,
		CommissionPercent:  c.CommissionPercent,
	}
}

func (c FinancialConfig) TotalFixedCosts() float64 {
	var total float64
	for _, fc := range c.FixedCosts {
		total += fc.MonthlyAmount
	}
	return total
}

func (c FinancialConfig) MonthlyDepreciation() float64 {
	var total float64
	for _, e := range c.Equipment {
		total += e.MonthlyDepreciation()
	}
	return total
}

// CostPerHour derives the hourly shop cost from fixed costs and equipment.
func (c FinancialConfig) CostPerHour() float64 {
	return pricing.CostPerHour(c.TotalFixedCosts(), c.MonthlyDepreciation(), c.ProductiveHoursPerMonth)
}

// EffectiveMachineHourRate falls back to fallback when no rate is stored.
func (c FinancialConfig) EffectiveMachineHourRate(fallback float64) float64 {
	if c.MachineHourRate > 0 {
		return c.MachineHourRate
	}
	return fallback
}

// FixedCost is a recurring monthly expense.
type FixedCost struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FinancialConfigID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	MonthlyAmount     float64   `gorm:"type:decimal(15,2);default:0" json:"monthly_amount"`
}

func (f *FixedCost) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (FixedCost) TableName() string {
	return "fixed_costs"
}

// Equipment is a depreciating asset.
type Equipment struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FinancialConfigID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	PurchaseValue     float64   `gorm:"type:decimal(15,2);default:0" json:"purchase_value"`
	UsefulLifeMonths  int       `gorm:"default:0" json:"useful_life_months"`
}

func (e *Equipment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (Equipment) TableName() string {
	return "equipment"
}

// MonthlyDepreciation is straight-line; zero when the useful life is unset.
func (e Equipment) MonthlyDepreciation() float64 {
	if e.UsefulLifeMonths <= 0 {
		return 0
	}
	return e.PurchaseValue / float64(e.UsefulLifeMonths)
}
