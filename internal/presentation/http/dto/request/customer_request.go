package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Document *string `json:"document" binding:"omitempty,max=50"`
	Address  *string `json:"address"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Document *string `json:"document" binding:"omitempty,max=50"`
	Address  *string `json:"address"`
}

// FinancialConfigRequest replaces the shop configuration
type FinancialConfigRequest struct {
	ProductiveHoursPerMonth float64            `json:"productive_hours_per_month"`
	TaxPercent              float64            `json:"tax_percent"`
	CommissionPercent       float64            `json:"commission_percent"`
	TargetProfitMargin      float64            `json:"target_profit_margin"`
	MachineHourRate         float64            `json:"machine_hour_rate"`
	FixedCosts              []FixedCostRequest `json:"fixed_costs" binding:"dive"`
	Equipment               []EquipmentRequest `json:"equipment" binding:"dive"`
}

type FixedCostRequest struct {
	Name          string  `json:"name" binding:"required"`
	MonthlyAmount float64 `json:"monthly_amount" binding:"min=0"`
}

type EquipmentRequest struct {
	Name             string  `json:"name" binding:"required"`
	PurchaseValue    float64 `json:"purchase_value" binding:"min=0"`
	UsefulLifeMonths int     `json:"useful_life_months" binding:"min=0"`
}
