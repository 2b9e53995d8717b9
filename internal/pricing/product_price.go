// Package pricing holds the pure quote calculators. Nothing here does I/O
// or reads shared state; every input arrives as an argument.
package pricing

// Rates is the percentage stack deducted from revenue.
type Rates struct {
	TargetProfitMargin float64 `json:"target_profit_margin"`
	TaxPercent         float64 `json:"tax_percent"`
	CommissionPercent  float64 `json:"commission_percent"`
}

// Stack is margin + tax + commission, in percent.
func (r Rates) Stack() float64 {
	return r.TargetProfitMargin + r.TaxPercent + r.CommissionPercent
}

const (
	// maxRateStack is the stack at or above which the margin inversion is
	// replaced by the flat markup.
	maxRateStack   = 99.0
	minDivisor     = 0.01
	fallbackMarkup = 2.0
)

// SalePriceBreakdown exposes the intermediate values of ComputeSalePrice.
type SalePriceBreakdown struct {
	CostWithWaste   float64 `json:"cost_with_waste"`
	OperationalCost float64 `json:"operational_cost"`
	ProductionCost  float64 `json:"production_cost"`
	Divisor         float64 `json:"divisor"`
	FallbackApplied bool    `json:"fallback_applied"`
	Price           float64 `json:"price"`
}

// BreakdownSalePrice back-solves a price so that, after tax, commission and
// target margin are taken out of it, the production cost is covered. A
// stack of 99% or more uses a 2x markup over production cost instead.
func BreakdownSalePrice(costPrice, productionTimeMinutes, wastePercent, costPerHour float64, rates Rates) SalePriceBreakdown {
	b := SalePriceBreakdown{
		CostWithWaste:   costPrice * (1 + wastePercent/100),
		OperationalCost: (productionTimeMinutes / 60) * costPerHour,
	}
	b.ProductionCost = b.CostWithWaste + b.OperationalCost

	stack := rates.Stack()
	b.Divisor = 1 - stack/100
	if stack >= maxRateStack || b.Divisor <= minDivisor {
		b.FallbackApplied = true
		b.Price = b.ProductionCost * fallbackMarkup
		return b
	}
	b.Price = b.ProductionCost / b.Divisor
	return b
}

// ComputeSalePrice returns the catalog sale price for a product.
func ComputeSalePrice(costPrice, productionTimeMinutes, wastePercent, costPerHour float64, rates Rates) float64 {
	return BreakdownSalePrice(costPrice, productionTimeMinutes, wastePercent, costPerHour, rates).Price
}

// CostPerHour spreads monthly fixed costs and depreciation over productive
// hours. Zero when hours is not positive.
func CostPerHour(fixedCosts, monthlyDepreciation, productiveHoursPerMonth float64) float64 {
	if productiveHoursPerMonth <= 0 {
		return 0
	}
	return (fixedCosts + monthlyDepreciation) / productiveHoursPerMonth
}
