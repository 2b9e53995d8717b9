package pricing

// Ledger is anything with a revenue total and a production cost, such as an
// in-progress cart or a stored quote.
type Ledger interface {
	Total() float64
	ProductionCost() float64
}

type Indicators struct {
	Revenue                float64 `json:"revenue"`
	TaxAmount              float64 `json:"tax_amount"`
	CommissionAmount       float64 `json:"commission_amount"`
	ContributionMargin     float64 `json:"contribution_margin"`
	ProductionCost         float64 `json:"production_cost"`
	ProfitAmount           float64 `json:"profit_amount"`
	EffectiveMarginPercent float64 `json:"effective_margin_percent"`
	TargetMarginPercent    float64 `json:"target_margin_percent"`
	MarginGap              float64 `json:"margin_gap"`
}

// ComputeIndicators derives the review KPIs for a ledger.
func ComputeIndicators(l Ledger, rates Rates) Indicators {
	ind := Indicators{
		Revenue:             l.Total(),
		ProductionCost:      l.ProductionCost(),
		TargetMarginPercent: rates.TargetProfitMargin,
	}
	ind.TaxAmount = ind.Revenue * rates.TaxPercent / 100
	ind.CommissionAmount = ind.Revenue * rates.CommissionPercent / 100
	ind.ContributionMargin = ind.Revenue - ind.TaxAmount - ind.CommissionAmount
	ind.ProfitAmount = ind.ContributionMargin - ind.ProductionCost
	if ind.Revenue != 0 {
		ind.EffectiveMarginPercent = ind.ProfitAmount / ind.Revenue * 100
	}
	ind.MarginGap = ind.EffectiveMarginPercent - ind.TargetMarginPercent
	return ind
}
