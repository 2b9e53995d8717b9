package enum

// ComplexityTier describes how hard a vehicle is to wrap.
type ComplexityTier string

const (
	ComplexityLow    ComplexityTier = "Baixa"
	ComplexityMedium ComplexityTier = "Média"
	ComplexityHigh   ComplexityTier = "Alta"
)

var complexityFactors = map[ComplexityTier]float64{
	ComplexityLow:    1.0,
	ComplexityMedium: 1.25,
	ComplexityHigh:   1.6,
}

// Factor returns the rate multiplier, and false for an unknown tier.
func (c ComplexityTier) Factor() (float64, bool) {
	f, ok := complexityFactors[c]
	return f, ok
}

// MaterialTier is the wrap film grade.
type MaterialTier string

const (
	MaterialStandard    MaterialTier = "Standard"
	MaterialPerformance MaterialTier = "Performance"
	MaterialPremium     MaterialTier = "Premium"
)

var materialFactors = map[MaterialTier]float64{
	MaterialStandard:    1.0,
	MaterialPerformance: 1.4,
	MaterialPremium:     2.2,
}

// Factor returns the rate multiplier, and false for an unknown tier.
func (m MaterialTier) Factor() (float64, bool) {
	f, ok := materialFactors[m]
	return f, ok
}
