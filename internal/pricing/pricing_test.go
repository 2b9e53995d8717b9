package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/printshop-api/internal/domain/enum"
)

const tolerance = 1e-9

func TestComputeSalePriceScenarioA(t *testing.T) {
	rates := Rates{TargetProfitMargin: 20, TaxPercent: 6, CommissionPercent: 3}
	b := BreakdownSalePrice(10, 10, 5, 20, rates)

	assert.InDelta(t, 10.5, b.CostWithWaste, tolerance)
	assert.InDelta(t, 3.3333333, b.OperationalCost, 1e-6)
	assert.InDelta(t, 13.8333333, b.ProductionCost, 1e-6)
	assert.InDelta(t, 0.71, b.Divisor, tolerance)
	assert.False(t, b.FallbackApplied)
	assert.InDelta(t, 19.48, b.Price, 0.01)
	assert.Equal(t, b.Price, ComputeSalePrice(10, 10, 5, 20, rates))
}

func TestComputeSalePriceRoundTrip(t *testing.T) {
	cases := []struct {
		cost, minutes, waste, perHour float64
		rates                         Rates
	}{
		{10, 10, 5, 20, Rates{20, 6, 3}},
		{0, 0, 0, 0, Rates{0, 0, 0}},
		{125.4, 90, 12, 37.5, Rates{40, 18, 10}},
		{3.2, 1, 0, 80, Rates{60, 30, 8.9}},
		{99, 240, 30, 12, Rates{10, 0, 0}},
	}
	for _, tc := range cases {
		price := ComputeSalePrice(tc.cost, tc.minutes, tc.waste, tc.perHour, tc.rates)
		prodCost := tc.cost*(1+tc.waste/100) + (tc.minutes/60)*tc.perHour
		assert.InDelta(t, prodCost, price*(1-tc.rates.Stack()/100), 1e-6, "%+v", tc)
	}
}

func TestComputeSalePriceFallbackMarkup(t *testing.T) {
	for _, rates := range []Rates{
		{60, 30, 9},
		{70, 20, 10},
		{90, 18, 10},
	} {
		b := BreakdownSalePrice(10, 10, 5, 20, rates)
		assert.True(t, b.FallbackApplied, "%+v", rates)
		assert.Equal(t, 2*b.ProductionCost, b.Price, "%+v", rates)
	}
}

func TestCostPerHour(t *testing.T) {
	assert.Equal(t, 0.0, CostPerHour(5000, 300, 0))
	assert.Equal(t, 0.0, CostPerHour(5000, 300, -10))
	assert.InDelta(t, 30.0, CostPerHour(4500, 300, 160), tolerance)
}

func TestComputeAreaYieldScenarioB(t *testing.T) {
	res := ComputeAreaYield(AreaYieldInput{
		Mode:           enum.StickerModeQuantity,
		UnitWidthCm:    5,
		UnitHeightCm:   5,
		GapMm:          3,
		RollWidthM:     1.2,
		PricePerM2:     100,
		TargetQuantity: 100,
	})

	assert.Equal(t, 22, res.ColsPerRow)
	assert.Equal(t, 5, res.RowsNeeded)
	assert.InDelta(t, 0.265, res.LinearMeters, tolerance)
	assert.InDelta(t, 0.318, res.FinalAreaM2, tolerance)
	assert.Equal(t, 100, res.TotalLabels)
	assert.Equal(t, 100.0, res.UnitPrice)
	assert.InDelta(t, 31.8, res.Subtotal, 1e-6)
	assert.True(t, res.Feasible())
}

func TestComputeAreaYieldInfeasible(t *testing.T) {
	for _, in := range []AreaYieldInput{
		{Mode: enum.StickerModeQuantity, UnitWidthCm: 119.8, UnitHeightCm: 5, GapMm: 3, RollWidthM: 1.2, TargetQuantity: 10},
		{Mode: enum.StickerModeArea, UnitWidthCm: 60, UnitHeightCm: 5, GapMm: 3, RollWidthM: 0.5, TargetAreaWidthM: 1, TargetAreaHeightM: 1},
		{Mode: enum.StickerModeQuantity, UnitWidthCm: 5, UnitHeightCm: 5, RollWidthM: 0, TargetQuantity: 10},
	} {
		res := ComputeAreaYield(in)
		assert.Equal(t, 0, res.ColsPerRow)
		assert.Equal(t, 0, res.TotalLabels)
		assert.Equal(t, 0.0, res.Subtotal)
		assert.False(t, res.Feasible())
	}
}

func TestComputeAreaYieldNeverUnderProvisions(t *testing.T) {
	for qty := 1; qty <= 500; qty += 7 {
		for _, w := range []float64{1, 2.5, 5, 9.7, 30} {
			res := ComputeAreaYield(AreaYieldInput{
				Mode:           enum.StickerModeQuantity,
				UnitWidthCm:    w,
				UnitHeightCm:   4,
				GapMm:          2,
				RollWidthM:     0.6,
				TargetQuantity: qty,
			})
			require.Positive(t, res.ColsPerRow)
			assert.GreaterOrEqual(t, res.RowsNeeded*res.ColsPerRow, qty)
			assert.GreaterOrEqual(t, res.TotalLabels, 0)
		}
	}
}

func TestComputeAreaYieldAreaMode(t *testing.T) {
	res := ComputeAreaYield(AreaYieldInput{
		Mode:              enum.StickerModeArea,
		UnitWidthCm:       9.5,
		UnitHeightCm:      4.5,
		GapMm:             5,
		RollWidthM:        1.0,
		PricePerM2:        40,
		TargetAreaWidthM:  1,
		TargetAreaHeightM: 0.5,
	})

	// 10cm x 5cm cells in a 100cm x 50cm rectangle
	assert.Equal(t, 100, res.TotalLabels)
	assert.InDelta(t, 0.5, res.FinalAreaM2, tolerance)
	assert.InDelta(t, 20.0, res.Subtotal, tolerance)
}

func TestComputeMachineCostScenarioC(t *testing.T) {
	res := ComputeMachineCost(MachineCostInput{
		Mode:               enum.LaserModeCut,
		MachineTimeMinutes: 10,
		MachineHourRate:    120,
		AreaWidthM:         1,
		AreaHeightM:        0.5,
		PricePerM2:         50,
		SetupFee:           20,
	})

	assert.InDelta(t, 20.0, res.TimeCost, tolerance)
	assert.InDelta(t, 25.0, res.MaterialCost, tolerance)
	assert.InDelta(t, 65.0, res.Total, tolerance)

	engrave := ComputeMachineCost(MachineCostInput{
		Mode:               enum.LaserModeEngrave,
		MachineTimeMinutes: 10,
		AreaWidthM:         1,
		AreaHeightM:        0.5,
		PricePerM2:         50,
		SetupFee:           20,
	})
	assert.InDelta(t, res.Total, engrave.Total, tolerance, "engrave prices like cut at the default rate")
}

func TestComputeMachineCostPromotional(t *testing.T) {
	res := ComputeMachineCost(MachineCostInput{
		Mode:               enum.LaserModePromotional,
		MachineTimeMinutes: 1.5,
		MachineHourRate:    120,
		SetupFee:           15,
		Quantity:           50,
		SupplyProduct:      true,
		BaseCost:           4,
		SuggestedMarkup:    1.5,
		AreaWidthM:         2,
		AreaHeightM:        2,
		PricePerM2:         100,
	})

	assert.InDelta(t, 6.0, res.UnitProductCost, tolerance)
	assert.InDelta(t, 3.0, res.UnitEngraveCost, tolerance)
	assert.Equal(t, 0.0, res.MaterialCost)
	assert.InDelta(t, 465.0, res.Total, tolerance)

	customerSupplied := ComputeMachineCost(MachineCostInput{
		Mode:               enum.LaserModePromotional,
		MachineTimeMinutes: 1.5,
		SetupFee:           15,
		Quantity:           50,
		BaseCost:           4,
		SuggestedMarkup:    1.5,
	})
	assert.Equal(t, 0.0, customerSupplied.UnitProductCost)
	assert.InDelta(t, 165.0, customerSupplied.Total, tolerance)
}

func scenarioDPanels() map[string]Panel {
	return map[string]Panel{
		"capo":          {Width: 1.35, Height: 0.95},
		"porta_esq":     {Width: 1.0, Height: 0.6},
		"teto":          {Width: 1.8, Height: 1.2},
		"retrovisor":    {Width: 0, Height: 0.2},
		"parachoque_tr": {Width: -1, Height: 0.4},
	}
}

func TestComputeVehiclePriceScenarioD(t *testing.T) {
	res := ComputeVehiclePrice(VehiclePriceInput{
		Panels:        scenarioDPanels(),
		Selected:      []string{"capo", "porta_esq"},
		Complexity:    enum.ComplexityMedium,
		Material:      enum.MaterialPerformance,
		BaseRatePerM2: 80,
	})

	assert.InDelta(t, 1.8825, res.SelectedAreaM2, tolerance)
	assert.InDelta(t, 1.75, res.RateMultiplier, tolerance)
	assert.InDelta(t, 140.0, res.EffectiveRate, tolerance)
	assert.InDelta(t, 263.55, res.Total, 1e-6)
	assert.Equal(t, []string{"capo", "porta_esq"}, res.Parts)
}

func TestComputeVehiclePriceCommutative(t *testing.T) {
	panels := scenarioDPanels()
	in := VehiclePriceInput{Panels: panels, Complexity: enum.ComplexityHigh, Material: enum.MaterialPremium, BaseRatePerM2: 95}

	in.Selected = []string{"teto", "capo", "porta_esq"}
	a := ComputeVehiclePrice(in)
	in.Selected = []string{"porta_esq", "teto", "capo"}
	b := ComputeVehiclePrice(in)

	assert.Equal(t, a.SelectedAreaM2, b.SelectedAreaM2)
	assert.Equal(t, a.Total, b.Total)
}

func TestComputeVehiclePriceMonotonic(t *testing.T) {
	panels := scenarioDPanels()
	in := VehiclePriceInput{Panels: panels, Complexity: enum.ComplexityLow, Material: enum.MaterialStandard, BaseRatePerM2: 80}

	var selected []string
	prev := 0.0
	for _, name := range []string{"capo", "retrovisor", "porta_esq", "parachoque_tr", "teto", "desconhecido"} {
		selected = append(selected, name)
		in.Selected = selected
		total := ComputeVehiclePrice(in).Total
		assert.GreaterOrEqual(t, total, prev, "after adding %s", name)
		prev = total
	}
}

func TestComputeVehiclePriceSkipsDegenerateSelections(t *testing.T) {
	res := ComputeVehiclePrice(VehiclePriceInput{
		Panels:        scenarioDPanels(),
		Selected:      []string{"retrovisor", "parachoque_tr", "nope", "capo", "capo"},
		Complexity:    enum.ComplexityLow,
		Material:      enum.MaterialStandard,
		BaseRatePerM2: 10,
	})
	assert.Equal(t, []string{"capo"}, res.Parts)
	assert.InDelta(t, 12.825, res.Total, 1e-9)

	unknownTier := ComputeVehiclePrice(VehiclePriceInput{
		Panels:        scenarioDPanels(),
		Selected:      []string{"capo"},
		Complexity:    "Extreme",
		Material:      enum.MaterialStandard,
		BaseRatePerM2: 10,
	})
	assert.Equal(t, 0.0, unknownTier.Total)
}

func TestSelectablePanels(t *testing.T) {
	assert.Equal(t, []string{"capo", "porta_esq", "teto"}, SelectablePanels(scenarioDPanels()))
	assert.Empty(t, SelectablePanels(nil))
}

func TestResolveMode(t *testing.T) {
	assert.Equal(t, enum.CalculatorModeLaser, ResolveMode(enum.CalculatorModeLaser, enum.CalculatorModeSticker, "adesivo"))
	assert.Equal(t, enum.CalculatorModeSticker, ResolveMode("", enum.CalculatorModeSticker, "envelopamento"))
	assert.Equal(t, enum.CalculatorModeLaser, ResolveMode("", "", "  Gravação "))
	assert.Equal(t, enum.CalculatorModeSticker, ResolveMode("", "", "Rótulo"))
	assert.Equal(t, enum.CalculatorModeAutomotive, ResolveMode("", "", "ENVELOPAMENTO"))
	assert.Equal(t, enum.CalculatorModeStandard, ResolveMode("", "", "adesivo de parede"))
	assert.Equal(t, enum.CalculatorModeStandard, ResolveMode("bogus", "", "banner"))
}

func TestStandardBillableQuantity(t *testing.T) {
	assert.InDelta(t, 6.0, StandardBillableQuantity(enum.UnitTypeSquareMeter, 2, 1.5, 2), tolerance)
	assert.InDelta(t, 4.5, StandardBillableQuantity(enum.UnitTypeLinearMeter, 3, 1.5, 9), tolerance)
	assert.Equal(t, 7.0, StandardBillableQuantity(enum.UnitTypeUnit, 7, 1.5, 2))
	assert.Equal(t, 0.0, StandardBillableQuantity(enum.UnitTypeUnit, 0, 1, 1))
}

type fixedLedger struct{ total, cost float64 }

func (l fixedLedger) Total() float64          { return l.total }
func (l fixedLedger) ProductionCost() float64 { return l.cost }

func TestComputeIndicators(t *testing.T) {
	ind := ComputeIndicators(fixedLedger{total: 1000, cost: 400}, Rates{TargetProfitMargin: 20, TaxPercent: 6, CommissionPercent: 3})

	assert.InDelta(t, 1000.0, ind.Revenue, tolerance)
	assert.InDelta(t, 60.0, ind.TaxAmount, tolerance)
	assert.InDelta(t, 30.0, ind.CommissionAmount, tolerance)
	assert.InDelta(t, 910.0, ind.ContributionMargin, tolerance)
	assert.InDelta(t, 510.0, ind.ProfitAmount, tolerance)
	assert.InDelta(t, 51.0, ind.EffectiveMarginPercent, tolerance)
	assert.InDelta(t, 31.0, ind.MarginGap, tolerance)
}

func TestComputeIndicatorsZeroRevenue(t *testing.T) {
	ind := ComputeIndicators(fixedLedger{}, Rates{TargetProfitMargin: 25})
	assert.Equal(t, 0.0, ind.EffectiveMarginPercent)
	assert.Equal(t, -25.0, ind.MarginGap)
}
