package pricing

import (
	"sort"

	"github.com/sangkips/printshop-api/internal/domain/enum"
)

// Panel is one vehicle surface in meters. Estimates already include bleed.
type Panel struct {
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

func (p Panel) Area() float64 {
	return p.Width * p.Height
}

// SelectablePanels returns the sorted names of panels with positive area.
func SelectablePanels(panels map[string]Panel) []string {
	names := make([]string, 0, len(panels))
	for name, p := range panels {
		if p.Width > 0 && p.Height > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

type VehiclePriceInput struct {
	Panels        map[string]Panel    `json:"panels"`
	Selected      []string            `json:"selected"`
	Complexity    enum.ComplexityTier `json:"complexity"`
	Material      enum.MaterialTier   `json:"material"`
	BaseRatePerM2 float64             `json:"base_rate_per_m2"`
}

type VehiclePriceResult struct {
	Parts          []string `json:"parts"`
	SelectedAreaM2 float64  `json:"selected_area_m2"`
	RateMultiplier float64  `json:"rate_multiplier"`
	EffectiveRate  float64  `json:"effective_rate"`
	Total          float64  `json:"total"`
}

// ComputeVehiclePrice sums the area of the selected panels and applies the
// tier multipliers to the base rate. Unknown, duplicate and non-positive
// panels are skipped, and the sum runs in name order so the result does not
// depend on selection order. An unknown tier contributes a zero factor.
func ComputeVehiclePrice(in VehiclePriceInput) VehiclePriceResult {
	seen := make(map[string]struct{}, len(in.Selected))
	parts := make([]string, 0, len(in.Selected))
	for _, name := range in.Selected {
		p, ok := in.Panels[name]
		if !ok || p.Width <= 0 || p.Height <= 0 {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		parts = append(parts, name)
	}
	sort.Strings(parts)

	res := VehiclePriceResult{Parts: parts}
	for _, name := range parts {
		res.SelectedAreaM2 += in.Panels[name].Area()
	}

	complexity, _ := in.Complexity.Factor()
	material, _ := in.Material.Factor()
	res.RateMultiplier = complexity * material
	res.EffectiveRate = in.BaseRatePerM2 * res.RateMultiplier
	res.Total = res.EffectiveRate * res.SelectedAreaM2
	return res
}
