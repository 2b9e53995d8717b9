package assistant

import (
	"context"
	"strings"
)

// catalogEstimator answers from a fixed table keyed by "make model".
// Year is ignored; body panels rarely change between model years.
type catalogEstimator struct {
	vehicles map[string]map[string]PanelSize
}

// NewCatalogEstimator estimates from vehicles, keyed by lowercase "make model".
func NewCatalogEstimator(vehicles map[string]map[string]PanelSize) VehiclePanelEstimator {
	normalized := make(map[string]map[string]PanelSize, len(vehicles))
	for k, v := range vehicles {
		normalized[vehicleKey(k, "")] = v
	}
	return &catalogEstimator{vehicles: normalized}
}

func (e *catalogEstimator) Estimate(ctx context.Context, vehicleMake, model string, year int) (map[string]PanelSize, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	panels, ok := e.vehicles[vehicleKey(vehicleMake, model)]
	if !ok {
		return nil, nil
	}
	out := make(map[string]PanelSize, len(panels))
	for name, p := range panels {
		out[name] = p
	}
	return out, nil
}

func vehicleKey(vehicleMake, model string) string {
	return strings.Join(strings.Fields(strings.ToLower(vehicleMake+" "+model)), " ")
}

// DefaultVehicleCatalog holds panel sizes, with 5 cm bleed, for a few
// common utility vehicles.
func DefaultVehicleCatalog() map[string]map[string]PanelSize {
	return map[string]map[string]PanelSize{
		"fiat strada": {
			"capo":                 {W: 1.35, H: 0.95},
			"teto":                 {W: 1.25, H: 1.10},
			"porta_esquerda":       {W: 1.10, H: 0.75},
			"porta_direita":        {W: 1.10, H: 0.75},
			"lateral_cacamba_e":    {W: 1.60, H: 0.55},
			"lateral_cacamba_d":    {W: 1.60, H: 0.55},
			"tampa_cacamba":        {W: 1.40, H: 0.50},
			"parachoque_dianteiro": {W: 1.65, H: 0.35},
		},
		"volkswagen saveiro": {
			"capo":              {W: 1.30, H: 0.90},
			"teto":              {W: 1.20, H: 1.05},
			"porta_esquerda":    {W: 1.15, H: 0.80},
			"porta_direita":     {W: 1.15, H: 0.80},
			"lateral_cacamba_e": {W: 1.55, H: 0.55},
			"lateral_cacamba_d": {W: 1.55, H: 0.55},
			"tampa_cacamba":     {W: 1.35, H: 0.50},
		},
		"fiat fiorino": {
			"capo":           {W: 1.20, H: 0.85},
			"teto":           {W: 2.30, H: 1.30},
			"lateral_e":      {W: 2.45, H: 1.10},
			"lateral_d":      {W: 2.45, H: 1.10},
			"porta_traseira": {W: 1.25, H: 1.05},
		},
		"renault master": {
			"capo":             {W: 1.45, H: 0.70},
			"teto":             {W: 3.80, H: 1.80},
			"lateral_e":        {W: 3.70, H: 1.70},
			"lateral_d":        {W: 3.70, H: 1.70},
			"portas_traseiras": {W: 1.60, H: 1.65},
		},
	}
}
