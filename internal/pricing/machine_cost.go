package pricing

import "github.com/sangkips/printshop-api/internal/domain/enum"

// DefaultMachineHourRate is the laser/CNC rate used when none is configured.
const DefaultMachineHourRate = 120.0

type MachineCostInput struct {
	Mode               enum.LaserMode `json:"mode"`
	Material           string         `json:"material"`
	MachineTimeMinutes float64        `json:"machine_time_minutes"`
	MachineHourRate    float64        `json:"machine_hour_rate"`
	AreaWidthM         float64        `json:"area_width_m"`
	AreaHeightM        float64        `json:"area_height_m"`
	PricePerM2         float64        `json:"price_per_m2"`
	SetupFee           float64        `json:"setup_fee"`

	// promotional only
	Quantity        int     `json:"quantity"`
	SupplyProduct   bool    `json:"supply_product"`
	BaseCost        float64 `json:"base_cost"`
	SuggestedMarkup float64 `json:"suggested_markup"`
}

type MachineCostResult struct {
	Mode            enum.LaserMode `json:"mode"`
	TimeCost        float64        `json:"time_cost"`
	MaterialCost    float64        `json:"material_cost"`
	UnitProductCost float64        `json:"unit_product_cost"`
	UnitEngraveCost float64        `json:"unit_engrave_cost"`
	SetupFee        float64        `json:"setup_fee"`
	Total           float64        `json:"total"`
}

// ComputeMachineCost prices machine time. Cut and engrave charge time,
// material area and setup. Promotional charges the per-unit product and
// engraving cost times quantity, plus setup once.
func ComputeMachineCost(in MachineCostInput) MachineCostResult {
	rate := in.MachineHourRate
	if rate <= 0 {
		rate = DefaultMachineHourRate
	}
	perMinute := rate / 60
	res := MachineCostResult{Mode: in.Mode, SetupFee: in.SetupFee}

	if in.Mode == enum.LaserModePromotional {
		if in.SupplyProduct {
			res.UnitProductCost = in.BaseCost * in.SuggestedMarkup
		}
		res.UnitEngraveCost = in.MachineTimeMinutes * perMinute
		qty := in.Quantity
		if qty < 0 {
			qty = 0
		}
		res.Total = (res.UnitProductCost+res.UnitEngraveCost)*float64(qty) + in.SetupFee
		return res
	}

	if res.Mode == "" {
		res.Mode = enum.LaserModeCut
	}
	res.TimeCost = in.MachineTimeMinutes * perMinute
	res.MaterialCost = in.AreaWidthM * in.AreaHeightM * in.PricePerM2
	res.Total = res.TimeCost + res.MaterialCost + in.SetupFee
	return res
}
