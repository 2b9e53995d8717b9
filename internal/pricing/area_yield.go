package pricing

import (
	"math"

	"github.com/sangkips/printshop-api/internal/domain/enum"
)

// AreaYieldInput describes a sticker/label job. Unit dimensions are in cm,
// the gap in mm, the roll and target area in meters.
type AreaYieldInput struct {
	Mode              enum.StickerMode `json:"mode"`
	UnitWidthCm       float64          `json:"unit_width_cm"`
	UnitHeightCm      float64          `json:"unit_height_cm"`
	GapMm             float64          `json:"gap_mm"`
	RollWidthM        float64          `json:"roll_width_m"`
	PricePerM2        float64          `json:"price_per_m2"`
	TargetQuantity    int              `json:"target_quantity"`
	TargetAreaWidthM  float64          `json:"target_area_width_m"`
	TargetAreaHeightM float64          `json:"target_area_height_m"`
}

type AreaYieldResult struct {
	Mode         enum.StickerMode `json:"mode"`
	ColsPerRow   int              `json:"cols_per_row"`
	RowsNeeded   int              `json:"rows_needed"`
	LinearMeters float64          `json:"linear_meters"`
	FinalAreaM2  float64          `json:"final_area_m2"`
	TotalLabels  int              `json:"total_labels"`
	UnitPrice    float64          `json:"unit_price"`
	Subtotal     float64          `json:"subtotal"`
}

// Feasible reports whether the result can be added to a cart.
func (r AreaYieldResult) Feasible() bool {
	return r.ColsPerRow > 0 && r.TotalLabels > 0
}

// ComputeAreaYield nests units on a roll. In quantity mode it solves the
// roll length needed for TargetQuantity; in area mode it counts how many
// units fit in the target rectangle. A unit that does not fit across the
// roll yields an all-zero result.
func ComputeAreaYield(in AreaYieldInput) AreaYieldResult {
	res := AreaYieldResult{Mode: in.Mode}

	wCm := in.UnitWidthCm + in.GapMm/10
	hCm := in.UnitHeightCm + in.GapMm/10
	rollWidthCm := in.RollWidthM * 100
	if wCm <= 0 || hCm <= 0 || rollWidthCm <= 0 {
		return res
	}

	cols := int(math.Floor(rollWidthCm / wCm))
	if cols <= 0 {
		return res
	}
	res.ColsPerRow = cols

	switch in.Mode {
	case enum.StickerModeArea:
		colsInArea := floorNonNegative(in.TargetAreaWidthM * 100 / wCm)
		rowsInArea := floorNonNegative(in.TargetAreaHeightM * 100 / hCm)
		res.RowsNeeded = rowsInArea
		res.TotalLabels = colsInArea * rowsInArea
		res.FinalAreaM2 = math.Max(in.TargetAreaWidthM, 0) * math.Max(in.TargetAreaHeightM, 0)
	default:
		res.Mode = enum.StickerModeQuantity
		if in.TargetQuantity <= 0 {
			return res
		}
		res.RowsNeeded = (in.TargetQuantity + cols - 1) / cols
		res.LinearMeters = float64(res.RowsNeeded) * hCm / 100
		res.FinalAreaM2 = res.LinearMeters * in.RollWidthM
		res.TotalLabels = in.TargetQuantity
	}

	res.UnitPrice = in.PricePerM2
	res.Subtotal = in.PricePerM2 * res.FinalAreaM2
	return res
}

func floorNonNegative(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Floor(v))
}
