package entity

import (
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"github.com/sangkips/printshop-api/internal/pricing"
)

// The constructors below turn calculator output into cart lines. Each one
// fixes the billable quantity its mode charges for.

// NewStandardItem bills quantity × area (m2), quantity × width (ml) or
// quantity (un) at the product's sale price.
func NewStandardItem(p *Product, quantity int, widthM, heightM float64) QuoteItem {
	billable := pricing.StandardBillableQuantity(p.UnitType, quantity, widthM, heightM)
	return QuoteItem{
		ProductID:             p.ID,
		ProductName:           p.Name,
		Mode:                  enum.CalculatorModeStandard,
		Quantity:              quantity,
		Width:                 widthM,
		Height:                heightM,
		UnitPrice:             p.SalePrice,
		Subtotal:              p.SalePrice * billable,
		Billable:              billable,
		UnitCost:              p.CostPrice,
		ProductionTimeMinutes: p.ProductionTimeMinutes * float64(quantity),
	}
}

// NewStickerItem stores the m² rate as unit price and bills the final area.
func NewStickerItem(p *Product, in pricing.AreaYieldInput, res pricing.AreaYieldResult) QuoteItem {
	return QuoteItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Mode:        enum.CalculatorModeSticker,
		Quantity:    1,
		Width:       in.UnitWidthCm / 100,
		Height:      in.UnitHeightCm / 100,
		UnitPrice:   res.UnitPrice,
		Subtotal:    res.Subtotal,
		Billable:    res.FinalAreaM2,
		LabelData: LabelData{Label: &StickerLabel{
			Mode:         res.Mode,
			UnitWidthCm:  in.UnitWidthCm,
			UnitHeightCm: in.UnitHeightCm,
			GapMm:        in.GapMm,
			RollWidthM:   in.RollWidthM,
			ColsPerRow:   res.ColsPerRow,
			RowsNeeded:   res.RowsNeeded,
			LinearMeters: res.LinearMeters,
			TotalLabels:  res.TotalLabels,
			AreaM2:       res.FinalAreaM2,
		}},
		UnitCost:              p.CostPrice,
		ProductionTimeMinutes: p.ProductionTimeMinutes,
	}
}

// NewLaserItem is a fixed-price line: unit price and subtotal are the
// machine total, quantity and billable quantity are 1. The piece count of a
// promotional batch lives in the label.
func NewLaserItem(p *Product, in pricing.MachineCostInput, res pricing.MachineCostResult) QuoteItem {
	cost := p.CostPrice * in.AreaWidthM * in.AreaHeightM
	if res.Mode == enum.LaserModePromotional {
		cost = 0
		if in.SupplyProduct {
			cost = in.BaseCost * float64(in.Quantity)
		}
	}
	return QuoteItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Mode:        enum.CalculatorModeLaser,
		Quantity:    1,
		Width:       in.AreaWidthM,
		Height:      in.AreaHeightM,
		UnitPrice:   res.Total,
		Subtotal:    res.Total,
		Billable:    1,
		LabelData: LabelData{Label: &LaserLabel{
			Mode:               res.Mode,
			Material:           in.Material,
			MachineTimeMinutes: in.MachineTimeMinutes,
			SetupFee:           in.SetupFee,
			Quantity:           in.Quantity,
			TimeCost:           res.TimeCost,
			MaterialCost:       res.MaterialCost,
			UnitProductCost:    res.UnitProductCost,
			UnitEngraveCost:    res.UnitEngraveCost,
		}},
		UnitCost:              cost,
		ProductionTimeMinutes: in.MachineTimeMinutes,
	}
}

// NewWrapItem stores the tiered m² rate as unit price and bills the
// selected panel area.
func NewWrapItem(p *Product, vehicle string, in pricing.VehiclePriceInput, res pricing.VehiclePriceResult) QuoteItem {
	return QuoteItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Mode:        enum.CalculatorModeAutomotive,
		Quantity:    1,
		UnitPrice:   res.EffectiveRate,
		Subtotal:    res.Total,
		Billable:    res.SelectedAreaM2,
		LabelData: LabelData{Label: &WrapLabel{
			Vehicle:       vehicle,
			Parts:         append([]string(nil), res.Parts...),
			Complexity:    in.Complexity,
			MaterialLevel: in.Material,
			AreaM2:        res.SelectedAreaM2,
			EffectiveRate: res.EffectiveRate,
		}},
		UnitCost:              p.CostPrice,
		ProductionTimeMinutes: p.ProductionTimeMinutes,
	}
}
