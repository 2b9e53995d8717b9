package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/printshop-api/internal/application/service"
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"github.com/sangkips/printshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/printshop-api/internal/presentation/http/dto/response"
)

// CalculatorHandler runs the pricing calculators without touching a cart
type CalculatorHandler struct {
	calculator *service.CalculatorService
}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler(calculator *service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculator: calculator}
}

func (h *CalculatorHandler) Sticker(c *gin.Context) {
	var req request.StickerCalculatorRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.calculator.Sticker(c.Request.Context(), req.ProductID, stickerRequest(&req.StickerInput))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sticker yield calculated", gin.H{"result": res, "feasible": res.Feasible()})
}

func (h *CalculatorHandler) Laser(c *gin.Context) {
	var req request.LaserCalculatorRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.calculator.Laser(c.Request.Context(), req.ProductID, laserRequest(&req.LaserInput))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Machine cost calculated", res)
}

func (h *CalculatorHandler) Vehicle(c *gin.Context) {
	var req request.VehicleCalculatorRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.calculator.Vehicle(c.Request.Context(), req.ProductID, vehicleRequest(&req.VehicleInput))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle wrap priced", res)
}

func (h *CalculatorHandler) Standard(c *gin.Context) {
	var req request.StandardCalculatorRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.calculator.Standard(c.Request.Context(), req.ProductID, &service.StandardRequest{
		Quantity: req.Quantity,
		Width:    req.Width,
		Height:   req.Height,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line priced", res)
}

func stickerRequest(in *request.StickerInput) *service.StickerRequest {
	if in == nil {
		return nil
	}
	return &service.StickerRequest{
		Mode:              enum.StickerMode(in.Mode),
		UnitWidthCm:       in.UnitWidthCm,
		UnitHeightCm:      in.UnitHeightCm,
		GapMm:             in.GapMm,
		RollWidthM:        in.RollWidthM,
		PricePerM2:        in.PricePerM2,
		TargetQuantity:    in.TargetQuantity,
		TargetAreaWidthM:  in.TargetAreaWidthM,
		TargetAreaHeightM: in.TargetAreaHeightM,
	}
}

func laserRequest(in *request.LaserInput) *service.LaserRequest {
	if in == nil {
		return nil
	}
	return &service.LaserRequest{
		Mode:               enum.LaserMode(in.Mode),
		Material:           in.Material,
		MachineTimeMinutes: in.MachineTimeMinutes,
		AreaWidthM:         in.AreaWidthM,
		AreaHeightM:        in.AreaHeightM,
		PricePerM2:         in.PricePerM2,
		SetupFee:           in.SetupFee,
		Quantity:           in.Quantity,
		SupplyProduct:      in.SupplyProduct,
		BaseCost:           in.BaseCost,
		SuggestedMarkup:    in.SuggestedMarkup,
	}
}

func vehicleRequest(in *request.VehicleInput) *service.VehicleRequest {
	if in == nil {
		return nil
	}
	return &service.VehicleRequest{
		Vehicle:       in.Vehicle,
		Panels:        in.Panels,
		Selected:      in.Selected,
		Complexity:    enum.ComplexityTier(in.Complexity),
		Material:      enum.MaterialTier(in.Material),
		BaseRatePerM2: in.BaseRatePerM2,
	}
}
