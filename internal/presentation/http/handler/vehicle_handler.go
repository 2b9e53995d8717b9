package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/printshop-api/internal/application/service"
	"github.com/sangkips/printshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/printshop-api/internal/presentation/http/dto/response"
)

// VehicleHandler handles vehicle panel estimation
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) Estimate(c *gin.Context) {
	var req request.VehicleEstimateRequest
	if !bindJSON(c, &req) {
		return
	}

	est, err := h.vehicleService.Estimate(c.Request.Context(), req.Make, req.Model, req.Year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle panels estimated", est)
}

func (h *VehicleHandler) SelectablePanels(c *gin.Context) {
	var req request.SelectablePanelsRequest
	if !bindJSON(c, &req) {
		return
	}

	response.OK(c, "Selectable panels", gin.H{"selectable": h.vehicleService.SelectablePanels(req.Panels)})
}
