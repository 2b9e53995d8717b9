package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/printshop-api/internal/application/service"
	"github.com/sangkips/printshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/printshop-api/internal/presentation/http/dto/response"
)

// FinancialConfigHandler exposes the shop pricing configuration
type FinancialConfigHandler struct {
	configService *service.FinancialConfigService
}

// NewFinancialConfigHandler creates a new financial config handler
func NewFinancialConfigHandler(configService *service.FinancialConfigService) *FinancialConfigHandler {
	return &FinancialConfigHandler{configService: configService}
}

// Get returns the configuration with derived hourly cost
func (h *FinancialConfigHandler) Get(c *gin.Context) {
	cfg, err := h.configService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Financial config retrieved successfully", cfg)
}

// Update replaces the configuration, fixed costs and equipment included
func (h *FinancialConfigHandler) Update(c *gin.Context) {
	var req request.FinancialConfigRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateFinancialConfigInput{
		ProductiveHoursPerMonth: req.ProductiveHoursPerMonth,
		TaxPercent:              req.TaxPercent,
		CommissionPercent:       req.CommissionPercent,
		TargetProfitMargin:      req.TargetProfitMargin,
		MachineHourRate:         req.MachineHourRate,
	}
	for _, fc := range req.FixedCosts {
		input.FixedCosts = append(input.FixedCosts, service.FixedCostInput{Name: fc.Name, MonthlyAmount: fc.MonthlyAmount})
	}
	for _, e := range req.Equipment {
		input.Equipment = append(input.Equipment, service.EquipmentInput{
			Name:             e.Name,
			PurchaseValue:    e.PurchaseValue,
			UsefulLifeMonths: e.UsefulLifeMonths,
		})
	}

	cfg, err := h.configService.Update(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Financial config updated successfully", cfg)
}
