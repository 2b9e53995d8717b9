package service

import (
	"context"

	"github.com/sangkips/printshop-api/internal/domain/entity"
	"github.com/sangkips/printshop-api/internal/domain/repository"
	"github.com/sangkips/printshop-api/pkg/apperror"
	"github.com/sangkips/printshop-api/pkg/logger"
	"go.uber.org/zap"
)

// FinancialConfigService owns the shop-wide pricing configuration
type FinancialConfigService struct {
	configRepo      repository.FinancialConfigRepository
	machineHourRate float64
}

// NewFinancialConfigService creates a new financial config service.
// machineHourRate seeds a fresh configuration.
func NewFinancialConfigService(configRepo repository.FinancialConfigRepository, machineHourRate float64) *FinancialConfigService {
	return &FinancialConfigService{
		configRepo:      configRepo,
		machineHourRate: machineHourRate,
	}
}

// MachineHourRate is the configured fallback laser/CNC rate.
func (s *FinancialConfigService) MachineHourRate() float64 {
	return s.machineHourRate
}

// Get returns the configuration, creating the defaults if none exists.
func (s *FinancialConfigService) Get(ctx context.Context) (entity.FinancialConfig, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return entity.FinancialConfig{}, err
	}

	if cfg == nil {
		cfg = &entity.FinancialConfig{
			ProductiveHoursPerMonth: 160,
			TaxPercent:              6,
			CommissionPercent:       3,
			TargetProfitMargin:      20,
			MachineHourRate:         s.machineHourRate,
		}
		cfg.HourlyRate = cfg.CostPerHour()
		if err := s.configRepo.Save(ctx, cfg); err != nil {
			return entity.FinancialConfig{}, err
		}
		logger.FromContext(ctx).Info("created default financial config", zap.String("id", cfg.ID.String()))
	}

	return *cfg, nil
}

type FixedCostInput struct {
	Name          string
	MonthlyAmount float64
}

type EquipmentInput struct {
	Name             string
	PurchaseValue    float64
	UsefulLifeMonths int
}

// UpdateFinancialConfigInput replaces the whole configuration.
type UpdateFinancialConfigInput struct {
	ProductiveHoursPerMonth float64
	TaxPercent              float64
	CommissionPercent       float64
	TargetProfitMargin      float64
	MachineHourRate         float64
	FixedCosts              []FixedCostInput
	Equipment               []EquipmentInput
}

// Update saves the configuration and caches the derived hourly rate.
// A percentage stack of 99 or more is accepted; pricing falls back to the
// 2x markup for it.
func (s *FinancialConfigService) Update(ctx context.Context, input *UpdateFinancialConfigInput) (entity.FinancialConfig, error) {
	var fieldErrors []apperror.FieldError
	check := func(field string, v float64) {
		if v < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: "must not be negative"})
		}
	}
	check("productive_hours_per_month", input.ProductiveHoursPerMonth)
	check("tax_percent", input.TaxPercent)
	check("commission_percent", input.CommissionPercent)
	check("target_profit_margin", input.TargetProfitMargin)
	check("machine_hour_rate", input.MachineHourRate)
	if len(fieldErrors) > 0 {
		return entity.FinancialConfig{}, apperror.NewValidationError(fieldErrors)
	}

	current, err := s.Get(ctx)
	if err != nil {
		return entity.FinancialConfig{}, err
	}

	cfg := current
	cfg.ProductiveHoursPerMonth = input.ProductiveHoursPerMonth
	cfg.TaxPercent = input.TaxPercent
	cfg.CommissionPercent = input.CommissionPercent
	cfg.TargetProfitMargin = input.TargetProfitMargin
	cfg.MachineHourRate = input.MachineHourRate

	cfg.FixedCosts = make([]entity.FixedCost, 0, len(input.FixedCosts))
	for _, fc := range input.FixedCosts {
		cfg.FixedCosts = append(cfg.FixedCosts, entity.FixedCost{Name: fc.Name, MonthlyAmount: fc.MonthlyAmount})
	}
	cfg.Equipment = make([]entity.Equipment, 0, len(input.Equipment))
	for _, e := range input.Equipment {
		cfg.Equipment = append(cfg.Equipment, entity.Equipment{Name: e.Name, PurchaseValue: e.PurchaseValue, UsefulLifeMonths: e.UsefulLifeMonths})
	}
	cfg.HourlyRate = cfg.CostPerHour()

	if err := s.configRepo.Save(ctx, &cfg); err != nil {
		return entity.FinancialConfig{}, err
	}

	logger.FromContext(ctx).Info("financial config updated",
		zap.Float64("hourly_rate", cfg.HourlyRate),
		zap.Float64("rate_stack", cfg.Rates().Stack()),
	)
	return cfg, nil
}
