package service

import (
	"context"
	"strings"

	"github.com/sangkips/printshop-api/internal/pricing"
	"github.com/sangkips/printshop-api/pkg/apperror"
	"github.com/sangkips/printshop-api/pkg/assistant"
	"github.com/sangkips/printshop-api/pkg/logger"
	"go.uber.org/zap"
)

// VehicleEstimate is an estimated panel breakdown for one vehicle.
type VehicleEstimate struct {
	Vehicle    string                   `json:"vehicle"`
	Panels     map[string]pricing.Panel `json:"panels"`
	Selectable []string                 `json:"selectable"`
}

// VehicleService wraps the panel estimator
type VehicleService struct {
	estimator assistant.VehiclePanelEstimator
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(estimator assistant.VehiclePanelEstimator) *VehicleService {
	return &VehicleService{estimator: estimator}
}

// Estimate asks the estimator for panel sizes. Estimator failures and empty
// answers surface as ErrEstimateUnavailable so the user can retry.
func (s *VehicleService) Estimate(ctx context.Context, vehicleMake, model string, year int) (*VehicleEstimate, error) {
	vehicleMake = strings.TrimSpace(vehicleMake)
	model = strings.TrimSpace(model)

	var fieldErrors []apperror.FieldError
	if vehicleMake == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "make", Message: "is required"})
	}
	if model == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "model", Message: "is required"})
	}
	if year < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "year", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	log := logger.FromContext(ctx).With(
		zap.String("make", vehicleMake),
		zap.String("model", model),
		zap.Int("year", year),
	)

	sizes, err := s.estimator.Estimate(ctx, vehicleMake, model, year)
	if err != nil {
		log.Warn("vehicle estimate failed", zap.Error(err))
		return nil, apperror.ErrEstimateUnavailable
	}
	if len(sizes) == 0 {
		log.Info("vehicle could not be estimated")
		return nil, apperror.ErrEstimateUnavailable
	}

	panels := make(map[string]pricing.Panel, len(sizes))
	for name, size := range sizes {
		panels[name] = pricing.Panel{Width: size.W, Height: size.H}
	}

	return &VehicleEstimate{
		Vehicle:    strings.TrimSpace(vehicleMake + " " + model),
		Panels:     panels,
		Selectable: pricing.SelectablePanels(panels),
	}, nil
}

// SelectablePanels lists the panels of a breakdown that can be priced.
func (s *VehicleService) SelectablePanels(panels map[string]pricing.Panel) []string {
	return pricing.SelectablePanels(panels)
}
