// Package assistant defines the external estimation and text-generation
// collaborators used by quoting. Their internals are opaque; callers only
// see the shapes below.
package assistant

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by the null generator.
var ErrNotConfigured = errors.New("assistant: no provider configured")

// PanelSize is a vehicle panel in meters, bleed included.
type PanelSize struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// VehiclePanelEstimator estimates panel sizes for a vehicle. A nil map with
// a nil error means the vehicle could not be estimated.
type VehiclePanelEstimator interface {
	Estimate(ctx context.Context, vehicleMake, model string, year int) (map[string]PanelSize, error)
}

type PitchItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type PitchRequest struct {
	CustomerName    string      `json:"customer_name"`
	Items           []PitchItem `json:"items"`
	Total           float64     `json:"total"`
	DesignFee       float64     `json:"design_fee"`
	InstallFee      float64     `json:"install_fee"`
	DeadlineDays    int         `json:"deadline_days"`
	SalespersonName string      `json:"salesperson_name"`
}

// SalesPitchGenerator writes a markdown sales message for a quote.
type SalesPitchGenerator interface {
	Generate(ctx context.Context, req PitchRequest) (string, error)
}

// --- Null implementations (used when no provider is configured) ---

type nullEstimator struct{}

// NewNullEstimator never produces an estimate.
func NewNullEstimator() VehiclePanelEstimator {
	return nullEstimator{}
}

func (nullEstimator) Estimate(ctx context.Context, vehicleMake, model string, year int) (map[string]PanelSize, error) {
	return nil, nil
}

type nullGenerator struct{}

// NewNullGenerator always fails with ErrNotConfigured.
func NewNullGenerator() SalesPitchGenerator {
	return nullGenerator{}
}

func (nullGenerator) Generate(ctx context.Context, req PitchRequest) (string, error) {
	return "", ErrNotConfigured
}

// NewFromConfig returns the collaborators for provider.
//
//	provider: "none" (or empty) for null objects, "template" for the
//	built-in catalog estimator and markdown template
func NewFromConfig(provider string) (VehiclePanelEstimator, SalesPitchGenerator, error) {
	switch provider {
	case "none", "":
		return NewNullEstimator(), NewNullGenerator(), nil
	case "template":
		return NewCatalogEstimator(DefaultVehicleCatalog()), NewTemplateGenerator(), nil
	default:
		return nil, nil, fmt.Errorf("assistant: unknown provider %q (use none or template)", provider)
	}
}
