package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/entity"
	"github.com/sangkips/printshop-api/internal/pricing"
)

// StickerInput is the sticker calculator body. Omitted roll width and
// rate fall back to the product.
type StickerInput struct {
	Mode              string   `json:"mode"`
	UnitWidthCm       float64  `json:"unit_width_cm"`
	UnitHeightCm      float64  `json:"unit_height_cm"`
	GapMm             float64  `json:"gap_mm"`
	RollWidthM        *float64 `json:"roll_width_m"`
	PricePerM2        *float64 `json:"price_per_m2"`
	TargetQuantity    int      `json:"target_quantity"`
	TargetAreaWidthM  float64  `json:"target_area_width_m"`
	TargetAreaHeightM float64  `json:"target_area_height_m"`
}

// LaserInput is the laser/CNC calculator body.
type LaserInput struct {
	Mode               string   `json:"mode"`
	Material           string   `json:"material"`
	MachineTimeMinutes float64  `json:"machine_time_minutes"`
	AreaWidthM         float64  `json:"area_width_m"`
	AreaHeightM        float64  `json:"area_height_m"`
	PricePerM2         *float64 `json:"price_per_m2"`
	SetupFee           float64  `json:"setup_fee"`
	Quantity           int      `json:"quantity"`
	SupplyProduct      bool     `json:"supply_product"`
	BaseCost           *float64 `json:"base_cost"`
	SuggestedMarkup    *float64 `json:"suggested_markup"`
}

// VehicleInput prices a wrap over an estimated panel breakdown.
type VehicleInput struct {
	Vehicle       string                   `json:"vehicle"`
	Panels        map[string]pricing.Panel `json:"panels"`
	Selected      []string                 `json:"selected"`
	Complexity    string                   `json:"complexity"`
	Material      string                   `json:"material"`
	BaseRatePerM2 *float64                 `json:"base_rate_per_m2"`
}

type StickerCalculatorRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
	StickerInput
}

type LaserCalculatorRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
	LaserInput
}

type VehicleCalculatorRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
	VehicleInput
}

type StandardCalculatorRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
}

// VehicleEstimateRequest asks for the panel sizes of a vehicle
type VehicleEstimateRequest struct {
	Make  string `json:"make" binding:"required"`
	Model string `json:"model" binding:"required"`
	Year  int    `json:"year"`
}

type SelectablePanelsRequest struct {
	Panels map[string]pricing.Panel `json:"panels" binding:"required"`
}

// QuoteLineRequest is one cart line. Only the block matching the line's
// calculator mode is read.
type QuoteLineRequest struct {
	ProductID    uuid.UUID           `json:"product_id"`
	Mode         string              `json:"mode"`
	Quantity     int                 `json:"quantity"`
	Width        float64             `json:"width"`
	Height       float64             `json:"height"`
	Sticker      *StickerInput       `json:"sticker"`
	Laser        *LaserInput         `json:"laser"`
	Vehicle      *VehicleInput       `json:"vehicle"`
	Requirements entity.Requirements `json:"requirements"`
}

// CartRequest is a cart to review or finalize
type CartRequest struct {
	CustomerID *uuid.UUID         `json:"customer_id"`
	DesignFee  float64            `json:"design_fee" binding:"min=0"`
	InstallFee float64            `json:"install_fee" binding:"min=0"`
	Items      []QuoteLineRequest `json:"items"`
}

// CreateQuoteRequest finalizes a cart into a quote
type CreateQuoteRequest struct {
	CartRequest
	DeadlineDays int     `json:"deadline_days" binding:"min=0"`
	Notes        *string `json:"notes"`
}

// QuoteFilterRequest represents quote filter parameters
type QuoteFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PitchRequest struct {
	SalespersonName string `json:"salesperson_name"`
}
