package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/entity"
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"github.com/sangkips/printshop-api/internal/domain/repository"
	"github.com/sangkips/printshop-api/internal/pricing"
	"github.com/sangkips/printshop-api/pkg/apperror"
)

// StickerRequest holds sticker inputs. Nil rate and roll width fall back
// to the product's sale price and first roll width.
type StickerRequest struct {
	Mode              enum.StickerMode
	UnitWidthCm       float64
	UnitHeightCm      float64
	GapMm             float64
	RollWidthM        *float64
	PricePerM2        *float64
	TargetQuantity    int
	TargetAreaWidthM  float64
	TargetAreaHeightM float64
}

// LaserRequest holds machine-time inputs. Nil rate, base cost and markup
// fall back to the product.
type LaserRequest struct {
	Mode               enum.LaserMode
	Material           string
	MachineTimeMinutes float64
	AreaWidthM         float64
	AreaHeightM        float64
	PricePerM2         *float64
	SetupFee           float64
	Quantity           int
	SupplyProduct      bool
	BaseCost           *float64
	SuggestedMarkup    *float64
}

// VehicleRequest prices a wrap from an estimated panel breakdown.
type VehicleRequest struct {
	Vehicle       string
	Panels        map[string]pricing.Panel
	Selected      []string
	Complexity    enum.ComplexityTier
	Material      enum.MaterialTier
	BaseRatePerM2 *float64
}

// StandardRequest prices quantity × area, length or count.
type StandardRequest struct {
	Quantity int
	Width    float64
	Height   float64
}

// StandardResult is the priced standard line.
type StandardResult struct {
	BillableQuantity float64 `json:"billable_quantity"`
	UnitPrice        float64 `json:"unit_price"`
	Subtotal         float64 `json:"subtotal"`
}

// LineRequest is one cart line: a product, an optional explicit mode and
// the inputs of whichever calculator the mode selects.
type LineRequest struct {
	ProductID    uuid.UUID
	Mode         enum.CalculatorMode
	Quantity     int
	Width        float64
	Height       float64
	Sticker      *StickerRequest
	Laser        *LaserRequest
	Vehicle      *VehicleRequest
	Requirements entity.Requirements
}

// CalculatorService runs the pricing calculators with catalog and
// configuration defaults filled in.
type CalculatorService struct {
	productRepo   repository.ProductRepository
	configService *FinancialConfigService
}

// NewCalculatorService creates a new calculator service
func NewCalculatorService(productRepo repository.ProductRepository, configService *FinancialConfigService) *CalculatorService {
	return &CalculatorService{
		productRepo:   productRepo,
		configService: configService,
	}
}

// product loads id, or returns an empty unit-priced product when id is nil
// so calculators can run on raw inputs.
func (s *CalculatorService) product(ctx context.Context, id *uuid.UUID) (*entity.Product, error) {
	if id == nil || *id == uuid.Nil {
		return &entity.Product{UnitType: enum.UnitTypeUnit, SuggestedMarkup: 1}, nil
	}
	p, err := s.productRepo.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return p, nil
}

func (s *CalculatorService) Standard(ctx context.Context, productID uuid.UUID, req *StandardRequest) (*StandardResult, error) {
	p, err := s.product(ctx, &productID)
	if err != nil {
		return nil, err
	}
	if err := validateStandard(req); err != nil {
		return nil, err
	}
	item := entity.NewStandardItem(p, req.Quantity, req.Width, req.Height)
	return &StandardResult{BillableQuantity: item.BillableQuantity(), UnitPrice: item.UnitPrice, Subtotal: item.Subtotal}, nil
}

func (s *CalculatorService) Sticker(ctx context.Context, productID *uuid.UUID, req *StickerRequest) (*pricing.AreaYieldResult, error) {
	p, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	in, err := stickerInput(p, req)
	if err != nil {
		return nil, err
	}
	res := pricing.ComputeAreaYield(in)
	return &res, nil
}

func (s *CalculatorService) Laser(ctx context.Context, productID *uuid.UUID, req *LaserRequest) (*pricing.MachineCostResult, error) {
	p, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.configService.Get(ctx)
	if err != nil {
		return nil, err
	}
	in, err := laserInput(p, cfg.EffectiveMachineHourRate(s.configService.MachineHourRate()), req)
	if err != nil {
		return nil, err
	}
	res := pricing.ComputeMachineCost(in)
	return &res, nil
}

func (s *CalculatorService) Vehicle(ctx context.Context, productID *uuid.UUID, req *VehicleRequest) (*pricing.VehiclePriceResult, error) {
	p, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	in, err := vehicleInput(p, req)
	if err != nil {
		return nil, err
	}
	res := pricing.ComputeVehiclePrice(in)
	return &res, nil
}

// BuildLine dispatches a line to its calculator and returns the cart item.
func (s *CalculatorService) BuildLine(p *entity.Product, cfg entity.FinancialConfig, line *LineRequest) (entity.QuoteItem, error) {
	var item entity.QuoteItem

	switch pricing.ResolveMode(line.Mode, p.Mode, p.Category) {
	case enum.CalculatorModeSticker:
		if line.Sticker == nil {
			return item, apperror.NewFieldError("sticker", "sticker inputs are required for this product")
		}
		in, err := stickerInput(p, line.Sticker)
		if err != nil {
			return item, err
		}
		item = entity.NewStickerItem(p, in, pricing.ComputeAreaYield(in))

	case enum.CalculatorModeLaser:
		if line.Laser == nil {
			return item, apperror.NewFieldError("laser", "laser inputs are required for this product")
		}
		in, err := laserInput(p, cfg.EffectiveMachineHourRate(s.configService.MachineHourRate()), line.Laser)
		if err != nil {
			return item, err
		}
		item = entity.NewLaserItem(p, in, pricing.ComputeMachineCost(in))

	case enum.CalculatorModeAutomotive:
		if line.Vehicle == nil {
			return item, apperror.NewFieldError("vehicle", "vehicle inputs are required for this product")
		}
		in, err := vehicleInput(p, line.Vehicle)
		if err != nil {
			return item, err
		}
		res := pricing.ComputeVehiclePrice(in)
		if len(res.Parts) == 0 {
			return item, apperror.NewFieldError("vehicle.selected", "select at least one panel with a positive area")
		}
		item = entity.NewWrapItem(p, line.Vehicle.Vehicle, in, res)

	default:
		req := &StandardRequest{Quantity: line.Quantity, Width: line.Width, Height: line.Height}
		if err := validateStandard(req); err != nil {
			return item, err
		}
		item = entity.NewStandardItem(p, req.Quantity, req.Width, req.Height)
	}

	item.Requirements = line.Requirements.Clone()
	return item, nil
}

func validateStandard(req *StandardRequest) error {
	var fieldErrors []apperror.FieldError
	if req.Quantity <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity", Message: "must be positive"})
	}
	if req.Width < 0 || req.Height < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "width", Message: "dimensions must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func stickerInput(p *entity.Product, req *StickerRequest) (pricing.AreaYieldInput, error) {
	in := pricing.AreaYieldInput{
		Mode:              req.Mode,
		UnitWidthCm:       req.UnitWidthCm,
		UnitHeightCm:      req.UnitHeightCm,
		GapMm:             req.GapMm,
		RollWidthM:        p.DefaultRollWidth(),
		PricePerM2:        p.SalePrice,
		TargetQuantity:    req.TargetQuantity,
		TargetAreaWidthM:  req.TargetAreaWidthM,
		TargetAreaHeightM: req.TargetAreaHeightM,
	}
	if in.Mode == "" {
		in.Mode = enum.StickerModeQuantity
	}
	if req.RollWidthM != nil {
		in.RollWidthM = *req.RollWidthM
	}
	if req.PricePerM2 != nil {
		in.PricePerM2 = *req.PricePerM2
	}

	var fieldErrors []apperror.FieldError
	add := func(field, msg string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: msg})
	}
	if !in.Mode.IsValid() {
		add("sticker.mode", "must be quantity or area")
	}
	if in.UnitWidthCm <= 0 || in.UnitHeightCm <= 0 {
		add("sticker.unit", "unit width and height must be positive")
	}
	if in.GapMm < 0 {
		add("sticker.gap_mm", "must not be negative")
	}
	if in.RollWidthM <= 0 {
		add("sticker.roll_width_m", "a positive roll width is required")
	}
	if in.PricePerM2 < 0 {
		add("sticker.price_per_m2", "must not be negative")
	}
	switch in.Mode {
	case enum.StickerModeQuantity:
		if in.TargetQuantity <= 0 {
			add("sticker.target_quantity", "must be positive")
		}
	case enum.StickerModeArea:
		if in.TargetAreaWidthM <= 0 || in.TargetAreaHeightM <= 0 {
			add("sticker.target_area", "target width and height must be positive")
		}
	}
	if len(fieldErrors) > 0 {
		return in, apperror.NewValidationError(fieldErrors)
	}
	return in, nil
}

func laserInput(p *entity.Product, machineHourRate float64, req *LaserRequest) (pricing.MachineCostInput, error) {
	in := pricing.MachineCostInput{
		Mode:               req.Mode,
		Material:           req.Material,
		MachineTimeMinutes: req.MachineTimeMinutes,
		MachineHourRate:    machineHourRate,
		AreaWidthM:         req.AreaWidthM,
		AreaHeightM:        req.AreaHeightM,
		PricePerM2:         p.SalePrice,
		SetupFee:           req.SetupFee,
		Quantity:           req.Quantity,
		SupplyProduct:      req.SupplyProduct,
		BaseCost:           p.SupplierBaseCost,
		SuggestedMarkup:    p.SuggestedMarkup,
	}
	if in.Mode == "" {
		in.Mode = enum.LaserModeCut
	}
	if req.PricePerM2 != nil {
		in.PricePerM2 = *req.PricePerM2
	}
	if req.BaseCost != nil {
		in.BaseCost = *req.BaseCost
	}
	if req.SuggestedMarkup != nil {
		in.SuggestedMarkup = *req.SuggestedMarkup
	}
	if in.Material == "" {
		in.Material = p.Name
	}

	var fieldErrors []apperror.FieldError
	add := func(field, msg string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: msg})
	}
	if !in.Mode.IsValid() {
		add("laser.mode", "must be cut, engrave or promotional")
	}
	if in.MachineTimeMinutes < 0 {
		add("laser.machine_time_minutes", "must not be negative")
	}
	if in.SetupFee < 0 {
		add("laser.setup_fee", "must not be negative")
	}
	if in.Mode == enum.LaserModePromotional {
		if in.Quantity <= 0 {
			add("laser.quantity", "must be positive")
		}
	} else if in.AreaWidthM < 0 || in.AreaHeightM < 0 {
		add("laser.area", "dimensions must not be negative")
	}
	if len(fieldErrors) > 0 {
		return in, apperror.NewValidationError(fieldErrors)
	}
	return in, nil
}

func vehicleInput(p *entity.Product, req *VehicleRequest) (pricing.VehiclePriceInput, error) {
	in := pricing.VehiclePriceInput{
		Panels:        req.Panels,
		Selected:      req.Selected,
		Complexity:    req.Complexity,
		Material:      req.Material,
		BaseRatePerM2: p.SalePrice,
	}
	if req.BaseRatePerM2 != nil {
		in.BaseRatePerM2 = *req.BaseRatePerM2
	}

	var fieldErrors []apperror.FieldError
	if _, ok := in.Complexity.Factor(); !ok {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "vehicle.complexity", Message: "must be Baixa, Média or Alta"})
	}
	if _, ok := in.Material.Factor(); !ok {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "vehicle.material", Message: "must be Standard, Performance or Premium"})
	}
	if len(in.Selected) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "vehicle.selected", Message: "select at least one panel"})
	}
	if len(fieldErrors) > 0 {
		return in, apperror.NewValidationError(fieldErrors)
	}
	return in, nil
}
