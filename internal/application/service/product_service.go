package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/entity"
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"github.com/sangkips/printshop-api/internal/domain/repository"
	"github.com/sangkips/printshop-api/internal/pricing"
	"github.com/sangkips/printshop-api/pkg/apperror"
	"github.com/sangkips/printshop-api/pkg/pagination"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo   repository.ProductRepository
	configService *FinancialConfigService
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, configService *FinancialConfigService) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		configService: configService,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name                  string
	Code                  string
	Category              string
	Mode                  enum.CalculatorMode
	UnitType              enum.UnitType
	CostPrice             float64
	ProductionTimeMinutes float64
	WastePercent          float64
	SalePriceOverride     *float64
	Stock                 int
	AvailableRollWidths   []float64
	SupplierBaseCost      float64
	SuggestedMarkup       float64
	Notes                 *string
}

// CreateProduct creates a new product. The sale price is derived from the
// current financial configuration unless an override is given.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:                  strings.TrimSpace(input.Name),
		Code:                  input.Code,
		Category:              strings.TrimSpace(input.Category),
		Mode:                  input.Mode,
		UnitType:              input.UnitType,
		CostPrice:             input.CostPrice,
		ProductionTimeMinutes: input.ProductionTimeMinutes,
		WastePercent:          input.WastePercent,
		Stock:                 input.Stock,
		AvailableRollWidths:   input.AvailableRollWidths,
		SupplierBaseCost:      input.SupplierBaseCost,
		SuggestedMarkup:       input.SuggestedMarkup,
		Notes:                 input.Notes,
	}
	if product.UnitType == "" {
		product.UnitType = enum.UnitTypeUnit
	}
	if product.SuggestedMarkup == 0 {
		product.SuggestedMarkup = 1
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if input.SalePriceOverride != nil {
		product.SalePrice = *input.SalePriceOverride
		product.SalePriceOverridden = true
	} else if err := s.reprice(ctx, product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID                    uuid.UUID
	Name                  *string
	Code                  *string
	Category              *string
	Mode                  *enum.CalculatorMode
	UnitType              *enum.UnitType
	CostPrice             *float64
	ProductionTimeMinutes *float64
	WastePercent          *float64
	SalePriceOverride     *float64

	// ResetSalePrice drops a previous override and derives the price again.
	ResetSalePrice      bool
	Stock               *int
	AvailableRollWidths []float64
	SupplierBaseCost    *float64
	SuggestedMarkup     *float64
	Notes               *string
}

// UpdateProduct updates a product. Derived prices are recomputed; a hand
// override stays as entered until replaced or reset.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProductByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Code != nil {
		product.Code = *input.Code
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Mode != nil {
		product.Mode = *input.Mode
	}
	if input.UnitType != nil {
		product.UnitType = *input.UnitType
	}
	if input.CostPrice != nil {
		product.CostPrice = *input.CostPrice
	}
	if input.ProductionTimeMinutes != nil {
		product.ProductionTimeMinutes = *input.ProductionTimeMinutes
	}
	if input.WastePercent != nil {
		product.WastePercent = *input.WastePercent
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.AvailableRollWidths != nil {
		product.AvailableRollWidths = input.AvailableRollWidths
	}
	if input.SupplierBaseCost != nil {
		product.SupplierBaseCost = *input.SupplierBaseCost
	}
	if input.SuggestedMarkup != nil {
		product.SuggestedMarkup = *input.SuggestedMarkup
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	switch {
	case input.SalePriceOverride != nil:
		product.SalePrice = *input.SalePriceOverride
		product.SalePriceOverridden = true
	case input.ResetSalePrice || !product.SalePriceOverridden:
		product.SalePriceOverridden = false
		if err := s.reprice(ctx, product); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProductByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// PricePreviewInput carries the cost inputs of a product being edited.
type PricePreviewInput struct {
	CostPrice             float64
	ProductionTimeMinutes float64
	WastePercent          float64
}

// PricePreview is the derived sale price with its breakdown.
type PricePreview struct {
	pricing.SalePriceBreakdown
	CostPerHour float64       `json:"cost_per_hour"`
	Rates       pricing.Rates `json:"rates"`
}

// PreviewPrice runs the pricing formula against the current configuration
// without saving anything.
func (s *ProductService) PreviewPrice(ctx context.Context, input *PricePreviewInput) (*PricePreview, error) {
	cfg, err := s.configService.Get(ctx)
	if err != nil {
		return nil, err
	}
	costPerHour := cfg.CostPerHour()
	return &PricePreview{
		SalePriceBreakdown: pricing.BreakdownSalePrice(input.CostPrice, input.ProductionTimeMinutes, input.WastePercent, costPerHour, cfg.Rates()),
		CostPerHour:        costPerHour,
		Rates:              cfg.Rates(),
	}, nil
}

func (s *ProductService) reprice(ctx context.Context, p *entity.Product) error {
	cfg, err := s.configService.Get(ctx)
	if err != nil {
		return err
	}
	p.SalePrice = pricing.ComputeSalePrice(p.CostPrice, p.ProductionTimeMinutes, p.WastePercent, cfg.CostPerHour(), cfg.Rates())
	return nil
}

func validateProduct(p *entity.Product) error {
	var fieldErrors []apperror.FieldError
	add := func(field, msg string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: msg})
	}

	if p.Name == "" {
		add("name", "is required")
	}
	if !p.UnitType.IsValid() {
		add("unit_type", "must be one of m2, un, ml")
	}
	if p.Mode != "" && !p.Mode.IsValid() {
		add("mode", "must be one of standard, sticker, laser, automotive")
	}
	if p.CostPrice < 0 {
		add("cost_price", "must not be negative")
	}
	if p.ProductionTimeMinutes < 0 {
		add("production_time_minutes", "must not be negative")
	}
	if p.WastePercent < 0 {
		add("waste_percent", "must not be negative")
	}
	for _, w := range p.AvailableRollWidths {
		if w <= 0 {
			add("available_roll_widths", "every roll width must be positive")
			break
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
