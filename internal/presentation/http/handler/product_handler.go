package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/printshop-api/internal/application/service"
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"github.com/sangkips/printshop-api/internal/domain/repository"
	"github.com/sangkips/printshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/printshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/printshop-api/pkg/pagination"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:   filter.Search,
		Category: filter.Category,
	}
	params.Pagination.Validate()
	if filter.Mode != "" {
		mode, err := enum.ParseCalculatorMode(filter.Mode)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		params.Mode = &mode
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:                  req.Name,
		Code:                  req.Code,
		Category:              req.Category,
		Mode:                  enum.CalculatorMode(req.Mode),
		UnitType:              enum.UnitType(req.UnitType),
		CostPrice:             req.CostPrice,
		ProductionTimeMinutes: req.ProductionTimeMinutes,
		WastePercent:          req.WastePercent,
		SalePriceOverride:     req.SalePriceOverride,
		Stock:                 req.Stock,
		AvailableRollWidths:   req.AvailableRollWidths,
		SupplierBaseCost:      req.SupplierBaseCost,
		SuggestedMarkup:       req.SuggestedMarkup,
		Notes:                 req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateProductInput{
		ID:                    id,
		Name:                  req.Name,
		Code:                  req.Code,
		Category:              req.Category,
		CostPrice:             req.CostPrice,
		ProductionTimeMinutes: req.ProductionTimeMinutes,
		WastePercent:          req.WastePercent,
		SalePriceOverride:     req.SalePriceOverride,
		ResetSalePrice:        req.ResetSalePrice,
		Stock:                 req.Stock,
		AvailableRollWidths:   req.AvailableRollWidths,
		SupplierBaseCost:      req.SupplierBaseCost,
		SuggestedMarkup:       req.SuggestedMarkup,
		Notes:                 req.Notes,
	}
	if req.Mode != nil {
		mode := enum.CalculatorMode(*req.Mode)
		input.Mode = &mode
	}
	if req.UnitType != nil {
		unit := enum.UnitType(*req.UnitType)
		input.UnitType = &unit
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// PricePreview runs the sale price formula without saving
func (h *ProductHandler) PricePreview(c *gin.Context) {
	var req request.PricePreviewRequest
	if !bindJSON(c, &req) {
		return
	}

	preview, err := h.productService.PreviewPrice(c.Request.Context(), &service.PricePreviewInput{
		CostPrice:             req.CostPrice,
		ProductionTimeMinutes: req.ProductionTimeMinutes,
		WastePercent:          req.WastePercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price calculated successfully", preview)
}
