package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/application/service"
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"github.com/sangkips/printshop-api/internal/domain/repository"
	"github.com/sangkips/printshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/printshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/printshop-api/pkg/apperror"
	"github.com/sangkips/printshop-api/pkg/pagination"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// QuoteHandler handles cart review, finalization and quote management
type QuoteHandler struct {
	quoteService  *service.QuoteService
	pitchService  *service.PitchService
	exportService *service.ExportService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService, pitchService *service.PitchService, exportService *service.ExportService) *QuoteHandler {
	return &QuoteHandler{
		quoteService:  quoteService,
		pitchService:  pitchService,
		exportService: exportService,
	}
}

// Review prices a cart and returns its indicators without saving
func (h *QuoteHandler) Review(c *gin.Context) {
	var req request.CartRequest
	if !bindJSON(c, &req) {
		return
	}

	in, err := cartInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	review, err := h.quoteService.Review(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote reviewed", review)
}

// Create finalizes a cart into a draft quote
func (h *QuoteHandler) Create(c *gin.Context) {
	var req request.CreateQuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	in, err := cartInput(&req.CartRequest)
	if err != nil {
		response.Error(c, err)
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), &service.FinalizeInput{
		CartInput:    *in,
		DeadlineDays: req.DeadlineDays,
		Notes:        req.Notes,
		CreatedBy:    GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", quote)
}

// List handles listing quotes
func (h *QuoteHandler) List(c *gin.Context) {
	var filter request.QuoteFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.QuoteFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	params.Pagination.Validate()

	if filter.Status != "" {
		status, err := enum.ParseQuoteStatus(filter.Status)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		params.Status = &status
	}
	if filter.CustomerID != "" {
		id, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer_id")
			return
		}
		params.CustomerID = &id
	}
	if filter.StartDate != "" {
		t, err := time.Parse("2006-01-02", filter.StartDate)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, use YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if filter.EndDate != "" {
		t, err := time.Parse("2006-01-02", filter.EndDate)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, use YYYY-MM-DD")
			return
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		params.EndDate = &end
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully", result)
}

// Board groups quotes by production-board column
func (h *QuoteHandler) Board(c *gin.Context) {
	board, err := h.quoteService.Board(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Board retrieved successfully", board)
}

// Get handles getting a single quote with its items
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// GetByReference looks a quote up by its ticket reference
func (h *QuoteHandler) GetByReference(c *gin.Context) {
	quote, err := h.quoteService.GetQuoteByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// Delete handles deleting a quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdateStatus moves a quote to another status
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req request.UpdateQuoteStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.quoteService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote status updated", quote)
}

// Indicators returns the financial indicators of a stored quote
func (h *QuoteHandler) Indicators(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ind, err := h.quoteService.Indicators(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Indicators calculated", ind)
}

// Export downloads the quote as an xlsx production ticket
func (h *QuoteHandler) Export(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	name, data, err := h.exportService.ExportQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Pitch generates a sales message for the quote. Generator failures come
// back as a 200 with an error string.
func (h *QuoteHandler) Pitch(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req request.PitchRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	if req.SalespersonName == "" {
		req.SalespersonName = GetUserName(c)
	}

	pitch, err := h.pitchService.Generate(c.Request.Context(), id, req.SalespersonName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales pitch generated", pitch)
}

func cartInput(req *request.CartRequest) (*service.CartInput, error) {
	in := &service.CartInput{
		CustomerID: req.CustomerID,
		DesignFee:  req.DesignFee,
		InstallFee: req.InstallFee,
		Lines:      make([]service.LineRequest, 0, len(req.Items)),
	}
	for i, item := range req.Items {
		mode, err := enum.ParseCalculatorMode(item.Mode)
		if err != nil {
			return nil, apperror.NewFieldError(fmt.Sprintf("items[%d].mode", i), err.Error())
		}
		in.Lines = append(in.Lines, service.LineRequest{
			ProductID:    item.ProductID,
			Mode:         mode,
			Quantity:     item.Quantity,
			Width:        item.Width,
			Height:       item.Height,
			Sticker:      stickerRequest(item.Sticker),
			Laser:        laserRequest(item.Laser),
			Vehicle:      vehicleRequest(item.Vehicle),
			Requirements: item.Requirements,
		})
	}
	return in, nil
}
