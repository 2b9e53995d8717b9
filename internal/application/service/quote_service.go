package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/entity"
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"github.com/sangkips/printshop-api/internal/domain/repository"
	"github.com/sangkips/printshop-api/internal/pricing"
	"github.com/sangkips/printshop-api/pkg/apperror"
	"github.com/sangkips/printshop-api/pkg/logger"
	"github.com/sangkips/printshop-api/pkg/pagination"
	"github.com/sangkips/printshop-api/pkg/utils"
	"go.uber.org/zap"
)

// DefaultFinalizeTimeout bounds the store call of Finalize.
const DefaultFinalizeTimeout = 30 * time.Second

// QuoteService builds carts, finalizes them into quotes and manages the
// stored quotes afterwards.
type QuoteService struct {
	quoteRepo       repository.QuoteRepository
	productRepo     repository.ProductRepository
	customerRepo    repository.CustomerRepository
	configService   *FinancialConfigService
	calculator      *CalculatorService
	finalizeTimeout time.Duration
	now             func() time.Time
	newReference    func() string
}

// NewQuoteService creates a new quote service. A non-positive
// finalizeTimeout uses DefaultFinalizeTimeout.
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	configService *FinancialConfigService,
	calculator *CalculatorService,
	finalizeTimeout time.Duration,
) *QuoteService {
	if finalizeTimeout <= 0 {
		finalizeTimeout = DefaultFinalizeTimeout
	}
	return &QuoteService{
		quoteRepo:       quoteRepo,
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		configService:   configService,
		calculator:      calculator,
		finalizeTimeout: finalizeTimeout,
		now:             time.Now,
		newReference:    utils.NewQuoteReference,
	}
}

// CartInput describes a cart to price.
type CartInput struct {
	CustomerID *uuid.UUID
	DesignFee  float64
	InstallFee float64
	Lines      []LineRequest
}

// FinalizeInput is a cart plus the fields only a finalized quote carries.
type FinalizeInput struct {
	CartInput
	DeadlineDays int
	Notes        *string
	CreatedBy    *uuid.UUID
}

// QuoteReview is the priced cart shown before finalizing.
type QuoteReview struct {
	Items         []entity.QuoteItem `json:"items"`
	ItemsSubtotal float64            `json:"items_subtotal"`
	DesignFee     float64            `json:"design_fee"`
	InstallFee    float64            `json:"install_fee"`
	Total         float64            `json:"total"`
	DownPayment   float64            `json:"down_payment"`
	Indicators    pricing.Indicators `json:"indicators"`
	CanFinalize   bool               `json:"can_finalize"`
}

// BoardColumnView is one column of the production board.
type BoardColumnView struct {
	Column enum.BoardColumn `json:"column"`
	Quotes []entity.Quote   `json:"quotes"`
}

// BuildCart prices every line against the current catalog and
// configuration and returns the filled cart.
func (s *QuoteService) BuildCart(ctx context.Context, in *CartInput) (*entity.Cart, entity.FinancialConfig, error) {
	var fieldErrors []apperror.FieldError
	if in.DesignFee < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "design_fee", Message: "must not be negative"})
	}
	if in.InstallFee < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "install_fee", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, entity.FinancialConfig{}, apperror.NewValidationError(fieldErrors)
	}

	cfg, err := s.configService.Get(ctx)
	if err != nil {
		return nil, cfg, err
	}

	ids := make([]uuid.UUID, 0, len(in.Lines))
	for _, line := range in.Lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, cfg, err
	}

	cart := entity.NewCart(in.CustomerID, in.DesignFee, in.InstallFee)
	for i := range in.Lines {
		line := &in.Lines[i]
		p, ok := products[line.ProductID]
		if !ok {
			return nil, cfg, apperror.NewNotFoundError(fmt.Sprintf("Product %s", line.ProductID))
		}
		item, err := s.calculator.BuildLine(p, cfg, line)
		if err != nil {
			return nil, cfg, fmt.Errorf("line %d: %w", i, err)
		}
		if err := cart.AddItem(item); err != nil {
			return nil, cfg, fmt.Errorf("line %d: %w", i, err)
		}
	}

	return cart, cfg, nil
}

// Review prices the cart and computes its indicators without storing anything.
func (s *QuoteService) Review(ctx context.Context, in *CartInput) (*QuoteReview, error) {
	cart, cfg, err := s.BuildCart(ctx, in)
	if err != nil {
		return nil, err
	}

	total := cart.Total()
	return &QuoteReview{
		Items:         cart.Items(),
		ItemsSubtotal: cart.ItemsSubtotal(),
		DesignFee:     cart.DesignFee,
		InstallFee:    cart.InstallFee,
		Total:         total,
		DownPayment:   total / 2,
		Indicators:    pricing.ComputeIndicators(cart, cfg.Rates()),
		CanFinalize:   cart.CustomerID != nil && *cart.CustomerID != uuid.Nil,
	}, nil
}

// Create builds the cart and finalizes it.
func (s *QuoteService) Create(ctx context.Context, in *FinalizeInput) (*entity.Quote, error) {
	if in.CustomerID == nil || *in.CustomerID == uuid.Nil {
		return nil, apperror.ErrNoCustomerSelected
	}
	if in.DeadlineDays < 0 {
		return nil, apperror.NewFieldError("deadline_days", "must not be negative")
	}

	cart, _, err := s.BuildCart(ctx, &in.CartInput)
	if err != nil {
		return nil, err
	}

	return s.finalize(ctx, cart, in.DeadlineDays, func(q *entity.Quote) {
		q.Notes = in.Notes
		q.CreatedBy = in.CreatedBy
	})
}

// Finalize freezes cart into a draft quote and stores it. The store call
// races finalizeTimeout; on expiry ErrFinalizeTimeout is returned and the
// outcome of the write is unknown to the caller.
func (s *QuoteService) Finalize(ctx context.Context, cart *entity.Cart, deadlineDays int) (*entity.Quote, error) {
	return s.finalize(ctx, cart, deadlineDays, nil)
}

func (s *QuoteService) finalize(ctx context.Context, cart *entity.Cart, deadlineDays int, decorate func(*entity.Quote)) (*entity.Quote, error) {
	quote, err := cart.NewQuote(s.newReference(), s.now(), deadlineDays)
	if err != nil {
		return nil, err
	}
	if decorate != nil {
		decorate(quote)
	}

	customer, err := s.customerRepo.GetByID(ctx, quote.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	quote.CustomerName = customer.Name

	ctx, cancel := context.WithTimeout(ctx, s.finalizeTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.quoteRepo.Create(ctx, quote)
	}()

	select {
	case err := <-done:
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, apperror.ErrFinalizeTimeout
			}
			return nil, fmt.Errorf("store quote: %w", err)
		}
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.FromContext(ctx).Warn("quote finalize timed out",
				zap.String("reference", quote.Reference),
				zap.Duration("timeout", s.finalizeTimeout),
			)
			return nil, apperror.ErrFinalizeTimeout
		}
		return nil, ctx.Err()
	}

	logger.FromContext(ctx).Info("quote finalized",
		zap.String("id", quote.ID.String()),
		zap.String("reference", quote.Reference),
		zap.Int("items", len(quote.Items)),
		zap.Float64("total", quote.TotalAmount),
	)
	return quote, nil
}

// GetQuote retrieves a quote with its items
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// GetQuoteByReference finds a quote by the reference printed on tickets
func (s *QuoteService) GetQuoteByReference(ctx context.Context, reference string) (*entity.Quote, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	if !utils.IsQuoteReference(reference) {
		return nil, apperror.NewFieldError("reference", "is not a quote reference")
	}
	quote, err := s.quoteRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotes retrieves quotes matching params, without items
func (s *QuoteService) ListQuotes(ctx context.Context, params *repository.QuoteFilterParams) (*pagination.PaginatedResult[entity.Quote], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	quotes, total, err := s.quoteRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, pag), nil
}

// Board groups every quote by production-board column.
func (s *QuoteService) Board(ctx context.Context) ([]BoardColumnView, error) {
	quotes, err := s.quoteRepo.ListByStatuses(ctx, enum.QuoteStatuses)
	if err != nil {
		return nil, err
	}

	byColumn := make(map[enum.BoardColumn][]entity.Quote, len(enum.BoardColumns))
	for _, q := range quotes {
		col := q.Status.BoardColumn()
		byColumn[col] = append(byColumn[col], q)
	}

	board := make([]BoardColumnView, 0, len(enum.BoardColumns))
	for _, col := range enum.BoardColumns {
		list := byColumn[col]
		if list == nil {
			list = []entity.Quote{}
		}
		board = append(board, BoardColumnView{Column: col, Quotes: list})
	}
	return board, nil
}

// UpdateStatus moves a quote to status. Any known status is accepted from
// any other.
func (s *QuoteService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Quote, error) {
	next, err := enum.ParseQuoteStatus(status)
	if err != nil {
		return nil, apperror.NewFieldError("status", err.Error())
	}

	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status == next {
		return quote, nil
	}

	if err := s.quoteRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("quote status changed",
		zap.String("id", id.String()),
		zap.String("from", string(quote.Status)),
		zap.String("to", string(next)),
	)
	quote.Status = next
	return quote, nil
}

// DeleteQuote deletes a quote
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetQuote(ctx, id); err != nil {
		return err
	}
	return s.quoteRepo.Delete(ctx, id)
}

// Indicators computes the financial indicators of a stored quote against
// the current configuration.
func (s *QuoteService) Indicators(ctx context.Context, id uuid.UUID) (*pricing.Indicators, error) {
	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg, err := s.configService.Get(ctx)
	if err != nil {
		return nil, err
	}
	ind := pricing.ComputeIndicators(quote, cfg.Rates())
	return &ind, nil
}
