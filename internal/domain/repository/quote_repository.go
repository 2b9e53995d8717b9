package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/entity"
	"github.com/sangkips/printshop-api/internal/domain/enum"
	"github.com/sangkips/printshop-api/pkg/pagination"
)

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	// Create stores the quote and its items in one transaction.
	Create(ctx context.Context, quote *entity.Quote) error
	// GetByID loads the quote with its items in position order.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetByReference(ctx context.Context, reference string) (*entity.Quote, error)
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
	// ListByStatuses returns quotes in any of statuses, newest first, without items.
	ListByStatuses(ctx context.Context, statuses []enum.QuoteStatus) ([]entity.Quote, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
