package repository

import (
	"context"

	"github.com/sangkips/printshop-api/internal/domain/entity"
)

// FinancialConfigRepository reads and replaces the singleton configuration.
type FinancialConfigRepository interface {
	// Get returns the configuration with fixed costs and equipment, or nil
	// if none has been stored yet.
	Get(ctx context.Context) (*entity.FinancialConfig, error)
	// Save upserts the configuration and replaces its child rows wholesale.
	Save(ctx context.Context, cfg *entity.FinancialConfig) error
}
