package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and user ID
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key. It fails when the key is already
	// taken for the user.
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Complete records the response of a pending key
	Complete(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Delete removes a key so the request can be retried
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes expired idempotency keys and reports how many
	DeleteExpired(ctx context.Context) (int64, error)
}
