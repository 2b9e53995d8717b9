package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/entity"
	"github.com/sangkips/printshop-api/internal/domain/repository"
	"github.com/sangkips/printshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/printshop-api/pkg/apperror"
	"github.com/sangkips/printshop-api/pkg/logger"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// MaxIdempotentBodyBytes caps the body read for hashing
	MaxIdempotentBodyBytes = 1 << 20
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays stored responses for repeated keys. Requests without
// a key pass through.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return idempotency(config, false)
}

// IdempotencyRequired is the strict variant: POSTs without a key are
// rejected.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return idempotency(config, true)
}

func idempotency(config IdempotencyConfig, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			if required && c.Request.Method == http.MethodPost {
				response.BadRequest(c, "Idempotency-Key header is required for this request")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		userID, ok := c.Get("user_id")
		uid, _ := userID.(uuid.UUID)
		if !ok || uid == uuid.Nil {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxIdempotentBodyBytes)
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.ErrorWithCode(c, http.StatusRequestEntityTooLarge, "Request body too large")
			} else {
				response.BadRequest(c, "Could not read request body")
			}
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		hash := hex.EncodeToString(sum[:])

		ctx := c.Request.Context()
		log := logger.FromContext(ctx).With(zap.String("idempotency_key", key))

		existing, err := config.Repo.GetByKey(ctx, key, uid)
		if err != nil {
			log.Error("idempotency lookup failed", zap.Error(err))
			response.Error(c, apperror.ErrInternalServer)
			c.Abort()
			return
		}
		if existing != nil {
			if !existing.IsExpired() {
				answerExisting(c, existing, hash)
				return
			}
			if err := config.Repo.Delete(ctx, existing.ID); err != nil {
				log.Warn("expired idempotency key not removed", zap.Error(err))
			}
		}

		// The pending row claims the key; the unique (key, user_id) index
		// lets only one concurrent request through.
		claim := &entity.IdempotencyKey{
			Key:         key,
			UserID:      uid,
			Endpoint:    c.Request.Method + " " + c.FullPath(),
			RequestHash: hash,
			ExpiresAt:   time.Now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(ctx, claim); err != nil {
			existing, lookupErr := config.Repo.GetByKey(ctx, key, uid)
			if lookupErr != nil || existing == nil {
				log.Error("idempotency key not claimed", zap.Error(err))
				response.Error(c, apperror.ErrInternalServer)
				c.Abort()
				return
			}
			answerExisting(c, existing, hash)
			return
		}

		storeCtx := context.WithoutCancel(ctx)
		release := func() {
			if err := config.Repo.Delete(storeCtx, claim.ID); err != nil {
				log.Warn("idempotency key not released", zap.Error(err))
			}
		}
		defer func() {
			if r := recover(); r != nil {
				release()
				panic(r)
			}
		}()

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only successful responses are replayed; failures release the key
		// so the request may be retried.
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			claim.ResponseCode = status
			claim.ResponseBody = blw.body.String()
			if err := config.Repo.Complete(storeCtx, claim); err != nil {
				log.Warn("idempotency response not stored", zap.Error(err))
			}
			return
		}
		release()
	}
}

// answerExisting replays a finished request, or rejects a reused key with a
// different body or one whose first request is still running.
func answerExisting(c *gin.Context, existing *entity.IdempotencyKey, hash string) {
	defer c.Abort()
	if !existing.SameRequest(hash) {
		response.Error(c, apperror.NewConflictError("Idempotency-Key was already used for a different request"))
		return
	}
	if existing.IsPending() {
		response.Error(c, apperror.NewConflictError("A request with this Idempotency-Key is still in progress"))
		return
	}
	c.Header("X-Idempotency-Replayed", "true")
	c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
}

// PurgeExpiredKeys deletes expired idempotency keys every interval until
// ctx is done.
func PurgeExpiredKeys(ctx context.Context, repo repository.IdempotencyRepository, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				log.Warn("purge idempotency keys failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("purged idempotency keys", zap.Int64("count", n))
			}
		}
	}
}
