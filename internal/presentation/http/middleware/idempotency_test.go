package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/printshop-api/internal/domain/entity"
)

// memIdempotencyRepo enforces the (key, user) uniqueness of the real table.
type memIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: map[string]entity.IdempotencyKey{}}
}

func (r *memIdempotencyRepo) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.keys[userID.String()+"/"+key]
	if !ok {
		return nil, nil
	}
	return &k, nil
}

func (r *memIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := ikey.UserID.String() + "/" + ikey.Key
	if _, ok := r.keys[id]; ok {
		return errors.New("duplicate key")
	}
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	r.keys[id] = *ikey
	return nil
}

func (r *memIdempotencyRepo) Complete(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[ikey.UserID.String()+"/"+ikey.Key] = *ikey
	return nil
}

func (r *memIdempotencyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range r.keys {
		if v.ID == id {
			delete(r.keys, k)
		}
	}
	return nil
}

func (r *memIdempotencyRepo) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}

func idempotentRouter(repo *memIdempotencyRepo, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	user := uuid.New()
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", user) })
	r.POST("/quotes", IdempotencyRequired(IdempotencyConfig{Repo: repo}), h)
	return r
}

func postQuote(r *gin.Engine, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyConcurrentDuplicateRunsHandlerOnce(t *testing.T) {
	var runs int32
	started := make(chan struct{})
	release := make(chan struct{})
	r := idempotentRouter(newMemIdempotencyRepo(), func(c *gin.Context) {
		if atomic.AddInt32(&runs, 1) == 1 {
			close(started)
			<-release
		}
		c.JSON(http.StatusCreated, gin.H{"reference": "ORC-1"})
	})

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- postQuote(r, "k1", `{"items":[]}`) }()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first request never reached the handler")
	}
	inFlight := postQuote(r, "k1", `{"items":[]}`)
	close(release)

	assert.Equal(t, http.StatusConflict, inFlight.Code)
	assert.Equal(t, http.StatusCreated, (<-first).Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))

	replay := postQuote(r, "k1", `{"items":[]}`)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}

func TestIdempotencyFailedRequestReleasesKey(t *testing.T) {
	var runs int32
	r := idempotentRouter(newMemIdempotencyRepo(), func(c *gin.Context) {
		if atomic.AddInt32(&runs, 1) == 1 {
			c.JSON(http.StatusGatewayTimeout, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	assert.Equal(t, http.StatusGatewayTimeout, postQuote(r, "k1", `{}`).Code)
	w := postQuote(r, "k1", `{}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&runs))
}

func TestIdempotencyPanicReleasesKey(t *testing.T) {
	var runs int32
	r := idempotentRouter(newMemIdempotencyRepo(), func(c *gin.Context) {
		if atomic.AddInt32(&runs, 1) == 1 {
			panic("store exploded")
		}
		c.JSON(http.StatusCreated, gin.H{})
	})

	assert.Panics(t, func() { postQuote(r, "k1", `{}`) })
	assert.Equal(t, http.StatusCreated, postQuote(r, "k1", `{}`).Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(&runs))
}

func TestIdempotencyRejectsPendingAndMismatchedKeys(t *testing.T) {
	repo := newMemIdempotencyRepo()
	var runs int32
	r := idempotentRouter(repo, func(c *gin.Context) {
		atomic.AddInt32(&runs, 1)
		c.JSON(http.StatusCreated, gin.H{})
	})

	assert.Equal(t, http.StatusBadRequest, postQuote(r, "", `{}`).Code)
	require.Equal(t, http.StatusCreated, postQuote(r, "k1", `{"a":1}`).Code)
	assert.Equal(t, http.StatusConflict, postQuote(r, "k1", `{"a":2}`).Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}

func TestIdempotencyBodyLimit(t *testing.T) {
	var runs int32
	r := idempotentRouter(newMemIdempotencyRepo(), func(c *gin.Context) {
		atomic.AddInt32(&runs, 1)
		c.Status(http.StatusCreated)
	})

	w := postQuote(r, "big", `{"notes":"`+strings.Repeat("x", MaxIdempotentBodyBytes)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&runs))
}
