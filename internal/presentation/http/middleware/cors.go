package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/printshop-api/internal/config"
)

var (
	// the quote desk dev server
	defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	defaultCORSMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

	// Requests the API cannot serve without, merged into any configured list.
	requiredCORSHeaders = []string{"Authorization", "Content-Type", IdempotencyKeyHeader}

	// Read by the client: ticket filename, replayed finalizes, limiter budget.
	exposedCORSHeaders = []string{
		"Content-Disposition",
		"X-Request-ID",
		"X-Idempotency-Replayed",
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
	}
)

// CORSMiddleware creates a CORS middleware with the provided configuration
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}

func corsConfig(cfg *config.CORSConfig) cors.Config {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = defaultCORSMethods
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     withHeaders(cfg.AllowedHeaders, requiredCORSHeaders),
		ExposeHeaders:    exposedCORSHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// withHeaders appends every header of required missing from headers,
// comparing canonical forms.
func withHeaders(headers, required []string) []string {
	out := append([]string(nil), headers...)
	seen := make(map[string]bool, len(out))
	for _, h := range out {
		seen[http.CanonicalHeaderKey(h)] = true
	}
	for _, h := range required {
		if !seen[http.CanonicalHeaderKey(h)] {
			out = append(out, h)
		}
	}
	return out
}
