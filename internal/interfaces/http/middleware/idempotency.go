package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/logger"
	"github.com/tekstil/ledger/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader is the optional header clients set on retried postings
const IdempotencyKeyHeader = "Idempotency-Key"

// MaxIdempotencyKeyLength bounds the header value kept in the store
const MaxIdempotencyKeyLength = 128

const defaultIdempotencyTTL = 24 * time.Hour

// Idempotency marks the request's Idempotency-Key in store before the handler
// runs. A second request carrying a live key is answered with 409
// DUPLICATE_REQUEST. Keys of failed requests (status >= 400 or a panic) are
// released so the client can retry. Requests without the header pass through.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || store == nil {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInvalidInput,
				"Idempotency-Key must be at most 128 characters",
				GetRequestID(c),
			))
			return
		}

		ctx := c.Request.Context()
		storeKey := idempotencyStoreKey(c, key)
		isNew, err := store.MarkProcessed(ctx, storeKey, ttl)
		if err != nil {
			// Store outage: serve the request rather than block postings
			logger.L(ctx).Warn("Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			logger.L(ctx).Info("Duplicate request rejected", zap.String("idempotency_key", key))
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				shared.ErrDuplicateRequest.Code,
				shared.ErrDuplicateRequest.Message,
				GetRequestID(c),
			))
			return
		}

		release := func() {
			if err := store.Release(context.WithoutCancel(ctx), storeKey); err != nil {
				logger.L(ctx).Warn("Failed to release idempotency key", zap.Error(err))
			}
		}
		defer func() {
			if r := recover(); r != nil {
				release()
				panic(r)
			}
			if c.Writer.Status() >= http.StatusBadRequest {
				release()
			}
		}()

		c.Next()
	}
}

// idempotencyStoreKey scopes the client key to the route, so the same key on
// two different endpoints does not collide
func idempotencyStoreKey(c *gin.Context, key string) string {
	return c.Request.Method + " " + c.Request.URL.Path + " " + key
}
