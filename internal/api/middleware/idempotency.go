package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/domain"
	"github.com/abhinavshyju/ShopifyApp/internal/repository"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// responseRecorder captures the response body so a successful write can
// be replayed on a retried idempotency key.
type responseRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a write request repeats an
// Idempotency-Key with the same payload, and rejects reuse of a key with
// a different payload.
func Idempotency(keys repository.IdempotencyKeyRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logger.Error("Failed to read request body for idempotency", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   gin.H{"message": "failed to process request", "statusCode": http.StatusInternalServerError},
			})
			c.Abort()
			return
		}

		// Restore body for handler
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		hash := sha256.Sum256(body)
		requestHash := hex.EncodeToString(hash[:])

		existing, err := keys.GetByKey(c.Request.Context(), idempotencyKey)
		if err != nil {
			// Storage trouble must not block the write; fall through.
			logger.Error("Failed to check idempotency key", zap.Error(err))
			c.Next()
			return
		}

		if existing != nil {
			if existing.RequestHash != requestHash {
				c.JSON(http.StatusConflict, gin.H{
					"success": false,
					"error": gin.H{
						"message":    "idempotency key conflict: same key used with different payload",
						"statusCode": http.StatusConflict,
					},
				})
				c.Abort()
				return
			}

			c.Data(existing.StatusCode, "application/json", existing.ResponseBody)
			c.Abort()
			return
		}

		recorder := &responseRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		// Only successful writes are stored; a failed mutation may be retried.
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		var reqBody struct {
			Shop string `json:"shop"`
		}
		_ = json.Unmarshal(body, &reqBody)

		record := &domain.IdempotencyKey{
			Key:          idempotencyKey,
			Shop:         reqBody.Shop,
			RequestHash:  requestHash,
			ResponseBody: recorder.body.Bytes(),
			StatusCode:   status,
		}
		if err := keys.Create(c.Request.Context(), record); err != nil {
			logger.Error("Failed to store idempotency key", zap.Error(err))
		}
	}
}
