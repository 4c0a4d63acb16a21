package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/service"
)

type RefreshTokenRequest struct {
	Shop string `json:"shop"`
}

// RefreshTokenResponse carries the (possibly refreshed) offline token.
// Tokens without a recorded expiry report accessTokenExpiresAt as null.
type RefreshTokenResponse struct {
	AccessToken          string  `json:"accessToken"`
	AccessTokenExpiresAt *string `json:"accessTokenExpiresAt"`
	Shop                 string  `json:"shop"`
}

// HandleRefreshToken handles POST /api/refresh-token
func HandleRefreshToken(tokens *service.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorMessage(c, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Shop == "" {
			respondErrorMessage(c, "Shop is required", http.StatusBadRequest)
			return
		}

		info, err := tokens.Refresh(c.Request.Context(), req.Shop)
		if err != nil {
			logger.Warn("token refresh failed",
				zap.String("shop", req.Shop),
				zap.Error(err))
			respondError(c, err)
			return
		}

		var expiresAt *string
		if info.ExpiresAt != nil {
			s := info.ExpiresAt.UTC().Format(time.RFC3339)
			expiresAt = &s
		}

		respondSuccess(c, RefreshTokenResponse{
			AccessToken:          info.AccessToken,
			AccessTokenExpiresAt: expiresAt,
			Shop:                 req.Shop,
		}, "Token retrieved successfully")
	}
}
