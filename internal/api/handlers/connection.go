package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/service"
)

type ConnectRequest struct {
	Shop   string `json:"shop"`
	APIKey string `json:"apiKey"`
}

// HandleConnect handles POST /api/connect
func HandleConnect(connections *service.ConnectionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConnectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorMessage(c, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Shop == "" {
			respondErrorMessage(c, "Shop is required", http.StatusBadRequest)
			return
		}
		if req.APIKey == "" {
			respondErrorMessage(c, "API key is required", http.StatusBadRequest)
			return
		}

		conn, err := connections.Connect(c.Request.Context(), req.Shop, req.APIKey)
		if err != nil {
			logger.Warn("connect failed",
				zap.String("shop", req.Shop),
				zap.Error(err))
			respondError(c, err)
			return
		}

		respondSuccess(c, conn, "Store connected successfully")
	}
}

// HandleGetConnection handles GET /api/connection?shop=...
func HandleGetConnection(connections *service.ConnectionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := c.Query("shop")
		if shop == "" {
			respondErrorMessage(c, "Shop is required", http.StatusBadRequest)
			return
		}

		conn, err := connections.GetConnection(c.Request.Context(), shop)
		if err != nil {
			respondError(c, err)
			return
		}

		respondSuccess(c, conn, "")
	}
}

type DisconnectRequest struct {
	Shop        string `json:"shop"`
	WorkspaceID string `json:"workspaceId"`
}

// HandleDisconnect handles DELETE /api/disconnect (merchant-initiated:
// notify the partner platform, then drop the local connection record).
func HandleDisconnect(connections *service.ConnectionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DisconnectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorMessage(c, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Shop == "" {
			respondErrorMessage(c, "Shop is required", http.StatusBadRequest)
			return
		}

		if err := connections.Disconnect(c.Request.Context(), req.Shop); err != nil {
			logger.Warn("disconnect failed",
				zap.String("shop", req.Shop),
				zap.Error(err))
			respondError(c, err)
			return
		}

		respondSuccess(c, gin.H{"shop": req.Shop}, "Store disconnected successfully")
	}
}

// HandleDisconnectByWorkspace handles POST /api/disconnect (partner-initiated:
// the partner already tore down its side, only the local record is removed).
func HandleDisconnectByWorkspace(connections *service.ConnectionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DisconnectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorMessage(c, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Shop == "" {
			respondErrorMessage(c, "Shop is required", http.StatusBadRequest)
			return
		}
		if req.WorkspaceID == "" {
			respondErrorMessage(c, "Workspace ID is required", http.StatusBadRequest)
			return
		}

		if err := connections.DisconnectByWorkspace(c.Request.Context(), req.Shop, req.WorkspaceID); err != nil {
			logger.Warn("workspace disconnect failed",
				zap.String("shop", req.Shop),
				zap.String("workspace_id", req.WorkspaceID),
				zap.Error(err))
			respondError(c, err)
			return
		}

		respondSuccess(c, gin.H{"shop": req.Shop}, "Store disconnected successfully")
	}
}
