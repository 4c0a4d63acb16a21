package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/service"
)

type ProductSearchRequest struct {
	Shop        string `json:"shop"`
	SearchQuery string `json:"searchQuery"`
}

// HandleProductSearch handles POST /api/product-search
func HandleProductSearch(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductSearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorMessage(c, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Shop == "" {
			respondErrorMessage(c, "Shop is required", http.StatusBadRequest)
			return
		}
		if req.SearchQuery == "" {
			respondErrorMessage(c, "Search query is required", http.StatusBadRequest)
			return
		}

		found, err := products.Search(c.Request.Context(), req.Shop, req.SearchQuery)
		if err != nil {
			logger.Warn("product search failed",
				zap.String("shop", req.Shop),
				zap.Error(err))
			respondError(c, err)
			return
		}

		respondSuccess(c, gin.H{
			"products": found,
			"count":    len(found),
		}, "Products retrieved successfully")
	}
}
