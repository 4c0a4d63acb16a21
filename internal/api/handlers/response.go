package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/abhinavshyju/ShopifyApp/pkg/errors"
)

// successBody is the success envelope; message is omitted when empty.
type successBody struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

type errorBody struct {
	Success bool         `json:"success"`
	Error   errorDetails `json:"error"`
}

type errorDetails struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

func respondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, successBody{Success: true, Data: data, Message: message})
}

// respondError maps the error's attached status (500 for plain errors)
// into the error envelope.
func respondError(c *gin.Context, err error) {
	respondErrorMessage(c, err.Error(), apperrors.StatusCode(err))
}

func respondErrorMessage(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, errorBody{
		Success: false,
		Error:   errorDetails{Message: message, StatusCode: statusCode},
	})
}
