package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/domain"
	"github.com/abhinavshyju/ShopifyApp/internal/service"
	"github.com/abhinavshyju/ShopifyApp/internal/shopify"
)

type staticTokens struct{}

func (staticTokens) EnsureValidToken(ctx context.Context, shop string) (domain.TokenInfo, error) {
	return domain.TokenInfo{AccessToken: "token"}, nil
}

type recordingExecutor struct {
	responses []string
	variables []map[string]interface{}
}

func (f *recordingExecutor) Execute(ctx context.Context, shop, accessToken, query string, variables map[string]interface{}) (*shopify.Response, error) {
	f.variables = append(f.variables, variables)
	if len(f.responses) == 0 {
		return &shopify.Response{Data: json.RawMessage(`{}`)}, nil
	}
	data := f.responses[0]
	f.responses = f.responses[1:]
	return &shopify.Response{Data: json.RawMessage(data)}, nil
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST(path, handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandleTrackOrderRequiresShop(t *testing.T) {
	exec := &recordingExecutor{}
	orders := service.NewOrderService(staticTokens{}, exec, zap.NewNop())

	w := postJSON(t, HandleTrackOrder(orders, zap.NewNop()), "/api/track-order", `{"orderId": "gid://shopify/Order/1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Shop is required")
	require.Empty(t, exec.variables)
}

func TestHandleTrackOrderEmailWithNoMatchesReturnsEmptyList(t *testing.T) {
	exec := &recordingExecutor{responses: []string{`{"orders": {"edges": []}}`}}
	orders := service.NewOrderService(staticTokens{}, exec, zap.NewNop())

	w := postJSON(t, HandleTrackOrder(orders, zap.NewNop()), "/api/track-order",
		`{"shop": "shop1.myshopify.com", "email": "a@b.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Orders []interface{} `json:"orders"`
			Count  int           `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Empty(t, resp.Data.Orders)
	require.Equal(t, 0, resp.Data.Count)
}

func TestHandleCancelOrderAppliesDefaults(t *testing.T) {
	exec := &recordingExecutor{responses: []string{
		`{"orderCancel": {"job": {"id": "gid://shopify/Job/1", "done": false}, "orderCancelUserErrors": []}}`,
	}}
	orders := service.NewOrderService(staticTokens{}, exec, zap.NewNop())

	w := postJSON(t, HandleCancelOrder(orders, zap.NewNop()), "/api/cancel-order",
		`{"shop": "shop1.myshopify.com", "orderId": "gid://shopify/Order/1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Order cancellation initiated successfully")

	vars := exec.variables[0]
	require.Equal(t, "CUSTOMER", vars["reason"])
	require.Equal(t, false, vars["restock"])
	require.Equal(t, true, vars["notifyCustomer"])
}

func TestHandleCancelOrderErrorEnvelope(t *testing.T) {
	exec := &recordingExecutor{responses: []string{
		`{"orderCancel": {"job": null, "orderCancelUserErrors": [
			{"field": ["orderId"], "message": "Order is already cancelled"}
		]}}`,
	}}
	orders := service.NewOrderService(staticTokens{}, exec, zap.NewNop())

	w := postJSON(t, HandleCancelOrder(orders, zap.NewNop()), "/api/cancel-order",
		`{"shop": "shop1.myshopify.com", "orderId": "gid://shopify/Order/1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Message    string `json:"message"`
			StatusCode int    `json:"statusCode"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, http.StatusBadRequest, resp.Error.StatusCode)
	require.Contains(t, resp.Error.Message, "Order is already cancelled")
}

func TestHandleRefundOrderFullRefundShorthand(t *testing.T) {
	exec := &recordingExecutor{responses: []string{
		`{"refundCreate": {"refund": {"id": "gid://shopify/Refund/1", "createdAt": "2025-02-06T00:00:00Z"}, "userErrors": []}}`,
	}}
	orders := service.NewOrderService(staticTokens{}, exec, zap.NewNop())

	// No shipping object and no fullRefund flag: defaults to a full
	// shipping refund.
	w := postJSON(t, HandleRefundOrder(orders, zap.NewNop()), "/api/refund-order",
		`{"shop": "shop1.myshopify.com", "orderId": "gid://shopify/Order/1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	input, ok := exec.variables[0]["input"].(shopify.RefundInput)
	require.True(t, ok)
	require.NotNil(t, input.Shipping)
	require.True(t, input.Shipping.FullRefund)
	require.Empty(t, input.RefundLineItems)
}

func TestHandleRefundOrderFullRefundDisabled(t *testing.T) {
	exec := &recordingExecutor{responses: []string{
		`{"refundCreate": {"refund": {"id": "gid://shopify/Refund/1", "createdAt": "2025-02-06T00:00:00Z"}, "userErrors": []}}`,
	}}
	orders := service.NewOrderService(staticTokens{}, exec, zap.NewNop())

	w := postJSON(t, HandleRefundOrder(orders, zap.NewNop()), "/api/refund-order",
		`{"shop": "shop1.myshopify.com", "orderId": "gid://shopify/Order/1", "fullRefund": false,
		  "refundLineItems": [{"lineItemId": "gid://shopify/LineItem/1", "quantity": 1}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	input, ok := exec.variables[0]["input"].(shopify.RefundInput)
	require.True(t, ok)
	require.Nil(t, input.Shipping)
	require.Len(t, input.RefundLineItems, 1)
}

func TestHandleChangeShipmentAddressRequiresAddress(t *testing.T) {
	exec := &recordingExecutor{}
	orders := service.NewOrderService(staticTokens{}, exec, zap.NewNop())

	w := postJSON(t, HandleChangeShipmentAddress(orders, zap.NewNop()), "/api/change-shipment-address",
		`{"shop": "shop1.myshopify.com", "orderId": "gid://shopify/Order/1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Shipping address is required")
}
