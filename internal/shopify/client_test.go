package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExecuteSendsAccessTokenHeader(t *testing.T) {
	var gotToken string
	var gotReq Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"data": {"order": {"id": "gid://shopify/Order/1"}}}`))
	}))
	defer srv.Close()

	c := NewClient("2025-01", zap.NewNop())
	c.endpoint = func(string) string { return srv.URL }

	resp, err := c.Execute(context.Background(), "shop1.myshopify.com", "token-1", TrackOrderByIDQuery, map[string]interface{}{
		"id": "gid://shopify/Order/1",
	})
	require.NoError(t, err)
	require.Equal(t, "token-1", gotToken)
	require.Equal(t, TrackOrderByIDQuery, gotReq.Query)
	require.Equal(t, "gid://shopify/Order/1", gotReq.Variables["id"])
	require.JSONEq(t, `{"order": {"id": "gid://shopify/Order/1"}}`, string(resp.Data))
}

func TestExecuteJoinsGraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "Field 'bogus' doesn't exist"}, {"message": "Access denied"}]}`))
	}))
	defer srv.Close()

	c := NewClient("2025-01", zap.NewNop())
	c.endpoint = func(string) string { return srv.URL }

	_, err := c.Execute(context.Background(), "shop1.myshopify.com", "token-1", "query { bogus }", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Field 'bogus' doesn't exist")
	require.Contains(t, err.Error(), "Access denied")
}

func TestExecuteNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("2025-01", zap.NewNop())
	c.endpoint = func(string) string { return srv.URL }

	_, err := c.Execute(context.Background(), "shop1.myshopify.com", "token-1", "query { shop { id } }", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 429")
}

func TestNormalizeShopDomain(t *testing.T) {
	require.Equal(t, "shop1.myshopify.com", normalizeShopDomain("https://shop1.myshopify.com/"))
	require.Equal(t, "shop1.myshopify.com", normalizeShopDomain("http://shop1.myshopify.com"))
	require.Equal(t, "shop1.myshopify.com", normalizeShopDomain("shop1.myshopify.com"))
}
