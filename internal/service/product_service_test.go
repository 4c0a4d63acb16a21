package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSearchReturnsMatchingProducts(t *testing.T) {
	exec := &fakeExecutor{responses: []string{`{"products": {"edges": [
		{"node": {"id": "gid://shopify/Product/1", "title": "Travel Mug", "handle": "travel-mug", "status": "ACTIVE", "totalInventory": 12}},
		{"node": {"id": "gid://shopify/Product/2", "title": "Travel Mug XL", "handle": "travel-mug-xl", "status": "ACTIVE", "totalInventory": 3}}
	]}}`}}
	svc := NewProductService(fakeTokens{}, exec, zap.NewNop())

	products, err := svc.Search(context.Background(), "shop1.myshopify.com", "mug")
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "Travel Mug", products[0].Title)
	require.Equal(t, 12, products[0].TotalInventory)
	require.Equal(t, "mug", exec.calls[0].Variables["query"])
}

func TestSearchNoMatches(t *testing.T) {
	exec := &fakeExecutor{responses: []string{`{"products": {"edges": []}}`}}
	svc := NewProductService(fakeTokens{}, exec, zap.NewNop())

	products, err := svc.Search(context.Background(), "shop1.myshopify.com", "nothing")
	require.NoError(t, err)
	require.Empty(t, products)
}
