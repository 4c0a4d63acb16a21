package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/shopify"
)

// ProductService runs storefront product searches on behalf of the partner.
type ProductService struct {
	tokens TokenProvider
	client GraphQLExecutor
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(tokens TokenProvider, client GraphQLExecutor, logger *zap.Logger) *ProductService {
	return &ProductService{
		tokens: tokens,
		client: client,
		logger: logger,
	}
}

// Search returns up to 25 products matching the search filter.
func (s *ProductService) Search(ctx context.Context, shop, searchQuery string) ([]shopify.Product, error) {
	token, err := s.tokens.EnsureValidToken(ctx, shop)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Execute(ctx, shop, token.AccessToken, shopify.SearchProductsQuery, map[string]interface{}{
		"query": searchQuery,
	})
	if err != nil {
		return nil, fmt.Errorf("product search: %w", err)
	}

	var result struct {
		Products struct {
			Edges []struct {
				Node shopify.Product `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse product search response: %w", err)
	}

	products := make([]shopify.Product, 0, len(result.Products.Edges))
	for _, edge := range result.Products.Edges {
		products = append(products, edge.Node)
	}
	return products, nil
}
