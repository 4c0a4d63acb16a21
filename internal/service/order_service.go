package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/domain"
	"github.com/abhinavshyju/ShopifyApp/internal/shopify"
	apperrors "github.com/abhinavshyju/ShopifyApp/pkg/errors"
)

// GraphQLExecutor is the slice of the Shopify client the order service uses.
type GraphQLExecutor interface {
	Execute(ctx context.Context, shop, accessToken, query string, variables map[string]interface{}) (*shopify.Response, error)
}

// TokenProvider supplies a valid access token for a shop.
type TokenProvider interface {
	EnsureValidToken(ctx context.Context, shop string) (domain.TokenInfo, error)
}

// OrderService resolves order identifiers, runs tracking lookups and
// issues order mutations against the Shopify Admin API.
type OrderService struct {
	tokens TokenProvider
	client GraphQLExecutor
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(tokens TokenProvider, client GraphQLExecutor, logger *zap.Logger) *OrderService {
	return &OrderService{
		tokens: tokens,
		client: client,
		logger: logger,
	}
}

type orderByIDData struct {
	Order *shopify.Order `json:"order"`
}

type ordersSearchData struct {
	Orders struct {
		Edges []struct {
			Node shopify.Order `json:"node"`
		} `json:"edges"`
	} `json:"orders"`
}

// Track fetches the order via whichever identifier is present (orderId
// first, then orderNumber, then email) and normalizes the payload into
// the canonical tracking record.
func (s *OrderService) Track(ctx context.Context, in TrackOrderInput) (*domain.OrderTracking, error) {
	if in.OrderID == "" && in.OrderNumber == "" && in.Email == "" {
		return nil, &apperrors.ErrValidation{Message: "provide orderId OR orderNumber OR email"}
	}

	token, err := s.tokens.EnsureValidToken(ctx, in.Shop)
	if err != nil {
		return nil, err
	}

	if in.OrderID != "" {
		order, err := s.fetchOrderByID(ctx, in.Shop, token.AccessToken, in.OrderID)
		if err != nil {
			return nil, err
		}
		return buildTracking(order), nil
	}

	if in.OrderNumber != "" {
		order, err := s.searchOrder(ctx, in.Shop, token.AccessToken, shopify.TrackOrderByNameQuery, nameFilter(in.OrderNumber))
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperrors.OrderNotFound(in.OrderNumber)
		}
		return buildTracking(order), nil
	}

	order, err := s.searchOrder(ctx, in.Shop, token.AccessToken, shopify.TrackOrderByEmailQuery, "email:"+in.Email)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NoOrdersForEmail(in.Email)
	}
	return buildTracking(order), nil
}

// ResolveOrderID maps either identifier to an order GID. A supplied
// orderId is returned unchanged without a network call.
func (s *OrderService) ResolveOrderID(ctx context.Context, shop, orderID, orderNumber string) (string, error) {
	if orderID != "" {
		return orderID, nil
	}
	if orderNumber == "" {
		return "", &apperrors.ErrValidation{Message: "either orderId or orderNumber is required"}
	}

	token, err := s.tokens.EnsureValidToken(ctx, shop)
	if err != nil {
		return "", err
	}
	return s.resolveOrderID(ctx, shop, token.AccessToken, orderID, orderNumber)
}

func (s *OrderService) resolveOrderID(ctx context.Context, shop, accessToken, orderID, orderNumber string) (string, error) {
	if orderID != "" {
		return orderID, nil
	}
	if orderNumber == "" {
		return "", &apperrors.ErrValidation{Message: "either orderId or orderNumber is required"}
	}

	resp, err := s.client.Execute(ctx, shop, accessToken, shopify.OrderIDByNameQuery, map[string]interface{}{
		"query": nameFilter(orderNumber),
	})
	if err != nil {
		return "", fmt.Errorf("order lookup by number: %w", err)
	}

	var result ordersSearchData
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", fmt.Errorf("parse order lookup response: %w", err)
	}
	if len(result.Orders.Edges) == 0 {
		return "", apperrors.OrderNotFound(orderNumber)
	}
	return result.Orders.Edges[0].Node.ID, nil
}

func (s *OrderService) fetchOrderByID(ctx context.Context, shop, accessToken, orderID string) (*shopify.Order, error) {
	resp, err := s.client.Execute(ctx, shop, accessToken, shopify.TrackOrderByIDQuery, map[string]interface{}{
		"id": orderID,
	})
	if err != nil {
		return nil, fmt.Errorf("order fetch by id: %w", err)
	}

	var result orderByIDData
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse order response: %w", err)
	}
	if result.Order == nil {
		return nil, apperrors.OrderNotFound(orderID)
	}
	return result.Order, nil
}

// searchOrder runs a filtered orders query and returns the first match,
// or nil when the filter matched nothing.
func (s *OrderService) searchOrder(ctx context.Context, shop, accessToken, query, filter string) (*shopify.Order, error) {
	resp, err := s.client.Execute(ctx, shop, accessToken, query, map[string]interface{}{
		"query": filter,
	})
	if err != nil {
		return nil, fmt.Errorf("order search: %w", err)
	}

	var result ordersSearchData
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse orders response: %w", err)
	}
	if len(result.Orders.Edges) == 0 {
		return nil, nil
	}
	order := result.Orders.Edges[0].Node
	return &order, nil
}

// nameFilter builds the Shopify search filter for an order number.
// Shopify stores names with a leading # (e.g. "#1001").
func nameFilter(orderNumber string) string {
	if orderNumber != "" && !strings.HasPrefix(orderNumber, "#") {
		orderNumber = "#" + orderNumber
	}
	return "name:" + orderNumber
}
