package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/config"
	"github.com/abhinavshyju/ShopifyApp/internal/domain"
	"github.com/abhinavshyju/ShopifyApp/internal/repository"
	apperrors "github.com/abhinavshyju/ShopifyApp/pkg/errors"
)

const partnerTimeout = 30 * time.Second

// ConnectionService manages the connect/disconnect handshake with the
// partner platform and the local connection record per shop.
type ConnectionService struct {
	tokens      TokenProvider
	sessions    repository.SessionRepository
	connections repository.ConnectionRepository
	httpClient  *http.Client
	baseURL     string
	logger      *zap.Logger
}

// NewConnectionService creates a new connection service
func NewConnectionService(
	tokens TokenProvider,
	sessions repository.SessionRepository,
	connections repository.ConnectionRepository,
	cfg config.PartnerConfig,
	logger *zap.Logger,
) *ConnectionService {
	return &ConnectionService{
		tokens:      tokens,
		sessions:    sessions,
		connections: connections,
		httpClient:  &http.Client{Timeout: partnerTimeout},
		baseURL:     cfg.BaseURL,
		logger:      logger,
	}
}

type connectPayload struct {
	APIKey               string  `json:"apiKey"`
	Shop                 string  `json:"shop"`
	AccessToken          string  `json:"accessToken"`
	AccessTokenExpiresAt *string `json:"accessTokenExpiresAt"`
}

type connectResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Status        string `json:"status"`
		WID           string `json:"wid"`
		WorkspaceName string `json:"workspaceName"`
	} `json:"data"`
	Message string `json:"message"`
	Error   *struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	} `json:"error"`
}

// Connect registers the shop with the partner platform and records the
// returned workspace locally.
func (s *ConnectionService) Connect(ctx context.Context, shop, apiKey string) (*domain.Connection, error) {
	if s.baseURL == "" {
		return nil, &apperrors.ErrUnavailable{Message: "partner platform is not configured"}
	}

	token, err := s.tokens.EnsureValidToken(ctx, shop)
	if err != nil {
		return nil, err
	}

	payload := connectPayload{
		APIKey:      apiKey,
		Shop:        shop,
		AccessToken: token.AccessToken,
	}
	if token.ExpiresAt != nil {
		expires := token.ExpiresAt.UTC().Format(time.RFC3339)
		payload.AccessTokenExpiresAt = &expires
	}

	var result connectResponse
	if err := s.call(ctx, http.MethodPost, payload, &result); err != nil {
		return nil, err
	}

	if !result.Success || result.Data == nil {
		message := "partner platform rejected the connection"
		if result.Error != nil && result.Error.Message != "" {
			message = result.Error.Message
		}
		return nil, &apperrors.ErrUpstream{Operation: "partner connect", Errors: []string{message}}
	}

	conn := &domain.Connection{
		Shop:          shop,
		WorkspaceID:   result.Data.WID,
		WorkspaceName: result.Data.WorkspaceName,
		Status:        result.Data.Status,
		APIKey:        apiKey,
	}
	if err := s.connections.Upsert(ctx, conn); err != nil {
		return nil, fmt.Errorf("persist connection: %w", err)
	}

	s.logger.Info("Connected shop to partner workspace",
		zap.String("shop", shop),
		zap.String("workspace_id", conn.WorkspaceID),
	)

	return conn, nil
}

// Disconnect is the merchant-initiated flow: notify the partner platform,
// then drop the local record.
func (s *ConnectionService) Disconnect(ctx context.Context, shop string) error {
	if s.baseURL == "" {
		return &apperrors.ErrUnavailable{Message: "partner platform is not configured"}
	}

	conn, err := s.connections.FindByShop(ctx, shop)
	if err != nil {
		return fmt.Errorf("find connection: %w", err)
	}
	if conn == nil {
		return &apperrors.ErrNotFound{Resource: "connection", ID: shop, Message: "connection not found"}
	}

	body := map[string]string{"shop": shop, "wid": conn.WorkspaceID}
	if err := s.call(ctx, http.MethodPut, body, nil); err != nil {
		return err
	}

	if err := s.connections.Delete(ctx, shop); err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}

	s.logger.Info("Disconnected shop from partner workspace", zap.String("shop", shop))
	return nil
}

// DisconnectByWorkspace is the partner-initiated flow. The workspace ID
// must match the stored one; only the local record is removed.
func (s *ConnectionService) DisconnectByWorkspace(ctx context.Context, shop, wid string) error {
	session, err := s.sessions.FindOfflineByShop(ctx, shop)
	if err != nil {
		return fmt.Errorf("find offline session: %w", err)
	}
	if session == nil {
		return apperrors.NoSession(shop)
	}

	conn, err := s.connections.FindByShop(ctx, shop)
	if err != nil {
		return fmt.Errorf("find connection: %w", err)
	}
	if conn == nil {
		return &apperrors.ErrNotFound{Resource: "connection", ID: shop, Message: "connection not found"}
	}
	if conn.WorkspaceID != wid {
		return &apperrors.ErrConflict{Message: "workspace ID mismatch", Status: 400}
	}

	if err := s.connections.Delete(ctx, shop); err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}

	s.logger.Info("Partner-initiated disconnect completed", zap.String("shop", shop), zap.String("workspace_id", wid))
	return nil
}

// GetConnection returns the stored connection for a shop.
func (s *ConnectionService) GetConnection(ctx context.Context, shop string) (*domain.Connection, error) {
	conn, err := s.connections.FindByShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("find connection: %w", err)
	}
	if conn == nil {
		return nil, &apperrors.ErrNotFound{Resource: "connection", ID: shop, Message: "connection not found"}
	}
	return conn, nil
}

// call sends a JSON request to the partner webhook endpoint and decodes
// the response into out when non-nil.
func (s *ConnectionService) call(ctx context.Context, method string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal partner payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+"/shopify-webhook", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create partner request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &apperrors.ErrUpstream{Operation: "partner webhook", Errors: []string{err.Error()}}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.ErrUpstream{Operation: "partner webhook", Errors: []string{err.Error()}}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apperrors.ErrUpstream{
			Operation: "partner webhook",
			Errors:    []string{fmt.Sprintf("status %d: %s", resp.StatusCode, string(respBody))},
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parse partner response: %w", err)
		}
	}
	return nil
}
