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

// refreshMargin is subtracted from the access-token expiry before
// comparing against now, so a token never expires mid-request.
const refreshMargin = 5 * time.Minute

// TokenService guarantees a valid, non-expired access token for a shop.
// It is a read-through cache over the session store: no network call is
// made while the stored token is outside the refresh margin.
//
// Concurrent refreshes for the same shop are not serialized; two
// near-expiry requests may both refresh and the second write wins. Both
// resulting tokens are valid, so this is accepted rather than locked.
type TokenService struct {
	sessions   repository.SessionRepository
	cfg        config.ShopifyConfig
	httpClient *http.Client
	logger     *zap.Logger
	tokenURL   func(shop string) string
	now        func() time.Time
}

// NewTokenService creates a new token service
func NewTokenService(sessions repository.SessionRepository, cfg config.ShopifyConfig, logger *zap.Logger) *TokenService {
	return &TokenService{
		sessions: sessions,
		cfg:      cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
		tokenURL: func(shop string) string {
			return fmt.Sprintf("https://%s/admin/oauth/access_token", shop)
		},
		now: time.Now,
	}
}

// EnsureValidToken returns a usable access token for the shop, refreshing
// it first when the stored one is missing an expiry or within the refresh
// margin of expiring.
func (s *TokenService) EnsureValidToken(ctx context.Context, shop string) (domain.TokenInfo, error) {
	session, err := s.loadOfflineSession(ctx, shop)
	if err != nil {
		return domain.TokenInfo{}, err
	}

	if !s.needsRefresh(session) {
		return domain.TokenInfo{AccessToken: session.AccessToken, ExpiresAt: session.ExpiresAt}, nil
	}

	if session.RefreshToken == nil || *session.RefreshToken == "" {
		return domain.TokenInfo{}, &apperrors.ErrMissingRefreshToken{Shop: shop}
	}

	return s.refresh(ctx, session)
}

// Refresh is the forced-refresh path behind POST /api/refresh-token. It
// follows the same decision rule, so a still-fresh token is returned
// without a network call.
func (s *TokenService) Refresh(ctx context.Context, shop string) (domain.TokenInfo, error) {
	session, err := s.loadOfflineSession(ctx, shop)
	if err != nil {
		return domain.TokenInfo{}, err
	}

	if !s.needsRefresh(session) {
		return domain.TokenInfo{AccessToken: session.AccessToken, ExpiresAt: session.ExpiresAt}, nil
	}

	if session.RefreshToken == nil || *session.RefreshToken == "" {
		return domain.TokenInfo{}, &apperrors.ErrMissingRefreshToken{Shop: shop}
	}

	return s.refresh(ctx, session)
}

// loadOfflineSession fetches the shop's offline session and applies the
// terminal refresh-token-expiry check, which holds regardless of the
// access token's own state.
func (s *TokenService) loadOfflineSession(ctx context.Context, shop string) (*domain.Session, error) {
	session, err := s.sessions.FindOfflineByShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("find offline session: %w", err)
	}
	if session == nil {
		return nil, apperrors.NoSession(shop)
	}
	if session.AccessToken == "" {
		return nil, &apperrors.ErrNotFound{
			Resource: "access token",
			ID:       shop,
			Message:  fmt.Sprintf("no access token available for shop: %s", shop),
		}
	}
	if session.RefreshTokenExpires != nil && !session.RefreshTokenExpires.After(s.now()) {
		return nil, &apperrors.ErrRefreshTokenExpired{Shop: shop}
	}
	return session, nil
}

// needsRefresh: expiry unknown, or now is within the margin of it.
func (s *TokenService) needsRefresh(session *domain.Session) bool {
	if session.ExpiresAt == nil {
		return true
	}
	return !s.now().Before(session.ExpiresAt.Add(-refreshMargin))
}

type accessTokenResponse struct {
	AccessToken           string `json:"access_token"`
	ExpiresIn             *int64 `json:"expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn *int64 `json:"refresh_token_expires_in"`
}

// refresh exchanges the stored refresh token with the shop's OAuth
// endpoint and persists the result. The stored session is only mutated
// after a successful exchange.
func (s *TokenService) refresh(ctx context.Context, session *domain.Session) (domain.TokenInfo, error) {
	shop := session.Shop

	payload, err := json.Marshal(map[string]string{
		"client_id":     s.cfg.APIKey,
		"client_secret": s.cfg.APISecret,
		"grant_type":    "refresh_token",
		"refresh_token": *session.RefreshToken,
	})
	if err != nil {
		return domain.TokenInfo{}, fmt.Errorf("marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL(shop), bytes.NewReader(payload))
	if err != nil {
		return domain.TokenInfo{}, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.TokenInfo{}, &apperrors.ErrTokenRefresh{Shop: shop, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.TokenInfo{}, &apperrors.ErrTokenRefresh{Shop: shop, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.TokenInfo{}, &apperrors.ErrTokenRefresh{
			Shop:  shop,
			Cause: fmt.Errorf("status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var tokenResp accessTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return domain.TokenInfo{}, &apperrors.ErrTokenRefresh{Shop: shop, Cause: err}
	}
	if tokenResp.AccessToken == "" {
		return domain.TokenInfo{}, &apperrors.ErrTokenRefresh{
			Shop:  shop,
			Cause: fmt.Errorf("response contained no access token"),
		}
	}

	now := s.now()
	var newExpiresAt *time.Time
	if tokenResp.ExpiresIn != nil {
		t := now.Add(time.Duration(*tokenResp.ExpiresIn) * time.Second)
		newExpiresAt = &t
	}

	upd := repository.SessionTokenUpdate{
		AccessToken: tokenResp.AccessToken,
		ExpiresAt:   newExpiresAt,
	}
	// Rotate the refresh token only when the response supplies one.
	if tokenResp.RefreshToken != "" {
		upd.RefreshToken = &tokenResp.RefreshToken
	}
	if tokenResp.RefreshTokenExpiresIn != nil {
		t := now.Add(time.Duration(*tokenResp.RefreshTokenExpiresIn) * time.Second)
		upd.RefreshTokenExpires = &t
	}

	if err := s.sessions.UpdateToken(ctx, session.ID, upd); err != nil {
		return domain.TokenInfo{}, fmt.Errorf("persist refreshed token: %w", err)
	}

	s.logger.Info("Refreshed access token",
		zap.String("shop", shop),
		zap.Bool("refresh_token_rotated", tokenResp.RefreshToken != ""),
	)

	return domain.TokenInfo{AccessToken: tokenResp.AccessToken, ExpiresAt: newExpiresAt}, nil
}
