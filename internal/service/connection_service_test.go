package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/config"
	"github.com/abhinavshyju/ShopifyApp/internal/domain"
	apperrors "github.com/abhinavshyju/ShopifyApp/pkg/errors"
)

type fakeConnectionRepo struct {
	conn    *domain.Connection
	deleted []string
}

func (f *fakeConnectionRepo) FindByShop(ctx context.Context, shop string) (*domain.Connection, error) {
	return f.conn, nil
}

func (f *fakeConnectionRepo) Upsert(ctx context.Context, conn *domain.Connection) error {
	f.conn = conn
	return nil
}

func (f *fakeConnectionRepo) Delete(ctx context.Context, shop string) error {
	f.deleted = append(f.deleted, shop)
	f.conn = nil
	return nil
}

func newConnectionService(sessions *fakeSessionRepo, connections *fakeConnectionRepo, baseURL string) *ConnectionService {
	return NewConnectionService(fakeTokens{}, sessions, connections, config.PartnerConfig{BaseURL: baseURL}, zap.NewNop())
}

func TestConnectRegistersWorkspace(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/shopify-webhook", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]string{
				"status":        "connected",
				"wid":           "ws-1",
				"workspaceName": "Acme Fulfillment",
			},
		})
	}))
	defer srv.Close()

	connections := &fakeConnectionRepo{}
	svc := newConnectionService(&fakeSessionRepo{}, connections, srv.URL)

	conn, err := svc.Connect(context.Background(), "shop1.myshopify.com", "partner-key")
	require.NoError(t, err)
	require.Equal(t, "ws-1", conn.WorkspaceID)
	require.Equal(t, "Acme Fulfillment", conn.WorkspaceName)
	require.Equal(t, "connected", conn.Status)

	require.Equal(t, "partner-key", received["apiKey"])
	require.Equal(t, "shop1.myshopify.com", received["shop"])
	require.Equal(t, "token", received["accessToken"])

	require.NotNil(t, connections.conn)
	require.Equal(t, "ws-1", connections.conn.WorkspaceID)
}

func TestConnectRejectedByPartner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   map[string]interface{}{"message": "invalid api key", "status": 401},
		})
	}))
	defer srv.Close()

	connections := &fakeConnectionRepo{}
	svc := newConnectionService(&fakeSessionRepo{}, connections, srv.URL)

	_, err := svc.Connect(context.Background(), "shop1.myshopify.com", "bad-key")
	var up *apperrors.ErrUpstream
	require.ErrorAs(t, err, &up)
	require.Contains(t, err.Error(), "invalid api key")
	require.Nil(t, connections.conn)
}

func TestConnectUnconfiguredPartner(t *testing.T) {
	svc := newConnectionService(&fakeSessionRepo{}, &fakeConnectionRepo{}, "")

	_, err := svc.Connect(context.Background(), "shop1.myshopify.com", "key")
	var unavailable *apperrors.ErrUnavailable
	require.ErrorAs(t, err, &unavailable)
}

func TestDisconnectNotifiesPartnerThenDeletes(t *testing.T) {
	var method string
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	connections := &fakeConnectionRepo{conn: &domain.Connection{
		Shop:        "shop1.myshopify.com",
		WorkspaceID: "ws-1",
	}}
	svc := newConnectionService(&fakeSessionRepo{}, connections, srv.URL)

	require.NoError(t, svc.Disconnect(context.Background(), "shop1.myshopify.com"))
	require.Equal(t, http.MethodPut, method)
	require.Equal(t, "ws-1", received["wid"])
	require.Equal(t, []string{"shop1.myshopify.com"}, connections.deleted)
}

func TestDisconnectKeepsRecordWhenPartnerCallFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	connections := &fakeConnectionRepo{conn: &domain.Connection{
		Shop:        "shop1.myshopify.com",
		WorkspaceID: "ws-1",
	}}
	svc := newConnectionService(&fakeSessionRepo{}, connections, srv.URL)

	err := svc.Disconnect(context.Background(), "shop1.myshopify.com")
	var up *apperrors.ErrUpstream
	require.ErrorAs(t, err, &up)
	require.Empty(t, connections.deleted)
}

func TestDisconnectByWorkspaceMismatch(t *testing.T) {
	sessions := &fakeSessionRepo{session: &domain.Session{
		ID:          "offline_shop1",
		Shop:        "shop1.myshopify.com",
		AccessToken: "token",
	}}
	connections := &fakeConnectionRepo{conn: &domain.Connection{
		Shop:        "shop1.myshopify.com",
		WorkspaceID: "ws-1",
	}}
	svc := newConnectionService(sessions, connections, "http://unused.invalid")

	err := svc.DisconnectByWorkspace(context.Background(), "shop1.myshopify.com", "ws-2")
	var conflict *apperrors.ErrConflict
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, 400, conflict.StatusCode())
	require.Empty(t, connections.deleted)
}

func TestDisconnectByWorkspaceDeletesLocallyOnly(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	sessions := &fakeSessionRepo{session: &domain.Session{
		ID:          "offline_shop1",
		Shop:        "shop1.myshopify.com",
		AccessToken: "token",
	}}
	connections := &fakeConnectionRepo{conn: &domain.Connection{
		Shop:        "shop1.myshopify.com",
		WorkspaceID: "ws-1",
	}}
	svc := newConnectionService(sessions, connections, srv.URL)

	require.NoError(t, svc.DisconnectByWorkspace(context.Background(), "shop1.myshopify.com", "ws-1"))
	require.Equal(t, 0, calls)
	require.Equal(t, []string{"shop1.myshopify.com"}, connections.deleted)
}

func TestDisconnectByWorkspaceNoSession(t *testing.T) {
	svc := newConnectionService(&fakeSessionRepo{}, &fakeConnectionRepo{}, "http://unused.invalid")

	err := svc.DisconnectByWorkspace(context.Background(), "shop1.myshopify.com", "ws-1")
	var nf *apperrors.ErrNotFound
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "session", nf.Resource)
}
