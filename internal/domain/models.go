package domain

import (
	"time"
)

// Session is the persisted offline credential record for a shop. Created
// during OAuth install (outside this service), mutated in place on each
// successful token refresh, deleted only by the uninstall flow.
type Session struct {
	ID                  string
	Shop                string
	AccessToken         string
	ExpiresAt           *time.Time
	RefreshToken        *string
	RefreshTokenExpires *time.Time
	IsOnline            bool
}

// TokenInfo is what the token service hands back to callers.
type TokenInfo struct {
	AccessToken string     `json:"accessToken"`
	ExpiresAt   *time.Time `json:"accessTokenExpiresAt"`
}

// Connection records the handshake state with the partner platform for a shop.
type Connection struct {
	ID            string    `json:"id"`
	Shop          string    `json:"shop"`
	WorkspaceID   string    `json:"workspaceId"`
	WorkspaceName string    `json:"workspaceName"`
	Status        string    `json:"status"`
	APIKey        string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IdempotencyKey stores the first response seen for a write request so
// retries with the same key replay it instead of re-running the mutation.
type IdempotencyKey struct {
	Key          string
	Shop         string
	RequestHash  string
	ResponseBody []byte
	StatusCode   int
	CreatedAt    time.Time
}
