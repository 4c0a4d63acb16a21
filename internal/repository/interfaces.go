package repository

import (
	"context"
	"time"

	"github.com/abhinavshyju/ShopifyApp/internal/domain"
)

// SessionTokenUpdate carries the fields rewritten on a successful token
// refresh. RefreshToken/RefreshTokenExpires keep their stored values when
// nil (the OAuth endpoint did not rotate them).
type SessionTokenUpdate struct {
	AccessToken         string
	ExpiresAt           *time.Time
	RefreshToken        *string
	RefreshTokenExpires *time.Time
}

// SessionRepository defines offline-session data access methods.
// FindOfflineByShop returns (nil, nil) when no record exists.
type SessionRepository interface {
	FindOfflineByShop(ctx context.Context, shop string) (*domain.Session, error)
	UpdateToken(ctx context.Context, id string, upd SessionTokenUpdate) error
}

// ConnectionRepository defines partner-connection data access methods
type ConnectionRepository interface {
	FindByShop(ctx context.Context, shop string) (*domain.Connection, error)
	Upsert(ctx context.Context, conn *domain.Connection) error
	Delete(ctx context.Context, shop string) error
}

// IdempotencyKeyRepository stores replayed responses for write endpoints
type IdempotencyKeyRepository interface {
	GetByKey(ctx context.Context, key string) (*domain.IdempotencyKey, error)
	Create(ctx context.Context, key *domain.IdempotencyKey) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Session        SessionRepository
	Connection     ConnectionRepository
	IdempotencyKey IdempotencyKeyRepository
}
