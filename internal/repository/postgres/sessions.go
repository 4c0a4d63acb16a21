package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/domain"
	"github.com/abhinavshyju/ShopifyApp/internal/repository"
)

// sessionRepository reads and updates the session table written by the
// OAuth install flow. This service never inserts or deletes sessions.
type sessionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB, logger *zap.Logger) *sessionRepository {
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) FindOfflineByShop(ctx context.Context, shop string) (*domain.Session, error) {
	query := `
		SELECT id, shop, access_token, expires, refresh_token, refresh_token_expires, is_online
		FROM sessions
		WHERE shop = $1 AND is_online = false
		LIMIT 1
	`

	var session domain.Session

	err := r.db.QueryRowContext(ctx, query, shop).Scan(
		&session.ID,
		&session.Shop,
		&session.AccessToken,
		&session.ExpiresAt,
		&session.RefreshToken,
		&session.RefreshTokenExpires,
		&session.IsOnline,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find offline session", zap.String("shop", shop), zap.Error(err))
		return nil, err
	}

	return &session, nil
}

func (r *sessionRepository) UpdateToken(ctx context.Context, id string, upd repository.SessionTokenUpdate) error {
	// COALESCE keeps the stored refresh token when the OAuth response did
	// not rotate it.
	query := `
		UPDATE sessions
		SET access_token = $2,
		    expires = $3,
		    refresh_token = COALESCE($4, refresh_token),
		    refresh_token_expires = COALESCE($5, refresh_token_expires)
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		upd.AccessToken,
		upd.ExpiresAt,
		upd.RefreshToken,
		upd.RefreshTokenExpires,
	)

	if err != nil {
		r.logger.Error("Failed to update session token", zap.String("session_id", id), zap.Error(err))
		return err
	}

	return nil
}
