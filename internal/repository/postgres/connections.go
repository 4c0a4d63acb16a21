package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/domain"
)

type connectionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewConnectionRepository creates a new partner-connection repository
func NewConnectionRepository(db *sql.DB, logger *zap.Logger) *connectionRepository {
	return &connectionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *connectionRepository) FindByShop(ctx context.Context, shop string) (*domain.Connection, error) {
	query := `
		SELECT id, shop, workspace_id, workspace_name, status, api_key, created_at, updated_at
		FROM partner_connections
		WHERE shop = $1
	`

	var conn domain.Connection

	err := r.db.QueryRowContext(ctx, query, shop).Scan(
		&conn.ID,
		&conn.Shop,
		&conn.WorkspaceID,
		&conn.WorkspaceName,
		&conn.Status,
		&conn.APIKey,
		&conn.CreatedAt,
		&conn.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find connection", zap.String("shop", shop), zap.Error(err))
		return nil, err
	}

	return &conn, nil
}

func (r *connectionRepository) Upsert(ctx context.Context, conn *domain.Connection) error {
	query := `
		INSERT INTO partner_connections (id, shop, workspace_id, workspace_name, status, api_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (shop) DO UPDATE
		SET workspace_id = EXCLUDED.workspace_id,
		    workspace_name = EXCLUDED.workspace_name,
		    status = EXCLUDED.status,
		    api_key = EXCLUDED.api_key,
		    updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	if conn.ID == "" {
		conn.ID = uuid.New().String()
	}
	if conn.CreatedAt.IsZero() {
		conn.CreatedAt = now
	}
	conn.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		conn.ID,
		conn.Shop,
		conn.WorkspaceID,
		conn.WorkspaceName,
		conn.Status,
		conn.APIKey,
		conn.CreatedAt,
		conn.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to upsert connection", zap.String("shop", conn.Shop), zap.Error(err))
		return err
	}

	return nil
}

func (r *connectionRepository) Delete(ctx context.Context, shop string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM partner_connections WHERE shop = $1`, shop)
	if err != nil {
		r.logger.Error("Failed to delete connection", zap.String("shop", shop), zap.Error(err))
		return err
	}
	return nil
}
