package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/repository"
)

// NewRepositories creates all repositories backed by the given database
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Session:        NewSessionRepository(db, logger),
		Connection:     NewConnectionRepository(db, logger),
		IdempotencyKey: NewIdempotencyKeyRepository(db, logger),
	}
}
