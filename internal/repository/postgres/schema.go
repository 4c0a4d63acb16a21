package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the tables this service owns. The sessions table
// is written by the embedded app's OAuth flow; we only add it here so a
// fresh database boots. Safe to call repeatedly (idempotent).
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS sessions (
  id text PRIMARY KEY,
  shop text NOT NULL,
  access_token text NOT NULL DEFAULT '',
  expires timestamptz,
  refresh_token text,
  refresh_token_expires timestamptz,
  is_online boolean NOT NULL DEFAULT false
);
CREATE INDEX IF NOT EXISTS sessions_shop_idx ON sessions (shop, is_online);
CREATE TABLE IF NOT EXISTS partner_connections (
  id uuid PRIMARY KEY,
  shop text NOT NULL UNIQUE,
  workspace_id text NOT NULL,
  workspace_name text NOT NULL DEFAULT '',
  status text NOT NULL DEFAULT 'connected',
  api_key text NOT NULL,
  created_at timestamptz NOT NULL DEFAULT NOW(),
  updated_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS idempotency_keys (
  key text PRIMARY KEY,
  shop text NOT NULL,
  request_hash text NOT NULL,
  response_body bytea NOT NULL,
  status_code int NOT NULL,
  created_at timestamptz NOT NULL DEFAULT NOW()
);
`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
