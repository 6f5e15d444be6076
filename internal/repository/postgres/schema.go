package postgres

import (
	"context"
	"fmt"

	"contentgate/internal/domain/repositories"
)

// EnsureSchema creates the mirror table and its indexes if missing.
func EnsureSchema(ctx context.Context, db repositories.DBTX, tables *TableNames) error {
	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id           TEXT PRIMARY KEY,
			doc_type     TEXT NOT NULL,
			title        TEXT NOT NULL DEFAULT '',
			content      JSONB NOT NULL DEFAULT '{}'::jsonb,
			published_at TIMESTAMPTZ,
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS %[1]s_type_published_idx
			ON %[1]s (doc_type, published_at DESC);
	`, tables.Documents)

	if _, err := db.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// DropSchema removes the mirror table.
func DropSchema(ctx context.Context, db repositories.DBTX, tables *TableNames) error {
	if _, err := db.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, tables.Documents)); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}
