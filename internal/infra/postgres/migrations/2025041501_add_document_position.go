package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
)

//go:embed 0002_add_document_position.sql
var addDocumentPositionSQL string

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, addDocumentPositionSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP INDEX IF EXISTS documents_catalog_position_idx;
ALTER TABLE documents DROP COLUMN IF EXISTS position`)
			return err
		},
	)
}
