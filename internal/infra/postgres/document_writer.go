package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"matchminded-service/internal/domain"
)

// DocumentWriter upserts documents into one catalog.
type DocumentWriter struct {
	pool    *pgxpool.Pool
	catalog string
}

func NewDocumentWriter(pool *pgxpool.Pool, catalog string) *DocumentWriter {
	return &DocumentWriter{pool: pool, catalog: catalog}
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, req domain.WriteRequest) error {
	fields, err := json.Marshal(req.Fields)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", req.Collection, req.DocumentID, err)
	}
	_, err = w.pool.Exec(ctx, `INSERT INTO documents (catalog, collection, id, position, fields)
VALUES ($1, $2, $3, $4, $5::jsonb)
ON CONFLICT (catalog, collection, id) DO UPDATE SET position = EXCLUDED.position, fields = EXCLUDED.fields, updated_at = now()`,
		w.catalog, req.Collection, req.DocumentID, req.Position, string(fields))
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", req.Collection, req.DocumentID, err)
	}
	return nil
}
