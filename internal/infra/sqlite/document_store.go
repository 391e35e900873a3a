package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"matchminded-service/internal/docstore"
	"matchminded-service/internal/domain"
)

//go:embed schema.sql
var schema string

// DocumentStore keeps catalog documents in a local SQLite file. It serves both as
// a catalog loader and as a seeding target.
type DocumentStore struct {
	db      *sql.DB
	catalog string
}

// Open opens (or creates) the database at dsn and applies the schema. Writes go to catalog.
func Open(ctx context.Context, dsn, catalog string) (*DocumentStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	if err := addPositionColumn(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &DocumentStore{db: db, catalog: catalog}, nil
}

// addPositionColumn upgrades files created before documents carried a position.
func addPositionColumn(ctx context.Context, db *sql.DB) error {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pragma_table_info('documents') WHERE name = 'position'`).Scan(&n)
	if err != nil || n > 0 {
		return err
	}
	_, err = db.ExecContext(ctx, `ALTER TABLE documents ADD COLUMN position INTEGER NOT NULL DEFAULT 0`)
	return err
}

func (s *DocumentStore) Close() error {
	return s.db.Close()
}

func (s *DocumentStore) WriteDocument(ctx context.Context, req domain.WriteRequest) error {
	fields, err := json.Marshal(req.Fields)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", req.Collection, req.DocumentID, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO documents (catalog, collection, id, position, fields)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (catalog, collection, id) DO UPDATE SET position = excluded.position, fields = excluded.fields, updated_at = CURRENT_TIMESTAMP`,
		s.catalog, req.Collection, req.DocumentID, req.Position, string(fields))
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", req.Collection, req.DocumentID, err)
	}
	return nil
}

func (s *DocumentStore) LoadCatalog(ctx context.Context, name string) (domain.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT collection, id, fields FROM documents WHERE catalog = ? ORDER BY collection, position, seq`, name)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var (
			doc    docstore.Document
			fields string
		)
		if err := rows.Scan(&doc.Collection, &doc.ID, &fields); err != nil {
			return domain.Catalog{}, fmt.Errorf("scan document: %w", err)
		}
		doc.Fields = []byte(fields)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	return docstore.DecodeCatalog(name, docs)
}
