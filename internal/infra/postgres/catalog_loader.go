package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"matchminded-service/internal/docstore"
	"matchminded-service/internal/domain"
)

// CatalogLoader loads catalog documents stored as JSONB in Postgres.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context, name string) (domain.Catalog, error) {
	rows, err := l.pool.Query(ctx, `SELECT collection, id, fields FROM documents WHERE catalog=$1 ORDER BY collection, position, seq`, name)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var doc docstore.Document
		if err := rows.Scan(&doc.Collection, &doc.ID, &doc.Fields); err != nil {
			return domain.Catalog{}, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	return docstore.DecodeCatalog(name, docs)
}
