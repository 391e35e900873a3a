package cli

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"matchminded-service/internal/app"
	"matchminded-service/internal/config"
	"matchminded-service/internal/infra/memory"
	pgstore "matchminded-service/internal/infra/postgres"
	rediscache "matchminded-service/internal/infra/redis"
	"matchminded-service/internal/infra/sqlite"
)

// catalogLoader picks the configured document store, falling back to the built-in sample catalog.
// The returned cleanup releases any connections.
func catalogLoader(ctx context.Context, cfg config.Config) (memory.CatalogLoader, func(), error) {
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("loading catalog %q from postgres", cfg.Quiz.Catalog)
		return pgstore.NewCatalogLoader(pool), pool.Close, nil
	case cfg.SQLite.File != "":
		store, err := sqlite.Open(ctx, cfg.SQLite.File, cfg.Quiz.Catalog)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("loading catalog %q from sqlite %s", cfg.Quiz.Catalog, cfg.SQLite.File)
		return store, func() { _ = store.Close() }, nil
	default:
		log.Printf("loading built-in sample catalog")
		catalogs := memory.SampleCatalogs()
		if cfg.Quiz.Catalog != memory.DefaultCatalogName {
			sample := memory.SampleCatalog()
			sample.Name = cfg.Quiz.Catalog
			catalogs[cfg.Quiz.Catalog] = sample
		}
		return memory.NewStaticCatalogLoader(catalogs), func() {}, nil
	}
}

func redisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// repositories builds the catalog cache and session store, Redis-backed when configured.
func repositories(client *redis.Client, loader memory.CatalogLoader, cfg config.Config) (app.CatalogRepository, app.SessionRepository) {
	catalogTTL := config.DurationOr(cfg.Quiz.CatalogTTL, 10*time.Minute)
	if client == nil {
		return memory.NewCatalogRepository(loader, catalogTTL), memory.NewSessionStore()
	}
	sessionTTL := config.DurationOr(cfg.Redis.TTL, 10*time.Minute)
	return rediscache.NewCatalogRepository(client, loader, catalogTTL), rediscache.NewSessionStore(client, sessionTTL)
}

func engineOptions(cfg config.Config) []app.Option {
	return []app.Option{
		app.WithAnalyzeDelay(config.DurationOr(cfg.Quiz.AnalyzeDelay, app.DefaultAnalyzeDelay)),
	}
}
