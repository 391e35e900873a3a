package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"matchminded-service/internal/config"
	"matchminded-service/internal/docstore"
	"matchminded-service/internal/infra/memory"
	pgstore "matchminded-service/internal/infra/postgres"
	rediscache "matchminded-service/internal/infra/redis"
	"matchminded-service/internal/infra/sqlite"
)

// NewSeedCmd writes the sample questions and users to the configured document store.
func NewSeedCmd(configPath *string) *cobra.Command {
	var concurrency int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the sample questions and users into the document store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, concurrency, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "documents written in parallel")
	return cmd
}

func runSeed(ctx context.Context, configPath string, concurrency int, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var writer docstore.Writer
	switch {
	case cfg.Postgres.URL != "":
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		writer = pgstore.NewDocumentWriter(pool, cfg.Quiz.Catalog)
	case cfg.SQLite.File != "":
		store, err := sqlite.Open(ctx, cfg.SQLite.File, cfg.Quiz.Catalog)
		if err != nil {
			return err
		}
		defer store.Close()
		writer = store
	default:
		return fmt.Errorf("no document store configured: set postgres.url or sqlite.file")
	}

	catalog := memory.SampleCatalog()
	log.Printf("starting data seeding into catalog %q", cfg.Quiz.Catalog)
	failed := 0
	for res := range docstore.Seed(ctx, writer, docstore.Requests(catalog), concurrency) {
		if res.Err != nil {
			failed++
			fmt.Fprintf(out, "error seeding %s %s: %v\n", res.Request.Collection, res.Request.DocumentID, res.Err)
			continue
		}
		fmt.Fprintf(out, "seeded %s %s\n", res.Request.Collection, res.Request.DocumentID)
	}

	if client := redisClient(cfg); client != nil {
		defer client.Close()
		repo := rediscache.NewCatalogRepository(client, nil, 0)
		if err := repo.Invalidate(ctx, cfg.Quiz.Catalog); err != nil {
			log.Printf("invalidate cached catalog: %v", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d documents failed to seed", failed)
	}
	return nil
}
