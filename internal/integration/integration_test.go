package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"matchminded-service/internal/app"
	"matchminded-service/internal/docstore"
	"matchminded-service/internal/domain"
	"matchminded-service/internal/infra/memory"
	pgstore "matchminded-service/internal/infra/postgres"
	pgmigrations "matchminded-service/internal/infra/postgres/migrations"
	infraredis "matchminded-service/internal/infra/redis"
)

func TestSeededCatalogEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	migrateDB(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	writer := pgstore.NewDocumentWriter(pool, memory.DefaultCatalogName)
	for res := range docstore.Seed(ctx, writer, docstore.Requests(memory.SampleCatalog()), 4) {
		if res.Err != nil {
			t.Fatalf("seed %s/%s: %v", res.Request.Collection, res.Request.DocumentID, res.Err)
		}
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	loader := pgstore.NewCatalogLoader(pool)
	stored, err := loader.LoadCatalog(ctx, memory.DefaultCatalogName)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	sample := memory.SampleCatalog()
	if len(stored.Questions) != len(sample.Questions) || len(stored.Candidates) != len(sample.Candidates) {
		t.Fatalf("unexpected shape: %d questions, %d candidates", len(stored.Questions), len(stored.Candidates))
	}
	for i, q := range stored.Questions {
		if q.ID != sample.Questions[i].ID {
			t.Fatalf("question %d: got %s, want %s", i, q.ID, sample.Questions[i].ID)
		}
	}
	for i, c := range stored.Candidates {
		if c.ID != sample.Candidates[i].ID {
			t.Fatalf("candidate %d: got %s, want %s", i, c.ID, sample.Candidates[i].ID)
		}
	}

	catalogs := infraredis.NewCatalogRepository(redisClient, loader, 5*time.Minute)
	sessions := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	service := app.NewMatchService(sessions, catalogs, memory.DefaultCatalogName,
		app.WithAnalyzeDelay(0),
		app.WithSampler(app.BaselineSampler),
	)

	started, err := service.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer service.End(ctx, started.SessionID)
	if started.State.QuestionCount != 5 {
		t.Fatalf("expected 5 seeded questions, got %d", started.State.QuestionCount)
	}

	updates, cancel, err := service.Subscribe(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	for _, a := range []int{1, 2, 5, 3, 1} {
		if _, err := service.SubmitAnswer(ctx, started.SessionID, a); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	var final domain.SessionView
	timeout := time.After(5 * time.Second)
	for final.State.Phase != domain.PhaseFinished {
		select {
		case final = <-updates:
		case <-timeout:
			t.Fatalf("session never finished")
		}
	}
	if final.State.DerivedTypeCode != "INFP" {
		t.Fatalf("expected INFP, got %s", final.State.DerivedTypeCode)
	}
	if len(final.State.MatchResults) != 4 || final.State.MatchResults[0].Name != "mia" {
		t.Fatalf("expected mia leading 4 results, got %+v", final.State.MatchResults)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "match", "POSTGRES_PASSWORD": "matchpass", "POSTGRES_DB": "matchdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://match:matchpass@%s:%s/matchdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func migrateDB(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
