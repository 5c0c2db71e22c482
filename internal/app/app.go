package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/birdielabs/caddie-api/external/golfcourseapi"
	"github.com/birdielabs/caddie-api/external/openmeteo"
	"github.com/birdielabs/caddie-api/internal/config"
	"github.com/birdielabs/caddie-api/internal/domain/insight"
	"github.com/birdielabs/caddie-api/internal/domain/round"
	"github.com/birdielabs/caddie-api/internal/domain/shot"
	"github.com/birdielabs/caddie-api/internal/infrastructure/account/statictoken"
	cacherepo "github.com/birdielabs/caddie-api/internal/infrastructure/repository/cache"
	"github.com/birdielabs/caddie-api/internal/infrastructure/repository/memory"
	"github.com/birdielabs/caddie-api/internal/infrastructure/repository/postgres"
	"github.com/birdielabs/caddie-api/internal/interfaces/httpapi"
	"github.com/birdielabs/caddie-api/internal/platform/cache"
	idgen "github.com/birdielabs/caddie-api/internal/platform/id"
	"github.com/birdielabs/caddie-api/internal/platform/logging"
	"github.com/birdielabs/caddie-api/internal/platform/resilience"
	"github.com/birdielabs/caddie-api/internal/usecase"
)

// NewHTTPServer wires repositories, caches, provider clients, and the HTTP
// router into a ready-to-run server. The returned cleanup closes the
// database pool when one was opened.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	zlog := logging.Default()

	var (
		shotRepo     shot.Repository
		roundRepo    round.Repository
		tendencyRepo insight.TendencyRepository
		cleanup      = func() {}
	)

	if cfg.DBURL != "" {
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		shotRepo = postgres.NewShotRepository(db)
		roundRepo = postgres.NewRoundRepository(db)
		tendencyRepo = postgres.NewTendencyRepository(db)
		cleanup = func() {
			if closeErr := db.Close(); closeErr != nil {
				logger.Error("close database", "error", closeErr)
			}
		}
		logger.Info("storage configured", "kind", "postgres", "db", dbNameFromURL(cfg.DBURL))
	} else {
		memShots := memory.NewShotRepository()
		memRounds := memory.NewRoundRepository()
		memTendencies := memory.NewTendencyRepository()
		if err := seedMemoryStorage(memShots, memRounds, memTendencies); err != nil {
			return nil, nil, fmt.Errorf("seed in-memory storage: %w", err)
		}
		shotRepo = memShots
		roundRepo = memRounds
		tendencyRepo = memTendencies
		logger.Info("storage configured", "kind", "memory", "seed_user", memory.SeedUserID)
	}

	tendencyRepo = cacherepo.NewTendencyRepository(tendencyRepo, cache.NewStore(cfg.CacheTTL))

	statsCache := cache.NewStore(cfg.CacheTTL)
	recapCache := cache.NewStore(cfg.CacheTTL)
	catalogCache := cache.NewStore(cfg.CacheTTL)
	elevationCache := cache.NewBoundedStore(cfg.ElevationCacheTTL, cfg.ElevationCacheMaxEntries)

	weatherClient := openmeteo.NewClient(openmeteo.ClientConfig{
		BaseURL:    cfg.WeatherBaseURL,
		Timeout:    cfg.WeatherTimeout,
		MaxRetries: cfg.WeatherMaxRetries,
		Logger:     zlog,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.WeatherCircuitEnabled,
			FailureThreshold: cfg.WeatherCircuitFailureCount,
			OpenTimeout:      cfg.WeatherCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.WeatherCircuitHalfOpenMaxReq,
		},
	})
	catalogClient := golfcourseapi.NewClient(golfcourseapi.ClientConfig{
		BaseURL:    cfg.CatalogBaseURL,
		APIKey:     cfg.CatalogAPIKey,
		Timeout:    cfg.CatalogTimeout,
		MaxRetries: cfg.CatalogMaxRetries,
		Logger:     zlog,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CatalogCircuitEnabled,
			FailureThreshold: cfg.CatalogCircuitFailureCount,
			OpenTimeout:      cfg.CatalogCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CatalogCircuitHalfOpenMaxReq,
		},
	})

	ids := idgen.NewRandomGenerator()
	shotSvc := usecase.NewShotService(shotRepo, roundRepo, weatherClient, elevationCache, ids)
	statsSvc := usecase.NewClubStatsService(shotRepo, tendencyRepo, statsCache)
	roundSvc := usecase.NewRoundService(roundRepo, shotRepo, ids)
	insightSvc := usecase.NewInsightService(roundRepo, shotRepo, recapCache)
	courseSvc := usecase.NewCourseService(catalogClient, catalogCache)

	handler := httpapi.NewHandler(shotSvc, statsSvc, roundSvc, insightSvc, courseSvc, logger)
	verifier := statictoken.NewVerifier(cfg.AuthStaticTokens)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinaryResult)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func seedMemoryStorage(
	shots *memory.ShotRepository,
	rounds *memory.RoundRepository,
	tendencies *memory.TendencyRepository,
) error {
	ctx := context.Background()

	for _, item := range memory.SeedRounds() {
		if err := rounds.Create(ctx, item); err != nil {
			return fmt.Errorf("seed round %s: %w", item.ID, err)
		}
	}
	for _, item := range memory.SeedShots() {
		if err := shots.Append(ctx, item); err != nil {
			return fmt.Errorf("seed shot %s: %w", item.ID, err)
		}
	}
	for userID, items := range memory.SeedTendencies() {
		if err := tendencies.ReplaceForUser(ctx, userID, items); err != nil {
			return fmt.Errorf("seed tendencies for %s: %w", userID, err)
		}
	}

	return nil
}
