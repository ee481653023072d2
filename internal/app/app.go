package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/config"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/catalog"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/infrastructure/account/anubis"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/infrastructure/catalog/algomancer"
	repocache "github.com/RomanDaru/algomancer.cc-sub000/internal/infrastructure/repository/cache"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/infrastructure/repository/memory"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/infrastructure/repository/postgres"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/interfaces/httpapi"
	idgen "github.com/RomanDaru/algomancer.cc-sub000/internal/platform/id"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/platform/logging"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/platform/resilience"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/usecase"
)

// NewHTTPServer wires storage, outbound clients and services into an HTTP
// server. The returned close func releases the database pool, if any.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	gameLogRepo, closeStore, err := newGameLogRepository(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	rules := gamelog.DefaultRules()
	rules.DeckLinks = rules.DeckLinks.WithHosts(cfg.DeckLinkHosts)

	gameLogSvc := usecase.NewGameLogService(gameLogRepo, rules, idgen.NewTimeOrderedGenerator(), logger)
	statsSvc := usecase.NewStatsService(gameLogRepo, newCatalogLookup(cfg, logger), usecase.StatsConfig{
		MinSampleSize: cfg.StatsMinSampleSize,
		MaxResults:    cfg.StatsMaxResults,
		ActivityWeeks: cfg.StatsActivityWeeks,
	}, logger)

	anubisClient := anubis.NewClient(anubis.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.AnubisTimeout},
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectURL,
		AdminKey:       cfg.AnubisAdminKey,
		CacheTTL:       cfg.AnubisCacheTTL,
		Logger:         logger,
		CircuitBreaker: circuitConfig(cfg.AnubisCircuit),
	})

	handler := httpapi.NewHandler(gameLogSvc, statsSvc, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, closeStore, nil
}

func newGameLogRepository(cfg config.Config, logger *logging.Logger) (gamelog.Repository, func() error, error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("using in-memory game log storage", "storage_driver", cfg.StorageDriver)
		return memory.NewGameLogRepository(), func() error { return nil }, nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("postgres connected", "db_name", dbNameFromURL(cfg.DBURL))

	return postgres.NewGameLogRepository(db), db.Close, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// newCatalogLookup returns nil when no catalog is configured; stats then
// report raw ids without display names.
func newCatalogLookup(cfg config.Config, logger *logging.Logger) catalog.Lookup {
	if !cfg.CatalogEnabled {
		logger.Info("catalog lookup disabled", "reason", "CATALOG_BASE_URL empty")
		return nil
	}

	var lookup catalog.Lookup = algomancer.NewClient(algomancer.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.CatalogTimeout},
		BaseURL:        cfg.CatalogBaseURL,
		Timeout:        cfg.CatalogTimeout,
		BatchSize:      cfg.CatalogBatchSize,
		Workers:        cfg.CatalogWorkers,
		Logger:         logger,
		CircuitBreaker: circuitConfig(cfg.CatalogCircuit),
	})
	if cfg.CacheEnabled {
		lookup = repocache.NewCatalogLookup(lookup, cfg.CacheTTL)
	}

	return lookup
}

func circuitConfig(c config.CircuitConfig) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          c.Enabled,
		FailureThreshold: c.FailureCount,
		OpenTimeout:      c.OpenTimeout,
		HalfOpenMaxReq:   c.HalfOpenMaxReqs,
	}
}
