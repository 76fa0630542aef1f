package app

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hance08/qwallet/internal/agent"
	"github.com/hance08/qwallet/internal/config"
	"github.com/hance08/qwallet/internal/ledger"
	"github.com/hance08/qwallet/internal/logging"
	"github.com/hance08/qwallet/internal/metrics"
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/store"
	"go.uber.org/zap"
)

type App struct {
	Config  *config.Config
	Service *service.Service
	Store   store.Repository
	Metrics *metrics.Collector
	Logger  *zap.Logger
}

// NewApp initialize logging, node clients, database and services, then return App entity
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	collector := metrics.NewCollector()
	httpClient := &http.Client{Timeout: cfg.Node.Timeout}

	ledgerClient, err := ledger.NewClient(cfg.Node.URL,
		ledger.WithHTTPClient(httpClient),
		ledger.WithMetrics(collector),
		ledger.WithLogger(logger.Named("ledger")),
		ledger.WithBreakerSettings(ledger.BreakerSettings{
			MaxRequests:  cfg.Breaker.MaxRequests,
			Interval:     cfg.Breaker.Interval,
			Timeout:      cfg.Breaker.Timeout,
			FailureRatio: cfg.Breaker.FailureRatio,
			MinRequests:  cfg.Breaker.MinRequests,
		}),
	)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("failed to initialize node client: %w", err)
	}

	agentClient := agent.NewClient(cfg.Agent.URL, httpClient, logger.Named("agent"))

	dbPathRaw := cfg.Database.Path
	if dbPathRaw == "" {
		appDir, err := GetAppDataDir()
		if err != nil {
			_ = logger.Sync()
			return nil, nil, err
		}
		dbPathRaw = filepath.Join(appDir, "qwallet.db")
	}

	dbStore, err := store.NewStore(dbPathRaw, migrationFS)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	svc := service.NewService(dbStore, ledgerClient, agentClient, cfg, logger, collector)

	cleanup := func() {
		if err := dbStore.Close(); err != nil {
			logger.Error("closing database", zap.Error(err))
		}
		_ = logger.Sync()
	}

	logger.Debug("app initialized",
		zap.String("node", cfg.Node.URL),
		zap.String("agent", cfg.Agent.URL),
		zap.String("database", dbPathRaw))

	return &App{
		Config:  cfg,
		Service: svc,
		Store:   dbStore,
		Metrics: collector,
		Logger:  logger,
	}, cleanup, nil
}

// GetAppDataDir is where the config file and database live.
func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".qwallet"), nil
	}

	return filepath.Join(configDir, "qwallet"), nil
}
