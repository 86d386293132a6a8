package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrescamacho/geode-planner/internal/adapters/metrics"
	"github.com/andrescamacho/geode-planner/internal/adapters/persistence"
	"github.com/andrescamacho/geode-planner/internal/application/common"
	planningCommands "github.com/andrescamacho/geode-planner/internal/application/planning/commands"
	"github.com/andrescamacho/geode-planner/internal/application/setup"
	"github.com/andrescamacho/geode-planner/internal/domain/planning"
	"github.com/andrescamacho/geode-planner/internal/infrastructure/config"
	"github.com/andrescamacho/geode-planner/internal/infrastructure/database"
	"github.com/andrescamacho/geode-planner/internal/infrastructure/logging"
)

// app bundles what a command needs: config, logger, database and a mediator
// with every planning handler registered.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	mediator common.Mediator
}

// newApp loads configuration and wires the application. Without a database
// runs are still evaluated but never persisted.
func newApp(withDatabase bool) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}

	middlewares := []common.Middleware{common.LoggingMiddleware()}
	if cfg.Metrics.Enabled {
		mw, err := metrics.Setup()
		if err != nil {
			return nil, fmt.Errorf("failed to set up metrics: %w", err)
		}
		middlewares = append(middlewares, mw)
	}

	var runRepo planning.RunRepository
	if withDatabase {
		db, err := database.Open(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to open run history: %w", err)
		}
		a.db = db
		runRepo = persistence.NewGormRunRepository(db)
	}

	registry := setup.NewHandlerRegistry(runRepo, nil, searchDefaults(cfg.Search))
	a.mediator, err = registry.CreateConfiguredMediator(middlewares...)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	return a, nil
}

func searchDefaults(s config.SearchConfig) planningCommands.SearchDefaults {
	return planningCommands.SearchDefaults{
		QualityHorizon:      s.QualityHorizon,
		ProductHorizon:      s.ProductHorizon,
		ProductCount:        s.ProductCount,
		Workers:             s.Workers,
		CancelCheckInterval: s.CancelCheckInterval,
		ProgressInterval:    s.ProgressInterval,
	}
}

// context attaches the logger and, when configured, the evaluation timeout
func (a *app) context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := common.WithLogger(parent, a.logger)
	if a.cfg.Search.Timeout > 0 {
		return context.WithTimeout(ctx, a.cfg.Search.Timeout)
	}
	return context.WithCancel(ctx)
}

// close flushes the metrics textfile and releases the database
func (a *app) close() {
	if a.cfg.Metrics.Enabled && metrics.IsEnabled() {
		if err := metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
			a.logger.Warn("metrics not written", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
