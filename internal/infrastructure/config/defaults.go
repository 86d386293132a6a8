package config

import (
	"runtime"
	"time"

	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

const (
	DefaultQualityHorizon = 24
	DefaultProductHorizon = 32
	DefaultProductCount   = 3
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults: a local sqlite file keeps history without a server
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "geode-planner.db"
	}
	if cfg.Database.Type == "postgres" {
		if cfg.Database.Host == "" {
			cfg.Database.Host = "localhost"
		}
		if cfg.Database.Port == 0 {
			cfg.Database.Port = 5432
		}
		if cfg.Database.User == "" {
			cfg.Database.User = "geode"
		}
		if cfg.Database.Name == "" {
			cfg.Database.Name = "geode_planner"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Search defaults
	if cfg.Search.QualityHorizon == 0 {
		cfg.Search.QualityHorizon = DefaultQualityHorizon
	}
	if cfg.Search.ProductHorizon == 0 {
		cfg.Search.ProductHorizon = DefaultProductHorizon
	}
	if cfg.Search.ProductCount == 0 {
		cfg.Search.ProductCount = DefaultProductCount
	}
	if cfg.Search.Workers == 0 {
		cfg.Search.Workers = runtime.NumCPU()
	}
	if cfg.Search.CancelCheckInterval == 0 {
		cfg.Search.CancelCheckInterval = production.DefaultCancelCheckInterval
	}
	if cfg.Search.ProgressInterval == 0 {
		cfg.Search.ProgressInterval = 5 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}
