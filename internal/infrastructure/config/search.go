package config

import "time"

// SearchConfig holds production search and scoring settings
type SearchConfig struct {
	// Horizon used by quality scoring (sum of id × yield)
	QualityHorizon int `mapstructure:"quality_horizon" validate:"min=0,max=64"`

	// Horizon used by product scoring
	ProductHorizon int `mapstructure:"product_horizon" validate:"min=0,max=64"`

	// Number of leading blueprints multiplied together by product scoring
	ProductCount int `mapstructure:"product_count" validate:"min=1"`

	// Blueprints solved concurrently
	Workers int `mapstructure:"workers" validate:"min=1,max=256"`

	// Expansions between two context checks
	CancelCheckInterval uint64 `mapstructure:"cancel_check_interval" validate:"min=1"`

	// Minimum time between two progress log lines of one search
	ProgressInterval time.Duration `mapstructure:"progress_interval"`

	// Upper bound for a whole evaluation; zero disables it
	Timeout time.Duration `mapstructure:"timeout"`
}
