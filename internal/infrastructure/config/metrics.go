package config

// MetricsConfig holds metrics collection settings.
//
// The planner is a one-shot process, so metrics are written to a textfile for
// the node exporter instead of being served over HTTP.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Textfile receives the registry in exposition format when the process exits
	Textfile string `mapstructure:"textfile" validate:"required_if=Enabled true"`
}
