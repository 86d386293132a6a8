package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/geode-planner/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect geode-planner configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (GP_* prefix, plus DATABASE_URL)
2. Config file (config.yaml)
3. Default values

Examples:
  geode-planner config show
  GP_SEARCH_WORKERS=2 geode-planner config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(cmd.ErrOrStderr(), "Using default configuration.")
				cfg = config.Default()
			}

			printConfig(out, cfg)
			return nil
		},
	}

	return cmd
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "geode-planner Configuration")
	fmt.Fprintln(out, "===========================")

	fmt.Fprintln(out, "\nSearch:")
	fmt.Fprintf(out, "  Quality Horizon:  %d\n", cfg.Search.QualityHorizon)
	fmt.Fprintf(out, "  Product Horizon:  %d\n", cfg.Search.ProductHorizon)
	fmt.Fprintf(out, "  Product Count:    %d\n", cfg.Search.ProductCount)
	fmt.Fprintf(out, "  Workers:          %d\n", cfg.Search.Workers)
	fmt.Fprintf(out, "  Cancel Check:     every %d states\n", cfg.Search.CancelCheckInterval)
	fmt.Fprintf(out, "  Progress:         %s\n", cfg.Search.ProgressInterval)
	if cfg.Search.Timeout > 0 {
		fmt.Fprintf(out, "  Timeout:          %s\n", cfg.Search.Timeout)
	} else {
		fmt.Fprintf(out, "  Timeout:          (none)\n")
	}

	fmt.Fprintln(out, "\nDatabase:")
	fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
	switch {
	case cfg.Database.Type == "sqlite":
		fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
	case cfg.Database.URL != "":
		fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
	default:
		fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
		fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
		fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
		fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
	}
	fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

	fmt.Fprintln(out, "\nLogging:")
	fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

	fmt.Fprintln(out, "\nMetrics:")
	if cfg.Metrics.Enabled {
		fmt.Fprintf(out, "  Textfile:         %s\n", cfg.Metrics.Textfile)
	} else {
		fmt.Fprintf(out, "  Enabled:          false\n")
	}
}

// maskPassword hides the password of a connection URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}
