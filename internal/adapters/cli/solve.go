package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	planningCommands "github.com/andrescamacho/geode-planner/internal/application/planning/commands"
	"github.com/andrescamacho/geode-planner/internal/domain/catalog"
	"github.com/andrescamacho/geode-planner/internal/domain/planning"
)

// NewSolveCommand creates the solve command
func NewSolveCommand() *cobra.Command {
	var (
		inputPath    string
		formatName   string
		modeName     string
		horizon      int
		productCount int
		workers      int
		asJSON       bool
		noSave       bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Score a blueprint catalog",
		Long: `Parse a catalog and search every selected blueprint for its best geode yield.

Quality mode sums id × yield over all blueprints (default horizon 24).
Product mode multiplies the yields of the first blueprints (default horizon 32,
first 3). "both" runs quality then product.

The catalog is read from --input, or from stdin with --input -. The format is
taken from the file extension unless --format is given.

Examples:
  geode-planner solve --input blueprints.txt
  geode-planner solve --input blueprints.txt --mode product --product-count 3
  cat catalog.json | geode-planner solve --input - --format json --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			modes, err := parseModes(modeName)
			if err != nil {
				return err
			}

			data, err := readInput(cmd, inputPath)
			if err != nil {
				return err
			}

			format := catalog.DetectFormat(inputPath)
			if formatName != "" {
				if format, err = catalog.ParseFormat(formatName); err != nil {
					return err
				}
			}

			// A malformed catalog stops here, before any search starts
			blueprints, err := catalog.Load(data, format)
			if err != nil {
				return err
			}

			a, err := newApp(!noSave)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			var results []*planningCommands.EvaluateCatalogResponse
			for _, mode := range modes {
				evaluate := &planningCommands.EvaluateCatalogCommand{
					Blueprints:   blueprints,
					Mode:         mode.Label(),
					ProductCount: productCount,
					Workers:      workers,
					Source:       inputPath,
					Persist:      !noSave,
				}
				if cmd.Flags().Changed("horizon") {
					h := horizon
					evaluate.Horizon = &h
				}

				resp, err := a.mediator.Send(ctx, evaluate)
				if err != nil {
					return err
				}
				results = append(results, resp.(*planningCommands.EvaluateCatalogResponse))
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), evaluationsToJSON(results))
			}
			printEvaluations(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Catalog file, or - for stdin (required)")
	cmd.Flags().StringVar(&formatName, "format", "", "Catalog format: text or json (default: from file extension)")
	cmd.Flags().StringVarP(&modeName, "mode", "m", "both", "Scoring mode: quality, product or both")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Override the horizon of every selected mode")
	cmd.Flags().IntVar(&productCount, "product-count", 0, "Blueprints multiplied in product mode (default from config)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Blueprints solved concurrently (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record the run in the history database")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func parseModes(name string) ([]planning.ScoringMode, error) {
	if name == "both" {
		return planning.AllScoringModes(), nil
	}
	mode, err := planning.ParseScoringMode(name)
	if err != nil {
		return nil, fmt.Errorf("invalid --mode %q: expected quality, product or both", name)
	}
	return []planning.ScoringMode{mode}, nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return data, nil
}

type evaluationJSON struct {
	RunID      string          `json:"run_id,omitempty"`
	Mode       string          `json:"mode"`
	Horizon    int             `json:"horizon"`
	Score      int64           `json:"score"`
	DurationMS int64           `json:"duration_ms"`
	Blueprints []blueprintJSON `json:"blueprints"`
}

type blueprintJSON struct {
	ID       int    `json:"id"`
	Yield    int64  `json:"yield"`
	Expanded uint64 `json:"states_expanded"`
}

func evaluationsToJSON(results []*planningCommands.EvaluateCatalogResponse) []evaluationJSON {
	out := make([]evaluationJSON, len(results))
	for i, r := range results {
		out[i] = evaluationJSON{
			RunID:      r.RunID,
			Mode:       r.Mode.Label(),
			Horizon:    r.Horizon,
			Score:      r.Score,
			DurationMS: r.Duration.Milliseconds(),
			Blueprints: make([]blueprintJSON, len(r.Yields)),
		}
		for j, y := range r.Yields {
			out[i].Blueprints[j] = blueprintJSON{ID: y.BlueprintID, Yield: y.Yield, Expanded: y.Expanded}
		}
	}
	return out
}

func printEvaluations(w io.Writer, results []*planningCommands.EvaluateCatalogResponse) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s score (horizon %d): %d\n", r.Mode.Label(), r.Horizon, r.Score)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  BLUEPRINT\tGEODES\tSTATES\tELAPSED")
		for _, y := range r.Yields {
			fmt.Fprintf(tw, "  %d\t%d\t%d\t%s\n", y.BlueprintID, y.Yield, y.Expanded, y.Elapsed.Round(time.Millisecond))
		}
		tw.Flush()

		if r.RunID != "" {
			fmt.Fprintf(w, "run %s\n", r.RunID)
		}
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
