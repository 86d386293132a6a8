package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	planningQueries "github.com/andrescamacho/geode-planner/internal/application/planning/queries"
)

// NewHistoryCommand creates the history command with its show subcommand
func NewHistoryCommand() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded evaluation runs",
		Long: `List the most recent catalog evaluations, newest first.

Examples:
  geode-planner history
  geode-planner history --limit 5 --json
  geode-planner history show <run-id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			resp, err := a.mediator.Send(ctx, &planningQueries.GetRunHistoryQuery{Limit: limit})
			if err != nil {
				return err
			}
			runs := resp.(*planningQueries.GetRunHistoryResponse).Runs

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), runs)
			}
			printRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", planningQueries.DefaultHistoryLimit, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print runs as JSON")
	cmd.AddCommand(newHistoryShowCommand())

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run with its per-blueprint yields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			resp, err := a.mediator.Send(ctx, &planningQueries.GetRunQuery{RunID: args[0]})
			if err != nil {
				return err
			}
			run := resp.(*planningQueries.RunDTO)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), run)
			}
			printRun(cmd.OutOrStdout(), run)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run as JSON")
	return cmd
}

func printRuns(w io.Writer, runs []*planningQueries.RunDTO) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tMODE\tHORIZON\tBLUEPRINTS\tSCORE\tDURATION")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Mode,
			r.Horizon,
			len(r.Blueprints),
			r.Score,
			r.Duration.Round(time.Millisecond),
		)
	}
	tw.Flush()
}

func printRun(w io.Writer, r *planningQueries.RunDTO) {
	fmt.Fprintf(w, "Run:      %s\n", r.ID)
	fmt.Fprintf(w, "Started:  %s\n", r.StartedAt.Local().Format(time.DateTime))
	if r.Source != "" {
		fmt.Fprintf(w, "Source:   %s\n", r.Source)
	}
	fmt.Fprintf(w, "Mode:     %s (horizon %d)\n", r.Mode, r.Horizon)
	fmt.Fprintf(w, "Score:    %d\n", r.Score)
	fmt.Fprintf(w, "Duration: %s\n\n", r.Duration.Round(time.Millisecond))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BLUEPRINT\tGEODES\tSTATES\tMEMO\tELAPSED")
	for _, y := range r.Blueprints {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\n", y.BlueprintID, y.Yield, y.Expanded, y.MemoSize, y.Elapsed.Round(time.Millisecond))
	}
	tw.Flush()
}
