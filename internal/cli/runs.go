package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/bands/journal"
	"github.com/rustyeddy/bands/pkg/id"
)

func newRunsCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Query journaled runs",
		Long: `Query runs recorded in the SQLite journal.

Examples:
  bands runs list --symbol SPY
  bands runs show <run-id>
  bands runs show <run-id> --points Bollinger`,
	}

	var symbol string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(rc.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer j.Close()

			runs, err := j.ListRuns(cmd.Context(), symbol)
			if err != nil {
				return fmt.Errorf("query runs: %w", err)
			}

			w := cmd.OutOrStdout()
			for _, r := range runs {
				fmt.Fprintf(w, "%s  %s  %-6s %3dM  %s .. %s  %s\n",
					r.RunID,
					r.Created.Local().Format("2006-01-02 15:04"),
					r.Symbol,
					r.Months,
					r.Start.Format(time.DateOnly),
					r.End.Format(time.DateOnly),
					strings.Join(r.Families, ","),
				)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&symbol, "symbol", "", "Only runs for this symbol")

	var family string
	showCmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a run as Org-mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stamped, err := id.Time(args[0])
			if err != nil {
				return fmt.Errorf("bad run id %q: %w", args[0], err)
			}

			j, err := journal.NewSQLite(rc.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer j.Close()

			ctx := cmd.Context()
			run, err := j.GetRun(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			points, err := j.ListPoints(ctx, run.RunID, "")
			if err != nil {
				return fmt.Errorf("query points: %w", err)
			}

			summaries, err := journal.SummariesFromPoints(run, points)
			if err != nil {
				return err
			}
			org, err := journal.FormatRunOrg(run, summaries)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, org)
			debugf("run %s stamped %s", run.RunID, stamped.Format(time.RFC3339))

			if family == "" {
				return nil
			}
			fmt.Fprintf(w, "** %s Points\n", family)
			fmt.Fprintf(w, "| Date | Close | Upper | Middle | Lower | %%b | BandWidth |\n")
			fmt.Fprintln(w, "|------+-------+-------+--------+-------+----+-----------|")
			for _, p := range points {
				if !strings.EqualFold(p.Family, family) {
					continue
				}
				fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s |\n",
					p.Time.Format(time.DateOnly),
					num(p.Close), num(p.Upper), num(p.Middle), num(p.Lower),
					num(p.PercentB), num(p.BandWidth))
			}
			return nil
		},
	}
	showCmd.Flags().StringVar(&family, "points", "", "Also print every point of this family")

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

func num(x float64) string {
	if math.IsNaN(x) {
		return "-"
	}
	return strconv.FormatFloat(x, 'f', 4, 64)
}
