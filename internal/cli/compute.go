package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/bands/bands"
	"github.com/rustyeddy/bands/chart"
	"github.com/rustyeddy/bands/config"
	"github.com/rustyeddy/bands/journal"
	"github.com/rustyeddy/bands/market"
)

type computeFlags struct {
	symbol     string
	dataDir    string
	months     int
	families   string
	indicator  string
	endStr     string
	chartOut   string
	barWidth   float64
	journal    string
	journalDir string
	orgOut     string
}

func newComputeCmd(rc *RootConfig) *cobra.Command {
	var fl computeFlags

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute bands for a symbol",
		Long: `Load daily candles, compute the selected band families and the
%b / BandWidth indicators, then write the chart document and journal the run.

Examples:
  bands compute --symbol SPY --data ./data --months 12
  bands compute --families Bollinger,Keltner --indicator Bollinger --chart spy.json
  bands compute --config bands.yaml --end 2024-03-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rc)
			if err != nil {
				return err
			}
			if err := fl.apply(cmd, rc, cfg); err != nil {
				return err
			}

			end := time.Now().UTC()
			if fl.endStr != "" {
				end, err = time.Parse(time.DateOnly, fl.endStr)
				if err != nil {
					return fmt.Errorf("bad --end: %w", err)
				}
			}

			return runCompute(cmd.Context(), cfg, end, fl.orgOut, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&fl.symbol, "symbol", "", "Symbol to load (default from config)")
	cmd.Flags().StringVar(&fl.dataDir, "data", "", "Directory of <SYMBOL>.csv candle files")
	cmd.Flags().IntVar(&fl.months, "months", 0, "Months of history to display")
	cmd.Flags().StringVar(&fl.families, "families", "", "Comma separated band families (default all enabled)")
	cmd.Flags().StringVar(&fl.indicator, "indicator", "", "Family for %b and BandWidth, or 'none'")
	cmd.Flags().StringVar(&fl.endStr, "end", "", "Last date to load, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&fl.chartOut, "chart", "", "Chart document output path, '-' for stdout, '' to skip")
	cmd.Flags().Float64Var(&fl.barWidth, "bar-width", 0, "Candle bar width")
	cmd.Flags().StringVar(&fl.journal, "journal", "", "Journal type: none|csv|sqlite")
	cmd.Flags().StringVar(&fl.journalDir, "journal-dir", "", "Directory for the CSV journal")
	cmd.Flags().StringVar(&fl.orgOut, "org", "", "Also write an Org-mode run summary to this path")

	return cmd
}

func loadConfig(rc *RootConfig) (*config.Config, error) {
	if rc.ConfigPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromFile(rc.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// apply overlays flags that were set on the command line onto cfg.
func (fl *computeFlags) apply(cmd *cobra.Command, rc *RootConfig, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("symbol") {
		cfg.Symbol = fl.symbol
	}
	if changed("data") {
		cfg.DataDir = fl.dataDir
	}
	if changed("months") {
		cfg.Months = fl.months
	}
	if changed("families") {
		fs, err := bands.ParseFamilies(strings.Split(fl.families, ","))
		if err != nil {
			return err
		}
		for _, f := range bands.Families() {
			cfg.Bands.Band(f).Enabled = false
		}
		for _, f := range fs {
			cfg.Bands.Band(f).Enabled = true
		}
	}
	if changed("indicator") {
		cfg.Indicator = fl.indicator
		if strings.EqualFold(fl.indicator, "none") {
			cfg.Indicator = ""
		}
	}
	if changed("chart") {
		cfg.Chart.Out = fl.chartOut
	}
	if changed("bar-width") {
		cfg.Chart.BarWidth = fl.barWidth
	}
	if changed("journal") {
		cfg.Journal.Type = fl.journal
	}
	if changed("journal-dir") {
		cfg.Journal.Dir = fl.journalDir
	}
	if cmd.Flags().Changed("db") {
		cfg.Journal.DBPath = rc.DBPath
		if !changed("journal") {
			cfg.Journal.Type = "sqlite"
		}
	}
	return cfg.Validate()
}

func runCompute(ctx context.Context, cfg *config.Config, end time.Time, orgOut string, out io.Writer) error {
	req, err := cfg.Request()
	if err != nil {
		return err
	}

	from, to := market.FetchRange(end, cfg.Months)
	provider := market.CSVProvider{Dir: cfg.DataDir}
	debugf("loading %s from %s [%s, %s]", cfg.Symbol, provider.Path(cfg.Symbol),
		from.Format(time.DateOnly), to.Format(time.DateOnly))

	series, err := provider.Candles(ctx, cfg.Symbol, from, to)
	if err != nil {
		return fmt.Errorf("load candles: %w", err)
	}
	log.Printf("%s: %d candles %s .. %s", series.Symbol, series.Len(),
		series.Start().Format(time.DateOnly), series.End().Format(time.DateOnly))

	a, err := bands.Analyze(series, req)
	if err != nil {
		return err
	}
	for _, f := range a.Families {
		b := a.Bands[f]
		debugf("%s: warm-up %d of %d rows", b.Name(), b.Warmup(), b.Len())
	}
	if a.Window.Len() < cfg.Months*bands.TradingDaysPerMonth {
		log.Printf("warning: only %d rows available for %d months", a.Window.Len(), cfg.Months)
	}

	if err := writeChart(cfg, a, out); err != nil {
		return err
	}

	run, err := journal.NewRun(a, time.Now())
	if err != nil {
		return err
	}
	if err := record(ctx, cfg.Journal, run, journal.PointsFromAnalysis(run.RunID, a)); err != nil {
		return err
	}

	summaries := journal.Summarize(a)
	if orgOut != "" {
		if err := journal.WriteRunOrg(orgOut, run, summaries); err != nil {
			return fmt.Errorf("write org: %w", err)
		}
		log.Printf("org summary written to %s", orgOut)
	}

	if cfg.Chart.Out != "-" {
		printSummaries(out, run, summaries)
	}
	return nil
}

// writeChart writes the chart document to cfg.Chart.Out, or to stdout when
// the path is "-".
func writeChart(cfg *config.Config, a *bands.Analysis, stdout io.Writer) error {
	if cfg.Chart.Out == "" {
		return nil
	}

	width := cfg.Chart.BarWidth
	if width == 0 {
		width = chart.DefaultBarWidth
	}
	doc, err := chart.Build(a, width)
	if err != nil {
		return fmt.Errorf("build chart: %w", err)
	}

	if cfg.Chart.Out == "-" {
		return chart.WriteJSON(stdout, doc)
	}
	f, err := os.Create(cfg.Chart.Out)
	if err != nil {
		return err
	}
	if err := chart.WriteJSON(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("chart written to %s", cfg.Chart.Out)
	return nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return nil, nil
	case "csv":
		return journal.NewCSV(jc.Dir)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	}
	return nil, fmt.Errorf("unknown journal type %q", jc.Type)
}

func record(ctx context.Context, jc config.JournalConfig, run journal.Run, points []journal.Point) error {
	j, err := openJournal(jc)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	if j == nil {
		return nil
	}
	defer j.Close()

	if err := j.RecordRun(ctx, run, points); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	debugf("journaled run %s (%d points) to %s", run.RunID, len(points), jc.Type)
	return nil
}

func printSummaries(w io.Writer, run journal.Run, summaries []journal.Summary) {
	fmt.Fprintf(w, "Run %s: %s %dM, %d rows %s .. %s\n", run.RunID, run.Symbol, run.Months,
		run.Rows, run.Start.Format(time.DateOnly), run.End.Format(time.DateOnly))
	for _, s := range summaries {
		fmt.Fprintf(w, "  %-20s upper=%s middle=%s lower=%s", s.Params, num(s.Upper), num(s.Middle), num(s.Lower))
		if s.Family == run.Indicator {
			fmt.Fprintf(w, " %%b=%s bw=%s", num(s.PercentB), num(s.BandWidth))
		}
		fmt.Fprintln(w)
	}
}
