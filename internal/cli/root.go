package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

// RootConfig carries the persistent flags shared by every subcommand.
type RootConfig struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
	Quiet      bool
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:   "bands",
		Short: "Trading bands, %b and BandWidth from daily candles",
		Long: `Bands computes trading-band envelopes over daily OHLC series.

Families:
  Ledoux, Percent, Donchian, Keltner, Bollinger, Envelope

Each run writes a chart document and can be journaled to SQLite or CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "./bands.sqlite", "SQLite journal database")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVarP(&rc.Quiet, "quiet", "q", false, "Silence log output")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupLogging(rc, cmd.ErrOrStderr())
	}

	cmd.AddCommand(
		newComputeCmd(rc),
		newConfigCmd(rc),
		newRunsCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bands version %s\n", version)
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var debug bool

func setupLogging(rc *RootConfig, w io.Writer) error {
	level := strings.ToLower(rc.LogLevel)
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", rc.LogLevel)
	}

	debug = level == "debug"
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("bands: ")
	if rc.Quiet || level == "warn" || level == "error" {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(w)
	return nil
}

func debugf(format string, args ...any) {
	if debug {
		log.Printf(format, args...)
	}
}
