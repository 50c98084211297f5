package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/bands/config"
)

func newConfigCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage analysis configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  bands config init -o bands.yaml
  bands config validate -f bands.yaml`,
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := cfg.SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created default configuration: %s\n", output)
			fmt.Fprintf(cmd.OutOrStdout(), "Run with:\n  bands compute --config %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "bands.yaml", "output config file path")

	var path string
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = rc.ConfigPath
			}
			if path == "" {
				return fmt.Errorf("--file is required")
			}

			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			names := make([]string, 0, 6)
			for _, f := range cfg.Bands.Enabled() {
				names = append(names, f.String())
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Configuration valid: %s\n", path)
			fmt.Fprintf(w, "  Symbol: %s (%d months, data in %s)\n", cfg.Symbol, cfg.Months, cfg.DataDir)
			fmt.Fprintf(w, "  Bands: %s\n", strings.Join(names, ", "))
			if cfg.Indicator != "" {
				fmt.Fprintf(w, "  Indicator: %s\n", cfg.Indicator)
			}
			fmt.Fprintf(w, "  Journal: %s\n", cfg.Journal.Type)
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&path, "file", "f", "", "path to config file (defaults to --config)")

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
