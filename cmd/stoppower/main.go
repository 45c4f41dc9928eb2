// Command stoppower renders the muon-in-copper stopping-power analysis:
// it loads simulated energy deposits, compares them against the Bethe-Bloch
// model, writes the diagnostic figures and prints the statistics report.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/alexshd/stoppower"
)

var logLevel = "info"

func setupLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	})), nil
}

func newCommand() *cobra.Command {
	cfg := stoppower.DefaultConfig()
	var noFigures bool

	cmd := &cobra.Command{
		Use:   "stoppower",
		Short: "Bethe-Bloch stopping-power analysis for muons in copper",
		Long: `Analyze simulated muon energy deposits in copper against the
Bethe-Bloch formula over the 1 MeV - 1 PeV range.

Reads a CSV table with Energy_MeV and Total_Deposit_MeV columns (rows sorted
by ascending energy), writes the diagnostic figures as PNG and PDF, and
prints the statistics report to stdout.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := setupLogger()
			if err != nil {
				return err
			}
			cfg.Logger = logger
			cfg.Figures = !noFigures

			analysis, err := stoppower.Run(cfg)
			if err != nil {
				return err
			}
			stoppower.Report(cmd.OutOrStdout(), analysis)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Input, "input", "i", cfg.Input, "CSV table of simulated samples")
	flags.StringVarP(&cfg.OutDir, "out-dir", "o", cfg.OutDir, "directory for generated figures")
	flags.Float64Var(&cfg.IonizationEV, "ionization", cfg.IonizationEV, "mean ionization potential I [eV]")
	flags.IntVar(&cfg.GridPoints, "grid-points", cfg.GridPoints, "theory-curve grid resolution")
	flags.IntVar(&cfg.Resolution, "resolution", cfg.Resolution, "interpolated points per plotted curve")
	flags.BoolVar(&noFigures, "no-figures", false, "skip PNG/PDF figure rendering")
	flags.StringVar(&logLevel, "log-level", logLevel, "log level (debug, info, warn, error)")

	return cmd
}

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
