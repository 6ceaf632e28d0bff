package main

import (
	"fmt"
	"os"

	"statcalc/adapters/filesystem"
	"statcalc/app"
	"statcalc/internal"
	"statcalc/internal/config"
	"statcalc/internal/errors"
	"statcalc/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// cliEnv carries what every subcommand needs, built once before it runs
type cliEnv struct {
	config     *config.Config
	calculator *app.CalculatorService
	logger     *internal.Logger
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error [%s]: %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	env := &cliEnv{}
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "statcalc",
		Short: "One-sample confidence intervals and mean tests (Z and t)",
		Long: `statcalc computes two-sided confidence intervals for a population mean and
runs one-sample Z or t tests on it.

Sample data comes from --data, from a numeric column of a CSV or XLSX file
(--file, --column, --sheet), or from standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			env.config = cfg

			env.logger = internal.NewLogger(internal.ParseLogLevel(logLevel)).WithOutput(cmd.ErrOrStderr())
			internal.DefaultLogger = env.logger

			style, err := report.ParseStyle(cfg.Inference.ReportStyle)
			if err != nil {
				return errors.ConfigInvalid(err.Error())
			}
			env.calculator = app.NewCalculatorService(
				report.New(style),
				filesystem.NewReportWriter(""),
				cfg.Batch.Workers,
			).WithLogger(env.logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: error|warn|info|debug|trace")

	rootCmd.AddCommand(
		newIntervalCmd(env),
		newTestCmd(env),
		newColumnsCmd(env),
		newBatchCmd(env),
		newHelpTopicsCmd(),
	)
	return rootCmd
}
