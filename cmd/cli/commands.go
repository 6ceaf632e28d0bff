package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"statcalc/adapters/excel"
	"statcalc/app"
	"statcalc/domain/stats"
	"statcalc/internal/errors"
	"statcalc/ui"

	"github.com/spf13/cobra"
)

// inputFlags selects where the sample comes from
type inputFlags struct {
	data   string
	file   string
	column string
	sheet  string
}

func (in *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.data, "data", "", "Sample values separated by commas, semicolons, tabs or new lines")
	cmd.Flags().StringVar(&in.file, "file", "", "CSV or XLSX file to read a numeric column from")
	cmd.Flags().StringVar(&in.column, "column", "", "Column name (optional when the file has one numeric column)")
	cmd.Flags().StringVar(&in.sheet, "sheet", "", "Worksheet name for XLSX files (default: first sheet)")
	cmd.MarkFlagsMutuallyExclusive("data", "file")
}

// resolve returns the raw sample text: --data, then --file, then stdin
func (in *inputFlags) resolve(cmd *cobra.Command, env *cliEnv) (string, error) {
	if cmd.Flags().Changed("data") {
		return in.data, nil
	}
	if in.file != "" {
		sheet := in.sheet
		if sheet == "" {
			sheet = env.config.Data.ExcelSheet
		}
		reader, err := excel.NewDataReader(in.file, excel.ReaderConfig{Sheet: sheet})
		if err != nil {
			return "", err
		}
		table, err := reader.ReadTable()
		if err != nil {
			return "", err
		}
		column, err := table.SelectColumn(in.column)
		if err != nil {
			return "", err
		}
		env.logger.Info("using column %q of %s", column, table.Source)
		return table.ColumnText(column)
	}
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.IOError("failed to read standard input", err)
	}
	return string(raw), nil
}

// outputFlags controls rendering and saving
type outputFlags struct {
	style  string
	save   string
	title  string
	asJSON bool
}

func (out *outputFlags) register(cmd *cobra.Command, defaultTitle string) {
	cmd.Flags().StringVar(&out.style, "style", "", "Report style: plain|decorated|markdown (default from REPORT_STYLE)")
	cmd.Flags().StringVar(&out.save, "save", "", "Also save the report to this path (.txt added when no extension)")
	cmd.Flags().StringVar(&out.title, "title", defaultTitle, "Title written above a saved report")
	cmd.Flags().BoolVar(&out.asJSON, "json", false, "Print the result as JSON instead of the report")
}

func (out *outputFlags) emit(cmd *cobra.Command, env *cliEnv, report string, payload interface{}) error {
	w := cmd.OutOrStdout()
	if out.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else {
		fmt.Fprint(w, report)
	}

	if out.save == "" {
		return nil
	}
	path, err := env.calculator.SaveReport(cmd.Context(), out.save, out.title, report)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to %s\n", path)
	return nil
}

func newIntervalCmd(env *cliEnv) *cobra.Command {
	var in inputFlags
	var out outputFlags
	var confidence float64
	var kind string

	cmd := &cobra.Command{
		Use:   "interval",
		Short: "Two-sided confidence interval for the mean",
		Long: `Compute a two-sided confidence interval for the population mean.

Examples:
  statcalc interval --data "10,12,9,11,13,10,12,11,9,14" --confidence 95 --kind t
  statcalc interval --file scores.xlsx --column score --kind z --save ci`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			testKind, err := stats.ParseTestKind(kind)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("confidence") {
				confidence = env.config.Inference.DefaultConfidence
			}
			data, err := in.resolve(cmd, env)
			if err != nil {
				return err
			}

			resp, err := env.calculator.ComputeInterval(cmd.Context(), app.IntervalRequest{
				Data:              data,
				ConfidencePercent: confidence,
				Kind:              testKind,
				Style:             out.style,
			})
			if err != nil {
				return err
			}
			return out.emit(cmd, env, resp.Report, resp)
		},
	}

	in.register(cmd)
	out.register(cmd, "Confidence interval results")
	cmd.Flags().Float64Var(&confidence, "confidence", 95, "Confidence level in percent (default from DEFAULT_CONFIDENCE)")
	cmd.Flags().StringVar(&kind, "kind", "t", "Procedure: z|t")
	return cmd
}

func newTestCmd(env *cliEnv) *cobra.Command {
	var in inputFlags
	var out outputFlags
	var nullValue, alpha float64
	var direction, kind string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "One-sample Z or t test on the mean",
		Long: `Test the population mean against a null value.

Directions: two-sided (≠), less (<), greater (>).

Examples:
  statcalc test --data "10,12,9,11,13,10,12,11,9,14" --null 10 --alpha 0.05 --direction two-sided
  cat sample.txt | statcalc test --null 19 --direction greater --kind z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			testKind, err := stats.ParseTestKind(kind)
			if err != nil {
				return err
			}
			dir, err := stats.ParseDirection(direction)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("alpha") {
				alpha = env.config.Inference.DefaultAlpha
			}
			data, err := in.resolve(cmd, env)
			if err != nil {
				return err
			}

			resp, err := env.calculator.RunTest(cmd.Context(), app.HypothesisRequest{
				Data:      data,
				NullValue: nullValue,
				Alpha:     alpha,
				Direction: dir,
				Kind:      testKind,
				Style:     out.style,
			})
			if err != nil {
				return err
			}
			return out.emit(cmd, env, resp.Report, resp)
		},
	}

	in.register(cmd)
	out.register(cmd, "Hypothesis test results")
	cmd.Flags().Float64Var(&nullValue, "null", 0, "Hypothesised mean μ0")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "Significance level (default from DEFAULT_ALPHA)")
	cmd.Flags().StringVar(&direction, "direction", string(stats.TwoSided), "Alternative: two-sided|less|greater")
	cmd.Flags().StringVar(&kind, "kind", "t", "Procedure: z|t")
	_ = cmd.MarkFlagRequired("null")
	return cmd
}

func newHelpTopicsCmd() *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "help-topics",
		Short: "Explain intervals, Z versus t, p-values and how to read results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ui.HelpMarkdown()
			if asHTML {
				text = ui.HelpHTML()
			}
			_, err := io.WriteString(cmd.OutOrStdout(), strings.TrimLeft(text, "\n"))
			return err
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render the primer as HTML")
	return cmd
}
