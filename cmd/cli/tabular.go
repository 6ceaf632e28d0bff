package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"statcalc/adapters/excel"
	"statcalc/domain/stats"
	"statcalc/internal/profiling"

	"github.com/spf13/cobra"
)

func loadTable(env *cliEnv, file, sheet string) (*excel.Table, error) {
	if sheet == "" {
		sheet = env.config.Data.ExcelSheet
	}
	reader, err := excel.NewDataReader(file, excel.ReaderConfig{Sheet: sheet})
	if err != nil {
		return nil, err
	}
	return reader.ReadTable()
}

func newColumnsCmd(env *cliEnv) *cobra.Command {
	var file, sheet string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Profile the numeric columns of a CSV or XLSX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(env, file, sheet)
			if err != nil {
				return err
			}
			profiles, err := profiling.NewDataProfiler().ProfileTable(table)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(profiles)
			}
			if len(profiles) == 0 {
				fmt.Fprintf(w, "No numeric columns in %s\n", table.Source)
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COLUMN\tN\tMEAN\tSTD DEV\tMIN\tQ1\tMEDIAN\tQ3\tMAX\tOUTLIERS\tSUGGESTED")
			for _, p := range profiles {
				fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%d\t%s\n",
					p.Name, p.Count, p.Mean, p.StdDev, p.Min, p.Q1, p.Median, p.Q3, p.Max, p.Outliers, p.SuggestedKind)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "CSV or XLSX file")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name for XLSX files")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print profiles as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newBatchCmd(env *cliEnv) *cobra.Command {
	var file, sheet, kind string
	var confidence float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Confidence intervals for every numeric column of a file",
		Long: `Compute a confidence interval for each numeric column concurrently.
Columns that cannot support the procedure are reported individually.

Example: statcalc batch --file survey.csv --kind z --confidence 99`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			testKind, err := stats.ParseTestKind(kind)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("confidence") {
				confidence = env.config.Inference.DefaultConfidence
			}
			table, err := loadTable(env, file, sheet)
			if err != nil {
				return err
			}

			results, err := env.calculator.BatchIntervals(cmd.Context(), table, confidence, testKind)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			for i, r := range results {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "== %s ==\n", r.Column)
				if r.Result == nil {
					fmt.Fprintf(w, "skipped [%s]: %s\n", r.Code, r.Error)
					continue
				}
				fmt.Fprint(w, r.Report)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "CSV or XLSX file")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name for XLSX files")
	cmd.Flags().StringVar(&kind, "kind", "t", "Procedure: z|t")
	cmd.Flags().Float64Var(&confidence, "confidence", 95, "Confidence level in percent")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
