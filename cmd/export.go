package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/analysis"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/export"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/panel"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/utils"
)

var (
	exportSel    selectionFlags
	exportFormat string
	exportOut    string

	reportSel selectionFlags
	reportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered view to CSV, XLSX or Parquet",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := export.ByFormat(exportFormat)
		if err != nil {
			return fmt.Errorf("%w: %s (use %s)", err, exportFormat, strings.Join(export.Formats(), ", "))
		}
		ds, st, err := exportSel.resolve(cmd)
		if err != nil {
			return err
		}
		enc, err := dataset.ParseEncoding(cfg.Encoding)
		if err != nil {
			return err
		}
		view := analysis.Filter(ds, st.Criteria())
		out := exportOut
		if out == "" {
			out = filepath.Join(cfg.ExportsDir, export.FileName(st.Year, e))
		}
		if err := export.WriteFile(out, e, view, enc); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("✓ Exported %d rows to %s", len(view), out)))
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render every dashboard panel as a Markdown report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, st, err := reportSel.resolve(cmd)
		if err != nil {
			return err
		}
		md := panel.Build(ds, st).Markdown()
		if reportOut == "" {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		if err := utils.SafeWriteFile(reportOut, []byte(md)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", reportOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)

	exportSel.register(exportCmd, false)
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv, xlsx or parquet")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default <exports_dir>/감염병_진료통계_<year>_filtered.<ext>)")

	reportSel.register(reportCmd, true)
	reportCmd.Flags().StringVarP(&reportOut, "output", "o", "", "write the report to a file instead of stdout")
}
