package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/panel"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/render"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/utils"
)

var (
	chartSel  selectionFlags
	chartKind string
	chartOut  string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the Top-N bar chart or the metric heatmap to a file",
	Long: `Render one of the dashboard charts. The bar chart can be written as SVG or
PNG (chosen by the output extension); the heatmap is SVG only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := strings.ToLower(strings.TrimSpace(chartKind))
		if kind != "bar" && kind != "heatmap" {
			return fmt.Errorf("invalid --kind: %s (use bar or heatmap)", chartKind)
		}
		ds, st, err := chartSel.resolve(cmd)
		if err != nil {
			return err
		}
		out := chartOut
		if out == "" {
			out = filepath.Join(cfg.ExportsDir, fmt.Sprintf("%s_%d.svg", kind, st.Year))
		}
		format := render.SVG
		if strings.EqualFold(filepath.Ext(out), ".png") {
			format = render.PNG
		}
		if kind == "heatmap" && format != render.SVG {
			return fmt.Errorf("heatmap can only be written as .svg")
		}

		p, err := panel.Safe(panel.NameCharts, func() panel.ChartsPanel { return panel.Charts(ds, st) })
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if kind == "bar" {
			err = render.BarChart(&buf, p, format)
		} else {
			err = render.Heatmap(&buf, p)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", kind, err)
		}
		if err := utils.SafeWriteFile(out, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("✓ Wrote %s (%d diseases)", out, len(p.Bars))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartSel.register(chartCmd, false)
	chartCmd.Flags().StringVar(&chartKind, "kind", "bar", "chart to render: bar or heatmap")
	chartCmd.Flags().StringVarP(&chartOut, "output", "o", "", "output file (.svg or .png); default <exports_dir>/<kind>_<year>.svg")
}
