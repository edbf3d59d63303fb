package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/panel"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/utils"
)

var (
	summarySel, rankSel, detailSel    selectionFlags
	summaryJSON, rankJSON, detailJSON bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the key figures and the Top-N table for a selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, st, err := summarySel.resolve(cmd)
		if err != nil {
			return err
		}
		p, err := panel.Safe(panel.NameSummary, func() panel.SummaryPanel { return panel.Summary(ds, st) })
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if summaryJSON {
			return printJSON(out, p)
		}
		printHeader(out, st)
		for _, m := range p.Metrics {
			fmt.Fprintf(out, "%s: %s\n", m.Label, m.Value)
		}
		fmt.Fprintf(out, "\n%s\n", titleStyle.Render(p.TopTitle))
		if len(p.Top) == 0 {
			fmt.Fprintln(out, mutedStyle.Render("  (no diseases match the current filters)"))
		}
		for _, r := range p.Top {
			fmt.Fprintf(out, "  %s\t환자수 %s\t총진료비 %s\n", r.Disease, r.Patients, r.TotalCost)
		}
		return nil
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show the ranking board for the chosen metric",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, st, err := rankSel.resolve(cmd)
		if err != nil {
			return err
		}
		p, err := panel.Safe(panel.NameDetail, func() panel.DetailPanel { return panel.Detail(ds, st) })
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if rankJSON {
			return printJSON(out, p.Ranking)
		}
		printHeader(out, st)
		fmt.Fprintln(out, titleStyle.Render(p.RankTitle))
		if len(p.Ranking) == 0 {
			fmt.Fprintln(out, mutedStyle.Render("  (no diseases match the current filters)"))
		}
		for _, r := range p.Ranking {
			fmt.Fprintf(out, "%2d. %s: %s\n", r.Rank, r.Disease, r.Value)
		}
		return nil
	},
}

var detailCmd = &cobra.Command{
	Use:   "detail [disease]",
	Short: "Show every metric for one disease of the current view",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 && !cmd.Flags().Changed("pick") {
			detailSel.pick = args[0]
		}
		ds, st, err := detailSel.resolve(cmd)
		if err != nil {
			return err
		}
		p, err := panel.Safe(panel.NameDetail, func() panel.DetailPanel { return panel.Detail(ds, st) })
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if detailJSON {
			return printJSON(out, p)
		}
		if p.Notice != "" {
			fmt.Fprintln(out, noticeStyle.Render("⚠ "+p.Notice))
		}
		if p.Record == nil {
			fmt.Fprintln(out, "No disease to show for the current filters.")
			return nil
		}
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s (%d)", p.Picked, st.Year)))
		for _, l := range p.Lines {
			fmt.Fprintf(out, "  %s: %s\n", l.Label, l.Value)
		}
		return nil
	},
}

func printHeader(w io.Writer, st selection.State) {
	order := "desc"
	if !st.Descending {
		order = "asc"
	}
	fmt.Fprintf(w, "%s\n\n", mutedStyle.Render(fmt.Sprintf("Year %d · %s (%s) · Top %d", st.Year, st.MetricLabel, order, st.TopN)))
}

func printJSON(w io.Writer, v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(detailCmd)

	summarySel.register(summaryCmd, false)
	rankSel.register(rankCmd, false)
	detailSel.register(detailCmd, true)
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print JSON instead of text")
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "print JSON instead of text")
	detailCmd.Flags().BoolVar(&detailJSON, "json", false, "print JSON instead of text")
}
