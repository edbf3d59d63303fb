package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

var (
	diseasesYear   int
	diseasesSearch string
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "List the years present in the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		counts := map[int]int{}
		for _, r := range ds.Records() {
			counts[r.Year]++
		}
		for _, y := range ds.Years() {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d records\n", y, counts[y])
		}
		return nil
	},
}

var diseasesCmd = &cobra.Command{
	Use:   "diseases",
	Short: "List the diseases of a year, optionally narrowed by keyword",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		years := ds.Years()
		if len(years) == 0 {
			return selection.ErrEmptyDataset
		}
		year := years[0]
		if cmd.Flags().Changed("year") {
			year = diseasesYear
		}
		if !ds.HasYear(year) {
			return fmt.Errorf("%w: %d", selection.ErrUnknownYear, year)
		}
		names := selection.DiseaseOptions(ds, year, diseasesSearch)
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No diseases match.")
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(yearsCmd)
	rootCmd.AddCommand(diseasesCmd)
	diseasesCmd.Flags().IntVar(&diseasesYear, "year", 0, "year to list (default: earliest in the dataset)")
	diseasesCmd.Flags().StringVar(&diseasesSearch, "search", "", "keyword the disease name must contain")
}
