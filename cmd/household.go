package cmd

import (
	"github.com/KaramelBytes/districtlens-cli/internal/analysis"
	"github.com/KaramelBytes/districtlens-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	hhMetric string
	hhFormat string
	hhOutput string
)

var householdCmd = &cobra.Command{
	Use:   "household",
	Short: "Show single-person households per district",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(pipeline.SourceHousehold)
		if err != nil {
			return err
		}
		v, err := analysis.HouseholdView(snap.Household, analysis.HouseholdMetric(hhMetric))
		if err != nil {
			return err
		}
		return emit(cmd, viewRenderer(v), hhFormat, hhOutput)
	},
}

func init() {
	rootCmd.AddCommand(householdCmd)
	householdCmd.Flags().StringVar(&hhMetric, "metric", string(analysis.MetricSinglePersonCount), "count|ratio")
	householdCmd.Flags().StringVar(&hhFormat, "format", formatMarkdown, "output format: md|csv|json")
	householdCmd.Flags().StringVarP(&hhOutput, "output", "o", "", "write to file instead of stdout")
}
