package cmd

import (
	"github.com/KaramelBytes/districtlens-cli/internal/analysis"
	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
	"github.com/KaramelBytes/districtlens-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	corrX      string
	corrY      string
	corrFormat string
	corrOutput string
)

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Pearson correlation between two merged columns",
	Long: `Computes the Pearson correlation between two columns of the merged table.
Columns: CCTV 총대수(<year>년), 전체세대_합, 일인가구_합, 1인가구_비율(%), <year>_총범죄_발생건수.
Defaults to CCTV count vs total crimes for the reference year.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := correlationFor(corrX, corrY)
		if err != nil {
			return err
		}
		return emit(cmd, renderer{
			formatMarkdown: textRenderer(c.Markdown()),
			formatJSON:     jsonRenderer(c),
		}, corrFormat, corrOutput)
	},
}

func correlationFor(x, y string) (*analysis.Correlation, error) {
	snap, err := loadSnapshot(pipeline.SourceMerged)
	if err != nil {
		return nil, err
	}
	year := snap.Merged.ReferenceYear
	if x == "" {
		x = dataset.CameraSummaryLabel(year)
	}
	if y == "" {
		y = dataset.CrimeTotalLabel(year)
	}
	return analysis.Correlate(snap.Merged, x, y)
}

func init() {
	rootCmd.AddCommand(correlateCmd)
	correlateCmd.Flags().StringVar(&corrX, "x", "", "x column (default: CCTV count)")
	correlateCmd.Flags().StringVar(&corrY, "y", "", "y column (default: total crimes)")
	correlateCmd.Flags().StringVar(&corrFormat, "format", formatMarkdown, "output format: md|json")
	correlateCmd.Flags().StringVarP(&corrOutput, "output", "o", "", "write to file instead of stdout")
}
