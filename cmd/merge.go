package cmd

import (
	"io"

	"github.com/KaramelBytes/districtlens-cli/internal/analysis"
	"github.com/KaramelBytes/districtlens-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	mergeFormat string
	mergeOutput string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Join CCTV, household and crime totals per district",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(pipeline.SourceMerged)
		if err != nil {
			return err
		}
		m := snap.Merged
		return emit(cmd, renderer{
			formatMarkdown: textRenderer(analysis.MergedMarkdown(m)),
			formatCSV:      func(w io.Writer) error { return analysis.WriteMergedCSV(w, m) },
			formatJSON:     jsonRenderer(m),
		}, mergeFormat, mergeOutput)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVar(&mergeFormat, "format", formatMarkdown, "output format: md|csv|json")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "write to file instead of stdout")
}
