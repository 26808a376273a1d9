package cmd

import (
	"fmt"

	"github.com/KaramelBytes/districtlens-cli/internal/analysis"
	"github.com/KaramelBytes/districtlens-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	cctvYear   string
	cctvYears  bool
	cctvFormat string
	cctvOutput string
)

var cctvCmd = &cobra.Command{
	Use:   "cctv",
	Short: "Show installed crime-prevention CCTV cameras per district",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(pipeline.SourceCamera)
		if err != nil {
			return err
		}
		if cctvYears {
			years := analysis.CameraYears(snap.Camera)
			return emit(cmd, renderer{
				formatMarkdown: textRenderer(fmt.Sprintf("[CCTV YEARS]\n%v\n", years)),
				formatJSON:     jsonRenderer(years),
			}, cctvFormat, cctvOutput)
		}
		v, err := cameraViewFor(snap, cctvYear)
		if err != nil {
			return err
		}
		return emit(cmd, viewRenderer(v), cctvFormat, cctvOutput)
	},
}

// cameraViewFor defaults to the newest year column.
func cameraViewFor(snap *pipeline.Snapshot, label string) (*analysis.View, error) {
	if label == "" {
		years := analysis.CameraYears(snap.Camera)
		if len(years) == 0 {
			return nil, fmt.Errorf("CCTV workbook has no year columns")
		}
		label = years[0]
	}
	return analysis.CameraView(snap.Camera, label)
}

func init() {
	rootCmd.AddCommand(cctvCmd)
	cctvCmd.Flags().StringVar(&cctvYear, "year", "", "year column label, e.g. 2020년 (default: newest)")
	cctvCmd.Flags().BoolVar(&cctvYears, "years", false, "list the available year columns")
	cctvCmd.Flags().StringVar(&cctvFormat, "format", formatMarkdown, "output format: md|csv|json")
	cctvCmd.Flags().StringVarP(&cctvOutput, "output", "o", "", "write to file instead of stdout")
}
