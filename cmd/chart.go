package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/districtlens-cli/internal/analysis"
	"github.com/KaramelBytes/districtlens-cli/internal/chart"
	"github.com/KaramelBytes/districtlens-cli/internal/pipeline"
	"github.com/KaramelBytes/districtlens-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	chartOutput   string
	chartWidth    int
	chartHeight   int
	chartYear     string
	chartType     string
	chartCategory string
	chartMetric   string
	chartX        string
	chartY        string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render views as PNG charts",
}

var chartBarCmd = &cobra.Command{
	Use:       "bar <crime|cctv|household>",
	Short:     "Bar chart of a per-district view",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"crime", "cctv", "household"},
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := barView(args[0])
		if err != nil {
			return err
		}
		return writeChart(cmd, func(w io.Writer) error {
			return chart.Bar(w, v, chart.Size{Width: chartWidth, Height: chartHeight})
		})
	},
}

var chartScatterCmd = &cobra.Command{
	Use:   "scatter",
	Short: "Scatter plot of two merged columns with their correlation",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := correlationFor(chartX, chartY)
		if err != nil {
			return err
		}
		return writeChart(cmd, func(w io.Writer) error {
			return chart.Scatter(w, c, chart.Size{Width: chartWidth, Height: chartHeight})
		})
	},
}

func barView(name string) (*analysis.View, error) {
	switch name {
	case "crime":
		snap, err := loadSnapshot(pipeline.SourceCrime)
		if err != nil {
			return nil, err
		}
		year := 0
		if chartYear != "" {
			y, err := strconv.Atoi(chartYear)
			if err != nil {
				return nil, fmt.Errorf("invalid --year for crime: %q", chartYear)
			}
			year = y
		}
		return crimeViewFor(snap, year, chartType, chartCategory)
	case "cctv":
		snap, err := loadSnapshot(pipeline.SourceCamera)
		if err != nil {
			return nil, err
		}
		return cameraViewFor(snap, chartYear)
	case "household":
		snap, err := loadSnapshot(pipeline.SourceHousehold)
		if err != nil {
			return nil, err
		}
		return analysis.HouseholdView(snap.Household, analysis.HouseholdMetric(chartMetric))
	default:
		return nil, fmt.Errorf("unknown view: %s (use crime|cctv|household)", name)
	}
}

func writeChart(cmd *cobra.Command, render func(io.Writer) error) error {
	if chartOutput == "" {
		return fmt.Errorf("--output is required")
	}
	if err := utils.WriteRendered(chartOutput, render); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote chart to %s\n", chartOutput)
	return nil
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.AddCommand(chartBarCmd)
	chartCmd.AddCommand(chartScatterCmd)

	pf := chartCmd.PersistentFlags()
	pf.StringVarP(&chartOutput, "output", "o", "", "PNG output path (required)")
	pf.IntVar(&chartWidth, "width", 0, "image width in pixels")
	pf.IntVar(&chartHeight, "height", 0, "image height in pixels")

	chartBarCmd.Flags().StringVar(&chartYear, "year", "", "crime year (e.g. 2020) or CCTV year label (e.g. 2020년)")
	chartBarCmd.Flags().StringVar(&chartType, "type", "", "crime type")
	chartBarCmd.Flags().StringVar(&chartCategory, "category", "", "crime category")
	chartBarCmd.Flags().StringVar(&chartMetric, "metric", string(analysis.MetricSinglePersonCount), "household metric: count|ratio")

	chartScatterCmd.Flags().StringVar(&chartX, "x", "", "x column (default: CCTV count)")
	chartScatterCmd.Flags().StringVar(&chartY, "y", "", "y column (default: total crimes)")
}
