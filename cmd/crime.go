package cmd

import (
	"fmt"

	"github.com/KaramelBytes/districtlens-cli/internal/analysis"
	"github.com/KaramelBytes/districtlens-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	crimeYear     int
	crimeType     string
	crimeCategory string
	crimeOptions  bool
	crimeFormat   string
	crimeOutput   string
)

var crimeCmd = &cobra.Command{
	Use:   "crime",
	Short: "Show crime counts per district for a year, crime type and category",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(pipeline.SourceCrime)
		if err != nil {
			return err
		}
		opts := analysis.CrimeChoices(snap.Crime, snap.CrimeTypes)
		if crimeOptions {
			return emit(cmd, renderer{
				formatMarkdown: textRenderer(optionsMarkdown(opts)),
				formatJSON:     jsonRenderer(opts),
			}, crimeFormat, crimeOutput)
		}
		v, err := crimeViewFor(snap, crimeYear, crimeType, crimeCategory)
		if err != nil {
			return err
		}
		return emit(cmd, viewRenderer(v), crimeFormat, crimeOutput)
	},
}

// crimeViewFor fills unset selections with the newest year, the first crime
// type and the first category.
func crimeViewFor(snap *pipeline.Snapshot, year int, crimeType, category string) (*analysis.View, error) {
	defYear, defType, defCategory := analysis.CrimeChoices(snap.Crime, snap.CrimeTypes).Defaults()
	if year == 0 {
		if defYear == 0 {
			return nil, fmt.Errorf("crime data has no parsable years")
		}
		year = defYear
	}
	if crimeType == "" {
		if defType == "" {
			return nil, fmt.Errorf("crime data has no crime types")
		}
		crimeType = defType
	}
	if category == "" {
		category = defCategory
	}
	return analysis.CrimeView(snap.Crime, year, crimeType, category), nil
}

func optionsMarkdown(o analysis.CrimeOptions) string {
	return fmt.Sprintf("[CRIME OPTIONS]\nYears: %v\nCrime types: %v\nCategories: %v\n", o.Years, o.CrimeTypes, o.Categories)
}

func viewRenderer(v *analysis.View) renderer {
	return renderer{
		formatMarkdown: textRenderer(v.Markdown()),
		formatCSV:      v.WriteCSV,
		formatJSON:     jsonRenderer(v),
	}
}

func init() {
	rootCmd.AddCommand(crimeCmd)
	crimeCmd.Flags().IntVar(&crimeYear, "year", 0, "year to show (default: newest)")
	crimeCmd.Flags().StringVar(&crimeType, "type", "", "crime type (default: first listed; 소계 for all types)")
	crimeCmd.Flags().StringVar(&crimeCategory, "category", "", "category, e.g. 발생 or 검거 (default: first listed)")
	crimeCmd.Flags().BoolVar(&crimeOptions, "options", false, "list the selectable years, crime types and categories")
	crimeCmd.Flags().StringVar(&crimeFormat, "format", formatMarkdown, "output format: md|csv|json")
	crimeCmd.Flags().StringVarP(&crimeOutput, "output", "o", "", "write to file instead of stdout")
}
