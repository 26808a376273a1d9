package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/districtlens-cli/internal/config"
	"github.com/KaramelBytes/districtlens-cli/internal/logging"
	"github.com/KaramelBytes/districtlens-cli/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Source flags (override config if set)
	flagCrimePath     string
	flagCameraPath    string
	flagHouseholdPath string
	flagReferenceYear int

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "districtlens",
	Short: "DistrictLens: crime, CCTV and household statistics per Seoul district",
	Long: `DistrictLens loads the Seoul crime, CCTV installation and single-person household
datasets, joins them per district, and renders views, correlations and charts
from the command line or over a JSON API.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.districtlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagCrimePath, "crime", "", "crime CSV path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCameraPath, "cctv", "", "CCTV workbook path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagHouseholdPath, "household", "", "household CSV path (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagReferenceYear, "reference-year", 0, "year aligning CCTV and crime data in the merge (overrides config)")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c

	f := cmd.Root().PersistentFlags()
	if f.Changed("crime") && flagCrimePath != "" {
		cfg.CrimePath = flagCrimePath
	}
	if f.Changed("cctv") && flagCameraPath != "" {
		cfg.CameraPath = flagCameraPath
	}
	if f.Changed("household") && flagHouseholdPath != "" {
		cfg.HouseholdPath = flagHouseholdPath
	}
	if f.Changed("reference-year") && flagReferenceYear > 0 {
		cfg.ReferenceYear = flagReferenceYear
	}

	l, err := logging.New(cfg.LogLevel, debug)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// loadSnapshot runs the pipeline once and fails when any of the required
// sources did not load. Other source failures are only warned about.
func loadSnapshot(required ...pipeline.Source) (*pipeline.Snapshot, error) {
	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	snap, loadErr := p.Load()
	for _, src := range required {
		if err := snap.Err(src); err != nil {
			return nil, err
		}
	}
	if loadErr != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", loadErr)
	}
	if snap.Degraded() {
		for _, w := range snap.Merged.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
		}
	}
	return snap, nil
}
