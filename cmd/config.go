package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/districtlens-cli/internal/config"
	"github.com/KaramelBytes/districtlens-cli/internal/logging"
	"github.com/KaramelBytes/districtlens-cli/internal/source"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set DistrictLens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "crime_path: %s\n", cfg.CrimePath)
		fmt.Fprintf(out, "camera_path: %s\n", cfg.CameraPath)
		if cfg.CameraSheet != "" {
			fmt.Fprintf(out, "camera_sheet: %s\n", cfg.CameraSheet)
		}
		fmt.Fprintf(out, "camera_header_row: %d\n", cfg.CameraHeaderRow)
		fmt.Fprintf(out, "camera_year_pattern: %s\n", cfg.CameraYearPattern)
		fmt.Fprintf(out, "household_path: %s\n", cfg.HouseholdPath)
		fmt.Fprintf(out, "household_header_row: %d\n", cfg.HouseholdHeaderRow)
		fmt.Fprintf(out, "reference_year: %d\n", cfg.ReferenceYear)
		fmt.Fprintf(out, "listen_addr: %s\n", cfg.ListenAddr)
		fmt.Fprintf(out, "watch_debounce_ms: %d\n", cfg.WatchDebounceMs)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "crime_path":
			cfg.CrimePath = val
		case "camera_path":
			cfg.CameraPath = val
		case "camera_sheet":
			cfg.CameraSheet = val
		case "camera_header_row":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for camera_header_row: %v", val)
			}
			cfg.CameraHeaderRow = i
		case "camera_year_pattern":
			if _, err := source.NewColumnRule(val); err != nil {
				return fmt.Errorf("invalid camera_year_pattern: %w", err)
			}
			cfg.CameraYearPattern = val
		case "household_path":
			cfg.HouseholdPath = val
		case "household_header_row":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for household_header_row: %v", val)
			}
			cfg.HouseholdHeaderRow = i
		case "reference_year":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid year for reference_year: %v", val)
			}
			cfg.ReferenceYear = i
		case "listen_addr":
			cfg.ListenAddr = val
		case "watch_debounce_ms":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for watch_debounce_ms: %v", val)
			}
			cfg.WatchDebounceMs = i
		case "log_level":
			if _, err := logging.ParseLevel(val); err != nil {
				return err
			}
			cfg.LogLevel = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
