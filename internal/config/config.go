package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Source files
	CrimePath          string `mapstructure:"crime_path" yaml:"crime_path"`
	CameraPath         string `mapstructure:"camera_path" yaml:"camera_path"`
	CameraSheet        string `mapstructure:"camera_sheet" yaml:"camera_sheet"`
	CameraHeaderRow    int    `mapstructure:"camera_header_row" yaml:"camera_header_row"`
	CameraYearPattern  string `mapstructure:"camera_year_pattern" yaml:"camera_year_pattern"`
	HouseholdPath      string `mapstructure:"household_path" yaml:"household_path"`
	HouseholdHeaderRow int    `mapstructure:"household_header_row" yaml:"household_header_row"`

	// ReferenceYear aligns the camera column and the crime slice in the merge.
	ReferenceYear int `mapstructure:"reference_year" yaml:"reference_year"`

	// Server
	ListenAddr      string `mapstructure:"listen_addr" yaml:"listen_addr"`
	WatchDebounceMs int    `mapstructure:"watch_debounce_ms" yaml:"watch_debounce_ms"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

const envPrefix = "DISTRICTLENS"

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".districtlens"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.districtlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (including a .env file in the working directory) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// .env is optional; variables already set in the environment win
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// Defaults match the file names the Seoul open data portal publishes.
	v.SetDefault("crime_path", "crime_data_tidy.csv")
	v.SetDefault("camera_path", "서울시 자치구 (범죄예방 수사용) CCTV 설치현황_241231.xlsx")
	v.SetDefault("camera_sheet", "")
	v.SetDefault("camera_header_row", 2)
	v.SetDefault("camera_year_pattern", "년")
	v.SetDefault("household_path", "1인가구정보.csv")
	v.SetDefault("household_header_row", 1)
	v.SetDefault("reference_year", 2020)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("watch_debounce_ms", 500)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read; a missing file falls back to defaults
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings the loaders cannot work with.
func (c *Global) Validate() error {
	if c.CameraHeaderRow < 0 {
		return fmt.Errorf("camera_header_row must be >= 0, got %d", c.CameraHeaderRow)
	}
	if c.HouseholdHeaderRow < 0 {
		return fmt.Errorf("household_header_row must be >= 0, got %d", c.HouseholdHeaderRow)
	}
	if c.ReferenceYear <= 0 {
		return fmt.Errorf("reference_year must be positive, got %d", c.ReferenceYear)
	}
	if c.CameraYearPattern == "" {
		return fmt.Errorf("camera_year_pattern must not be empty")
	}
	return nil
}
