package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the application configuration.
type Config struct {
	Strava    StravaConfig    `json:"strava"`
	Intervals IntervalsConfig `json:"intervals"`
	Export    ExportConfig    `json:"export"`
}

// StravaConfig holds Strava API credentials.
type StravaConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// IntervalsConfig holds Intervals.icu API credentials.
type IntervalsConfig struct {
	APIKey    string `json:"api_key"`
	AthleteID int    `json:"athlete_id"`
}

// ExportConfig holds export output settings.
type ExportConfig struct {
	OutDir   string `json:"out_dir"`
	PlansDir string `json:"plans_dir"`
	Timezone string `json:"timezone"`
}

// ErrNoConfig is returned when the config file doesn't exist.
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Export: ExportConfig{
			OutDir:   "./out",
			PlansDir: "./plans",
			Timezone: "Australia/Melbourne",
		},
	}
}

// Load reads the configuration from ~/.trainlog/config.json, applying
// defaults for missing values.
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	defaults := DefaultConfig()
	if cfg.Export.OutDir == "" {
		cfg.Export.OutDir = defaults.Export.OutDir
	}
	if cfg.Export.PlansDir == "" {
		cfg.Export.PlansDir = defaults.Export.PlansDir
	}
	if cfg.Export.Timezone == "" {
		cfg.Export.Timezone = defaults.Export.Timezone
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.trainlog/config.json.
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists.
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return nil // config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Strava = StravaConfig{
		ClientID:     "YOUR_CLIENT_ID",
		ClientSecret: "YOUR_CLIENT_SECRET",
	}
	example.Intervals = IntervalsConfig{
		APIKey: "YOUR_API_KEY",
	}
	return Save(&example)
}

// ValidateStrava checks the fields the Strava export path requires.
func (c *Config) ValidateStrava() error {
	if c.Strava.ClientID == "" || c.Strava.ClientID == "YOUR_CLIENT_ID" {
		return errors.New("strava.client_id is required - get it from https://www.strava.com/settings/api")
	}
	if c.Strava.ClientSecret == "" || c.Strava.ClientSecret == "YOUR_CLIENT_SECRET" {
		return errors.New("strava.client_secret is required - get it from https://www.strava.com/settings/api")
	}
	return nil
}

// ValidateIntervals checks the fields the Intervals.icu paths require.
func (c *Config) ValidateIntervals() error {
	if c.Intervals.APIKey == "" || c.Intervals.APIKey == "YOUR_API_KEY" {
		return errors.New("intervals.api_key is required - generate one in Intervals.icu settings")
	}
	return nil
}

// Location resolves the configured local timezone. An unknown name
// falls back to the default timezone rather than failing the export.
func (c *Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Export.Timezone); err == nil {
		return loc
	}
	loc, err := time.LoadLocation(DefaultConfig().Export.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// getConfigPath returns the path to the config file.
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".trainlog", "config.json"), nil
}

// GetConfigDir returns the path to the config directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".trainlog"), nil
}
