package config

import (
	"fmt"
	"os"
	"path/filepath"

	"reportbook/internal/excel"
	"reportbook/internal/logger"
	"reportbook/internal/report"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// AppName is the directory name used under the XDG config home.
const AppName = "reportbook"

type Config struct {
	Report ReportConfig `toml:"report"`
	Format FormatConfig `toml:"format"`
	Log    LogConfig    `toml:"log"`
}

type ReportConfig struct {
	OutputPattern string         `toml:"output_pattern"`
	Sheets        []report.Entry `toml:"sheets"`
}

type FormatConfig struct {
	WidthPadding int   `toml:"width_padding"`
	MaxWidth     int   `toml:"max_width"`
	BoldHeader   *bool `toml:"bold_header"`

	FixedDecimals bool `toml:"fixed_decimals"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in configuration
func Default() *Config {
	bold := true
	return &Config{
		Report: ReportConfig{
			OutputPattern: report.DefaultOutputPattern,
			Sheets:        report.DefaultSet(),
		},
		Format: FormatConfig{
			WidthPadding: excel.DefaultWidthPadding,
			MaxWidth:     excel.DefaultMaxWidth,
			BoldHeader:   &bold,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the config file location under the XDG config home
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// Resolve loads configuration from configPath when given. Otherwise it loads
// the XDG config file if one exists and falls back to built-in defaults.
func Resolve(configPath string) (*Config, error) {
	if configPath != "" {
		return LoadConfig(configPath)
	}

	if found, err := xdg.SearchConfigFile(filepath.Join(AppName, "config.toml")); err == nil {
		return LoadConfig(found)
	}

	return Default(), nil
}

// LoadConfig loads configuration from the specified config file path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %v", err)
		}

		defaultConfig := Default()
		err = SaveConfig(configPath, defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create default config: %v", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return defaultConfig, nil
	}

	var config Config
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %v", configPath, err)
	}

	config.applyDefaults()

	logger.Info("Loaded configuration", "path", configPath)
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Report.OutputPattern == "" {
		c.Report.OutputPattern = defaults.Report.OutputPattern
	}
	if len(c.Report.Sheets) == 0 {
		c.Report.Sheets = defaults.Report.Sheets
	}
	if c.Format.WidthPadding == 0 {
		c.Format.WidthPadding = defaults.Format.WidthPadding
	}
	if c.Format.MaxWidth == 0 {
		c.Format.MaxWidth = defaults.Format.MaxWidth
	}
	if c.Format.BoldHeader == nil {
		c.Format.BoldHeader = defaults.Format.BoldHeader
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// ReportSet returns the configured reports in sheet order
func (c *Config) ReportSet() report.Set {
	return report.Set(c.Report.Sheets)
}

// FormatOptions converts the [format] section for the sheet formatter
func (c *Config) FormatOptions() excel.FormatOptions {
	opts := excel.DefaultFormatOptions()
	if c.Format.WidthPadding != 0 {
		opts.WidthPadding = c.Format.WidthPadding
	}
	if c.Format.MaxWidth != 0 {
		opts.MaxWidth = c.Format.MaxWidth
	}
	if c.Format.BoldHeader != nil {
		opts.BoldHeader = *c.Format.BoldHeader
	}
	opts.FixedDecimals = c.Format.FixedDecimals
	return opts
}

// SaveConfig saves configuration to the specified config file path
func SaveConfig(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	err = encoder.Encode(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %v", err)
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}
