package config

import (
	"os"
	"path/filepath"
	"testing"

	"reportbook/internal/report"
)

func TestLoadConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "config.toml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected default config file to be written: %v", err)
	}
	if len(cfg.ReportSet()) != 7 {
		t.Errorf("Expected 7 reports, got %d", len(cfg.ReportSet()))
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Reloading default config failed: %v", err)
	}
	if reloaded.Report.OutputPattern != report.DefaultOutputPattern {
		t.Errorf("unexpected output pattern %q", reloaded.Report.OutputPattern)
	}
	for i, entry := range report.DefaultSet() {
		if reloaded.Report.Sheets[i] != entry {
			t.Errorf("sheet %d = %+v, expected %+v", i, reloaded.Report.Sheets[i], entry)
		}
	}
	opts := reloaded.FormatOptions()
	if opts.WidthPadding != 2 || opts.MaxWidth != 50 || !opts.BoldHeader || opts.FixedDecimals {
		t.Errorf("unexpected format options %+v", opts)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[report]
output_pattern = "Links_%s.xlsx"

[[report.sheets]]
prefix = "01_Summary_Dashboard"
sheet = "Summary"

[format]
max_width = 30
bold_header = false
fixed_decimals = true

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Report.OutputPattern != "Links_%s.xlsx" {
		t.Errorf("unexpected output pattern %q", cfg.Report.OutputPattern)
	}
	set := cfg.ReportSet()
	if len(set) != 1 || set[0].Sheet != "Summary" {
		t.Errorf("unexpected report set %+v", set)
	}

	opts := cfg.FormatOptions()
	if opts.MaxWidth != 30 {
		t.Errorf("Expected max width 30, got %d", opts.MaxWidth)
	}
	if opts.WidthPadding != 2 {
		t.Errorf("Expected default padding 2, got %d", opts.WidthPadding)
	}
	if opts.BoldHeader {
		t.Error("Expected bold header to be disabled")
	}
	if !opts.FixedDecimals {
		t.Error("Expected fixed decimals to be enabled")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected debug level, got %q", cfg.Log.Level)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[format\nmax_width = "), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected invalid TOML to fail")
	}
}
