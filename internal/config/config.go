// Package config provides configuration types and defaults for longview.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/longview/internal/log"
	"github.com/zjrosen/longview/internal/virt"
)

// Config holds all configuration options for longview.
type Config struct {
	DBPath      string          `mapstructure:"db_path"`
	AutoRefresh bool            `mapstructure:"auto_refresh"`
	UI          UIConfig        `mapstructure:"ui"`
	Virt        VirtConfig      `mapstructure:"virt"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Tracing     TracingConfig   `mapstructure:"tracing"`
	Theme       ThemeConfig     `mapstructure:"theme"`
	Flags       map[string]bool `mapstructure:"flags"`
}

// ThemeConfig selects a color preset and per-token overrides, applied once
// at startup. Token keys and hex values are validated when the theme is
// applied.
type ThemeConfig struct {
	// Preset names a built-in color scheme.
	// Options: "default", "catppuccin-mocha", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors overrides individual color tokens with hex values,
	// e.g. "level.error": "#ff5555".
	Colors map[string]string `mapstructure:"colors"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"` // Show status bar at bottom
	ShowScrollbar bool `mapstructure:"show_scrollbar"`  // Show scrollbar on the right edge
	Debug         bool `mapstructure:"debug"`           // Enable the debug log overlay (Ctrl+G)
}

// VirtConfig holds the virtualization engine tuning knobs.
type VirtConfig struct {
	// DefaultItemHeight seeds the row height estimate before any row has
	// been measured, in terminal rows. Default: 1.
	DefaultItemHeight float64 `mapstructure:"default_item_height"`

	// BufferSize is the number of extra rows rendered outside the viewport
	// on each side. Default: 20.
	BufferSize int `mapstructure:"buffer_size"`

	// Mode anchors index 0 at the top or the bottom of the content.
	// Valid values: "topToBottom" (default), "bottomToTop"
	Mode string `mapstructure:"mode"`

	// BlockSize is the checkpoint stride for cumulative height sums.
	// Default: 1000.
	BlockSize int `mapstructure:"block_size"`

	// ChunkSize is how many records one progressive-load chunk covers.
	// Default: 1000.
	ChunkSize int `mapstructure:"chunk_size"`

	// MeasureDebounceMS is the quiet period, in milliseconds, before newly
	// visible rows are measured. Default: 200.
	MeasureDebounceMS int `mapstructure:"measure_debounce_ms"`

	// SmoothScroll animates jump-to-record instead of snapping. Default: true.
	SmoothScroll bool `mapstructure:"smooth_scroll"`
}

// EngineConfig converts the user-facing settings into the engine's config,
// filling zero values with the engine defaults.
func (v VirtConfig) EngineConfig(debug bool) virt.Config {
	cfg := virt.DefaultVirtConfig()
	if v.DefaultItemHeight > 0 {
		cfg.DefaultItemHeight = v.DefaultItemHeight
	}
	if v.BufferSize > 0 {
		cfg.BufferSize = v.BufferSize
	}
	if v.Mode == "bottomToTop" {
		cfg.Mode = virt.ModeBottomToTop
	}
	if v.BlockSize > 0 {
		cfg.BlockSize = v.BlockSize
	}
	if v.ChunkSize > 0 {
		cfg.ChunkSize = v.ChunkSize
	}
	if v.MeasureDebounceMS > 0 {
		cfg.MeasureDebounce = time.Duration(v.MeasureDebounceMS) * time.Millisecond
	}
	cfg.Debug = debug
	return cfg
}

// CacheConfig holds render cache configuration.
type CacheConfig struct {
	// TTLSeconds is how long a rendered row stays cached. Default: 300.
	TTLSeconds int `mapstructure:"ttl_seconds"`

	// CleanupSeconds is the expired-entry sweep interval. Default: 600.
	CleanupSeconds int `mapstructure:"cleanup_seconds"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/longview/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/longview/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "longview", "traces", "traces.jsonl")
}

// DefaultDBPath returns the default records database path.
// Returns ~/.longview/longview.db or empty string if home dir unavailable.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".longview", "longview.db")
}

// ValidateVirt checks virtualization configuration for errors.
// Returns nil if the configuration is valid (zero values use defaults).
func ValidateVirt(v VirtConfig) error {
	if v.DefaultItemHeight < 0 {
		return fmt.Errorf("virt.default_item_height must not be negative, got %v", v.DefaultItemHeight)
	}
	if v.BufferSize < 0 {
		return fmt.Errorf("virt.buffer_size must not be negative, got %d", v.BufferSize)
	}
	if v.BlockSize < 0 {
		return fmt.Errorf("virt.block_size must not be negative, got %d", v.BlockSize)
	}
	if v.ChunkSize < 0 {
		return fmt.Errorf("virt.chunk_size must not be negative, got %d", v.ChunkSize)
	}
	if v.MeasureDebounceMS < 0 {
		return fmt.Errorf("virt.measure_debounce_ms must not be negative, got %d", v.MeasureDebounceMS)
	}
	switch v.Mode {
	case "", "topToBottom", "bottomToTop":
		// Valid
	default:
		return fmt.Errorf("virt.mode must be \"topToBottom\" or \"bottomToTop\", got %q", v.Mode)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	// Validate Exporter is a valid option
	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Validate checks the whole configuration for errors.
func Validate(c Config) error {
	if err := ValidateVirt(c.Virt); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must not be negative, got %d", c.Cache.TTLSeconds)
	}
	if c.Cache.CleanupSeconds < 0 {
		return fmt.Errorf("cache.cleanup_seconds must not be negative, got %d", c.Cache.CleanupSeconds)
	}
	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		DBPath:      DefaultDBPath(),
		AutoRefresh: true,
		UI: UIConfig{
			ShowStatusBar: true,
			ShowScrollbar: true,
			Debug:         false,
		},
		Virt: VirtConfig{
			DefaultItemHeight: 1,
			BufferSize:        20,
			Mode:              "topToBottom",
			BlockSize:         1000,
			ChunkSize:         1000,
			MeasureDebounceMS: 200,
			SmoothScroll:      true,
		},
		Cache: CacheConfig{
			TTLSeconds:     300,
			CleanupSeconds: 600,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Theme: ThemeConfig{
			Preset: "default",
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Longview Configuration

# Path to the records database (default: ~/.longview/longview.db)
# db_path: /path/to/records.db

# Reload automatically when the database changes on disk
auto_refresh: true

# UI settings
ui:
  show_status_bar: true   # Show status bar at bottom
  show_scrollbar: true    # Show scrollbar on the right edge
  debug: false            # Enable the debug log overlay (Ctrl+G)

# Virtualization engine tuning
virt:
  # Seed row height, in terminal rows, before any row has been measured.
  # The engine refines this as real rows are measured.
  default_item_height: 1

  # Extra rows rendered outside the viewport on each side.
  buffer_size: 20

  # "topToBottom" anchors record 0 at the top, "bottomToTop" at the
  # bottom (log-tail style: newest records pinned to the bottom edge).
  mode: topToBottom

  # Checkpoint stride for cumulative height sums over large collections.
  block_size: 1000

  # Records loaded per chunk during progressive initialization.
  chunk_size: 1000

  # Quiet period, in milliseconds, before newly visible rows are measured.
  measure_debounce_ms: 200

  # Animate jump-to-record instead of snapping.
  smooth_scroll: true

# Render cache settings
cache:
  ttl_seconds: 300      # How long a rendered row stays cached
  cleanup_seconds: 600  # Expired-entry sweep interval

# Color theme
# theme:
#   preset: default     # Built-in scheme: default, catppuccin-mocha, nord, high-contrast
#   colors:             # Per-token hex overrides on top of the preset
#     level.error: "#ff5555"
#     scrollbar.thumb: "#8be9fd"

# Distributed tracing configuration
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/longview/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
#
# Example: Send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1  # Sample 10% of traces
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
