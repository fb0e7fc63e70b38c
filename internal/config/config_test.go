package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/longview/internal/virt"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.True(t, cfg.AutoRefresh)
	assert.True(t, cfg.UI.ShowStatusBar)
	assert.True(t, cfg.UI.ShowScrollbar)
	assert.False(t, cfg.UI.Debug)
	assert.Equal(t, 1.0, cfg.Virt.DefaultItemHeight)
	assert.Equal(t, 20, cfg.Virt.BufferSize)
	assert.Equal(t, "topToBottom", cfg.Virt.Mode)
	assert.Equal(t, 1000, cfg.Virt.BlockSize)
	assert.Equal(t, 200, cfg.Virt.MeasureDebounceMS)
	assert.True(t, cfg.Virt.SmoothScroll)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "file", cfg.Tracing.Exporter)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRate)
	assert.Equal(t, "default", cfg.Theme.Preset)
}

func TestDefaultsValidate(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestValidateVirt(t *testing.T) {
	tests := []struct {
		name    string
		virt    VirtConfig
		wantErr string
	}{
		{name: "zero values are valid", virt: VirtConfig{}},
		{name: "topToBottom mode", virt: VirtConfig{Mode: "topToBottom"}},
		{name: "bottomToTop mode", virt: VirtConfig{Mode: "bottomToTop"}},
		{
			name:    "unknown mode",
			virt:    VirtConfig{Mode: "sideways"},
			wantErr: "virt.mode",
		},
		{
			name:    "negative item height",
			virt:    VirtConfig{DefaultItemHeight: -1},
			wantErr: "virt.default_item_height",
		},
		{
			name:    "negative buffer",
			virt:    VirtConfig{BufferSize: -5},
			wantErr: "virt.buffer_size",
		},
		{
			name:    "negative debounce",
			virt:    VirtConfig{MeasureDebounceMS: -1},
			wantErr: "virt.measure_debounce_ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVirt(tt.virt)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		tracing TracingConfig
		wantErr string
	}{
		{name: "empty config is valid", tracing: TracingConfig{}},
		{name: "full sample rate", tracing: TracingConfig{SampleRate: 1.0}},
		{
			name:    "sample rate above one",
			tracing: TracingConfig{SampleRate: 1.5},
			wantErr: "sample_rate",
		},
		{
			name:    "unknown exporter",
			tracing: TracingConfig{Exporter: "kafka"},
			wantErr: "exporter",
		},
		{
			name:    "file exporter without path when enabled",
			tracing: TracingConfig{Enabled: true, Exporter: "file"},
			wantErr: "file_path",
		},
		{
			name:    "otlp exporter without endpoint when enabled",
			tracing: TracingConfig{Enabled: true, Exporter: "otlp"},
			wantErr: "otlp_endpoint",
		},
		{
			name:    "file exporter without path when disabled is fine",
			tracing: TracingConfig{Enabled: false, Exporter: "file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.tracing)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEngineConfig_ZeroValuesFallBack(t *testing.T) {
	cfg := VirtConfig{}.EngineConfig(false)
	defaults := virt.DefaultVirtConfig()

	assert.Equal(t, defaults.DefaultItemHeight, cfg.DefaultItemHeight)
	assert.Equal(t, defaults.BufferSize, cfg.BufferSize)
	assert.Equal(t, virt.ModeTopToBottom, cfg.Mode)
	assert.Equal(t, defaults.MeasureDebounce, cfg.MeasureDebounce)
}

func TestEngineConfig_ExplicitValues(t *testing.T) {
	cfg := VirtConfig{
		DefaultItemHeight: 3,
		BufferSize:        5,
		Mode:              "bottomToTop",
		BlockSize:         500,
		ChunkSize:         250,
		MeasureDebounceMS: 50,
	}.EngineConfig(true)

	assert.Equal(t, 3.0, cfg.DefaultItemHeight)
	assert.Equal(t, 5, cfg.BufferSize)
	assert.Equal(t, virt.ModeBottomToTop, cfg.Mode)
	assert.Equal(t, 500, cfg.BlockSize)
	assert.Equal(t, 250, cfg.ChunkSize)
	assert.Equal(t, 50*time.Millisecond, cfg.MeasureDebounce)
	assert.True(t, cfg.Debug)
}

func TestWriteDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "config.yaml")

	err := WriteDefaultConfig(configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "auto_refresh: true")
	assert.Contains(t, content, "default_item_height: 1")
	assert.Contains(t, content, "mode: topToBottom")
}
