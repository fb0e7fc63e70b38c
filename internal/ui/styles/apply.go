// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	// Step 1: Start with default preset
	colors := maps.Clone(DefaultPreset.Colors)

	// Step 2: Apply preset if specified
	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	// Step 3: Apply individual color overrides
	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	// Step 4: Apply colors to variables
	applyColors(colors)

	// Step 5: Rebuild all Style objects
	rebuildStyles()

	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Helper to create adaptive color (uses same color for both modes)
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	// Text hierarchy
	if c, ok := colors[TokenTextPrimary]; ok {
		TextPrimaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextSecondary]; ok {
		TextSecondaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextMuted]; ok {
		TextMutedColor = makeColor(c)
	}
	if c, ok := colors[TokenTextDescription]; ok {
		TextDescriptionColor = makeColor(c)
	}

	// Borders
	if c, ok := colors[TokenBorderDefault]; ok {
		BorderDefaultColor = makeColor(c)
	}
	if c, ok := colors[TokenBorderHighlight]; ok {
		BorderHighlightFocusColor = makeColor(c)
	}

	// Status
	if c, ok := colors[TokenStatusSuccess]; ok {
		StatusSuccessColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusWarning]; ok {
		StatusWarningColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusError]; ok {
		StatusErrorColor = makeColor(c)
	}

	// Selection
	if c, ok := colors[TokenSelectionIndicator]; ok {
		SelectionIndicatorColor = makeColor(c)
	}

	// Overlays
	if c, ok := colors[TokenOverlayTitle]; ok {
		OverlayTitleColor = makeColor(c)
	}
	if c, ok := colors[TokenOverlayBorder]; ok {
		OverlayBorderColor = makeColor(c)
	}

	// Toast
	if c, ok := colors[TokenToastSuccess]; ok {
		ToastBorderSuccessColor = makeColor(c)
	}
	if c, ok := colors[TokenToastError]; ok {
		ToastBorderErrorColor = makeColor(c)
	}
	if c, ok := colors[TokenToastInfo]; ok {
		ToastBorderInfoColor = makeColor(c)
	}
	if c, ok := colors[TokenToastWarn]; ok {
		ToastBorderWarnColor = makeColor(c)
	}

	// Record levels
	if c, ok := colors[TokenLevelDebug]; ok {
		LevelDebugColor = makeColor(c)
	}
	if c, ok := colors[TokenLevelInfo]; ok {
		LevelInfoColor = makeColor(c)
	}
	if c, ok := colors[TokenLevelWarn]; ok {
		LevelWarnColor = makeColor(c)
	}
	if c, ok := colors[TokenLevelError]; ok {
		LevelErrorColor = makeColor(c)
	}

	// Scrollbar
	if c, ok := colors[TokenScrollbarThumb]; ok {
		ScrollbarThumbColor = makeColor(c)
	}
	if c, ok := colors[TokenScrollbarTrack]; ok {
		ScrollbarTrackColor = makeColor(c)
	}

	// Misc
	if c, ok := colors[TokenSpinner]; ok {
		SpinnerColor = makeColor(c)
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	// Selection indicator
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Record levels
	LevelDebugStyle = lipgloss.NewStyle().Foreground(LevelDebugColor)
	LevelInfoStyle = lipgloss.NewStyle().Foreground(LevelInfoColor)
	LevelWarnStyle = lipgloss.NewStyle().Foreground(LevelWarnColor)
	LevelErrorStyle = lipgloss.NewStyle().Foreground(LevelErrorColor).Bold(true)

	// Scrollbar
	ScrollbarThumbStyle = lipgloss.NewStyle().Foreground(ScrollbarThumbColor)
	ScrollbarTrackStyle = lipgloss.NewStyle().Foreground(ScrollbarTrackColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
