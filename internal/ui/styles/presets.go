// Package styles contains Lip Gloss style definitions.
package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the stock longview color scheme.
// Color values mirror the styles.go AdaptiveColor definitions (Dark values).
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default longview theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenTextDescription: "#999999",

		// Borders
		TokenBorderDefault:   "#696969",
		TokenBorderHighlight: "#54A0FF",

		// Status indicators
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		// Selection
		TokenSelectionIndicator: "#FFFFFF",

		// Overlays
		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",

		// Toast notifications
		TokenToastSuccess: "#73F59F",
		TokenToastError:   "#FF8787",
		TokenToastInfo:    "#54A0FF",
		TokenToastWarn:    "#FECA57",

		// Record levels
		TokenLevelDebug: "#666666",
		TokenLevelInfo:  "#54A0FF",
		TokenLevelWarn:  "#FECA57",
		TokenLevelError: "#FF8787",

		// Scrollbar
		TokenScrollbarThumb: "#8C8C8C",
		TokenScrollbarTrack: "#3A3A3A",

		// Misc
		TokenSpinner: "#FFFFFF",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#CDD6F4", // text
		TokenTextSecondary:   "#BAC2DE", // subtext1
		TokenTextMuted:       "#6C7086", // overlay0
		TokenTextDescription: "#A6ADC8", // subtext0

		// Borders
		TokenBorderDefault:   "#45475A", // surface1
		TokenBorderHighlight: "#89B4FA", // blue

		// Status indicators
		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		// Selection
		TokenSelectionIndicator: "#F5E0DC", // rosewater

		// Overlays
		TokenOverlayTitle:  "#CDD6F4", // text
		TokenOverlayBorder: "#585B70", // surface2

		// Toast notifications
		TokenToastSuccess: "#A6E3A1", // green
		TokenToastError:   "#F38BA8", // red
		TokenToastInfo:    "#89B4FA", // blue
		TokenToastWarn:    "#F9E2AF", // yellow

		// Record levels
		TokenLevelDebug: "#6C7086", // overlay0
		TokenLevelInfo:  "#89B4FA", // blue
		TokenLevelWarn:  "#F9E2AF", // yellow
		TokenLevelError: "#F38BA8", // red

		// Scrollbar
		TokenScrollbarThumb: "#585B70", // surface2
		TokenScrollbarTrack: "#313244", // surface0

		// Misc
		TokenSpinner: "#CBA6F7", // mauve
	},
}

// NordPreset is the Nord theme - an arctic, north-bluish palette.
// Colors from: https://www.nordtheme.com
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#ECEFF4", // snow storm 3
		TokenTextSecondary:   "#E5E9F0", // snow storm 2
		TokenTextMuted:       "#4C566A", // polar night 4
		TokenTextDescription: "#D8DEE9", // snow storm 1

		// Borders
		TokenBorderDefault:   "#434C5E", // polar night 3
		TokenBorderHighlight: "#88C0D0", // frost 2

		// Status indicators
		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusWarning: "#EBCB8B", // aurora yellow
		TokenStatusError:   "#BF616A", // aurora red

		// Selection
		TokenSelectionIndicator: "#ECEFF4", // snow storm 3

		// Overlays
		TokenOverlayTitle:  "#ECEFF4", // snow storm 3
		TokenOverlayBorder: "#4C566A", // polar night 4

		// Toast notifications
		TokenToastSuccess: "#A3BE8C", // aurora green
		TokenToastError:   "#BF616A", // aurora red
		TokenToastInfo:    "#88C0D0", // frost 2
		TokenToastWarn:    "#EBCB8B", // aurora yellow

		// Record levels
		TokenLevelDebug: "#4C566A", // polar night 4
		TokenLevelInfo:  "#81A1C1", // frost 3
		TokenLevelWarn:  "#EBCB8B", // aurora yellow
		TokenLevelError: "#BF616A", // aurora red

		// Scrollbar
		TokenScrollbarThumb: "#4C566A", // polar night 4
		TokenScrollbarTrack: "#3B4252", // polar night 2

		// Misc
		TokenSpinner: "#88C0D0", // frost 2
	},
}

// HighContrastPreset maximizes legibility on low-quality displays.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast - maximum legibility",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#FFFFFF",
		TokenTextSecondary:   "#FFFFFF",
		TokenTextMuted:       "#AAAAAA",
		TokenTextDescription: "#EEEEEE",

		// Borders
		TokenBorderDefault:   "#FFFFFF",
		TokenBorderHighlight: "#00FFFF",

		// Status indicators
		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		// Selection
		TokenSelectionIndicator: "#FFFF00",

		// Overlays
		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",

		// Toast notifications
		TokenToastSuccess: "#00FF00",
		TokenToastError:   "#FF0000",
		TokenToastInfo:    "#00FFFF",
		TokenToastWarn:    "#FFFF00",

		// Record levels
		TokenLevelDebug: "#AAAAAA",
		TokenLevelInfo:  "#00FFFF",
		TokenLevelWarn:  "#FFFF00",
		TokenLevelError: "#FF0000",

		// Scrollbar
		TokenScrollbarThumb: "#FFFFFF",
		TokenScrollbarTrack: "#555555",

		// Misc
		TokenSpinner: "#FFFFFF",
	},
}
