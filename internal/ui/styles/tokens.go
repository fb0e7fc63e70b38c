// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextDescription ColorToken = "text.description"

	// Borders
	TokenBorderDefault   ColorToken = "border.default"
	TokenBorderHighlight ColorToken = "border.highlight"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator ColorToken = "selection.indicator"

	// Overlays
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	// Toast notifications
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastWarn    ColorToken = "toast.warn"

	// Record levels
	TokenLevelDebug ColorToken = "level.debug"
	TokenLevelInfo  ColorToken = "level.info"
	TokenLevelWarn  ColorToken = "level.warn"
	TokenLevelError ColorToken = "level.error"

	// Scrollbar
	TokenScrollbarThumb ColorToken = "scrollbar.thumb"
	TokenScrollbarTrack ColorToken = "scrollbar.track"

	// Misc
	TokenSpinner ColorToken = "spinner"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		// Text hierarchy
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenTextDescription,

		// Borders
		TokenBorderDefault,
		TokenBorderHighlight,

		// Status indicators
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		// Selection
		TokenSelectionIndicator,

		// Overlays
		TokenOverlayTitle,
		TokenOverlayBorder,

		// Toast notifications
		TokenToastSuccess,
		TokenToastError,
		TokenToastInfo,
		TokenToastWarn,

		// Record levels
		TokenLevelDebug,
		TokenLevelInfo,
		TokenLevelWarn,
		TokenLevelError,

		// Scrollbar
		TokenScrollbarThumb,
		TokenScrollbarTrack,

		// Misc
		TokenSpinner,
	}
}
