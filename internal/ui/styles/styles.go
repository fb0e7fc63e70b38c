// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Record seq, secondary info
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, footers
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // Record body text

	// Semantic color names - Border
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Success states
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Warnings
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors

	// Selection indicator color (used for ">" prefix on the focused row)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	// Toast notification colors
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}

	// Record level colors
	LevelDebugColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}
	LevelInfoColor  = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	LevelWarnColor  = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	LevelErrorColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Scrollbar colors
	ScrollbarThumbColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#8C8C8C"}
	ScrollbarTrackColor = lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#3A3A3A"}

	// Loading spinner color
	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFF"}

	// Selection indicator style (used for ">" prefix on the focused row)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Record level styles
	LevelDebugStyle = lipgloss.NewStyle().Foreground(LevelDebugColor)
	LevelInfoStyle  = lipgloss.NewStyle().Foreground(LevelInfoColor)
	LevelWarnStyle  = lipgloss.NewStyle().Foreground(LevelWarnColor)
	LevelErrorStyle = lipgloss.NewStyle().Foreground(LevelErrorColor).Bold(true)

	// Scrollbar styles
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
)
