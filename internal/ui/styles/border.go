// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderWithTitleBorder renders content with a title embedded in the top border.
// Similar to lazygit's panel style: ╭─ Title ─────╮
// titleColor is used for the title text, focusedBorderColor is used for the border when focused.
func RenderWithTitleBorder(content, title string, width, height int, focused bool, titleColor, focusedBorderColor lipgloss.TerminalColor) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = focusedBorderColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	// Inner width excludes the two border columns
	innerWidth := max(width-2, 1)

	topBorder := buildTopBorder(title, innerWidth, borderStyle, titleStyle)
	bottomBorder := borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)

	contentHeight := max(height-2, 1)

	// Use lipgloss to constrain content width (handles wrapping/truncation properly)
	contentStyle := lipgloss.NewStyle().Width(innerWidth).Height(contentHeight)
	constrainedContent := contentStyle.Render(content)

	contentLines := strings.Split(constrainedContent, "\n")
	paddedLines := make([]string, contentHeight)

	for i := 0; i < contentHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}

		// Pad line to innerWidth so the right border aligns
		lineWidth := lipgloss.Width(line)
		if lineWidth < innerWidth {
			line = line + strings.Repeat(" ", innerWidth-lineWidth)
		}

		paddedLines[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var result strings.Builder
	result.WriteString(topBorder)
	result.WriteString("\n")
	result.WriteString(strings.Join(paddedLines, "\n"))
	result.WriteString("\n")
	result.WriteString(bottomBorder)

	return result.String()
}

// buildTopBorder creates the top border with embedded title.
// borderStyle is used for border characters, titleStyle for the title text.
func buildTopBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if innerWidth < 1 {
		return borderStyle.Render(borderTopLeft + borderTopRight)
	}

	// Empty title renders a plain top border
	if title == "" {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	// Title needs at least "─ " before and " ─" after
	const titlePartMinWidth = 4
	if innerWidth < titlePartMinWidth {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	availableForTitle := innerWidth - titlePartMinWidth
	displayTitle := title
	if lipgloss.Width(displayTitle) > availableForTitle {
		displayTitle = TruncateString(displayTitle, availableForTitle)
	}

	// Inner: "─ " (2) + title + " " (1) + dashes = innerWidth
	titleTextWidth := lipgloss.Width(displayTitle)
	remainingWidth := max(innerWidth-3-titleTextWidth, 0)

	// Build: ╭─ Title ──────╮
	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(displayTitle) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, remainingWidth)+borderTopRight)
}
