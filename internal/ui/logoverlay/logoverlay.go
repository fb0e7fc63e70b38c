// Package logoverlay provides an in-app log viewer overlay that shows
// recent log entries without leaving the TUI.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/longview/internal/log"
	"github.com/zjrosen/longview/internal/ui/overlay"
	"github.com/zjrosen/longview/internal/ui/styles"
)

const (
	viewportMaxHeight = 25  // Fixed viewport height in lines
	viewportMinHeight = 5   // Minimum viewport height for very small screens
	boxMaxWidth       = 160 // Maximum box width in characters
	boxMinWidth       = 40  // Minimum box width in characters
)

// CloseMsg is sent when the overlay should be closed.
type CloseMsg struct{}

// Model is the log overlay component state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates a new log overlay model.
func New() Model {
	return Model{
		visible:  false,
		minLevel: log.LevelDebug,
	}
}

// NewWithSize creates a new log overlay with the given dimensions.
func NewWithSize(width, height int) Model {
	return Model{
		visible:  false,
		minLevel: log.LevelDebug,
		width:    width,
		height:   height,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the log overlay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			// Clear buffer
			log.ClearBuffer()
			m.refreshViewport()
			return m, nil

		case "d":
			// Filter to DEBUG and above
			m.minLevel = log.LevelDebug
			m.refreshViewport()
			return m, nil

		case "i":
			// Filter to INFO and above
			m.minLevel = log.LevelInfo
			m.refreshViewport()
			return m, nil

		case "w":
			// Filter to WARN and above
			m.minLevel = log.LevelWarn
			m.refreshViewport()
			return m, nil

		case "e":
			// Filter to ERROR only
			m.minLevel = log.LevelError
			m.refreshViewport()
			return m, nil

		case "j", "down":
			m.viewport.ScrollDown(1)
			return m, nil

		case "k", "up":
			m.viewport.ScrollUp(1)
			return m, nil

		case "g":
			m.viewport.GotoTop()
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			return m, nil

		case "ctrl+c":
			// Quit the app
			return m, tea.Quit

		case "ctrl+g", "esc":
			// Close overlay
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshViewport()
	}

	return m, nil
}

// View renders the log overlay content.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	boxWidth := m.boxWidth()

	dividerStyle := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor)
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	content := m.viewport.View()
	filterHint := m.buildFilterHint()

	var result strings.Builder
	result.WriteString(content)
	result.WriteString("\n")
	result.WriteString(divider)
	result.WriteString("\n")
	result.WriteString(filterHint)

	body := result.String()
	boxHeight := lipgloss.Height(body) + 2
	return styles.RenderWithTitleBorder(body, "Logs", boxWidth+2, boxHeight, false,
		styles.OverlayTitleColor, styles.OverlayBorderColor)
}

// getFilteredLogs returns log entries matching the current filter level.
func (m Model) getFilteredLogs() []string {
	// Get all logs (pass large number to get entire buffer)
	logs := log.GetRecentLogs(10000)
	var filtered []string
	for _, entry := range logs {
		if m.matchesLevel(entry) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// buildLogContent builds the log content string for display.
func (m Model) buildLogContent(contentWidth int) string {
	filtered := m.getFilteredLogs()

	if len(filtered) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true)
		return emptyStyle.Render("No logs to display")
	}

	var lines []string
	for _, entry := range filtered {
		lines = append(lines, m.colorizeEntry(entry, contentWidth))
	}
	return strings.Join(lines, "\n")
}

// refreshViewport initializes or updates the viewport with current log content.
func (m *Model) refreshViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}

	contentWidth := m.contentWidth()

	// Fixed 25-line height, constrained by screen size.
	// Header (2 lines), footer (2 lines), borders (2 lines) = 6 lines overhead.
	maxAllowed := m.height - 6
	viewportHeight := min(viewportMaxHeight, maxAllowed)
	viewportHeight = max(viewportHeight, viewportMinHeight)

	m.viewport = viewport.New(contentWidth, viewportHeight)
	m.viewport.SetContent(m.buildLogContent(contentWidth))
}

// Overlay renders the log overlay centered on the given background.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	fg := m.View()
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, fg, bg)
}

// Visible returns whether the overlay is currently visible.
func (m Model) Visible() bool {
	return m.visible
}

// boxWidth returns the calculated box width based on screen size.
func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

// contentWidth returns the content width (box width minus borders).
func (m Model) contentWidth() int {
	return m.boxWidth() - 2
}

// Toggle toggles the overlay visibility.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refreshViewport()
	}
}

// Show makes the overlay visible.
func (m *Model) Show() {
	m.visible = true
	m.refreshViewport()
}

// Hide makes the overlay invisible.
func (m *Model) Hide() {
	m.visible = false
}

// Refresh re-reads the log buffer into the viewport. Hosts call this when
// new entries arrive while the overlay is open.
func (m *Model) Refresh() {
	if m.visible {
		m.refreshViewport()
	}
}

// SetSize updates the overlay's knowledge of viewport size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refreshViewport()
}

// entryLevel determines the severity of a formatted log line.
// The second return value is false for lines with no recognizable tag.
func entryLevel(entry string) (log.Level, bool) {
	switch {
	case strings.Contains(entry, "[ERROR]"):
		return log.LevelError, true
	case strings.Contains(entry, "[WARN]"):
		return log.LevelWarn, true
	case strings.Contains(entry, "[INFO]"):
		return log.LevelInfo, true
	case strings.Contains(entry, "[DEBUG]"):
		return log.LevelDebug, true
	default:
		return log.LevelDebug, false
	}
}

// matchesLevel checks if a log entry matches the current filter level.
// Levels are ordered DEBUG(0) < INFO(1) < WARN(2) < ERROR(3); the filter
// shows entries at or above minLevel. Unknown entries are always shown.
func (m Model) matchesLevel(entry string) bool {
	level, ok := entryLevel(entry)
	if !ok {
		return true
	}
	return level >= m.minLevel
}

// colorizeEntry applies color to a log entry based on its level.
func (m Model) colorizeEntry(entry string, maxWidth int) string {
	entry = strings.TrimSuffix(entry, "\n")

	// Truncate long entries using ANSI-aware truncation (handles UTF-8 correctly)
	if ansi.StringWidth(entry) > maxWidth {
		entry = ansi.Truncate(entry, maxWidth-3, "...")
	}

	var color lipgloss.TerminalColor = styles.TextPrimaryColor
	if level, ok := entryLevel(entry); ok {
		switch level {
		case log.LevelError:
			color = styles.StatusErrorColor
		case log.LevelWarn:
			color = styles.StatusWarningColor
		case log.LevelInfo:
			color = styles.ToastBorderInfoColor
		case log.LevelDebug:
			color = styles.TextMutedColor
		}
	}

	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

// buildFilterHint creates the footer hint showing filter options.
// The active filter level is highlighted with bold styling.
func (m Model) buildFilterHint() string {
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	activeStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimaryColor).
		Bold(true)

	filters := []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	}

	hints := []string{hintStyle.Render("[c] Clear")}
	for _, f := range filters {
		if m.minLevel == f.level {
			hints = append(hints, activeStyle.Render(f.label))
		} else {
			hints = append(hints, hintStyle.Render(f.label))
		}
	}

	return strings.Join(hints, "  ")
}
