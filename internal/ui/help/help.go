// Package help contains the keybinding help overlay.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/longview/internal/keys"
	"github.com/zjrosen/longview/internal/ui/overlay"
	"github.com/zjrosen/longview/internal/ui/styles"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(11)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextDescriptionColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	width  int
	height int
}

// New creates a new help view over the default keymap.
func New() Model {
	return Model{
		keys: keys.DefaultKeyMap(),
	}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help overlay (standalone, no background).
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, helpBox, background)
}

// renderContent builds the help box content.
func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	var navCol strings.Builder
	navCol.WriteString(sectionStyle.Render("Navigation"))
	navCol.WriteString("\n")
	navCol.WriteString(renderBinding(m.keys.Up))
	navCol.WriteString(renderBinding(m.keys.Down))
	navCol.WriteString(renderBinding(m.keys.HalfUp))
	navCol.WriteString(renderBinding(m.keys.HalfDown))
	navCol.WriteString(renderBinding(m.keys.PageUp))
	navCol.WriteString(renderBinding(m.keys.PageDown))

	var jumpCol strings.Builder
	jumpCol.WriteString(sectionStyle.Render("Jumps"))
	jumpCol.WriteString("\n")
	jumpCol.WriteString(renderBinding(m.keys.Top))
	jumpCol.WriteString(renderBinding(m.keys.Bottom))
	jumpCol.WriteString(renderBinding(m.keys.Jump))

	var actionsCol strings.Builder
	actionsCol.WriteString(sectionStyle.Render("Actions"))
	actionsCol.WriteString("\n")
	actionsCol.WriteString(renderBinding(m.keys.Refresh))
	actionsCol.WriteString(renderBinding(m.keys.Yank))
	actionsCol.WriteString(renderBinding(m.keys.ToggleScrollbar))
	actionsCol.WriteString(renderBinding(m.keys.ToggleLogs))

	var generalCol strings.Builder
	generalCol.WriteString(sectionStyle.Render("General"))
	generalCol.WriteString("\n")
	generalCol.WriteString(renderBinding(m.keys.Help))
	generalCol.WriteString(renderBinding(m.keys.ToggleStatus))
	generalCol.WriteString(renderBinding(m.keys.Escape))
	generalCol.WriteString(renderBinding(m.keys.Quit))

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(navCol.String()),
		columnStyle.Render(jumpCol.String()),
		columnStyle.Render(actionsCol.String()),
		generalCol.String(),
	)

	columnsWidth := lipgloss.Width(columns)
	boxWidth := columnsWidth + 4

	body := contentStyle.Render(columns + "\n" + footerStyle.Render("Press ? or Esc to close"))

	boxHeight := lipgloss.Height(body) + 2
	return styles.RenderWithTitleBorder(body, "Keybindings", boxWidth+2, boxHeight, false,
		styles.OverlayTitleColor, styles.OverlayBorderColor)
}

func renderBinding(b key.Binding) string {
	help := b.Help()
	return keyStyle.Render(help.Key) + descStyle.Render(help.Desc) + "\n"
}
