package viewer

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/longview/internal/flags"
	"github.com/zjrosen/longview/internal/ui/styles"
	"github.com/zjrosen/longview/internal/virt"
)

// View renders the viewer: the visible slice of the mounted range, an
// optional scrollbar column, and an optional status bar.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if err := m.Err(); err != nil {
		return styles.ErrorStyle.Render("error: " + err.Error())
	}

	content := m.renderContent()
	if m.showStatus {
		content += "\n" + m.renderStatusBar()
	}
	if m.showHelp {
		return m.help.Overlay(content)
	}
	return content
}

// renderContent paints the mounted range and slices out the visible rows.
// The mounted block is translated by the engine's transform offset; the
// port's position inside the block selects the first painted line.
func (m Model) renderContent() string {
	h := m.contentHeight()
	w := m.contentWidth()
	if h <= 0 || w <= 0 {
		return ""
	}

	layout := m.engine.Layout()

	var block []string
	for i := layout.Range.Start; i < layout.Range.End && i < len(m.load.recs); i++ {
		block = append(block, m.renderer.Lines(m.load.recs[i], w)...)
	}

	first := int(math.Round(m.port.Offset() - layout.TransformOffset))
	first = max(0, min(first, max(0, len(block)-h)))

	lines := make([]string, h)
	for row := range h {
		var line string
		if first+row < len(block) {
			line = block[first+row]
		}
		lines[row] = padLine(line, w)
	}

	content := strings.Join(lines, "\n")
	if m.showScrollbar {
		sb := RenderScrollbar(ScrollbarConfig{
			TotalLines:     int(layout.ContentExtent),
			ViewportHeight: h,
			ScrollOffset:   int(m.port.Offset()),
		})
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, sb)
	}
	return content
}

// renderStatusBar paints the single-row footer: the jump prompt while one is
// active, otherwise collection position and load progress.
func (m Model) renderStatusBar() string {
	w := m.width
	if m.jumping {
		prompt := ":" + m.jumpBuf
		return styles.StatusBarStyle.Width(w).Render("jump to record " + prompt)
	}

	total := m.engine.TotalItems()
	left := fmt.Sprintf("%s records", styles.FormatCount(total))
	if m.Loading() {
		left += fmt.Sprintf(" · loading %d%%", percent(m.engine.Processed(), total))
	}

	right := ""
	if total > 0 {
		idx, _ := m.firstVisible(m.engine.Layout())
		right = fmt.Sprintf("record %s · %d%%",
			styles.FormatCount(idx+1), scrollPercent(m.port))
	}
	if m.flags.Enabled(flags.FlagCacheStats) {
		right = fmt.Sprintf("%d cached · %s", m.renderer.CachedRows(), right)
	}

	gap := w - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.StatusBarStyle.Width(w).Render(left + strings.Repeat(" ", gap) + right)
}

// firstVisible walks the mounted block to find the record occupying the
// first visible line. Returns the record index and how many of its lines are
// hidden above the viewport.
func (m Model) firstVisible(layout virt.Layout) (index, hidden int) {
	w := m.contentWidth()
	first := int(math.Round(m.port.Offset() - layout.TransformOffset))
	if first < 0 {
		first = 0
	}

	line := 0
	for i := layout.Range.Start; i < layout.Range.End && i < len(m.load.recs); i++ {
		h := m.renderer.Height(m.load.recs[i], w)
		if line+h > first {
			return i, first - line
		}
		line += h
	}
	return layout.Range.Start, 0
}

// padLine truncates and pads a styled line to exactly width columns so the
// scrollbar column joins without drift.
func padLine(line string, width int) string {
	line = ansi.Truncate(line, width, "…")
	if pad := width - ansi.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}

// percent is integer progress with the usual 0/100 endpoints.
func percent(done, total int) int {
	if total <= 0 {
		return 100
	}
	return done * 100 / total
}

// scrollPercent maps the port position onto 0-100.
func scrollPercent(p *Port) int {
	if p.Max() <= 0 {
		return 100
	}
	return int(p.Offset() / p.Max() * 100)
}
