package viewer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/longview/internal/cachemanager"
	"github.com/zjrosen/longview/internal/records"
	"github.com/zjrosen/longview/internal/ui/styles"
)

// bodyIndent is the left indentation for wrapped body lines.
const bodyIndent = "  "

// rowKey identifies one rendered row: record identity plus the width it was
// rendered at. Width changes produce distinct keys, so a resize renders
// fresh lines without flushing the old ones.
type rowKey string

func keyFor(rec records.Record, width int) rowKey {
	return rowKey(fmt.Sprintf("%s:%d", rec.ID, width))
}

// Renderer turns records into styled terminal lines, caching the result per
// record and width. Row height is the line count of the rendered output, so
// the engine's measurements and the painted rows always agree.
type Renderer struct {
	cache *cachemanager.InMemoryCacheManager[rowKey, []string]
	ttl   time.Duration
}

// NewRenderer creates a renderer whose cache expires entries after ttl and
// sweeps them at cleanup intervals. Non-positive durations fall back to the
// cache manager defaults.
func NewRenderer(ttl, cleanup time.Duration) *Renderer {
	if ttl <= 0 {
		ttl = cachemanager.DefaultExpiration
	}
	if cleanup <= 0 {
		cleanup = cachemanager.DefaultCleanupInterval
	}
	return &Renderer{
		cache: cachemanager.NewInMemoryCacheManager[rowKey, []string]("row-render", ttl, cleanup),
		ttl:   ttl,
	}
}

// Lines returns the rendered lines for rec at the given width.
func (r *Renderer) Lines(rec records.Record, width int) []string {
	if width <= 0 {
		return nil
	}
	ctx := context.Background()
	key := keyFor(rec, width)
	if lines, ok := r.cache.Get(ctx, key); ok {
		return lines
	}
	lines := renderRecord(rec, width)
	r.cache.Set(ctx, key, lines, r.ttl)
	return lines
}

// Height returns the rendered line count for rec at the given width.
func (r *Renderer) Height(rec records.Record, width int) int {
	return len(r.Lines(rec, width))
}

// Invalidate drops every cached row. Call on theme changes and collection
// reloads; stale styling is worse than a cold cache.
func (r *Renderer) Invalidate() {
	_ = r.cache.Flush(context.Background())
}

// CachedRows returns the number of rows currently cached.
func (r *Renderer) CachedRows() int {
	return r.cache.Count()
}

// renderRecord builds the styled lines for one record: a header line with
// the level badge and title, then the body word-wrapped and indented.
func renderRecord(rec records.Record, width int) []string {
	badge := levelStyle(rec.Level).Render(levelBadge(rec.Level))
	title := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Render(rec.Title)
	head := ansi.Truncate(badge+" "+title, width, "…")

	lines := []string{head}

	body := strings.TrimRight(rec.Body, "\n")
	if body == "" {
		return lines
	}

	bodyWidth := width - len(bodyIndent)
	if bodyWidth < 1 {
		bodyWidth = 1
	}
	bodyStyle := lipgloss.NewStyle().Foreground(styles.TextDescriptionColor)
	for _, line := range strings.Split(wordwrap.String(body, bodyWidth), "\n") {
		// wordwrap never splits a word longer than the width; hard-cut those.
		line = runewidth.Truncate(line, bodyWidth, "…")
		lines = append(lines, bodyIndent+bodyStyle.Render(line))
	}
	return lines
}

// levelBadge returns the fixed-width tag shown before the title.
func levelBadge(l records.Level) string {
	return fmt.Sprintf("%-5s", strings.ToUpper(string(l)))
}

func levelStyle(l records.Level) lipgloss.Style {
	switch l {
	case records.LevelError:
		return styles.LevelErrorStyle
	case records.LevelWarn:
		return styles.LevelWarnStyle
	case records.LevelDebug:
		return styles.LevelDebugStyle
	default:
		return styles.LevelInfoStyle
	}
}
