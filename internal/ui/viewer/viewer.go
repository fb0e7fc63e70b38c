// Package viewer contains the record collection view, the Bubble Tea host
// for the virtualization engine. It owns the scroll port, feeds the engine
// viewport and measurement inputs, and renders only the mounted range.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/longview/internal/config"
	"github.com/zjrosen/longview/internal/flags"
	"github.com/zjrosen/longview/internal/keys"
	"github.com/zjrosen/longview/internal/log"
	"github.com/zjrosen/longview/internal/pubsub"
	"github.com/zjrosen/longview/internal/records"
	"github.com/zjrosen/longview/internal/tracing"
	"github.com/zjrosen/longview/internal/ui/help"
	"github.com/zjrosen/longview/internal/ui/styles"
	"github.com/zjrosen/longview/internal/virt"
)

// framePeriod is the spacing of frame ticks while scroll samples or
// animations are pending. Roughly 60fps.
const framePeriod = 16 * time.Millisecond

// frameMsg drives one paint: queued frame callbacks flush and smooth-scroll
// animations advance.
type frameMsg struct{}

// settleMsg triggers one bottom-anchored init verification pass.
type settleMsg struct{}

// chunkStepMsg runs the next queued chunk of the progressive load.
type chunkStepMsg struct{}

// countLoadedMsg carries the collection size read from the repository.
type countLoadedMsg struct {
	total int
	err   error
}

// StatusMsg asks the host to surface a transient notification.
type StatusMsg struct {
	Text    string
	IsError bool
}

// loadState is the progressive load's shared state. It lives behind a
// pointer so the chunk closures and every copy of the model see the same
// records and error.
type loadState struct {
	recs []records.Record
	err  error
}

// Options configure a viewer model.
type Options struct {
	Repo      records.Repository
	Config    config.Config
	Clipboard Clipboard
	Tracer    trace.Tracer
	Flags     *flags.Registry
}

// Model is the record viewer component.
type Model struct {
	repo     records.Repository
	engine   *virt.Virtualizer
	port     *Port
	renderer *Renderer
	frames   *callbackQueue
	chunks   *callbackQueue
	load     *loadState
	clip     Clipboard
	tracer   trace.Tracer
	cfg      config.Config
	flags    *flags.Registry
	mode     virt.Mode

	keys     keys.KeyMap
	jumpKeys keys.JumpKeyMap
	help     help.Model

	width  int
	height int

	jumping bool
	jumpBuf string

	showHelp      bool
	showScrollbar bool
	showStatus    bool

	framePending bool

	listener *pubsub.ContinuousListener[virt.Snapshot]
	cancel   context.CancelFunc

	err error
}

// New creates a viewer over the given repository.
func New(opts Options) Model {
	frames := &callbackQueue{}
	engineCfg := opts.Config.Virt.EngineConfig(opts.Config.UI.Debug)
	// The bottom-anchored layout stays behind a feature flag until the
	// settle pass has seen more terminals.
	if engineCfg.Mode == virt.ModeBottomToTop && !opts.Flags.Enabled(flags.FlagBottomAnchor) {
		engineCfg.Mode = virt.ModeTopToBottom
	}
	engine := virt.New(engineCfg, frames.Schedule)

	ctx, cancel := context.WithCancel(context.Background())
	cacheCfg := opts.Config.Cache
	return Model{
		repo:          opts.Repo,
		engine:        engine,
		port:          NewPort(),
		renderer:      NewRenderer(time.Duration(cacheCfg.TTLSeconds)*time.Second, time.Duration(cacheCfg.CleanupSeconds)*time.Second),
		frames:        frames,
		chunks:        &callbackQueue{},
		load:          &loadState{},
		clip:          opts.Clipboard,
		tracer:        opts.Tracer,
		cfg:           opts.Config,
		flags:         opts.Flags,
		mode:          engineCfg.Mode,
		keys:          keys.DefaultKeyMap(),
		jumpKeys:      keys.DefaultJumpKeyMap(),
		help:          help.New(),
		showScrollbar: opts.Config.UI.ShowScrollbar,
		showStatus:    opts.Config.UI.ShowStatusBar,
		listener:      pubsub.NewContinuousListener(ctx, engine.Broker()),
		cancel:        cancel,
	}
}

// Init starts the collection load and the engine event listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCountCmd(), m.listener.Listen())
}

// Close releases the engine and the event subscription. Mandatory on
// shutdown; the engine's debounce timer would otherwise keep firing.
func (m Model) Close() {
	m.cancel()
	m.engine.Close()
}

// Update handles messages for the viewer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.engine.SetViewportHeight(float64(m.contentHeight()))
		m.syncPortMax()
		return m, m.maybeStartBottomInit()

	case countLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			log.ErrorErr(log.CatDB, "Counting records failed", msg.err)
			return m, nil
		}
		return m.resetCollection(msg.total)

	case chunkStepMsg:
		if m.chunks.RunOne() {
			m.syncPortMax()
		}
		if m.chunks.Pending() {
			return m, chunkCmd()
		}
		return m, nil

	case frameMsg:
		m.framePending = false
		m.frames.Flush()
		if m.port.Step() {
			m.engine.SampleScroll(m.port.Offset())
			return m, m.requestFrame()
		}
		if m.frames.Pending() {
			return m, m.requestFrame()
		}
		return m, nil

	case settleMsg:
		if !m.engine.VerifyBottomInit(m.port) {
			return m, settleCmd()
		}
		return m, nil

	case pubsub.Event[virt.Snapshot]:
		switch msg.Type {
		case virt.EventRangeStable:
			m.measureVisible()
			m.syncPortMax()
		case virt.EventSnapshot:
			log.Debug(log.CatVirt, "snapshot",
				"start", msg.Payload.Start, "end", msg.Payload.End,
				"total", msg.Payload.TotalItems, "avg", msg.Payload.AvgHeight)
		}
		return m, m.listener.Listen()

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.jumping {
		return m.updateJump(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.showHelp = false
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.scrollBy(-1)

	case key.Matches(msg, m.keys.Down):
		return m.scrollBy(1)

	case key.Matches(msg, m.keys.HalfUp):
		return m.scrollBy(-float64(m.contentHeight()) / 2)

	case key.Matches(msg, m.keys.HalfDown):
		return m.scrollBy(float64(m.contentHeight()) / 2)

	case key.Matches(msg, m.keys.PageUp):
		return m.scrollBy(-float64(m.contentHeight()))

	case key.Matches(msg, m.keys.PageDown):
		return m.scrollBy(float64(m.contentHeight()))

	case key.Matches(msg, m.keys.Top):
		return m.jumpTo(0, virt.AlignTop, false)

	case key.Matches(msg, m.keys.Bottom):
		return m.jumpTo(m.engine.TotalItems()-1, virt.AlignBottom, false)

	case key.Matches(msg, m.keys.Jump):
		m.jumping = true
		m.jumpBuf = ""
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadCountCmd()

	case key.Matches(msg, m.keys.Yank):
		return m.yank()

	case key.Matches(msg, m.keys.ToggleScrollbar):
		m.showScrollbar = !m.showScrollbar
		m.engine.SetViewportHeight(float64(m.contentHeight()))
		return m, nil

	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatus = !m.showStatus
		m.engine.SetViewportHeight(float64(m.contentHeight()))
		m.syncPortMax()
		return m, nil
	}

	return m, nil
}

func (m Model) updateJump(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.jumpKeys.Cancel):
		m.jumping = false
		m.jumpBuf = ""
		return m, nil

	case key.Matches(msg, m.jumpKeys.Execute):
		m.jumping = false
		buf := m.jumpBuf
		m.jumpBuf = ""
		n, err := strconv.Atoi(buf)
		if err != nil {
			return m, nil
		}
		// Jump input is the 1-based record number shown in the status bar.
		return m.jumpTo(n-1, virt.AlignAuto, true)
	}

	switch msg.String() {
	case "backspace":
		if len(m.jumpBuf) > 0 {
			m.jumpBuf = m.jumpBuf[:len(m.jumpBuf)-1]
		}
	default:
		if len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9' {
			m.jumpBuf += string(msg.Runes)
		}
	}
	return m, nil
}

// scrollBy moves the port and samples the new offset into the engine's frame
// coalescer. The commit lands on the next frame tick.
func (m Model) scrollBy(delta float64) (Model, tea.Cmd) {
	m.port.ScrollBy(delta)
	m.engine.SampleScroll(m.port.Offset())
	return m, m.requestFrame()
}

// jumpTo scrolls to a record by index. strict makes out-of-range targets an
// error surfaced as a status message; otherwise they clamp.
func (m Model) jumpTo(index int, align virt.Alignment, strict bool) (Model, tea.Cmd) {
	span := m.startSpan(tracing.SpanScrollToIndex,
		attribute.Int(tracing.AttrScrollTarget, index),
		attribute.Int(tracing.AttrTotalItems, m.engine.TotalItems()),
	)
	defer span.End()

	smooth := m.cfg.Virt.SmoothScroll
	opts := virt.ScrollOptions{
		SmoothScroll:        &smooth,
		ShouldThrowOnBounds: strict,
		Align:               align,
	}
	target, err := m.engine.ScrollToIndex(index, opts, m.port)
	if err != nil {
		var oor *virt.OutOfRangeError
		if errors.As(err, &oor) {
			span.AddEvent(tracing.EventTargetClamped)
			text := fmt.Sprintf("record %s out of range (1-%s)",
				styles.FormatCount(index+1), styles.FormatCount(oor.TotalItems))
			return m, statusCmd(text, true)
		}
		return m, statusCmd(err.Error(), true)
	}
	span.SetAttributes(attribute.Float64(tracing.AttrScrollOffset, target))
	return m, m.requestFrame()
}

// yank copies the topmost visible record's ID to the clipboard.
func (m Model) yank() (Model, tea.Cmd) {
	if m.clip == nil || len(m.load.recs) == 0 {
		return m, nil
	}
	idx, _ := m.firstVisible(m.engine.Layout())
	if idx < 0 || idx >= len(m.load.recs) {
		return m, nil
	}
	rec := m.load.recs[idx]
	if err := m.clip.Copy(rec.ID.String()); err != nil {
		log.ErrorErr(log.CatUI, "Clipboard copy failed", err)
		return m, statusCmd("clipboard copy failed", true)
	}
	return m, statusCmd("copied record ID", false)
}

// resetCollection replaces the viewed collection wholesale: engine reset,
// scroll back to origin, render cache flushed, progressive load restarted.
func (m Model) resetCollection(total int) (Model, tea.Cmd) {
	// Forcing through zero resets the engine even when the new collection
	// happens to have the same size as the old one.
	m.engine.SetTotalItems(0)
	m.engine.SetTotalItems(total)
	m.engine.SetViewportHeight(float64(m.contentHeight()))
	m.port.SetOffset(0)
	m.renderer.Invalidate()
	m.err = nil
	m.load = &loadState{recs: make([]records.Record, total)}
	// Dropping the old queue abandons any chunk continuations from a load
	// that was still in flight.
	m.chunks = &callbackQueue{}
	m.syncPortMax()

	log.Info(log.CatUI, "Collection reset", "total", total)

	span := m.startSpan(tracing.SpanChunkedInit,
		attribute.Int(tracing.AttrTotalItems, total),
		attribute.Int(tracing.AttrChunkSize, m.cfg.Virt.ChunkSize),
	)

	ls := m.load
	repo := m.repo
	m.engine.Populate(
		func(start, end int) {
			if ls.err != nil {
				return
			}
			recs, err := repo.GetRange(start, end)
			if err != nil {
				ls.err = fmt.Errorf("loading records [%d, %d): %w", start, end, err)
				log.ErrorErr(log.CatDB, "Chunk load failed", err, "start", start, "end", end)
				return
			}
			copy(ls.recs[start:end], recs)
		},
		m.chunks.Schedule,
		func() {
			span.SetAttributes(attribute.Int(tracing.AttrLoadedItems, total))
			span.End()
		},
	)

	cmds := []tea.Cmd{m.maybeStartBottomInit()}
	if m.chunks.Pending() {
		cmds = append(cmds, chunkCmd())
	}
	return m, tea.Batch(cmds...)
}

// measureVisible records heights for every unmeasured row in the mounted
// range. Runs on range-stable events, never per frame.
func (m Model) measureVisible() {
	layout := m.engine.Layout()
	w := m.contentWidth()
	if w <= 0 {
		return
	}
	ledger := m.engine.Ledger()
	for i := layout.Range.Start; i < layout.Range.End && i < len(m.load.recs); i++ {
		if ledger.Measured(i) {
			continue
		}
		m.engine.Measure(i, float64(m.renderer.Height(m.load.recs[i], w)))
	}
}

// maybeStartBottomInit begins the bottom-anchored placement once the
// viewport height and a non-empty collection are both known. Forward mode
// needs none.
func (m Model) maybeStartBottomInit() tea.Cmd {
	if m.mode != virt.ModeBottomToTop || m.engine.Initialized() {
		return nil
	}
	if m.engine.StartBottomInit(m.port) {
		return settleCmd()
	}
	return nil
}

// syncPortMax re-clamps the port against the current content extent.
func (m Model) syncPortMax() {
	layout := m.engine.Layout()
	m.port.SetMax(layout.ContentExtent - float64(m.contentHeight()))
}

// requestFrame schedules one frame tick, deduplicating within the model.
func (m *Model) requestFrame() tea.Cmd {
	if m.framePending {
		return nil
	}
	m.framePending = true
	return tea.Tick(framePeriod, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m Model) loadCountCmd() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		total, err := repo.Count()
		return countLoadedMsg{total: total, err: err}
	}
}

// startSpan starts a tracing span, degrading to a non-recording span when no
// tracer was supplied.
func (m Model) startSpan(name string, attrs ...attribute.KeyValue) trace.Span {
	ctx := context.Background()
	if m.tracer == nil {
		return trace.SpanFromContext(ctx)
	}
	_, span := m.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return span
}

func chunkCmd() tea.Cmd {
	return func() tea.Msg { return chunkStepMsg{} }
}

func settleCmd() tea.Cmd {
	return tea.Tick(virt.SettleDelay, func(time.Time) tea.Msg { return settleMsg{} })
}

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text, IsError: isErr} }
}

// Reload re-reads the collection from the repository. Hosts call this when
// the backing database changed out from under the viewer.
func (m Model) Reload() (Model, tea.Cmd) {
	return m, m.loadCountCmd()
}

// Loading reports whether the progressive load is still running.
func (m Model) Loading() bool {
	return m.engine.TotalItems() > 0 && m.engine.Processed() < m.engine.TotalItems()
}

// Err returns the sticky load error, if any.
func (m Model) Err() error {
	if m.err != nil {
		return m.err
	}
	return m.load.err
}

// contentHeight is the row count available to records.
func (m Model) contentHeight() int {
	h := m.height
	if m.showStatus {
		h--
	}
	return max(h, 0)
}

// contentWidth is the column count available to records.
func (m Model) contentWidth() int {
	w := m.width
	if m.showScrollbar {
		w--
	}
	return max(w, 0)
}
