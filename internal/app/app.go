// Package app contains the root application model.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/longview/internal/config"
	"github.com/zjrosen/longview/internal/flags"
	"github.com/zjrosen/longview/internal/keys"
	"github.com/zjrosen/longview/internal/log"
	"github.com/zjrosen/longview/internal/pubsub"
	"github.com/zjrosen/longview/internal/records"
	"github.com/zjrosen/longview/internal/ui/logoverlay"
	"github.com/zjrosen/longview/internal/ui/toaster"
	"github.com/zjrosen/longview/internal/ui/viewer"
	"github.com/zjrosen/longview/internal/watcher"
)

// toastDuration is how long a status toast stays on screen.
const toastDuration = 3 * time.Second

// dbChangedMsg reports that the watched database file changed on disk.
type dbChangedMsg struct{}

// Options configure the application model.
type Options struct {
	Repo   records.Repository
	Config config.Config
	DBPath string
	Tracer trace.Tracer
}

// Model is the root application state. It owns the record viewer, the
// toaster, the debug log overlay, and the database watcher, and routes
// messages between them.
type Model struct {
	viewer  viewer.Model
	toaster toaster.Model
	keys    keys.KeyMap

	width  int
	height int

	debugMode   bool
	logOverlay  logoverlay.Model
	logCancel   context.CancelFunc
	logListener *pubsub.ContinuousListener[string]

	watcherHandle *watcher.Watcher
	watchCh       <-chan struct{}
}

// New creates the application model. The watcher is started when
// auto-refresh is configured and a database path is known; watcher init
// failures are ignored because the viewer works fine without auto-refresh.
func New(opts Options) Model {
	var (
		watcherHandle *watcher.Watcher
		watchCh       <-chan struct{}
	)
	if opts.Config.AutoRefresh && opts.DBPath != "" {
		if w, err := watcher.New(watcher.DefaultConfig(opts.DBPath)); err == nil {
			if ch, err := w.Start(); err == nil {
				watcherHandle = w
				watchCh = ch
			} else {
				_ = w.Stop()
			}
		}
	}

	debugMode := opts.Config.UI.Debug
	var (
		logCancel   context.CancelFunc
		logListener *pubsub.ContinuousListener[string]
	)
	if debugMode {
		var ctx context.Context
		ctx, logCancel = context.WithCancel(context.Background())
		logListener = pubsub.NewContinuousListener(ctx, log.Broker())
	}

	return Model{
		viewer: viewer.New(viewer.Options{
			Repo:      opts.Repo,
			Config:    opts.Config,
			Clipboard: viewer.SystemClipboard{},
			Tracer:    opts.Tracer,
			Flags:     flags.New(opts.Config.Flags),
		}),
		toaster:       toaster.New(),
		keys:          keys.DefaultKeyMap(),
		debugMode:     debugMode,
		logOverlay:    logoverlay.New(),
		logCancel:     logCancel,
		logListener:   logListener,
		watcherHandle: watcherHandle,
		watchCh:       watchCh,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.viewer.Init()}
	if m.watchCh != nil {
		cmds = append(cmds, watchCmd(m.watchCh))
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.debugMode && key.Matches(msg, m.keys.ToggleLogs) {
			m.logOverlay.Toggle()
			return m, nil
		}
		// A visible log overlay takes precedence for key input.
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}
		if key.Matches(msg, m.keys.Quit) {
			m.shutdown()
		}
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(msg)
		return m, cmd

	case log.LogEvent:
		m.logOverlay.Refresh()
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
		return m, nil

	case dbChangedMsg:
		log.Info(log.CatWatcher, "Database changed, reloading collection")
		var reloadCmd tea.Cmd
		m.viewer, reloadCmd = m.viewer.Reload()
		m.toaster = m.toaster.Show("collection changed, reloading", toaster.StyleInfo)
		return m, tea.Batch(reloadCmd, toaster.ScheduleDismiss(toastDuration), watchCmd(m.watchCh))

	case viewer.StatusMsg:
		style := toaster.StyleSuccess
		if msg.IsError {
			style = toaster.StyleError
		}
		m.toaster = m.toaster.Show(msg.Text, style)
		return m, toaster.ScheduleDismiss(toastDuration)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Hide()
		return m, nil

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil
	}

	// Everything else belongs to the viewer: frame ticks, chunk steps,
	// engine events, load results.
	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	content := m.viewer.View()
	content = m.logOverlay.Overlay(content)
	return m.toaster.Overlay(content, m.width, m.height)
}

// shutdown releases everything the model holds before the program exits.
func (m Model) shutdown() {
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			log.Warn(log.CatWatcher, "Stopping watcher failed", "error", err)
		}
	}
	if m.logCancel != nil {
		m.logCancel()
	}
}

// watchCmd blocks on the watcher's change channel and surfaces the next
// change as a message. The caller re-issues it after each delivery.
func watchCmd(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return dbChangedMsg{}
	}
}
