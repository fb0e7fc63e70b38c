// Package log provides structured logging for longview. Entries are
// written as timestamped key=value lines to a log file, kept in a bounded
// in-memory buffer for the debug overlay, and published over a pubsub
// broker so the UI can stream them live. Logging is enabled via the
// --debug flag or the LONGVIEW_DEBUG environment variable.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/zjrosen/longview/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatVirt    Category = "virt"    // Virtualization engine: ledger, ranges, layout
	CatScroll  Category = "scroll"  // Scroll controller and scroll-to-index
	CatDB      Category = "db"      // Record store operations
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // File watcher events
	CatUI      Category = "ui"      // Viewer and overlay updates
	CatCache   Category = "cache"   // Render cache operations
	CatTrace   Category = "trace"   // Tracing provider lifecycle
)

// bufferCap bounds the in-memory entry buffer consumed by the log overlay.
const bufferCap = 2000

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
	buffer   []string
	broker   *pubsub.Broker[string]
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the global logger writing to path. Returns a cleanup
// function that closes the log file.
func Init(path string) (func(), error) {
	var initErr error
	once.Do(func() {
		defaultLogger, initErr = newLogger(path)
	})
	if initErr != nil {
		return nil, initErr
	}
	if defaultLogger == nil {
		return nil, fmt.Errorf("logger initialization failed or already attempted")
	}
	return func() {
		if defaultLogger != nil && defaultLogger.file != nil {
			_ = defaultLogger.file.Close()
		}
	}, nil
}

func newLogger(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G304: path is user-controlled debug log path
	if err != nil {
		return nil, err
	}

	return &Logger{
		file:     f,
		writer:   f,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}, nil
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.enabled = enabled
		defaultLogger.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.minLevel = level
		defaultLogger.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

// GetRecentLogs returns up to n of the most recent buffered entries,
// oldest first.
func GetRecentLogs(n int) []string {
	if defaultLogger == nil || n <= 0 {
		return nil
	}
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	buf := defaultLogger.buffer
	if len(buf) > n {
		buf = buf[len(buf)-n:]
	}
	out := make([]string, len(buf))
	copy(out, buf)
	return out
}

// ClearBuffer empties the in-memory entry buffer.
func ClearBuffer() {
	if defaultLogger == nil {
		return
	}
	defaultLogger.mu.Lock()
	defaultLogger.buffer = nil
	defaultLogger.mu.Unlock()
}

func log(level Level, cat Category, msg string, fields ...any) {
	if defaultLogger == nil || !defaultLogger.enabled {
		return
	}
	if level < defaultLogger.minLevel {
		return
	}

	defaultLogger.mu.Lock()

	// Format: 2026-08-31T10:45:00 [DEBUG] [virt] message key=value
	timestamp := time.Now().Format("2006-01-02T15:04:05")
	entry := fmt.Sprintf("%s [%s] [%s] %s", timestamp, level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}

	if defaultLogger.writer != nil {
		_, _ = defaultLogger.writer.Write([]byte(entry + "\n"))
	}

	defaultLogger.buffer = append(defaultLogger.buffer, entry)
	if len(defaultLogger.buffer) > bufferCap {
		defaultLogger.buffer = defaultLogger.buffer[len(defaultLogger.buffer)-bufferCap:]
	}
	broker := defaultLogger.broker
	defaultLogger.mu.Unlock()

	if broker != nil {
		broker.Publish(pubsub.CreatedEvent, entry)
	}
}

// LogEvent is a pubsub event containing a formatted log entry.
type LogEvent = pubsub.Event[string]

// Broker returns the log event broker, or nil before Init.
func Broker() *pubsub.Broker[string] {
	if defaultLogger == nil {
		return nil
	}
	return defaultLogger.broker
}
