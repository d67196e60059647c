// Package log writes leveled, categorized key=value lines to a debug log file.
// Logging is off unless the application is started with --debug or with
// RELEASEDESK_DEBUG set.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/releasedesk/internal/pubsub"
)

// EnvDebug enables debug logging when set to any non-empty value.
const EnvDebug = "RELEASEDESK_DEBUG"

// Level is a log severity.
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

// ParseLevel maps a level name (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelDebug, fmt.Errorf("unknown log level %q", s)
	}
}

// Category groups related log lines.
type Category string

const (
	CatRegistry Category = "registry" // release mutations and validation
	CatConfig   Category = "config"   // config load, save, reload
	CatWatcher  Category = "watcher"  // config file events
	CatUI       Category = "ui"       // Bubble Tea model updates
	CatCache    Category = "cache"
)

// Logger writes formatted lines to w and republishes them on a broker.
type Logger struct {
	mu       sync.Mutex
	w        io.Writer
	closer   io.Closer
	enabled  bool
	minLevel Level
	now      func() time.Time
	broker   *pubsub.Broker[string]
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

func current() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func install(l *Logger) func() {
	defaultMu.Lock()
	prev := defaultLogger
	defaultLogger = l
	defaultMu.Unlock()

	if prev != nil && prev.broker != nil {
		prev.broker.Close()
	}

	return func() {
		defaultMu.Lock()
		if defaultLogger == l {
			defaultLogger = nil
		}
		defaultMu.Unlock()
		l.broker.Close()
		if l.closer != nil {
			_ = l.closer.Close()
		}
	}
}

// Init opens path through tea.LogToFile and makes it the destination of
// package-level logging. The returned func closes the file.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return nil, fmt.Errorf("open debug log %s: %w", path, err)
	}
	l := newLogger(f)
	l.closer = f
	return install(l), nil
}

// InitWriter logs to w instead of a file. Used by tests.
func InitWriter(w io.Writer) func() {
	return install(newLogger(w))
}

func newLogger(w io.Writer) *Logger {
	return &Logger{
		w:        w,
		enabled:  true,
		minLevel: LevelDebug,
		now:      time.Now,
		broker:   pubsub.NewBroker[string](),
	}
}

// SetEnabled turns logging on or off without closing the destination.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops lines below level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields...) }
func Info(cat Category, msg string, fields ...any)  { write(LevelInfo, cat, msg, fields...) }
func Warn(cat Category, msg string, fields ...any)  { write(LevelWarn, cat, msg, fields...) }
func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields...) }

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	line := formatLine(l.now(), level, cat, msg, fields)
	if l.w != nil {
		_, _ = io.WriteString(l.w, line)
	}
	l.broker.Publish(pubsub.CreatedEvent, line)
}

// formatLine renders one entry, e.g.
//
//	2025-06-15T10:45:00 [INFO] [registry] release created id=... version=v1.0
func formatLine(ts time.Time, level Level, cat Category, msg string, fields []any) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=<missing>", fields[len(fields)-1])
	}
	sb.WriteByte('\n')
	return sb.String()
}

// LogEvent is a published log line.
type LogEvent = pubsub.Event[string]

// LogListener delivers log lines to a Bubble Tea model.
type LogListener = pubsub.ContinuousListener[string]

// NewListener subscribes to log lines until ctx is cancelled. It returns nil
// when logging was never initialized.
func NewListener(ctx context.Context) *LogListener {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewContinuousListener[string](ctx, l.broker)
}
