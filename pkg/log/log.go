package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a named component logger.
type Logger struct {
	name string
	std  *log.Logger
}

// writerHolder keeps the concrete type stored in the atomic.Value stable
// when switching between *os.File, *lumberjack.Logger and test buffers.
type writerHolder struct {
	w io.Writer
}

var (
	globalDebug atomic.Bool

	// map[string]*atomic.Bool
	componentDebug sync.Map

	// map[string]*Logger
	loggers sync.Map

	output atomic.Value // writerHolder

	fileMu sync.Mutex
	file   *lumberjack.Logger
)

func init() {
	output.Store(writerHolder{w: os.Stderr})
}

// Level names.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelDebug = "DEBUG"
)

// For returns the memoized logger for a component ("loader", "web"...).
func For(name string) *Logger {
	if name == "" {
		name = "apodview"
	}
	if l, ok := loggers.Load(name); ok {
		return l.(*Logger)
	}
	w := output.Load().(writerHolder).w
	l := &Logger{name: name, std: log.New(w, "", log.LstdFlags|log.Lmicroseconds)}
	actual, _ := loggers.LoadOrStore(name, l)
	return actual.(*Logger)
}

// SetGlobalDebug toggles debug output for every component.
func SetGlobalDebug(enabled bool) {
	globalDebug.Store(enabled)
}

// EnableDebugFor turns on debug output for one component.
func EnableDebugFor(name string) {
	if name == "" {
		return
	}
	v, _ := componentDebug.LoadOrStore(name, &atomic.Bool{})
	v.(*atomic.Bool).Store(true)
}

// DisableDebugFor turns off debug output for one component.
func DisableDebugFor(name string) {
	if v, ok := componentDebug.Load(name); ok {
		v.(*atomic.Bool).Store(false)
	}
}

// DebugEnabledFor reports whether debug output is on for name.
func DebugEnabledFor(name string) bool {
	if globalDebug.Load() {
		return true
	}
	if v, ok := componentDebug.Load(name); ok {
		return v.(*atomic.Bool).Load()
	}
	return false
}

// SetOutput routes all loggers, existing and future, to w.
func SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	output.Store(writerHolder{w: w})
	loggers.Range(func(_, v any) bool {
		v.(*Logger).std.SetOutput(w)
		return true
	})
}

// FileOptions configures the rotating log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	// Tee also writes to stderr.
	Tee bool
}

// SetupFile sends log output to a size-rotated file. An empty path is a
// no-op. Call CloseFile on shutdown.
func SetupFile(opts FileOptions) error {
	if opts.Path == "" {
		return nil
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxBackups < 0 {
		opts.MaxBackups = 0
	}

	lj := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		Compress:   true,
	}
	// Fail early on unwritable paths instead of on the first log line.
	if _, err := lj.Write(nil); err != nil {
		return fmt.Errorf("opening log file %s: %w", opts.Path, err)
	}

	fileMu.Lock()
	prev := file
	file = lj
	fileMu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}

	var w io.Writer = lj
	if opts.Tee {
		w = io.MultiWriter(os.Stderr, lj)
	}
	SetOutput(w)
	return nil
}

// CloseFile closes the rotating log file, if any, and restores stderr.
func CloseFile() error {
	fileMu.Lock()
	f := file
	file = nil
	fileMu.Unlock()
	if f == nil {
		return nil
	}
	SetOutput(os.Stderr)
	return f.Close()
}

func (l *Logger) prefix() string {
	return "[" + l.name + ">]"
}

func (l *Logger) emit(level, msg string) {
	l.std.Println(level + " " + l.prefix() + " " + msg)
}

// Name returns the component name.
func (l *Logger) Name() string { return l.name }

// Infof logs at INFO.
func (l *Logger) Infof(format string, args ...any) {
	l.emit(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf logs at WARN.
func (l *Logger) Warnf(format string, args ...any) {
	l.emit(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf logs at ERROR.
func (l *Logger) Errorf(format string, args ...any) {
	l.emit(LevelError, fmt.Sprintf(format, args...))
}

// Debugf logs at DEBUG when debug is enabled globally or for this component.
func (l *Logger) Debugf(format string, args ...any) {
	if !DebugEnabledFor(l.name) {
		return
	}
	l.emit(LevelDebug, fmt.Sprintf(format, args...))
}
