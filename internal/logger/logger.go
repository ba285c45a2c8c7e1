// Package logger is the client's diagnostic log. The TUI owns the terminal,
// so records go to axamine.log under the log dir and never to stdout; in
// debug mode chat requests and replies are also dumped as JSON files under
// DumpDir for replaying a conversation against the backend.
package logger

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	global     *log.Logger
	globalOnce sync.Once
	globalFile *os.File
)

// Init routes the package logger to dir/axamine.log. An empty dir, or a file
// that cannot be opened, discards output instead of writing to the terminal.
func Init(dir string, debug bool) {
	globalOnce.Do(func() {
		opts := log.Options{Level: log.InfoLevel, ReportTimestamp: true, Prefix: "axamine"}
		if debug {
			opts.Level = log.DebugLevel
		}
		f, err := openLogFile(dir)
		if err != nil {
			global = log.NewWithOptions(discard{}, opts)
			return
		}
		globalFile = f
		global = log.NewWithOptions(f, opts)
	})
}

func openLogFile(dir string) (*os.File, error) {
	if dir == "" {
		return nil, os.ErrNotExist
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "axamine.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

func Close() error {
	if globalFile == nil {
		return nil
	}
	f := globalFile
	globalFile = nil
	return f.Close()
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func g() *log.Logger {
	if global == nil {
		return log.Default()
	}
	return global
}

func Debug(msg string, keyvals ...any) { g().Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { g().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { g().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { g().Error(msg, keyvals...) }

type Logger interface {
	WriteJSON(filename string, data []byte) error
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// FileLogger forwards to the package logger and dumps request payloads under dir.
type FileLogger struct {
	dir  string
	once sync.Once
}

func NewFileLogger(dir string) *FileLogger {
	return &FileLogger{dir: dir}
}

func (l *FileLogger) init() {
	l.once.Do(func() {
		os.MkdirAll(l.dir, 0755)
	})
}

func (l *FileLogger) WriteJSON(filename string, data []byte) error {
	l.init()
	return os.WriteFile(filepath.Join(l.dir, filename), data, 0644)
}

func (l *FileLogger) Debug(msg string, keyvals ...any) { Debug(msg, keyvals...) }
func (l *FileLogger) Info(msg string, keyvals ...any)  { Info(msg, keyvals...) }
func (l *FileLogger) Warn(msg string, keyvals ...any)  { Warn(msg, keyvals...) }
func (l *FileLogger) Error(msg string, keyvals ...any) { Error(msg, keyvals...) }

func DumpDir(logDir string) string {
	return filepath.Join(logDir, "dumps")
}

type nopLogger struct{}

func Nop() Logger                                { return nopLogger{} }
func (nopLogger) WriteJSON(string, []byte) error { return nil }
func (nopLogger) Debug(string, ...any)           {}
func (nopLogger) Info(string, ...any)            {}
func (nopLogger) Warn(string, ...any)            {}
func (nopLogger) Error(string, ...any)           {}
