// Package logger owns the process-wide structured logger of pkdemo.
//
// Until Open succeeds every record goes to io.Discard, so library code and
// tests can call L() unconditionally.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// FileName is the log file created below <Root>/.pkdemo/logs.
const FileName = "pkdemo.log"

// Config selects where logs go and how verbose they are.
type Config struct {
	Root  string // output directory; logs land in <Root>/.pkdemo/logs
	Debug bool
}

// Dir returns the log directory for cfg.
func (cfg Config) Dir() string {
	root := cfg.Root
	if root == "" {
		root = "."
	}

	return filepath.Join(filepath.Clean(root), ".pkdemo", "logs")
}

var global atomic.Pointer[slog.Logger]

func init() { global.Store(discard()) }

// Log is an open log file installed as the global logger.
type Log struct {
	path string
	f    *os.File
}

// Open creates the log file for cfg and installs a JSON logger writing to
// it. Debug lowers the level to slog.LevelDebug and adds source positions.
func Open(cfg Config) (*Log, error) {
	dir := cfg.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo, ReplaceAttr: utcTime}
	if cfg.Debug {
		opts.Level, opts.AddSource = slog.LevelDebug, true
	}
	l := slog.New(slog.NewJSONHandler(f, opts))
	global.Store(l)
	l.Info("logger.opened", "path", path, "debug", cfg.Debug)

	return &Log{path: path, f: f}, nil
}

// Path returns the file the log writes to.
func (lg *Log) Path() string { return lg.path }

// Close restores the discard logger and closes the file. It is safe on a
// nil *Log and on repeated calls.
func (lg *Log) Close() error {
	if lg == nil || lg.f == nil {
		return nil
	}
	global.Store(discard())
	err := lg.f.Close()
	lg.f = nil

	return err
}

// L returns the current global logger.
func L() *slog.Logger { return global.Load() }

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	}

	return a
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
