// Package log provides categorised structured logging for riceinspect.
//
// The TUI owns the terminal, so logging is disabled until Init points it at a
// file. All helpers are safe to call before Init; they discard output.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category tags a log line with the subsystem that produced it.
type Category string

const (
	CatConfig  Category = "config"
	CatAPI     Category = "api"
	CatHistory Category = "history"
	CatUI      Category = "ui"
	CatExport  Category = "export"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop().Sugar()
	level  = zap.NewAtomicLevelAt(zapcore.DebugLevel)
)

// Init directs log output to path and returns a cleanup function that flushes
// and closes the file. The file is created (with parent dirs) if missing and
// appended to otherwise.
func Init(path string) (func(), error) {
	return InitWithFormat(path, "console")
}

// InitWithFormat is Init with an explicit encoding: "json" or "console".
func InitWithFormat(path, format string) (func(), error) {
	if path == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	var encCfg zapcore.EncoderConfig
	var enc zapcore.Encoder
	if format == "json" {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(f), level)
	l := zap.New(core).Sugar()

	mu.Lock()
	logger = l
	mu.Unlock()

	cleanup := func() {
		_ = l.Sync()
		_ = f.Close()
		mu.Lock()
		logger = zap.NewNop().Sugar()
		mu.Unlock()
	}
	return cleanup, nil
}

// SetLevel changes the minimum level. Unknown names leave the level unchanged.
func SetLevel(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "info":
		level.SetLevel(zapcore.InfoLevel)
	case "warn":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	}
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func withCategory(cat Category, kv []any) []any {
	return append([]any{"category", string(cat)}, kv...)
}

// Debug logs at debug level. kv are alternating key/value pairs.
func Debug(cat Category, msg string, kv ...any) {
	current().Debugw(msg, withCategory(cat, kv)...)
}

// Info logs at info level.
func Info(cat Category, msg string, kv ...any) {
	current().Infow(msg, withCategory(cat, kv)...)
}

// Warn logs at warn level.
func Warn(cat Category, msg string, kv ...any) {
	current().Warnw(msg, withCategory(cat, kv)...)
}

// Error logs at error level.
func Error(cat Category, msg string, kv ...any) {
	current().Errorw(msg, withCategory(cat, kv)...)
}

// ErrorErr logs err at error level under the "error" key.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	current().Errorw(msg, withCategory(cat, append([]any{"error", err}, kv...))...)
}
