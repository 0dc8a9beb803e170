// Package logger provides a file-backed zap logger for topctl. A TUI owns
// the terminal, so all diagnostics go to the configured log file; before
// Init (or when disabled) the logger is a nop.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global = zap.NewNop()

// Init builds the global logger writing JSON lines to file at the given
// level (debug, info, warn, error).
func Init(level, file string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{file}
	cfg.ErrorOutputPaths = []string{file}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	global = logger
	return nil
}

// L returns the global logger.
func L() *zap.Logger {
	return global
}

// Sync flushes buffered entries. Safe to call on the nop logger.
func Sync() {
	_ = global.Sync()
}
