// Package logging provides categorized diagnostic logging for zettel.
// All output goes through zap; user-facing messages never travel this path,
// they are printed by the commands themselves.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a subsystem for log filtering.
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config resolution
	CategoryGraph  Category = "graph"  // Store operations (nodes, refs, links)
	CategoryScan   Category = "scan"   // Notes directory scanning and watching
	CategoryPicker Category = "picker" // Prompt sessions and overrides
	CategorySearch Category = "search" // External search invocations
	CategoryCLI    Category = "cli"    // Command dispatch
)

var (
	mu   sync.RWMutex
	root *zap.SugaredLogger
)

// Initialize builds the process logger. level is one of debug/info/warn/error;
// file, when non-empty, redirects output there instead of stderr.
// Safe to call more than once; the last call wins.
func Initialize(level, file string) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	if file != "" {
		cfg.OutputPaths = []string{file}
		cfg.ErrorOutputPaths = []string{file}
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	mu.Lock()
	root = logger.Sugar()
	mu.Unlock()
	return nil
}

// Get returns the logger for a category. Before Initialize it returns a
// no-op logger so packages can log unconditionally.
func Get(cat Category) *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	if root == nil {
		return zap.NewNop().Sugar()
	}
	return root.Named(string(cat))
}

// Sync flushes buffered log entries. Called from PersistentPostRun.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if root != nil {
		_ = root.Sync()
	}
}
