package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv overrides the log level when no flag is given.
const LevelEnv = "WOLOFBRIDGE_LOG_LEVEL"

// Options configures New.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	Path   string // file path; "-" or "" means stderr
}

// New builds a zap logger. The terminal belongs to the UI, so the TUI passes
// a file path.
func New(opts Options) (*zap.Logger, error) {
	levelStr := opts.Level
	if levelStr == "" {
		levelStr = os.Getenv(LevelEnv)
	}
	level, err := ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true

	output := "stderr"
	if opts.Path != "" && opts.Path != "-" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		output = opts.Path
	}
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{output}

	return cfg.Build()
}

// ParseLevel maps a level name to a zap level; empty means info.
func ParseLevel(levelStr string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", levelStr)
}
