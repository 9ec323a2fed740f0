// Package logging builds the process zap logger and adapts it to the
// calculation engine's Logger interface.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rgehrsitz/drivefit/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap logger based on configuration and an optional level override
func New(cfg config.LoggingConfig, levelOverride string) (*zap.Logger, error) {
	level := cfg.Level
	if levelOverride != "" {
		level = levelOverride
	}
	if level == "" {
		level = "info"
	}

	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	format := cfg.Format
	if format == "" {
		format = "json"
	}

	var zc zap.Config
	switch format {
	case "console":
		zc = zap.NewDevelopmentConfig()
	case "json":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zc.Level = zap.NewAtomicLevelAt(zapLevel)

	if cfg.OutputFile != "" {
		if dir := filepath.Dir(cfg.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		file, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", cfg.OutputFile, err)
		}
		_ = file.Close()

		zc.OutputPaths = []string{cfg.OutputFile}
		zc.ErrorOutputPaths = []string{cfg.OutputFile}
	}

	return zc.Build()
}

// ParseLevel maps a level name to a zap level
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// SugarAdapter satisfies calculation.Logger with a sugared zap logger
type SugarAdapter struct {
	sugar *zap.SugaredLogger
}

// NewSugarAdapter wraps logger, tagging every line with the given op
func NewSugarAdapter(logger *zap.Logger, op string) *SugarAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SugarAdapter{sugar: logger.With(zap.String("op", op)).Sugar()}
}

func (a *SugarAdapter) Debugf(format string, args ...any) { a.sugar.Debugf(format, args...) }
func (a *SugarAdapter) Infof(format string, args ...any)  { a.sugar.Infof(format, args...) }
func (a *SugarAdapter) Warnf(format string, args ...any)  { a.sugar.Warnf(format, args...) }
func (a *SugarAdapter) Errorf(format string, args ...any) { a.sugar.Errorf(format, args...) }
