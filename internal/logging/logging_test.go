package logging

import (
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		override string
		level    zapcore.Level
		wantErr  bool
	}{
		{name: "defaults", cfg: config.LoggingConfig{}, level: zapcore.InfoLevel},
		{name: "console debug", cfg: config.LoggingConfig{Level: "debug", Format: "console"}, level: zapcore.DebugLevel},
		{name: "override wins", cfg: config.LoggingConfig{Level: "debug"}, override: "error", level: zapcore.ErrorLevel},
		{name: "warning alias", cfg: config.LoggingConfig{Level: "warning"}, level: zapcore.WarnLevel},
		{name: "bad level", cfg: config.LoggingConfig{Level: "loud"}, wantErr: true},
		{name: "bad format", cfg: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.override)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			if tt.level > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.level-1))
			}
		})
	}
}

func TestNewWithOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "drivefit.log")
	logger, err := New(config.LoggingConfig{OutputFile: path}, "")
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()
	assert.FileExists(t, path)
}

func TestSugarAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var engineLogger calculation.Logger = NewSugarAdapter(zap.New(core), "engine")

	engineLogger.Debugf("scored %d vehicles", 22)
	engineLogger.Infof("info")
	engineLogger.Warnf("unknown vehicle %q", "civic")
	engineLogger.Errorf("boom")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "scored 22 vehicles", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, `unknown vehicle "civic"`, entries[2].Message)
	assert.Equal(t, "engine", entries[3].ContextMap()["op"])
}

func TestSugarAdapterNilLogger(t *testing.T) {
	assert.NotPanics(t, func() { NewSugarAdapter(nil, "x").Infof("quiet") })
}
