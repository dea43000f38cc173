package applog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfigLevels(t *testing.T) {
	tests := []struct {
		debug    bool
		level    zapcore.Level
		encoding string
	}{
		{debug: true, level: zapcore.DebugLevel, encoding: "console"},
		{debug: false, level: zapcore.InfoLevel, encoding: "console"},
	}
	for _, tt := range tests {
		cfg := Config(tt.debug)
		assert.Equal(t, tt.level, cfg.Level.Level(), "debug=%v", tt.debug)
		assert.Equal(t, tt.encoding, cfg.Encoding)
		assert.Nil(t, cfg.EncoderConfig.EncodeCaller)
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(false)
	require.NoError(t, err)
	logger.Named("test").Infow("hello", "key", 1)
	_ = logger.Sync()
}
