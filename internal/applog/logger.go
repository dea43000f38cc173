// Package applog builds the zap logger shared by the whole program.
package applog

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a sugared logger. Debug builds log everything to stderr
// with coloured levels; otherwise info and above is written in console
// encoding.
func NewLogger(debug bool) (*zap.SugaredLogger, error) {
	logger, err := Config(debug).Build()
	if err != nil {
		return nil, fmt.Errorf("create zap logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Config returns the zap configuration used by NewLogger.
func Config(debug bool) zap.Config {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.OutputPaths = []string{"stderr"}
		cfg.Sampling = nil
	}

	cfg.EncoderConfig.EncodeCaller = nil
	cfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	cfg.EncoderConfig.EncodeName = func(s string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(fmt.Sprintf("%-12s", s))
	}
	return cfg
}
