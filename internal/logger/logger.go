// Package logger builds the zap logger used by the scheduler host.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/TudorHulban/printscheduler/internal/config"
)

func encoderConfig(development bool) zapcore.EncoderConfig {
	result := zap.NewProductionEncoderConfig()
	if development {
		result = zap.NewDevelopmentEncoderConfig()
	}

	result.EncodeLevel = zapcore.CapitalLevelEncoder
	result.EncodeTime = zapcore.ISO8601TimeEncoder
	result.EncodeDuration = zapcore.SecondsDurationEncoder
	result.EncodeCaller = zapcore.ShortCallerEncoder
	result.EncodeName = func(s string, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString("[" + s + "]")
	}

	return result
}

// Build writes to stderr, stdout carries command output.
func Build(cfg *config.Logger) (*zap.Logger, zap.AtomicLevel, error) {
	return BuildWithWriter(cfg, zapcore.Lock(os.Stderr))
}

func BuildWithWriter(cfg *config.Logger, w zapcore.WriteSyncer) (*zap.Logger, zap.AtomicLevel, error) {
	level, errLevel := zap.ParseAtomicLevel(cfg.Level)
	if errLevel != nil {
		return nil,
			zap.AtomicLevel{},
			errLevel
	}

	encoder := zapcore.NewJSONEncoder(encoderConfig(cfg.Development))
	if cfg.Encoding == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig(cfg.Development))
	}

	options := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		options = append(options, zap.Development())
	}

	return zap.New(zapcore.NewCore(encoder, w, level), options...),
		level,
		nil
}
