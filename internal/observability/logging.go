package observability

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hanzong05/kitapos-middleware/internal/config"
)

// ParseLevel maps a LOG_LEVEL value to a zap level, defaulting to info for
// anything unrecognized.
func ParseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.Set(strings.ToLower(strings.TrimSpace(s))); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// NewLogger builds the process-wide JSON logger. Timestamps are ISO8601 and
// every entry carries the caller, so lines from the request middleware and
// the alert subscribers can be traced back to their site.
func NewLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	encoderCfg := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "ts",
		NameKey:        "logger",
		CallerKey:      "caller",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(cfg.Level)),
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named("kitapos"), nil
}
