// Package logging builds the zap logger used across the application.
package logging

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-beans/framework/config"
)

// New creates a logger for env: production settings when env is
// "production", development settings otherwise.
//
//	logger, err := logging.New(cfg.Log, cfg.App.Env)
func New(cfg config.LogConfig, env string) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if env == "production" {
		zc = zap.NewProductionConfig()
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create logger")
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	if cfg.Format != "" {
		zc.Encoding = cfg.Format
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}
	return logger, nil
}
