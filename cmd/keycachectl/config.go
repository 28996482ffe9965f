package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type envConfig struct {
	Keys          string `env:"KEYCACHE_KEYS"`
	RedisAddr     string `env:"KEYCACHE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisUsername string `env:"KEYCACHE_REDIS_USERNAME"`
	RedisPassword string `env:"KEYCACHE_REDIS_PASSWORD"`
	LogLevel      string `env:"KEYCACHE_LOG_LEVEL" envDefault:"warn"`
}

// newLogger builds a console logger on stderr at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("KEYCACHE_LOG_LEVEL: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	return cfg.Build()
}
