package config

import (
	"context"
	"log/slog"
)

type configKey struct{}

// NewContext returns ctx carrying cfg and logger for command handlers.
func NewContext(ctx context.Context, cfg *Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext retrieves the config from the command context, falling back
// to defaults when none was stored.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return Default()
}
