// Package commands implements the procdata CLI commands.
package commands

import (
	"context"

	"github.com/datastack-labs/procdata/internal/config"
)

// configKey is used to store the loaded config in the command context.
type configKey struct{}

// WithConfig stores the config in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFrom retrieves the config from the context. Commands invoked
// outside the root command's PreRun get an empty config.
func ConfigFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}
