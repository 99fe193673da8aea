package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the TOML-file settings shared by all commands. Flags given on
// the command line take precedence over the file.
type Config struct {
	// Format is the default output format of the render command,
	// "dot" or "svg".
	Format string `toml:"format"`

	Certificate CertificateConfig `toml:"certificate"`
}

// CertificateConfig bounds the Kuratowski certificate search of check.
type CertificateConfig struct {
	// Limit caps the number of reported subdivisions; 0 keeps one per
	// obstruction, a negative value searches exhaustively.
	Limit int `toml:"limit"`

	// Bundles enables the rerouting search for extra subdivisions.
	Bundles bool `toml:"bundles"`
}

func defaultConfig() Config {
	return Config{Format: formatDOT}
}

// loadConfig reads the TOML file at path, or returns defaults when path is
// empty.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Format != formatDOT && cfg.Format != formatSVG {
		return cfg, fmt.Errorf("config %s: unknown format %q", path, cfg.Format)
	}
	return cfg, nil
}

// withConfig returns a new context with the resolved configuration attached.
func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the configuration from ctx, falling back to
// defaults.
func configFromContext(ctx context.Context) Config {
	if c, ok := ctx.Value(configKey).(Config); ok {
		return c
	}
	return defaultConfig()
}
