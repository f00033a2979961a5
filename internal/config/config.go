// Package config loads rsextract settings from defaults, environment
// variables and command-line flags.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RSEXTRACT_"

// Defaults.
const (
	DefaultFormatter   = "auto"
	DefaultRustfmtPath = "rustfmt"
	DefaultEdition     = "2021"
	DefaultColor       = "auto"
	DefaultFormat      = "text"
	DefaultMaxFileSize = 1_000_000 // 1 MB
)

// Config holds the resolved settings for one invocation.
type Config struct {
	Formatter   string `koanf:"formatter"`
	RustfmtPath string `koanf:"rustfmt_path"`
	Edition     string `koanf:"edition"`
	Color       string `koanf:"color"`
	Format      string `koanf:"format"`
	MaxFileSize int    `koanf:"max_file_size"`
	Verbose     bool   `koanf:"verbose"`
}

// flagKeys maps flag names whose config key differs from the flag name.
var flagKeys = map[string]string{
	"rustfmt": "rustfmt_path",
}

// Load resolves configuration. Precedence, highest first: flags that were
// set explicitly, RSEXTRACT_* environment variables, defaults.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"formatter":     DefaultFormatter,
		"rustfmt_path":  DefaultRustfmtPath,
		"edition":       DefaultEdition,
		"color":         DefaultColor,
		"format":        DefaultFormat,
		"max_file_size": DefaultMaxFileSize,
		"verbose":       false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// RSEXTRACT_MAX_FILE_SIZE -> max_file_size
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[key]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown choices and unusable limits.
func (c *Config) Validate() error {
	if err := oneOf("formatter", c.Formatter, "auto", "rustfmt", "builtin"); err != nil {
		return err
	}
	if err := oneOf("color", c.Color, "auto", "always", "never"); err != nil {
		return err
	}
	if err := oneOf("format", c.Format, "text", "toon"); err != nil {
		return err
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("invalid max_file_size %d: must be positive", c.MaxFileSize)
	}
	if c.RustfmtPath == "" {
		return fmt.Errorf("rustfmt_path must not be empty")
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q: must be one of %s", key, value, strings.Join(allowed, ", "))
}

// NewLogger returns the process logger: text records on w, debug level
// when verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
