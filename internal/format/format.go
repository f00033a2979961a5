// Package format renders a small source file into canonically indented text.
package format

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// Formatter names accepted by New.
const (
	Auto    = "auto"
	Rustfmt = "rustfmt"
	Builtin = "builtin"
)

// Formatter turns a source file into formatted source. Output is a
// deterministic function of the input.
type Formatter interface {
	Format(ctx context.Context, src []byte) ([]byte, error)
}

// Options configures New.
type Options struct {
	Name        string // Auto, Rustfmt or Builtin
	RustfmtPath string
	Edition     string
	Logger      *slog.Logger
}

// New returns the formatter selected by opts.Name. Auto prefers rustfmt
// when it can be found and falls back to the builtin formatter.
func New(opts Options) (Formatter, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch opts.Name {
	case Builtin:
		logger.Debug("formatter selected", "formatter", Builtin)
		return NewBuiltin(), nil
	case Rustfmt:
		path, err := exec.LookPath(opts.RustfmtPath)
		if err != nil {
			return nil, fmt.Errorf("rustfmt formatter: %w", err)
		}
		logger.Debug("formatter selected", "formatter", Rustfmt, "path", path)
		return NewRustfmt(path, opts.Edition), nil
	case Auto, "":
		if path, err := exec.LookPath(opts.RustfmtPath); err == nil {
			logger.Debug("formatter selected", "formatter", Rustfmt, "path", path)
			return NewRustfmt(path, opts.Edition), nil
		}
		logger.Debug("formatter selected", "formatter", Builtin, "reason", "rustfmt not found")
		return NewBuiltin(), nil
	default:
		return nil, fmt.Errorf("unknown formatter %q", opts.Name)
	}
}
