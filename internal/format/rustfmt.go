package format

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const defaultRustfmtTimeout = 10 * time.Second

// RustfmtFormatter pipes source through an external rustfmt binary.
type RustfmtFormatter struct {
	Path    string
	Edition string
	Timeout time.Duration
}

// NewRustfmt creates a formatter running the rustfmt binary at path.
func NewRustfmt(path, edition string) *RustfmtFormatter {
	return &RustfmtFormatter{Path: path, Edition: edition, Timeout: defaultRustfmtTimeout}
}

// Format runs rustfmt with src on stdin and returns its stdout.
func (r *RustfmtFormatter) Format(ctx context.Context, src []byte) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultRustfmtTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{"--emit", "stdout"}
	if r.Edition != "" {
		args = append(args, "--edition", r.Edition)
	}

	cmd := exec.CommandContext(ctx, r.Path, args...)
	cmd.Stdin = bytes.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("rustfmt: %w", err)
		}
		return nil, fmt.Errorf("rustfmt: %w: %s", err, msg)
	}
	return stdout.Bytes(), nil
}
