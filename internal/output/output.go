// Package output prints catalogs and rendered items to the terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/phobologic/rsextract/internal/extract"
	"github.com/phobologic/rsextract/internal/model"
	"github.com/phobologic/rsextract/internal/toon"
)

// kindWidth is the column the kind label is right-aligned to.
const kindWidth = 12

// Printer writes command results to stdout and diagnostics to stderr.
type Printer struct {
	stdout io.Writer
	stderr io.Writer

	kind lipgloss.Style
	name lipgloss.Style
	warn lipgloss.Style
}

// NewPrinter creates a Printer. Without color every style renders plain text.
func NewPrinter(stdout, stderr io.Writer, color bool) *Printer {
	out := lipgloss.NewRenderer(stdout)
	errOut := lipgloss.NewRenderer(stderr)
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI
	}
	out.SetColorProfile(profile)
	errOut.SetColorProfile(profile)

	return &Printer{
		stdout: stdout,
		stderr: stderr,
		kind:   out.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		name:   out.NewStyle().Foreground(lipgloss.Color("5")),
		warn:   errOut.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	}
}

// ColorEnabled resolves a color mode (auto, always, never) for w. Auto
// colors terminals unless NO_COLOR is set.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Catalog prints one line per entry: the kind right-aligned, then the name.
func (p *Printer) Catalog(c *model.Catalog) error {
	if _, err := fmt.Fprintln(p.stdout, "Listing items:"); err != nil {
		return err
	}
	for _, e := range c.Entries {
		kind := p.kind.Render(fmt.Sprintf("%*s", kindWidth, e.Kind))
		if _, err := fmt.Fprintf(p.stdout, "%s %s\n", kind, p.name.Render(e.Name)); err != nil {
			return err
		}
	}
	return nil
}

// CatalogTOON prints the catalog in TOON format.
func (p *Printer) CatalogTOON(c *model.Catalog) error {
	_, err := fmt.Fprintln(p.stdout, toon.Encode(c))
	return err
}

// Rendered prints the rendered text unchanged. A warning, if any, goes to
// stderr.
func (p *Printer) Rendered(r *extract.Rendered) error {
	if r.Warning != "" {
		p.Warn(fmt.Sprintf("%s %s: %s", r.Kind, r.Name, r.Warning))
	}
	_, err := io.WriteString(p.stdout, r.Text)
	return err
}

// Warn prints a warning line on stderr.
func (p *Printer) Warn(msg string) {
	_, _ = fmt.Fprintf(p.stderr, "%s %s\n", p.warn.Render("warning:"), msg)
}
