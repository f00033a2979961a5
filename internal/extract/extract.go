package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phobologic/rsextract/internal/format"
	"github.com/phobologic/rsextract/internal/lang"
	"github.com/phobologic/rsextract/internal/model"
	"github.com/phobologic/rsextract/internal/parse"
)

// MacroWarning accompanies every rendered macro: the formatter does not
// guarantee that a macro body round-trips to valid standalone source.
const MacroWarning = "output might be mangled"

var errNoFormatter = errors.New("no formatter configured")

// Rendered is one declaration rendered as a standalone source file.
type Rendered struct {
	Kind    model.Kind
	Name    string
	Text    string
	Warning string
}

// Extractor runs listing and extraction requests. It keeps no state
// between requests; every call parses its own source.
type Extractor struct {
	lang      *lang.Language
	formatter format.Formatter
	logger    *slog.Logger
}

// New creates an Extractor. f may be nil when only listing. A nil logger
// discards log output.
func New(l *lang.Language, f format.Formatter, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{lang: l, formatter: f, logger: logger}
}

// Declarations parses source into its top-level declarations.
func (e *Extractor) Declarations(ctx context.Context, source []byte, path string) ([]model.Decl, error) {
	decls, err := parse.Declarations(ctx, e.lang, e.lang.NewParser(), source, path)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("parsed source", "path", path, "bytes", len(source), "declarations", len(decls))
	return decls, nil
}

// List returns the catalog of source.
func (e *Extractor) List(ctx context.Context, source []byte, path string) (*model.Catalog, error) {
	decls, err := e.Declarations(ctx, source, path)
	if err != nil {
		return nil, err
	}
	return &model.Catalog{File: path, Entries: BuildCatalog(decls)}, nil
}

// Extract locates the first declaration of the given kind and name and
// renders it. A missing declaration yields a *NotFoundError.
func (e *Extractor) Extract(ctx context.Context, source []byte, path string, kind model.Kind, name string) (*Rendered, error) {
	decls, err := e.Declarations(ctx, source, path)
	if err != nil {
		return nil, err
	}
	d, ok := Locate(decls, kind, name)
	if !ok {
		e.logger.Debug("item not found", "kind", kind, "name", name)
		return nil, &NotFoundError{Kind: kind, Name: name}
	}
	e.logger.Debug("item located", "kind", kind, "name", name, "line", d.Line)
	return e.Render(ctx, d)
}

// Render formats d on its own, as the only item of an otherwise empty file.
func (e *Extractor) Render(ctx context.Context, d model.Decl) (*Rendered, error) {
	entry, ok := Classify(d)
	if !ok {
		return nil, fmt.Errorf("cannot render unnamed %s declaration", d.Variant)
	}

	if e.formatter == nil {
		return nil, &RenderError{Kind: entry.Kind, Name: entry.Name, Err: errNoFormatter}
	}
	out, err := e.formatter.Format(ctx, synthesize(d))
	if err != nil {
		return nil, &RenderError{Kind: entry.Kind, Name: entry.Name, Err: err}
	}

	r := &Rendered{Kind: entry.Kind, Name: entry.Name, Text: string(out)}
	if entry.Kind == model.KindMacro {
		r.Warning = MacroWarning
		return r, nil
	}

	if err := e.verify(ctx, out, entry); err != nil {
		return nil, &RenderError{Kind: entry.Kind, Name: entry.Name, Err: err}
	}
	return r, nil
}

// synthesize builds a file holding only d: no inner attributes, no
// shebang, nothing from the surrounding file.
func synthesize(d model.Decl) []byte {
	return []byte(strings.TrimSpace(d.Source) + "\n")
}

// verify re-parses formatted output and checks it still holds exactly the
// one requested item.
func (e *Extractor) verify(ctx context.Context, out []byte, want model.Entry) error {
	decls, err := parse.Declarations(ctx, e.lang, e.lang.NewParser(), out, "<rendered>")
	if err != nil {
		return fmt.Errorf("formatted output does not parse: %w", err)
	}
	entries := BuildCatalog(decls)
	if len(entries) != 1 || entries[0].Kind != want.Kind || entries[0].Name != want.Name {
		return fmt.Errorf("formatted output holds %d items, want only %s %s", len(entries), want.Kind, want.Name)
	}
	return nil
}
