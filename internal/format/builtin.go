package format

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/rsextract/internal/lang"
)

const indentUnit = "    "

var errUnparseable = errors.New("input does not parse")

var (
	openers = map[string]bool{"{": true, "(": true, "[": true}
	closers = map[string]bool{"}": true, ")": true, "]": true}

	// atomic nodes are laid out as single tokens; rows they span past
	// their first are copied verbatim.
	atomic = map[string]bool{
		"string_literal":     true,
		"raw_string_literal": true,
		"char_literal":       true,
		"line_comment":       true,
		"block_comment":      true,
	}

	// endsStatement lists tokens after which the next line starts fresh
	// rather than continuing an expression.
	endsStatement = map[string]bool{
		"{": true, "}": true, "(": true, "[": true, "]": true,
		";": true, ",": true, "line_comment": true, "block_comment": true,
	}
)

// BuiltinFormatter reindents Rust source by bracket nesting using the
// tree-sitter grammar. It does not reflow lines.
type BuiltinFormatter struct {
	lang *lang.Language
}

// NewBuiltin creates the builtin formatter.
func NewBuiltin() *BuiltinFormatter {
	return &BuiltinFormatter{lang: lang.Languages["rust"]}
}

// Format reindents src with four spaces per bracket level, drops trailing
// whitespace and repeated blank lines, and ends the output with exactly one
// newline.
func (b *BuiltinFormatter) Format(ctx context.Context, src []byte) ([]byte, error) {
	tree, err := b.lang.NewParser().ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("builtin formatter: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("builtin formatter: %w", errUnparseable)
	}

	lines := strings.Split(string(src), "\n")
	l := &layout{rows: make([]row, len(lines))}
	l.walk(root)
	return []byte(l.emit(lines)), nil
}

type row struct {
	seen     bool
	verbatim bool
	keepTail bool // a verbatim span starts on this row
	indent   int
}

// layout indents each row one level past the row that opened its innermost
// bracket, so several brackets opened on one row add a single level.
type layout struct {
	rows []row
	open []int  // indent of the row holding each unclosed opener
	prev string // type of the last token laid out
}

func (l *layout) inner() int {
	if len(l.open) == 0 {
		return 0
	}
	return l.open[len(l.open)-1] + 1
}

func (l *layout) walk(n *sitter.Node) {
	if n.ChildCount() == 0 || atomic[n.Type()] {
		l.token(n)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		l.walk(n.Child(i))
	}
}

func (l *layout) token(n *sitter.Node) {
	if n.StartByte() == n.EndByte() {
		return
	}
	typ := n.Type()
	start, end := int(n.StartPoint().Row), int(n.EndPoint().Row)
	if end > start && n.EndPoint().Column == 0 {
		end--
	}
	if start >= len(l.rows) {
		return
	}

	r := &l.rows[start]
	if !r.seen {
		r.seen = true
		r.indent = l.inner()
		switch {
		case closers[typ]:
			r.indent--
		case continues(l.prev, typ):
			r.indent++
		}
	}
	if end > start {
		r.keepTail = true
	}
	for i := start + 1; i <= end && i < len(l.rows); i++ {
		l.rows[i].verbatim = true
	}

	switch {
	case openers[typ]:
		l.open = append(l.open, r.indent)
	case closers[typ] && len(l.open) > 0:
		l.open = l.open[:len(l.open)-1]
	}
	l.prev = typ
}

func (l *layout) emit(lines []string) string {
	var out []string
	blank := false

	for i, line := range lines {
		r := l.rows[i]
		if r.verbatim {
			out = append(out, strings.TrimRight(line, "\r"))
			blank = false
			continue
		}

		text := strings.TrimSpace(line)
		if r.keepTail {
			text = strings.TrimLeft(line, " \t")
		}
		if text == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}

		out = append(out, strings.Repeat(indentUnit, max(r.indent, 0))+text)
	}

	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

// continues reports whether a line opening with first continues the
// expression left open by a previous line ending in prevLast.
func continues(prevLast, first string) bool {
	if prevLast == "" || closers[first] || first == "{" || first == "where" {
		return false
	}
	return !endsStatement[prevLast]
}
