// Package parse turns source files into top-level declarations using tree-sitter.
package parse

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/rsextract/internal/lang"
	"github.com/phobologic/rsextract/internal/model"
)

const maxSnippet = 60

// ParseError describes source text the grammar could not accept.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Snippet string
	Missing string // token the parser had to invent, if any
}

func (e *ParseError) Error() string {
	loc := fmt.Sprintf("%s:%d:%d", e.Path, e.Line, e.Column)
	if e.Missing != "" {
		return fmt.Sprintf("%s: syntax error: missing %q near %q", loc, e.Missing, e.Snippet)
	}
	return fmt.Sprintf("%s: syntax error near %q", loc, e.Snippet)
}

// Declarations parses source and returns its top-level declarations in
// source order. The parser must be created for l. filePath is only used in
// diagnostics.
func Declarations(ctx context.Context, l *lang.Language, parser *sitter.Parser, source []byte, filePath string) ([]model.Decl, error) {
	source = blankShebang(source)
	if len(bytes.TrimSpace(source)) == 0 {
		return nil, nil
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, diagnose(root, source, filePath)
	}

	var decls []model.Decl

	// attached collects outer context seen since the last item. Plain
	// comments interleaved with it are cut out.
	var attached strings.Builder
	pending := false
	spanStart := -1

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)

		if l.Attached(child, source) {
			pending = true
			if spanStart < 0 {
				spanStart = int(child.StartByte())
			}
			continue
		}
		if isComment(child) {
			if spanStart >= 0 {
				attached.Write(source[spanStart:child.StartByte()])
				spanStart = -1
			}
			continue
		}

		node := l.Unwrap(child)
		start := int(child.StartByte())
		if spanStart >= 0 {
			start = spanStart
		}
		var prefix string
		if pending {
			prefix = attached.String()
			attached.Reset()
			pending = false
		}
		spanStart = -1

		decl := model.Decl{
			Variant: l.VariantOf(node),
			Line:    int(node.StartPoint().Row) + 1,
			Source:  prefix + string(source[start:child.EndByte()]),
		}
		if decl.Variant != model.Other {
			if name := node.ChildByFieldName("name"); name != nil {
				decl.Ident = lang.NodeText(name, source)
			}
		}
		decls = append(decls, decl)
	}

	return decls, nil
}

// blankShebang replaces a leading `#!` interpreter line with spaces so byte
// offsets and line numbers are unchanged. `#![` opens an inner attribute
// and is left alone.
func blankShebang(source []byte) []byte {
	if !bytes.HasPrefix(source, []byte("#!")) {
		return source
	}
	end := bytes.IndexByte(source, '\n')
	if end < 0 {
		end = len(source)
	}
	if bytes.HasPrefix(bytes.TrimLeft(source[2:end], " \t"), []byte("[")) {
		return source
	}
	out := bytes.Clone(source)
	for i := 0; i < end; i++ {
		if out[i] != '\r' {
			out[i] = ' '
		}
	}
	return out
}

func isComment(node *sitter.Node) bool {
	t := node.Type()
	return t == "line_comment" || t == "block_comment"
}

func diagnose(root *sitter.Node, source []byte, filePath string) *ParseError {
	bad := firstError(root)
	if bad == nil {
		bad = root
	}
	pos := bad.StartPoint()
	pe := &ParseError{
		Path:    filePath,
		Line:    int(pos.Row) + 1,
		Column:  int(pos.Column) + 1,
		Snippet: lineSnippet(source, int(bad.StartByte())),
	}
	if bad.IsMissing() {
		pe.Missing = bad.Type()
	}
	return pe
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsMissing() || n.Type() == "ERROR" {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.HasError() && !c.IsMissing() {
			continue
		}
		if e := firstError(c); e != nil {
			return e
		}
	}
	return nil
}

func lineSnippet(source []byte, offset int) string {
	if offset > len(source) {
		offset = len(source)
	}
	start := bytes.LastIndexByte(source[:offset], '\n') + 1
	end := bytes.IndexByte(source[offset:], '\n')
	if end < 0 {
		end = len(source)
	} else {
		end += offset
	}
	s := lang.CollapseWhitespace(string(source[start:end]))
	if len(s) > maxSnippet {
		s = s[:maxSnippet-3] + "..."
	}
	return s
}
