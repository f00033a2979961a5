// Package lang provides a language registry mapping file extensions to
// tree-sitter grammars and their top-level declaration tables.
package lang

import (
	"regexp"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/rsextract/internal/model"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Language holds tree-sitter configuration for a supported language.
type Language struct {
	Name       string
	Extensions []string
	lang       *sitter.Language

	// Items maps a top-level node type to the declaration variant it produces.
	// Node types missing from the table are model.Other.
	Items map[string]model.Variant

	// Unwrap returns the declaration node wrapped by a top-level statement
	// node, or the node itself.
	Unwrap func(node *sitter.Node) *sitter.Node

	// Attached reports whether a top-level node is outer context (attribute
	// or doc comment) that belongs to the declaration following it.
	Attached func(node *sitter.Node, source []byte) bool
}

// NewParser creates a fresh tree-sitter parser for this language.
// Parsers are not safe for concurrent use.
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// VariantOf returns the declaration variant for a top-level node.
func (l *Language) VariantOf(node *sitter.Node) model.Variant {
	if v, ok := l.Items[node.Type()]; ok {
		return v
	}
	return model.Other
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

var extensionMap map[string]string
var extensionOnce sync.Once

func getExtensionMap() map[string]string {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]string)
		for _, l := range Languages {
			for _, ext := range l.Extensions {
				extensionMap[ext] = l.Name
			}
		}
	})
	return extensionMap
}

// ForExtension returns the language name for a file extension, or "" if unsupported.
func ForExtension(ext string) string {
	return getExtensionMap()[ext]
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// CollapseWhitespace replaces runs of whitespace with a single space and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
