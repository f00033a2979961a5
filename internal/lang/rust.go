package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/phobologic/rsextract/internal/model"
)

func init() {
	Languages["rust"] = &Language{
		Name:       "rust",
		Extensions: []string{".rs"},
		lang:       rust.GetLanguage(),
		Items: map[string]model.Variant{
			"function_item":            model.Function,
			"struct_item":              model.Struct,
			"enum_item":                model.Enum,
			"trait_item":               model.Trait,
			"const_item":               model.Const,
			"extern_crate_declaration": model.ExternCrate,
			"static_item":              model.Static,
			"type_item":                model.Type,
			"union_item":               model.Union,
			"macro_definition":         model.MacroInvocation,
			"macro_invocation":         model.MacroInvocation,
		},
		Unwrap:   rustUnwrap,
		Attached: rustAttached,
	}
}

// rustUnwrap peels the expression_statement the grammar wraps around a
// top-level `name! { ... }` call.
func rustUnwrap(node *sitter.Node) *sitter.Node {
	if node.Type() == "expression_statement" && node.NamedChildCount() == 1 {
		if inner := node.NamedChild(0); inner.Type() == "macro_invocation" {
			return inner
		}
	}
	return node
}

// rustAttached reports outer attributes and outer doc comments.
// Inner attributes (#![..]), inner docs (//!, /*!) and plain comments stay
// with the file.
func rustAttached(node *sitter.Node, source []byte) bool {
	switch node.Type() {
	case "attribute_item":
		return true
	case "line_comment":
		text := NodeText(node, source)
		return strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////")
	case "block_comment":
		text := NodeText(node, source)
		return strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***") && text != "/**/"
	}
	return false
}
