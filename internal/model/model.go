// Package model defines core data structures for rsextract.
package model

import (
	"fmt"
	"strings"
)

// Variant tags the syntactic shape of a top-level declaration.
type Variant int

const (
	Other Variant = iota
	Function
	Struct
	Enum
	Trait
	Const
	ExternCrate
	Static
	Type
	Union
	MacroInvocation
)

func (v Variant) String() string {
	switch v {
	case Function:
		return "Function"
	case Struct:
		return "Struct"
	case Enum:
		return "Enum"
	case Trait:
		return "Trait"
	case Const:
		return "Const"
	case ExternCrate:
		return "ExternCrate"
	case Static:
		return "Static"
	case Type:
		return "Type"
	case Union:
		return "Union"
	case MacroInvocation:
		return "MacroInvocation"
	default:
		return "Other"
	}
}

// Kind is the label a declaration is listed and requested under.
type Kind string

const (
	KindFn          Kind = "fn"
	KindStruct      Kind = "struct"
	KindEnum        Kind = "enum"
	KindTrait       Kind = "trait"
	KindConst       Kind = "const"
	KindExternCrate Kind = "extern crate"
	KindStatic      Kind = "static"
	KindType        Kind = "type"
	KindUnion       Kind = "union"
	KindMacro       Kind = "macro"
)

// Kinds lists every label in declaration-table order.
var Kinds = []Kind{
	KindFn, KindStruct, KindEnum, KindTrait, KindConst,
	KindExternCrate, KindStatic, KindType, KindUnion, KindMacro,
}

var kindAliases = map[string]Kind{
	"f":            KindFn,
	"function":     KindFn,
	"s":            KindStruct,
	"e":            KindEnum,
	"t":            KindTrait,
	"c":            KindConst,
	"extern-crate": KindExternCrate,
	"extern_crate": KindExternCrate,
}

// ParseKind resolves a label or one of its aliases to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	if k, ok := kindAliases[s]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown item kind %q", s)
}

// Decl is one top-level declaration. Source is the declaration text together
// with the outer attributes and doc comments attached to it.
type Decl struct {
	Variant Variant
	Ident   string // empty for unnamed declarations
	Line    int
	Source  string
}

// Entry is one row of a catalog.
type Entry struct {
	Kind Kind
	Name string
	Line int
}

// Catalog is the ordered listing of a file's classifiable declarations.
type Catalog struct {
	File    string
	Entries []Entry
}
