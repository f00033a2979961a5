package parse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/rsextract/internal/lang"
	"github.com/phobologic/rsextract/internal/model"
)

func setup(t *testing.T) func(source string) ([]model.Decl, error) {
	t.Helper()
	l := lang.Languages["rust"]
	require.NotNil(t, l, "rust language not registered")
	return func(source string) ([]model.Decl, error) {
		return Declarations(context.Background(), l, l.NewParser(), []byte(source), "test.rs")
	}
}

func TestDeclarationsEveryVariant(t *testing.T) {
	t.Parallel()
	parse := setup(t)

	source := `extern crate serde;
fn add(a: T, b: T) -> T { a + b }
struct Point { x: T, y: T }
enum Shape { Circle, Square }
trait Area { fn area(&self) -> f64; }
const LIMIT: u32 = 10;
static NAME: &str = "x";
type Pair = (u8, u8);
union Bits { i: u32, f: f32 }
macro_rules! square { ($x:expr) => { $x * $x }; }
impl Area for Shape { fn area(&self) -> f64 { 0.0 } }
use std::fmt;
mod inner {}
`
	decls, err := parse(source)
	require.NoError(t, err)

	want := []struct {
		variant model.Variant
		ident   string
	}{
		{model.ExternCrate, "serde"},
		{model.Function, "add"},
		{model.Struct, "Point"},
		{model.Enum, "Shape"},
		{model.Trait, "Area"},
		{model.Const, "LIMIT"},
		{model.Static, "NAME"},
		{model.Type, "Pair"},
		{model.Union, "Bits"},
		{model.MacroInvocation, "square"},
		{model.Other, ""},
		{model.Other, ""},
		{model.Other, ""},
	}
	require.Len(t, decls, len(want))
	for i, w := range want {
		assert.Equal(t, w.variant, decls[i].Variant, "decl %d", i)
		assert.Equal(t, w.ident, decls[i].Ident, "decl %d", i)
		assert.Equal(t, i+1, decls[i].Line, "decl %d", i)
	}
}

func TestDeclarationsAnonymousMacro(t *testing.T) {
	t.Parallel()
	parse := setup(t)

	decls, err := parse("lazy_static! { static ref X: u8 = 1; }\nthread_local!(static Y: u8 = 2);\n")
	require.NoError(t, err)

	var macros []model.Decl
	for _, d := range decls {
		if d.Variant == model.MacroInvocation {
			macros = append(macros, d)
		}
	}
	require.Len(t, macros, 2)
	for _, d := range macros {
		assert.Empty(t, d.Ident)
	}
	assert.Contains(t, macros[1].Source, "thread_local!")
}

func TestDeclarationsAttachedContext(t *testing.T) {
	t.Parallel()
	parse := setup(t)

	source := `//! crate docs
#![allow(dead_code)]

// plain comment
/// A point.
#[derive(Debug)]
pub struct Point { x: i32 }

fn free() {}
`
	decls, err := parse(source)
	require.NoError(t, err)

	var named []model.Decl
	for _, d := range decls {
		if d.Variant != model.Other {
			named = append(named, d)
		}
	}
	require.Len(t, named, 2)
	assert.Equal(t, "/// A point.\n#[derive(Debug)]\npub struct Point { x: i32 }", named[0].Source)
	assert.Equal(t, 7, named[0].Line)
	assert.Equal(t, "fn free() {}", named[1].Source)
}

func TestDeclarationsDropsPlainCommentInsideAttachedContext(t *testing.T) {
	t.Parallel()
	parse := setup(t)

	decls, err := parse("/// doc\n// plain\n#[inline]\nfn a() {}\n")
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "/// doc\n#[inline]\nfn a() {}", decls[0].Source)
	assert.Equal(t, 4, decls[0].Line)
}

func TestDeclarationsSkipsShebang(t *testing.T) {
	t.Parallel()
	parse := setup(t)

	decls, err := parse("#!/usr/bin/env run-cargo-script\nfn a() {}\n")
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, model.Function, decls[0].Variant)
	assert.Equal(t, "a", decls[0].Ident)
	assert.Equal(t, 2, decls[0].Line)
	assert.Equal(t, "fn a() {}", decls[0].Source)

	decls, err = parse("#!/bin/sh")
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestBlankShebang(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"interpreter line", "#!/bin/run\nfn a() {}", "          \nfn a() {}"},
		{"crlf", "#!x\r\nfn a() {}", "   \r\nfn a() {}"},
		{"inner attribute", "#![allow(unused)]\nfn a() {}", "#![allow(unused)]\nfn a() {}"},
		{"spaced inner attribute", "#! [allow(unused)]", "#! [allow(unused)]"},
		{"no shebang", "fn a() {}", "fn a() {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, string(blankShebang([]byte(tt.in))))
		})
	}
}

func TestDeclarationsKeepsDuplicates(t *testing.T) {
	t.Parallel()
	parse := setup(t)

	decls, err := parse("fn run() { one() }\nfn run() { two() }\n")
	require.NoError(t, err)
	require.Len(t, decls, 2)
	assert.Equal(t, "fn run() { one() }", decls[0].Source)
	assert.Equal(t, "fn run() { two() }", decls[1].Source)
}

func TestDeclarationsEmpty(t *testing.T) {
	t.Parallel()
	parse := setup(t)

	decls, err := parse("  \n\n")
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestDeclarationsSyntaxError(t *testing.T) {
	t.Parallel()
	parse := setup(t)

	_, err := parse("fn ok() {}\nstruct Broken {\n")
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
	assert.Equal(t, "test.rs", pe.Path)
	assert.GreaterOrEqual(t, pe.Line, 2)
	assert.Contains(t, err.Error(), "test.rs:")
	assert.Contains(t, err.Error(), "syntax error")
}

func TestLineSnippet(t *testing.T) {
	t.Parallel()

	src := []byte("first\n   second   line  \nthird")
	assert.Equal(t, "second line", lineSnippet(src, 9))
	assert.Equal(t, "third", lineSnippet(src, len(src)))
}
