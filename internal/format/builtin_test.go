package format

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single line",
			in:   "struct Point { x: T, y: T }",
			want: "struct Point { x: T, y: T }\n",
		},
		{
			name: "reindent fields",
			in:   "#[derive(Debug)]\n  struct Point {\nx: i32,\n        y: i32,   \n}\n\n\n",
			want: "#[derive(Debug)]\nstruct Point {\n    x: i32,\n    y: i32,\n}\n",
		},
		{
			name: "nested blocks",
			in:   "fn f(a: bool) -> u8 {\nif a {\n1\n} else {\n2\n}\n}",
			want: "fn f(a: bool) -> u8 {\n    if a {\n        1\n    } else {\n        2\n    }\n}\n",
		},
		{
			name: "method chain continuation",
			in:   "fn f() -> usize {\nlet v = items\n.iter()\n.count();\nv\n}",
			want: "fn f() -> usize {\n    let v = items\n        .iter()\n        .count();\n    v\n}\n",
		},
		{
			name: "brackets opened on one row add one level",
			in:   "fn m() { match x {\n        a => 1,\n        _ => 2,\n    } }",
			want: "fn m() { match x {\n    a => 1,\n    _ => 2,\n} }\n",
		},
		{
			name: "block opened on a continuation row",
			in:   "fn f() {\nlet v = items\n.map(|x| {\nx\n});\n}",
			want: "fn f() {\n    let v = items\n        .map(|x| {\n            x\n        });\n}\n",
		},
		{
			name: "call wrapping a macro",
			in:   "fn f() {\nfoo(vec![\n1,\n]);\n}",
			want: "fn f() {\n    foo(vec![\n        1,\n    ]);\n}\n",
		},
		{
			name: "collapses blank lines",
			in:   "\n\nenum E {\n  A,\n\n\n\n  B,\n}\n\n",
			want: "enum E {\n    A,\n\n    B,\n}\n",
		},
		{
			name: "multi-line string kept verbatim",
			in:   "const S: &str = \"a\n   b  \";",
			want: "const S: &str = \"a\n   b  \";\n",
		},
		{
			name: "doc comment",
			in:   "   /// Adds.\n   fn add() {}\n",
			want: "/// Adds.\nfn add() {}\n",
		},
	}

	f := NewBuiltin()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := f.Format(context.Background(), []byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestBuiltinFormatIsIdempotent(t *testing.T) {
	t.Parallel()

	f := NewBuiltin()
	once, err := f.Format(context.Background(), []byte("trait A {\nfn a(&self);\n   fn b(&self) -> u8 { 1 }\n}\n"))
	require.NoError(t, err)
	twice, err := f.Format(context.Background(), once)
	require.NoError(t, err)
	assert.Equal(t, string(once), string(twice))
}

func TestBuiltinFormatRejectsBrokenInput(t *testing.T) {
	t.Parallel()

	_, err := NewBuiltin().Format(context.Background(), []byte("struct {"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUnparseable))
}

func TestContinues(t *testing.T) {
	t.Parallel()

	assert.False(t, continues("", "identifier"))
	assert.False(t, continues(";", "identifier"))
	assert.False(t, continues("identifier", "}"))
	assert.False(t, continues(")", "{"))
	assert.False(t, continues(")", "where"))
	assert.True(t, continues("identifier", "."))
	assert.True(t, continues("=>", "identifier"))
}
