package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	ops, err := ParseString(`
# warm up
a = alloc 100
b   =  calloc 4 25   # zeroed
a = realloc a 0x200
c = realloc nil 64
free b
free nil

check
`)
	require.NoError(t, err)
	want := []Op{
		{Line: 3, Kind: KindAlloc, Dst: "a", Size: 100},
		{Line: 4, Kind: KindCalloc, Dst: "b", Count: 4, Size: 25},
		{Line: 5, Kind: KindRealloc, Dst: "a", Src: "a", Size: 512},
		{Line: 6, Kind: KindRealloc, Dst: "c", Src: "nil", Size: 64},
		{Line: 7, Kind: KindFree, Src: "b"},
		{Line: 8, Kind: KindFree, Src: "nil"},
		{Line: 10, Kind: KindCheck},
	}
	assert.Equal(t, want, ops)
}

func TestParseEmpty(t *testing.T) {
	ops, err := ParseString("\n# nothing\n   \n")
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line string
	}{
		{"unknown statement", "x\n", "line 1"},
		{"unknown op", "a = malloc 4", "line 1"},
		{"missing size", "a = alloc", "line 1"},
		{"bad size", "\na = alloc ten", "line 2"},
		{"negative size", "a = alloc -1", "line 1"},
		{"calloc arity", "a = calloc 4", "line 1"},
		{"realloc arity", "a = realloc a", "line 1"},
		{"bind nil", "nil = alloc 4", "line 1"},
		{"bad name", "1a = alloc 4", "line 1"},
		{"bad src", "a = realloc b-c 4", "line 1"},
		{"free arity", "free", "line 1"},
		{"check operands", "check a", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.src)
			require.ErrorIs(t, err, ErrSyntax)
			assert.True(t, strings.HasPrefix(err.Error(), tt.line+":"), err.Error())
		})
	}
}

func TestOpString(t *testing.T) {
	ops, err := ParseString("a = alloc 1\nb = calloc 2 3\na = realloc a 4\nfree b\ncheck\n")
	require.NoError(t, err)
	var got []string
	for _, op := range ops {
		got = append(got, op.String())
	}
	assert.Equal(t, []string{
		"a = alloc 1",
		"b = calloc 2 3",
		"a = realloc a 4",
		"free b",
		"check",
	}, got)
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
