package manifest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dusk-indust/sourceit/internal/sourced"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	helloSum = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	worldSum = "486ea46224d1bb4fb680f34f7c9ad96a8f24ec88be73ea8e5a6c65260e9cb8a7"
)

func TestSum(t *testing.T) {
	assert.Equal(t, helloSum, Sum([]byte("hello")))
	assert.Equal(t, worldSum, Sum([]byte("world")))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Entry{
		{Path: "a.txt", Sum: helloSum},
		{Path: "sub/b.txt", Sum: worldSum},
	})
	require.NoError(t, err)

	want := helloSum + "  a.txt\n" + worldSum + "  sub/b.txt\n"
	assert.Equal(t, want, buf.String())
}

func TestParse_RoundTripKeepsOrder(t *testing.T) {
	entries := []Entry{
		{Path: "z.txt", Sum: worldSum},
		{Path: "a.txt", Sum: helloSum},
		{Path: "dir/with space.txt", Sum: helloSum},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, entries))

	got, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

// Every path NormalizePath accepts survives a Write/Parse round trip.
func TestParse_RoundTripsNormalizedPaths(t *testing.T) {
	raws := []string{
		"a.txt",
		"./a.txt",
		"sub/b.txt",
		"sub//b.txt",
		"sub\\b.txt",
		"sub/./b.txt",
		"sub/../b.txt",
		"sub/dir/",
		".gitignore",
		"..hidden",
		"dir/with space.txt",
		" leading space",
		"trailing space ",
		"star*name",
		"ünïcödé/文件.txt",
	}
	for _, raw := range raws {
		t.Run(raw, func(t *testing.T) {
			p, err := sourced.NormalizePath(raw)
			require.NoError(t, err)
			entries := []Entry{{Path: p, Sum: helloSum}, {Path: "next.txt", Sum: worldSum}}

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, entries))
			got, err := Parse(&buf)
			require.NoError(t, err)
			assert.Equal(t, entries, got)
		})
	}
}

func TestParse_AcceptsBinaryMarkerAndCRLF(t *testing.T) {
	input := strings.ToUpper(helloSum) + " *a.txt\r\n\n" + worldSum + "  ./sub/b.txt\n"

	got, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Path: "a.txt", Sum: helloSum},
		{Path: "sub/b.txt", Sum: worldSum},
	}, got)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no separator", helloSum + "\n", "line 1: malformed entry"},
		{"short digest", "abc123  a.txt\n", "line 1: invalid digest"},
		{"not hex", strings.Repeat("zz", 32) + "  a.txt\n", "invalid digest"},
		{"single space", helloSum + " a.txt\n", "malformed entry"},
		{"escaping path", helloSum + "  ../etc/passwd\n", "path escapes root"},
		{"second line", helloSum + "  a.txt\nbogus\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
