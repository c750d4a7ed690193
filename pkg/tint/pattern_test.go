package tint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/pipetint/pkg/errors"
)

func TestCompileInvalid(t *testing.T) {
	_, err := Compile("(unclosed", false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
}

func TestGroups(t *testing.T) {
	assert.Equal(t, 0, MustCompile("hello", false).Groups())
	assert.Equal(t, 1, MustCompile("(hello)", false).Groups())
	assert.Equal(t, 3, MustCompile("(a)(b)(c)", false).Groups())
	// Non-capturing groups do not count.
	assert.Equal(t, 1, MustCompile("(?:x)(y)", false).Groups())
}

func TestDepth(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want map[int]int
	}{
		{
			name: "flat siblings",
			expr: "(a)(b)",
			want: map[int]int{1: 0, 2: 0},
		},
		{
			name: "nested",
			expr: "(h.(ll))",
			want: map[int]int{1: 0, 2: 1},
		},
		{
			name: "deeply nested",
			expr: "(a(b(c)))",
			want: map[int]int{1: 0, 2: 1, 3: 2},
		},
		{
			name: "non-capturing wrapper does not add depth",
			expr: "(?:x(a))",
			want: map[int]int{1: 0},
		},
		{
			name: "named groups are capturing",
			expr: "(?P<outer>a(?P<inner>b))",
			want: map[int]int{1: 0, 2: 1},
		},
		{
			name: "alternation keeps branch depths independent",
			expr: "(a)|(b(c))",
			want: map[int]int{1: 0, 2: 0, 3: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustCompile(tt.expr, false)
			for group, depth := range tt.want {
				assert.Equal(t, depth, p.Depth(group), "group %d", group)
			}
			// Whole match is always depth 0.
			assert.Equal(t, 0, p.Depth(0))
		})
	}
}

func TestCaseSensitivity(t *testing.T) {
	insensitive := MustCompile("error", false)
	got, err := New("ERROR here").Highlight(insensitive, []string{"red"})
	require.NoError(t, err)
	assert.Equal(t, "\x1b[31mERROR\x1b[0m here", got.String())

	sensitive := MustCompile("error", true)
	got, err = New("ERROR here").Highlight(sensitive, []string{"red"})
	require.NoError(t, err)
	assert.Equal(t, "ERROR here", got.String())
}

func TestStringReturnsOriginalSource(t *testing.T) {
	// The (?i) flag added for the case-insensitive default is internal.
	assert.Equal(t, "(a)", MustCompile("(a)", false).String())
}
