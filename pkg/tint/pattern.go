package tint

import (
	"regexp"
	"regexp/syntax"

	"github.com/arthur-debert/pipetint/pkg/errors"
)

// Pattern is a compiled highlight pattern together with the nesting
// depth of every capturing group, computed once at compile time.
type Pattern struct {
	re     *regexp.Regexp
	expr   string
	depths map[int]int
}

// Compile compiles a highlight pattern. Matching is case-insensitive
// unless caseSensitive is set, mirroring the CLI default. Invalid
// patterns return an ErrPatternInvalid; no partial highlighting is
// ever attempted with a pattern that failed to compile.
func Compile(expr string, caseSensitive bool) (*Pattern, error) {
	src := expr
	if !caseSensitive {
		src = "(?i)" + expr
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid,
			"invalid pattern %q", expr)
	}

	depths, err := groupDepths(src)
	if err != nil {
		// regexp.Compile accepted the expression, so the syntax parse
		// cannot realistically disagree; guard anyway.
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid,
			"invalid pattern %q", expr)
	}

	return &Pattern{re: re, expr: expr, depths: depths}, nil
}

// MustCompile is Compile for patterns known to be valid at build time.
func MustCompile(expr string, caseSensitive bool) *Pattern {
	p, err := Compile(expr, caseSensitive)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original pattern source.
func (p *Pattern) String() string {
	return p.expr
}

// Groups returns the number of capturing groups in the pattern.
func (p *Pattern) Groups() int {
	return p.re.NumSubexp()
}

// Depth returns the nesting depth of a capturing group: the number of
// ancestor capturing groups enclosing it. Group 0 (the whole match)
// is depth 0.
func (p *Pattern) Depth(group int) int {
	return p.depths[group]
}

// groupDepths walks the pattern's parse tree and records, for each
// capturing group, how many capturing ancestors enclose it. The walk
// operates on the actual syntax tree rather than scanning the pattern
// source, so non-capturing groups and flag groups pass depth through
// to the capturing groups nested inside them without contributing to
// it themselves.
func groupDepths(src string) (map[int]int, error) {
	root, err := syntax.Parse(src, syntax.Perl)
	if err != nil {
		return nil, err
	}

	depths := map[int]int{0: 0}
	var walk func(node *syntax.Regexp, depth int)
	walk = func(node *syntax.Regexp, depth int) {
		next := depth
		if node.Op == syntax.OpCapture {
			depths[node.Cap] = depth
			next = depth + 1
		}
		for _, sub := range node.Sub {
			walk(sub, next)
		}
	}
	walk(root, 0)

	return depths, nil
}
