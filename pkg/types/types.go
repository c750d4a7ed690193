// Package types defines the core data model shared across pipetint:
// styling channels, priorities, style ranges and the style set owned by
// a single text instance.
package types

// Channel identifies one of the three independent styling axes. A single
// position may carry an active foreground, an active background and any
// number of attributes at the same time.
type Channel int

const (
	// ChannelForeground is the foreground color slot (single-valued).
	ChannelForeground Channel = iota
	// ChannelBackground is the background color slot (single-valued).
	ChannelBackground
	// ChannelAttribute is the attribute axis (bold, underline, ...).
	// Attributes accumulate rather than replace one another.
	ChannelAttribute
)

// String returns the channel name for logging and error details.
func (c Channel) String() string {
	switch c {
	case ChannelForeground:
		return "foreground"
	case ChannelBackground:
		return "background"
	case ChannelAttribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// Priority orders style ranges. Fields are compared lexicographically:
// Stage first, then Depth, then Order. The fields are never collapsed
// into a single scalar.
type Priority struct {
	// Stage is the pipeline stage tag. Ranges reconstructed from styling
	// already present in the input carry a lower stage than ranges added
	// by the current invocation.
	Stage int
	// Depth is the regex capture-group nesting depth; inner groups carry
	// higher depths and therefore outrank the groups that contain them.
	Depth int
	// Order is a monotonically increasing counter scoped to the stage,
	// breaking ties between groups at equal depth (later wins).
	Order int
}

// Compare returns -1, 0 or +1 ordering p against o.
func (p Priority) Compare(o Priority) int {
	if p.Stage != o.Stage {
		return cmpInt(p.Stage, o.Stage)
	}
	if p.Depth != o.Depth {
		return cmpInt(p.Depth, o.Depth)
	}
	return cmpInt(p.Order, o.Order)
}

// Less reports whether p is outranked by o.
func (p Priority) Less(o Priority) bool {
	return p.Compare(o) < 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// StyleRange is a half-open span [Start, End) over plain-text offsets
// carrying one styling value on one channel. Ranges are immutable once
// constructed; overlap resolution selects among ranges, never edits them.
type StyleRange struct {
	Start   int
	End     int
	Channel Channel
	// Value is the canonical color or attribute name ("red", "bold").
	// When Raw is set, Value holds verbatim SGR parameters instead
	// (e.g. "38;5;196" for a 256-color foreground decoded from input).
	Value    string
	Raw      bool
	Priority Priority
}

// Covers reports whether pos falls inside the range.
func (r StyleRange) Covers(pos int) bool {
	return r.Start <= pos && pos < r.End
}

// RawSequence is an escape sequence the decoder does not interpret,
// preserved verbatim and anchored to the plain-text offset at which it
// appeared so the renderer can re-emit it at exactly that position.
type RawSequence struct {
	Offset int
	Seq    string
}

// StyleSet is the ordered collection of style ranges owned by one text
// instance. It is append-only except for Clear. Insertion order is the
// deterministic fallback when two ranges carry identical priorities.
type StyleSet struct {
	ranges []StyleRange
}

// NewStyleSet returns a set pre-populated with the given ranges.
func NewStyleSet(ranges ...StyleRange) StyleSet {
	s := StyleSet{}
	s.ranges = append(s.ranges, ranges...)
	return s
}

// Add appends a range to the set.
func (s *StyleSet) Add(r StyleRange) {
	s.ranges = append(s.ranges, r)
}

// Clear empties the set (the replace-all operation).
func (s *StyleSet) Clear() {
	s.ranges = nil
}

// Len returns the number of ranges in the set.
func (s *StyleSet) Len() int {
	return len(s.ranges)
}

// Ranges returns the ranges in insertion order. The returned slice is
// shared; callers must not modify it.
func (s *StyleSet) Ranges() []StyleRange {
	return s.ranges
}

// Clone returns an independent copy of the set.
func (s *StyleSet) Clone() StyleSet {
	out := StyleSet{}
	if len(s.ranges) > 0 {
		out.ranges = make([]StyleRange, len(s.ranges))
		copy(out.ranges, s.ranges)
	}
	return out
}
