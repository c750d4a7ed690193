package tint

import (
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/pipetint/pkg/sgr"
	"github.com/arthur-debert/pipetint/pkg/types"
)

// Mode selects the output form produced by Render.
type Mode int

const (
	// ModeStyled emits ANSI escape sequences (the default).
	ModeStyled Mode = iota
	// ModePlain emits the plain text with all styling stripped.
	ModePlain
	// ModeMarkup emits lipbalm-style tags (<red>, <bg-red>, <bold>)
	// instead of escape sequences.
	ModeMarkup
)

// styleState is the resolved style of one rendered segment: the
// winning foreground and background values plus the set of active
// attributes.
type styleState struct {
	fg, bg *winner
	attrs  map[string]bool
}

type winner struct {
	value string
	raw   bool
}

func (s styleState) empty() bool {
	return s.fg == nil && s.bg == nil && len(s.attrs) == 0
}

func sameWinner(a, b *winner) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.value == b.value && a.raw == b.raw
}

// render serializes plain text plus a style set into the requested
// output mode. It is a pure read over its inputs.
func render(plain string, set types.StyleSet, raws []types.RawSequence, mode Mode) string {
	if mode == ModePlain {
		return plain
	}

	ranges := set.Ranges()

	// Markup always runs the full path: text content is escaped whether
	// or not any range covers it.
	if mode == ModeMarkup {
		return renderMarkup(plain, ranges, changePoints(plain, ranges, raws, mode))
	}

	if len(ranges) == 0 && len(raws) == 0 {
		return plain
	}
	return renderStyled(plain, ranges, raws, changePoints(plain, ranges, raws, mode))
}

// changePoints collects every offset at which the rendered style can
// change: range starts and ends, anchored raw sequences, and the text
// extremes.
func changePoints(plain string, ranges []types.StyleRange, raws []types.RawSequence, mode Mode) []int {
	seen := map[int]bool{0: true, len(plain): true}
	for _, r := range ranges {
		seen[clamp(r.Start, len(plain))] = true
		seen[clamp(r.End, len(plain))] = true
	}
	if mode == ModeStyled {
		for _, raw := range raws {
			seen[clamp(raw.Offset, len(plain))] = true
		}
	}

	points := make([]int, 0, len(seen))
	for p := range seen {
		points = append(points, p)
	}
	sort.Ints(points)
	return points
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// stateAt resolves the winning style on every channel at position pos.
// Foreground and background admit a single winner (highest priority,
// later insertion breaking ties); attributes accumulate, so priority
// never arbitrates between them and same-value overlap collapses.
func stateAt(ranges []types.StyleRange, pos int) styleState {
	st := styleState{attrs: map[string]bool{}}
	var fgBest, bgBest types.Priority

	for _, r := range ranges {
		if !r.Covers(pos) {
			continue
		}
		switch r.Channel {
		case types.ChannelForeground:
			if st.fg == nil || fgBest.Compare(r.Priority) <= 0 {
				st.fg = &winner{value: r.Value, raw: r.Raw}
				fgBest = r.Priority
			}
		case types.ChannelBackground:
			if st.bg == nil || bgBest.Compare(r.Priority) <= 0 {
				st.bg = &winner{value: r.Value, raw: r.Raw}
				bgBest = r.Priority
			}
		case types.ChannelAttribute:
			st.attrs[r.Value] = true
		}
	}
	return st
}

// renderStyled emits ANSI output: minimal transition codes at each
// change point, raw passthrough sequences re-emitted at their original
// offsets ahead of any newly computed codes.
func renderStyled(plain string, ranges []types.StyleRange, raws []types.RawSequence, points []int) string {
	var out strings.Builder
	cur := styleState{attrs: map[string]bool{}}

	rawsAt := func(pos int) {
		for _, raw := range raws {
			if clamp(raw.Offset, len(plain)) == pos {
				out.WriteString(raw.Seq)
			}
		}
	}

	for i := 0; i < len(points)-1; i++ {
		start, end := points[i], points[i+1]
		if start == end {
			continue
		}

		rawsAt(start)

		next := stateAt(ranges, start)
		if params := transition(cur, next); len(params) > 0 {
			out.WriteString(sgr.Sequence(params...))
		}
		cur = next

		out.WriteString(plain[start:end])
	}

	rawsAt(len(plain))

	if !cur.empty() {
		out.WriteString(sgr.Sequence("0"))
	}

	return out.String()
}

// transition computes the SGR parameters that move the terminal from
// style cur to style next. Channels that did not change emit nothing.
// When the new state drops any active styling, a full reset followed
// by the complete new state is emitted; the decoder reconstructs the
// identical state from either form, which keeps re-rendering of piped
// input stable.
func transition(cur, next styleState) []string {
	if statesEqual(cur, next) {
		return nil
	}

	if next.empty() {
		return []string{"0"}
	}

	dropped := false
	if cur.fg != nil && next.fg == nil {
		dropped = true
	}
	if cur.bg != nil && next.bg == nil {
		dropped = true
	}
	for attr := range cur.attrs {
		if !next.attrs[attr] {
			dropped = true
		}
	}

	var params []string
	if dropped {
		params = append(params, "0")
		params = append(params, stateParams(next)...)
		return params
	}

	// Pure additions and single-channel value changes.
	for _, attr := range sgr.AttributeOrder {
		if next.attrs[attr] && !cur.attrs[attr] {
			code, _ := sgr.CodeFor(types.ChannelAttribute, attr)
			params = append(params, strconv.Itoa(code))
		}
	}
	if !sameWinner(cur.fg, next.fg) {
		params = append(params, winnerParams(next.fg, types.ChannelForeground)...)
	}
	if !sameWinner(cur.bg, next.bg) {
		params = append(params, winnerParams(next.bg, types.ChannelBackground)...)
	}
	return params
}

// stateParams renders a complete style state as SGR parameters, in the
// fixed order attributes, foreground, background.
func stateParams(st styleState) []string {
	var params []string
	for _, attr := range sgr.AttributeOrder {
		if st.attrs[attr] {
			code, _ := sgr.CodeFor(types.ChannelAttribute, attr)
			params = append(params, strconv.Itoa(code))
		}
	}
	params = append(params, winnerParams(st.fg, types.ChannelForeground)...)
	params = append(params, winnerParams(st.bg, types.ChannelBackground)...)
	return params
}

func winnerParams(w *winner, channel types.Channel) []string {
	if w == nil {
		return nil
	}
	if w.raw {
		// Extended color decoded from input: parameters pass through
		// verbatim ("38;5;196").
		return []string{w.value}
	}
	code, ok := sgr.CodeFor(channel, w.value)
	if !ok {
		return nil
	}
	return []string{strconv.Itoa(code)}
}

func statesEqual(a, b styleState) bool {
	if !sameWinner(a.fg, b.fg) || !sameWinner(a.bg, b.bg) {
		return false
	}
	if len(a.attrs) != len(b.attrs) {
		return false
	}
	for attr := range a.attrs {
		if !b.attrs[attr] {
			return false
		}
	}
	return true
}

// renderMarkup emits the same per-position winners as tag-based markup.
// Tags open and close per segment, so output is always well nested.
// Text content is escaped; tag delimiters never are. Raw extended
// colors and opaque passthrough sequences have no markup equivalent
// and are omitted.
func renderMarkup(plain string, ranges []types.StyleRange, points []int) string {
	var out strings.Builder

	for i := 0; i < len(points)-1; i++ {
		start, end := points[i], points[i+1]
		if start == end {
			continue
		}

		st := stateAt(ranges, start)
		var tags []string
		for _, attr := range sgr.AttributeOrder {
			if st.attrs[attr] {
				tags = append(tags, tagName(attr))
			}
		}
		if st.fg != nil && !st.fg.raw {
			tags = append(tags, tagName(st.fg.value))
		}
		if st.bg != nil && !st.bg.raw {
			tags = append(tags, "bg-"+tagName(st.bg.value))
		}

		for _, tag := range tags {
			out.WriteString("<" + tag + ">")
		}
		out.WriteString(escapeMarkup(plain[start:end]))
		for j := len(tags) - 1; j >= 0; j-- {
			out.WriteString("</" + tags[j] + ">")
		}
	}

	return out.String()
}

func tagName(value string) string {
	return strings.ReplaceAll(value, "_", "-")
}

func escapeMarkup(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return s
}
