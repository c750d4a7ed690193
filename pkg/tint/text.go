package tint

import (
	"strings"

	"github.com/arthur-debert/pipetint/pkg/colors"
	"github.com/arthur-debert/pipetint/pkg/errors"
	"github.com/arthur-debert/pipetint/pkg/types"
)

// Text is one logical text instance: plain content plus the style set
// accumulated against it. Text values are immutable; Highlight and
// Colorize return fresh instances, so chaining never mutates the
// receiver and independent instances may be processed in parallel
// without locking.
type Text struct {
	plain     string
	set       types.StyleSet
	raws      []types.RawSequence
	stage     int
	nextOrder int
}

// New creates a text instance from a raw literal. No decoding happens;
// the string is taken as plain text with no legacy styling.
func New(s string) Text {
	return Text{plain: s}
}

// Parse creates a text instance from a possibly-styled string. Any
// recognized styling becomes legacy ranges at the legacy stage; when
// such ranges exist the instance's own stage is bumped above them so
// styling added now always outranks styling inherited from a previous
// pipe stage.
func Parse(s string) Text {
	plain, ranges, raws := Decode(s)
	t := Text{
		plain: plain,
		set:   types.NewStyleSet(ranges...),
		raws:  raws,
	}
	if len(ranges) > 0 || len(raws) > 0 {
		t.stage = LegacyStage + 1
	}
	return t
}

// Plain returns the plain text content: the sole coordinate space for
// all style range offsets.
func (t Text) Plain() string {
	return t.plain
}

// Stage returns the pipeline stage assigned to newly added styling.
func (t Text) Stage() int {
	return t.stage
}

// Ranges returns the accumulated style ranges in insertion order.
func (t Text) Ranges() []types.StyleRange {
	return t.set.Ranges()
}

// NextStage returns a copy whose future styling is tagged with the
// next pipeline stage, outranking everything added so far.
func (t Text) NextStage() Text {
	out := t.clone()
	out.stage++
	out.nextOrder = 0
	return out
}

// ClearStyles returns a copy stripped of all styling, including
// preserved passthrough sequences (the replace-all operation).
func (t Text) ClearStyles() Text {
	out := t.clone()
	out.set.Clear()
	out.raws = nil
	return out
}

// Render serializes the instance in the requested output mode. It is
// a pure read and never fails on a set built through this API.
func (t Text) Render(mode Mode) string {
	return render(t.plain, t.set, t.raws, mode)
}

// String renders with ANSI styling.
func (t Text) String() string {
	return t.Render(ModeStyled)
}

// HighlightOptions tunes a single highlight application.
type HighlightOptions struct {
	// ReplaceAll clears all previously accumulated styling before the
	// new ranges are appended.
	ReplaceAll bool
}

// Highlight matches the pattern against the plain text and styles each
// capture group with the corresponding color assignment. Assignments
// are 1-based by capture group; an assignment may name several colors
// joined by commas, producing one range per (group, channel) pair.
// A pattern with no capturing groups styles the whole match with every
// configured color. The result is a new instance.
func (t Text) Highlight(p *Pattern, assignments []string) (Text, error) {
	return t.HighlightWith(p, assignments, HighlightOptions{})
}

// HighlightWith is Highlight with explicit options.
func (t Text) HighlightWith(p *Pattern, assignments []string, opts HighlightOptions) (Text, error) {
	if p.Groups() > 0 && len(assignments) > p.Groups() {
		return Text{}, errors.Newf(errors.ErrGroupOutOfRange,
			"pattern %q has %d capture group(s) but %d color assignment(s) were given",
			p.String(), p.Groups(), len(assignments)).
			WithDetail("groups", p.Groups()).
			WithDetail("assignments", len(assignments))
	}

	// Normalize every token before any range is constructed: an unknown
	// color name is caller misconfiguration and fails the whole call.
	resolved := make([][]colors.Color, len(assignments))
	for i, assignment := range assignments {
		cs, err := colors.ResolveAll(strings.Split(assignment, ","))
		if err != nil {
			return Text{}, err
		}
		resolved[i] = cs
	}

	out := t.clone()
	if opts.ReplaceAll {
		out.set.Clear()
		out.raws = nil
	}
	if len(resolved) == 0 {
		return out, nil
	}

	for _, m := range p.re.FindAllStringSubmatchIndex(t.plain, -1) {
		if p.Groups() == 0 {
			// Implicit whole-match group at depth 0.
			if m[0] == m[1] {
				continue
			}
			for _, cs := range resolved {
				out.appendGroup(m[0], m[1], 0, cs)
			}
			continue
		}

		for g := 1; g <= p.Groups(); g++ {
			cs := resolved[(g-1)%len(resolved)]
			if len(cs) == 0 {
				continue
			}
			start, end := m[2*g], m[2*g+1]
			if start < 0 || start == end {
				// Unmatched optional group or zero-length capture.
				continue
			}
			out.appendGroup(start, end, p.Depth(g), cs)
		}
	}

	return out, nil
}

// appendGroup adds one range per channel for a single colored group.
// The application order counter advances once per group, so all of a
// group's channels share one priority and sibling groups at equal
// depth resolve ties by processing order (later wins).
func (t *Text) appendGroup(start, end, depth int, cs []colors.Color) {
	order := t.nextOrder
	t.nextOrder++
	for _, c := range cs {
		t.set.Add(types.StyleRange{
			Start:   start,
			End:     end,
			Channel: c.Channel,
			Value:   c.Value,
			Priority: types.Priority{
				Stage: t.stage,
				Depth: depth,
				Order: order,
			},
		})
	}
}

// Colorize styles the entire text with the given color assignment
// (comma-joined names allowed), returning a new instance.
func (t Text) Colorize(assignment string) (Text, error) {
	cs, err := colors.ResolveAll(strings.Split(assignment, ","))
	if err != nil {
		return Text{}, err
	}

	out := t.clone()
	if len(t.plain) == 0 || len(cs) == 0 {
		return out, nil
	}
	out.appendGroup(0, len(t.plain), 0, cs)
	return out, nil
}

// HighlightAt styles single characters at the given plain-text
// positions. Positions use depth 1 so they outrank whole-line and
// top-level group styling from the same stage.
func (t Text) HighlightAt(positions []int, assignment string) (Text, error) {
	cs, err := colors.ResolveAll(strings.Split(assignment, ","))
	if err != nil {
		return Text{}, err
	}

	out := t.clone()
	if len(cs) == 0 {
		return out, nil
	}
	for _, pos := range positions {
		if pos < 0 || pos >= len(t.plain) {
			continue
		}
		out.appendGroup(pos, pos+1, 1, cs)
	}
	return out, nil
}

func (t Text) clone() Text {
	out := t
	out.set = t.set.Clone()
	if len(t.raws) > 0 {
		out.raws = make([]types.RawSequence, len(t.raws))
		copy(out.raws, t.raws)
	}
	return out
}
