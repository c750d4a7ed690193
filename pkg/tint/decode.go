package tint

import (
	"strings"

	"github.com/arthur-debert/pipetint/pkg/sgr"
	"github.com/arthur-debert/pipetint/pkg/types"
)

// LegacyStage is the pipeline stage assigned to ranges reconstructed
// from styling already present in the input. It is strictly lower than
// the stage of anything highlighted in the current invocation.
const LegacyStage = 0

// openValue tracks a style that has been switched on but whose range
// end is not yet known. One decode pass threads a fixed set of these
// through the scan: a foreground slot, a background slot and an
// accumulating attribute list. Nothing survives the Decode call.
type openValue struct {
	value string
	raw   bool
	start int
	order int
}

type decodeState struct {
	fg    *openValue
	bg    *openValue
	attrs []openValue
	order int
}

// Decode scans a possibly-styled input string and reconstructs the
// plain text, the style ranges encoded by recognized SGR sequences,
// and the escape sequences it does not interpret (anchored verbatim to
// their plain-text offset). Malformed or truncated escape sequences
// are kept as literal text: decoding never fails.
func Decode(input string) (string, []types.StyleRange, []types.RawSequence) {
	var plain strings.Builder
	var ranges []types.StyleRange
	var raws []types.RawSequence
	st := decodeState{}

	closeValue := func(v *openValue, channel types.Channel, pos int) {
		if v == nil || v.start >= pos {
			return
		}
		ranges = append(ranges, types.StyleRange{
			Start:    v.start,
			End:      pos,
			Channel:  channel,
			Value:    v.value,
			Raw:      v.raw,
			Priority: types.Priority{Stage: LegacyStage, Depth: 0, Order: v.order},
		})
	}

	closeAttr := func(value string, pos int) {
		kept := st.attrs[:0]
		for i := range st.attrs {
			if st.attrs[i].value == value {
				closeValue(&st.attrs[i], types.ChannelAttribute, pos)
				continue
			}
			kept = append(kept, st.attrs[i])
		}
		st.attrs = kept
	}

	closeAll := func(pos int) {
		closeValue(st.fg, types.ChannelForeground, pos)
		closeValue(st.bg, types.ChannelBackground, pos)
		st.fg, st.bg = nil, nil
		for i := range st.attrs {
			closeValue(&st.attrs[i], types.ChannelAttribute, pos)
		}
		st.attrs = nil
	}

	apply := func(act sgr.Action, pos int) {
		switch act.Kind {
		case sgr.KindReset:
			closeAll(pos)
		case sgr.KindClear:
			switch act.Channel {
			case types.ChannelForeground:
				closeValue(st.fg, types.ChannelForeground, pos)
				st.fg = nil
			case types.ChannelBackground:
				closeValue(st.bg, types.ChannelBackground, pos)
				st.bg = nil
			case types.ChannelAttribute:
				closeAttr(act.Value, pos)
			}
		case sgr.KindSet:
			open := openValue{value: act.Value, raw: act.Raw, start: pos, order: st.order}
			st.order++
			switch act.Channel {
			case types.ChannelForeground:
				closeValue(st.fg, types.ChannelForeground, pos)
				st.fg = &open
			case types.ChannelBackground:
				closeValue(st.bg, types.ChannelBackground, pos)
				st.bg = &open
			case types.ChannelAttribute:
				// Attributes accumulate; re-applying an active one is a no-op.
				for i := range st.attrs {
					if st.attrs[i].value == act.Value {
						return
					}
				}
				st.attrs = append(st.attrs, open)
			}
		case sgr.KindUnknown:
			raws = append(raws, types.RawSequence{Offset: pos, Seq: sgr.CSI + act.Value + "m"})
		}
	}

	i := 0
	for i < len(input) {
		c := input[i]
		if c != 0x1b {
			plain.WriteByte(c)
			i++
			continue
		}

		seq, isSGR, ok := scanEscape(input, i)
		if !ok {
			// Truncated escape at end of input: literal text, fail open.
			plain.WriteString(input[i:])
			break
		}
		if isSGR {
			params := seq[2 : len(seq)-1]
			for _, act := range sgr.Actions(params) {
				apply(act, plain.Len())
			}
		} else {
			raws = append(raws, types.RawSequence{Offset: plain.Len(), Seq: seq})
		}
		i += len(seq)
	}

	closeAll(plain.Len())

	return plain.String(), ranges, raws
}

// scanEscape identifies the escape sequence starting at input[i]
// (which must be ESC). It returns the full sequence, whether it is an
// SGR sequence, and whether the sequence is complete. Incomplete
// sequences at end of input report ok=false so the caller can fall
// back to literal text.
func scanEscape(input string, i int) (seq string, isSGR bool, ok bool) {
	if i+1 >= len(input) {
		return "", false, false
	}

	switch input[i+1] {
	case '[':
		// CSI: parameter bytes 0x30-0x3F, intermediate bytes 0x20-0x2F,
		// one final byte 0x40-0x7E.
		j := i + 2
		for j < len(input) && input[j] >= 0x30 && input[j] <= 0x3f {
			j++
		}
		for j < len(input) && input[j] >= 0x20 && input[j] <= 0x2f {
			j++
		}
		if j >= len(input) || input[j] < 0x40 || input[j] > 0x7e {
			return "", false, false
		}
		seq = input[i : j+1]
		return seq, input[j] == 'm', true

	case ']', 'P', 'X', '^', '_':
		// OSC and other string sequences: terminated by BEL or ST (ESC \).
		j := i + 2
		for j < len(input) {
			if input[j] == 0x07 {
				return input[i : j+1], false, true
			}
			if input[j] == 0x1b && j+1 < len(input) && input[j+1] == '\\' {
				return input[i : j+2], false, true
			}
			j++
		}
		return "", false, false

	default:
		// Two-byte escape (e.g. ESC 7, ESC =): preserved opaquely.
		return input[i : i+2], false, true
	}
}
