package tint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/pipetint/pkg/types"
)

func TestDecodePlain(t *testing.T) {
	plain, ranges, raws := Decode("just text")
	assert.Equal(t, "just text", plain)
	assert.Empty(t, ranges)
	assert.Empty(t, raws)
}

func TestDecodeSimpleColor(t *testing.T) {
	plain, ranges, raws := Decode("\x1b[31mhello\x1b[0m")
	assert.Equal(t, "hello", plain)
	assert.Empty(t, raws)
	require.Len(t, ranges, 1)

	r := ranges[0]
	assert.Equal(t, 0, r.Start)
	assert.Equal(t, 5, r.End)
	assert.Equal(t, types.ChannelForeground, r.Channel)
	assert.Equal(t, "red", r.Value)
	assert.False(t, r.Raw)
	assert.Equal(t, LegacyStage, r.Priority.Stage)
}

func TestDecodeCompound(t *testing.T) {
	plain, ranges, _ := Decode("\x1b[1;31mhi\x1b[0m")
	assert.Equal(t, "hi", plain)
	require.Len(t, ranges, 2)

	byChannel := map[types.Channel]types.StyleRange{}
	for _, r := range ranges {
		byChannel[r.Channel] = r
	}
	assert.Equal(t, "bold", byChannel[types.ChannelAttribute].Value)
	assert.Equal(t, "red", byChannel[types.ChannelForeground].Value)
	for _, r := range ranges {
		assert.Equal(t, 0, r.Start)
		assert.Equal(t, 2, r.End)
	}
}

func TestDecodeColorChange(t *testing.T) {
	// A new foreground closes the previous one at the change point.
	_, ranges, _ := Decode("\x1b[31mab\x1b[34mcd\x1b[0m")
	require.Len(t, ranges, 2)
	assert.Equal(t, types.StyleRange{
		Start: 0, End: 2, Channel: types.ChannelForeground, Value: "red",
		Priority: types.Priority{Stage: LegacyStage, Order: 0},
	}, ranges[0])
	assert.Equal(t, "blue", ranges[1].Value)
	assert.Equal(t, 2, ranges[1].Start)
	assert.Equal(t, 4, ranges[1].End)
}

func TestDecodeChannelDefaults(t *testing.T) {
	// 39 closes only the foreground; the background keeps running.
	plain, ranges, _ := Decode("\x1b[31;41mab\x1b[39mcd\x1b[0m")
	assert.Equal(t, "abcd", plain)
	require.Len(t, ranges, 2)

	byChannel := map[types.Channel]types.StyleRange{}
	for _, r := range ranges {
		byChannel[r.Channel] = r
	}
	assert.Equal(t, 2, byChannel[types.ChannelForeground].End)
	assert.Equal(t, 4, byChannel[types.ChannelBackground].End)
}

func TestDecodeAttributeOff(t *testing.T) {
	_, ranges, _ := Decode("\x1b[1;4mab\x1b[24mcd\x1b[0m")
	require.Len(t, ranges, 2)

	byValue := map[string]types.StyleRange{}
	for _, r := range ranges {
		byValue[r.Value] = r
	}
	assert.Equal(t, 2, byValue["underline"].End)
	assert.Equal(t, 4, byValue["bold"].End)
}

func TestDecodeUnclosedStyling(t *testing.T) {
	// Styling left open at end of input is closed at the text end.
	plain, ranges, _ := Decode("\x1b[32mgreen to the end")
	assert.Equal(t, "green to the end", plain)
	require.Len(t, ranges, 1)
	assert.Equal(t, len(plain), ranges[0].End)
}

func TestDecodeExtendedColor(t *testing.T) {
	_, ranges, raws := Decode("\x1b[38;5;196mhot\x1b[0m")
	assert.Empty(t, raws)
	require.Len(t, ranges, 1)
	assert.True(t, ranges[0].Raw)
	assert.Equal(t, "38;5;196", ranges[0].Value)
	assert.Equal(t, types.ChannelForeground, ranges[0].Channel)
}

func TestDecodeUnknownSGRPreserved(t *testing.T) {
	plain, ranges, raws := Decode("\x1b[53mhi\x1b[0m")
	assert.Equal(t, "hi", plain)
	assert.Empty(t, ranges)
	require.Len(t, raws, 1)
	assert.Equal(t, types.RawSequence{Offset: 0, Seq: "\x1b[53m"}, raws[0])
}

func TestDecodeNonSGRPassthrough(t *testing.T) {
	// OSC window title, terminated by BEL.
	plain, ranges, raws := Decode("a\x1b]0;title\x07b")
	assert.Equal(t, "ab", plain)
	assert.Empty(t, ranges)
	require.Len(t, raws, 1)
	assert.Equal(t, types.RawSequence{Offset: 1, Seq: "\x1b]0;title\x07"}, raws[0])

	// Cursor movement is CSI but not SGR.
	plain, _, raws = Decode("x\x1b[2Ay")
	assert.Equal(t, "xy", plain)
	require.Len(t, raws, 1)
	assert.Equal(t, "\x1b[2A", raws[0].Seq)
}

func TestDecodeFailOpen(t *testing.T) {
	// Truncated escapes at end of input stay literal text.
	tests := []string{
		"hi\x1b",
		"hi\x1b[31",
		"hi\x1b]0;title",
	}
	for _, input := range tests {
		plain, ranges, raws := Decode(input)
		assert.Equal(t, input, plain, "input %q", input)
		assert.Empty(t, ranges)
		assert.Empty(t, raws)
	}
}

func TestDecodeOrderReflectsApplication(t *testing.T) {
	// Later-opened values carry higher orders.
	_, ranges, _ := Decode("\x1b[31ma\x1b[34mb\x1b[0m")
	require.Len(t, ranges, 2)
	assert.Less(t, ranges[0].Priority.Order, ranges[1].Priority.Order)
}
