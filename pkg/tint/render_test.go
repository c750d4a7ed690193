package tint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/pipetint/pkg/types"
)

func fg(start, end int, value string, p types.Priority) types.StyleRange {
	return types.StyleRange{Start: start, End: end, Channel: types.ChannelForeground, Value: value, Priority: p}
}

func bg(start, end int, value string, p types.Priority) types.StyleRange {
	return types.StyleRange{Start: start, End: end, Channel: types.ChannelBackground, Value: value, Priority: p}
}

func attr(start, end int, value string, p types.Priority) types.StyleRange {
	return types.StyleRange{Start: start, End: end, Channel: types.ChannelAttribute, Value: value, Priority: p}
}

func TestRenderNoStyles(t *testing.T) {
	set := types.NewStyleSet()
	assert.Equal(t, "bare", render("bare", set, nil, ModeStyled))
	assert.Equal(t, "bare", render("bare", set, nil, ModePlain))
	assert.Equal(t, "bare", render("bare", set, nil, ModeMarkup))

	// Markup escapes text content even when nothing is styled, so the
	// output stays parseable whether or not a line matched.
	assert.Equal(t, "a&lt;b&amp;c", render("a<b&c", set, nil, ModeMarkup))
	assert.Equal(t, "a<b&c", render("a<b&c", set, nil, ModeStyled))
	assert.Equal(t, "a<b&c", render("a<b&c", set, nil, ModePlain))
}

func TestRenderPlainStripsEverything(t *testing.T) {
	set := types.NewStyleSet(fg(0, 5, "red", types.Priority{}))
	raws := []types.RawSequence{{Offset: 0, Seq: "\x1b]0;t\x07"}}
	assert.Equal(t, "hello", render("hello", set, raws, ModePlain))
}

func TestRenderSingleRange(t *testing.T) {
	set := types.NewStyleSet(fg(0, 5, "red", types.Priority{}))
	assert.Equal(t, "\x1b[31mhello\x1b[0m", render("hello", set, nil, ModeStyled))

	// Interior range opens and closes mid-text.
	set = types.NewStyleSet(fg(2, 4, "red", types.Priority{}))
	assert.Equal(t, "he\x1b[31mll\x1b[0mo", render("hello", set, nil, ModeStyled))
}

func TestRenderAdditionsEmitDiffsOnly(t *testing.T) {
	// bold covers 0-4, red joins at 2. Entering the overlap only the
	// foreground code is emitted; bold is not repeated.
	set := types.NewStyleSet(
		attr(0, 4, "bold", types.Priority{}),
		fg(2, 6, "red", types.Priority{}),
	)
	assert.Equal(t, "\x1b[1mab\x1b[31mcd\x1b[0;31mef\x1b[0m",
		render("abcdef", set, nil, ModeStyled))
}

func TestRenderDropResetsAndReopens(t *testing.T) {
	// Leaving the underline range while red continues forces a reset
	// followed by the full surviving state.
	set := types.NewStyleSet(
		fg(0, 6, "red", types.Priority{}),
		attr(0, 3, "underline", types.Priority{}),
	)
	assert.Equal(t, "\x1b[4;31mabc\x1b[0;31mdef\x1b[0m",
		render("abcdef", set, nil, ModeStyled))
}

func TestRenderSameAttributeCollapses(t *testing.T) {
	// Overlapping ranges carrying the same attribute at different
	// priorities emit the code once and keep it on across the overlap.
	set := types.NewStyleSet(
		attr(0, 6, "bold", types.Priority{Depth: 0, Order: 0}),
		attr(2, 4, "bold", types.Priority{Depth: 1, Order: 1}),
	)
	assert.Equal(t, "\x1b[1mabcdef\x1b[0m", render("abcdef", set, nil, ModeStyled))
}

func TestRenderPriorityPicksWinner(t *testing.T) {
	// Higher depth wins the contested foreground slot.
	set := types.NewStyleSet(
		fg(0, 4, "red", types.Priority{Depth: 0, Order: 0}),
		fg(2, 4, "blue", types.Priority{Depth: 1, Order: 1}),
	)
	assert.Equal(t, "\x1b[31mhe\x1b[34mll\x1b[0mo world",
		render("hello world", set, nil, ModeStyled))
}

func TestRenderIdenticalPriorityLaterWins(t *testing.T) {
	set := types.NewStyleSet(
		fg(0, 4, "red", types.Priority{}),
		fg(0, 4, "blue", types.Priority{}),
	)
	assert.Equal(t, "\x1b[34mtext\x1b[0m", render("text", set, nil, ModeStyled))
}

func TestRenderChannelsAreIndependent(t *testing.T) {
	// The inner foreground does not disturb the outer background.
	set := types.NewStyleSet(
		bg(0, 4, "red", types.Priority{Depth: 0, Order: 0}),
		fg(2, 4, "blue", types.Priority{Depth: 1, Order: 1}),
	)
	assert.Equal(t, "\x1b[41mhe\x1b[34mll\x1b[0mo",
		render("hello", set, nil, ModeStyled))
}

func TestRenderRawWinnerPassthrough(t *testing.T) {
	set := types.NewStyleSet(types.StyleRange{
		Start: 0, End: 3, Channel: types.ChannelForeground,
		Value: "38;5;196", Raw: true,
	})
	assert.Equal(t, "\x1b[38;5;196mhot\x1b[0m", render("hot", set, nil, ModeStyled))
}

func TestRenderRawSequencesAnchored(t *testing.T) {
	raws := []types.RawSequence{{Offset: 2, Seq: "\x1b]0;title\x07"}}
	set := types.NewStyleSet()
	assert.Equal(t, "ab\x1b]0;title\x07cd", render("abcd", set, raws, ModeStyled))

	// Raw sequence at the very end, after all text.
	raws = []types.RawSequence{{Offset: 4, Seq: "\x1b[2A"}}
	assert.Equal(t, "abcd\x1b[2A", render("abcd", set, raws, ModeStyled))
}

func TestRenderRangeBoundsClamped(t *testing.T) {
	// Out-of-bounds ranges style the intersection and nothing else.
	set := types.NewStyleSet(fg(-3, 99, "red", types.Priority{}))
	assert.Equal(t, "\x1b[31mok\x1b[0m", render("ok", set, nil, ModeStyled))
}

func TestRenderMarkup(t *testing.T) {
	set := types.NewStyleSet(
		fg(0, 4, "red", types.Priority{Depth: 0, Order: 0}),
		fg(2, 4, "blue", types.Priority{Depth: 1, Order: 1}),
	)
	assert.Equal(t, "<red>he</red><blue>ll</blue>o world",
		render("hello world", set, nil, ModeMarkup))
}

func TestRenderMarkupTagOrder(t *testing.T) {
	// Attributes, then foreground, then background; closes nest in reverse.
	set := types.NewStyleSet(
		fg(0, 2, "black", types.Priority{}),
		bg(0, 2, "yellow", types.Priority{}),
		attr(0, 2, "invert", types.Priority{}),
	)
	assert.Equal(t, "<invert><black><bg-yellow>hi</bg-yellow></black></invert>",
		render("hi", set, nil, ModeMarkup))
}

func TestRenderMarkupEscapesText(t *testing.T) {
	set := types.NewStyleSet(fg(0, 5, "red", types.Priority{}))
	assert.Equal(t, "<red>a&lt;b&amp;c</red>", render("a<b&c", set, nil, ModeMarkup))

	// Uncovered segments are escaped the same way as covered ones.
	set = types.NewStyleSet(fg(0, 1, "red", types.Priority{}))
	assert.Equal(t, "<red>a</red>&lt;b&amp;c", render("a<b&c", set, nil, ModeMarkup))
}

func TestRenderMarkupUnderscoreNames(t *testing.T) {
	set := types.NewStyleSet(fg(0, 2, "bright_red", types.Priority{}))
	assert.Equal(t, "<bright-red>hi</bright-red>", render("hi", set, nil, ModeMarkup))
}

func TestRenderMarkupOmitsRaw(t *testing.T) {
	// Extended colors and passthrough sequences have no tag equivalent.
	set := types.NewStyleSet(types.StyleRange{
		Start: 0, End: 2, Channel: types.ChannelForeground,
		Value: "38;5;196", Raw: true,
	})
	raws := []types.RawSequence{{Offset: 0, Seq: "\x1b[2A"}}
	assert.Equal(t, "hi", render("hi", set, raws, ModeMarkup))
}
