// Package sgr is the escape-code table: the mapping between numeric
// Select Graphic Rendition parameters and (channel, value) pairs. Both
// the decoder (code to value) and the renderer (value to code) consult
// it. Only SGR is interpreted here; everything else in the ANSI space
// is treated as opaque by the decoder.
package sgr

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/pipetint/pkg/types"
)

// Reset and channel-default parameters.
const (
	Reset     = 0
	FgDefault = 39
	BgDefault = 49
)

// CSI is the control sequence introducer shared by all sequences the
// decoder recognizes structurally.
const CSI = "\x1b["

var fgCodes = map[string]int{
	"black":          30,
	"red":            31,
	"green":          32,
	"yellow":         33,
	"blue":           34,
	"magenta":        35,
	"cyan":           36,
	"white":          37,
	"bright_black":   90,
	"bright_red":     91,
	"bright_green":   92,
	"bright_yellow":  93,
	"bright_blue":    94,
	"bright_magenta": 95,
	"bright_cyan":    96,
	"bright_white":   97,
}

var attrCodes = map[string]int{
	"bold":          1,
	"dim":           2,
	"italic":        3,
	"underline":     4,
	"blink":         5,
	"invert":        7,
	"hidden":        8,
	"strikethrough": 9,
}

// attrOffCodes maps each attribute to the parameter that turns it off.
var attrOffCodes = map[string]int{
	"bold":          22,
	"dim":           22,
	"italic":        23,
	"underline":     24,
	"blink":         25,
	"invert":        27,
	"hidden":        28,
	"strikethrough": 29,
}

// reverse lookup tables, built once
var (
	codeToFg   map[int]string
	codeToAttr map[int]string
)

func init() {
	codeToFg = make(map[int]string, len(fgCodes))
	for name, code := range fgCodes {
		codeToFg[code] = name
	}
	codeToAttr = make(map[int]string, len(attrCodes))
	for name, code := range attrCodes {
		codeToAttr[code] = name
	}
}

// CodeFor returns the SGR parameter that turns the given canonical
// value on for the given channel. ok is false for names outside the
// table (raw values are emitted verbatim and never pass through here).
func CodeFor(channel types.Channel, value string) (int, bool) {
	switch channel {
	case types.ChannelForeground:
		code, ok := fgCodes[value]
		return code, ok
	case types.ChannelBackground:
		code, ok := fgCodes[value]
		if !ok {
			return 0, false
		}
		// Background parameters sit 10 above their foreground twins.
		return code + 10, true
	case types.ChannelAttribute:
		code, ok := attrCodes[value]
		return code, ok
	}
	return 0, false
}

// OffCode returns the SGR parameter that turns the given attribute off.
func OffCode(attr string) (int, bool) {
	code, ok := attrOffCodes[attr]
	return code, ok
}

// AttributeOrder is the fixed emission order for attribute parameters,
// keeping rendered output deterministic.
var AttributeOrder = []string{
	"bold", "dim", "italic", "underline", "blink",
	"invert", "hidden", "strikethrough",
}

// Kind classifies a decoded SGR action.
type Kind int

const (
	// KindReset closes every open channel (parameter 0).
	KindReset Kind = iota
	// KindSet opens a value on a channel.
	KindSet
	// KindClear closes one channel (39, 49, or an attribute off code;
	// for attributes Value names the attribute being cleared).
	KindClear
	// KindUnknown carries parameters the table does not understand,
	// verbatim, for anchored passthrough.
	KindUnknown
)

// Action is one decoded SGR instruction.
type Action struct {
	Kind    Kind
	Channel types.Channel
	// Value is the canonical name for table codes, or the verbatim
	// parameter text for raw extended colors and unknown parameters.
	Value string
	// Raw marks extended (256-color / truecolor) values preserved as
	// verbatim parameters rather than canonical names.
	Raw bool
}

// Actions decodes a raw SGR parameter string ("1;31", "38;5;196", ...)
// into an ordered action list. A compound sequence yields one action
// per sub-code. Empty parameter strings mean reset, per ECMA-48.
// Numeric parameters outside the table come back as KindUnknown with
// their verbatim text so the caller can preserve them.
func Actions(params string) []Action {
	if strings.TrimSpace(params) == "" {
		return []Action{{Kind: KindReset}}
	}

	fields := strings.Split(params, ";")
	codes := make([]int, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			codes = append(codes, 0)
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			// Non-numeric parameter: preserve the whole sequence opaquely.
			return []Action{{Kind: KindUnknown, Value: params}}
		}
		codes = append(codes, n)
	}

	var actions []Action
	var unknown []string
	flushUnknown := func() {
		if len(unknown) > 0 {
			actions = append(actions, Action{Kind: KindUnknown, Value: strings.Join(unknown, ";")})
			unknown = nil
		}
	}

	for i := 0; i < len(codes); i++ {
		code := codes[i]

		// Extended color introducers consume their sub-parameters.
		if code == 38 || code == 48 {
			channel := types.ChannelForeground
			if code == 48 {
				channel = types.ChannelBackground
			}
			if i+2 < len(codes) && codes[i+1] == 5 {
				flushUnknown()
				actions = append(actions, Action{
					Kind:    KindSet,
					Channel: channel,
					Value:   formatCodes(codes[i : i+3]),
					Raw:     true,
				})
				i += 2
				continue
			}
			if i+4 < len(codes) && codes[i+1] == 2 {
				flushUnknown()
				actions = append(actions, Action{
					Kind:    KindSet,
					Channel: channel,
					Value:   formatCodes(codes[i : i+5]),
					Raw:     true,
				})
				i += 4
				continue
			}
			// Truncated extended color: keep it verbatim, fail open.
			unknown = append(unknown, strconv.Itoa(code))
			continue
		}

		switch {
		case code == Reset:
			flushUnknown()
			actions = append(actions, Action{Kind: KindReset})
		case code == FgDefault:
			flushUnknown()
			actions = append(actions, Action{Kind: KindClear, Channel: types.ChannelForeground})
		case code == BgDefault:
			flushUnknown()
			actions = append(actions, Action{Kind: KindClear, Channel: types.ChannelBackground})
		case codeToFg[code] != "":
			flushUnknown()
			actions = append(actions, Action{Kind: KindSet, Channel: types.ChannelForeground, Value: codeToFg[code]})
		case code >= 40 && code <= 47:
			flushUnknown()
			actions = append(actions, Action{Kind: KindSet, Channel: types.ChannelBackground, Value: codeToFg[code-10]})
		case code >= 100 && code <= 107:
			flushUnknown()
			actions = append(actions, Action{Kind: KindSet, Channel: types.ChannelBackground, Value: codeToFg[code-10]})
		case codeToAttr[code] != "":
			flushUnknown()
			actions = append(actions, Action{Kind: KindSet, Channel: types.ChannelAttribute, Value: codeToAttr[code]})
		case code == 21 || code == 22:
			flushUnknown()
			actions = append(actions,
				Action{Kind: KindClear, Channel: types.ChannelAttribute, Value: "bold"},
				Action{Kind: KindClear, Channel: types.ChannelAttribute, Value: "dim"})
		case code == 23:
			flushUnknown()
			actions = append(actions, Action{Kind: KindClear, Channel: types.ChannelAttribute, Value: "italic"})
		case code == 24:
			flushUnknown()
			actions = append(actions, Action{Kind: KindClear, Channel: types.ChannelAttribute, Value: "underline"})
		case code == 25:
			flushUnknown()
			actions = append(actions, Action{Kind: KindClear, Channel: types.ChannelAttribute, Value: "blink"})
		case code == 27:
			flushUnknown()
			actions = append(actions, Action{Kind: KindClear, Channel: types.ChannelAttribute, Value: "invert"})
		case code == 28:
			flushUnknown()
			actions = append(actions, Action{Kind: KindClear, Channel: types.ChannelAttribute, Value: "hidden"})
		case code == 29:
			flushUnknown()
			actions = append(actions, Action{Kind: KindClear, Channel: types.ChannelAttribute, Value: "strikethrough"})
		default:
			unknown = append(unknown, strconv.Itoa(code))
		}
	}
	flushUnknown()

	return actions
}

func formatCodes(codes []int) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ";")
}

// Sequence renders SGR parameters as a complete escape sequence.
func Sequence(params ...string) string {
	return CSI + strings.Join(params, ";") + "m"
}
