// Package colors is the color-name table: a pure mapping from
// human-readable color and attribute names (plus their aliases) to a
// styling channel and canonical value. The engine consults it to
// normalize a raw color token before constructing a style range;
// unknown names are a configuration error surfaced to the caller.
package colors

import (
	"sort"
	"strings"

	"github.com/arthur-debert/pipetint/pkg/errors"
	"github.com/arthur-debert/pipetint/pkg/types"
)

// Color is a normalized (channel, value) pair.
type Color struct {
	Channel types.Channel
	Value   string
}

// foregroundNames are the canonical color values, valid on both the
// foreground and background channels.
var foregroundNames = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright_black", "bright_red", "bright_green", "bright_yellow",
	"bright_blue", "bright_magenta", "bright_cyan", "bright_white",
}

// attributeNames are the canonical attribute values.
var attributeNames = []string{
	"bold", "dim", "italic", "underline", "blink",
	"invert", "hidden", "strikethrough",
}

// aliases maps accepted spellings to canonical names. Background
// aliases in X_bg order are handled structurally in Resolve, not here.
var aliases = map[string]string{
	"bright":    "bold",
	"inverse":   "invert",
	"reverse":   "invert",
	"swap":      "invert",
	"swapcolor": "invert",
	"strike":    "strikethrough",
	"crossed":   "strikethrough",
	"gray":      "bright_black",
	"grey":      "bright_black",
}

var (
	colorSet = make(map[string]bool, len(foregroundNames))
	attrSet  = make(map[string]bool, len(attributeNames))
)

func init() {
	for _, name := range foregroundNames {
		colorSet[name] = true
	}
	for _, name := range attributeNames {
		attrSet[name] = true
	}
}

// Resolve normalizes a raw color token into a (channel, value) pair.
// It accepts case-insensitive input, the fg_/bg_ prefixes, the X_bg
// suffix ordering, and the alias table. Unknown names return an
// ErrUnknownColor.
func Resolve(name string) (Color, error) {
	token := strings.ToLower(strings.TrimSpace(name))
	if token == "" {
		return Color{}, errors.New(errors.ErrUnknownColor, "empty color name")
	}

	channel := types.ChannelForeground
	switch {
	case strings.HasPrefix(token, "bg_"):
		channel = types.ChannelBackground
		token = strings.TrimPrefix(token, "bg_")
	case strings.HasSuffix(token, "_bg"):
		channel = types.ChannelBackground
		token = strings.TrimSuffix(token, "_bg")
	case strings.HasPrefix(token, "fg_"):
		token = strings.TrimPrefix(token, "fg_")
	}

	if canonical, ok := aliases[token]; ok {
		token = canonical
	}

	if attrSet[token] {
		if channel == types.ChannelBackground {
			return Color{}, errors.Newf(errors.ErrUnknownColor,
				"%q is an attribute and cannot be used as a background", name)
		}
		return Color{Channel: types.ChannelAttribute, Value: token}, nil
	}

	if colorSet[token] {
		return Color{Channel: channel, Value: token}, nil
	}

	return Color{}, errors.Newf(errors.ErrUnknownColor, "unknown color %q", name).
		WithDetail("color", name)
}

// ResolveAll normalizes a list of tokens, failing fast on the first
// unknown name. Empty tokens are skipped (they act as "no color for
// this slot" in layered CLI assignments).
func ResolveAll(names []string) ([]Color, error) {
	out := make([]Color, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := Resolve(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Foregrounds returns the canonical foreground color names, sorted.
func Foregrounds() []string {
	out := append([]string(nil), foregroundNames...)
	sort.Strings(out)
	return out
}

// Backgrounds returns the canonical background names ("bg_" prefixed), sorted.
func Backgrounds() []string {
	out := make([]string, 0, len(foregroundNames))
	for _, name := range foregroundNames {
		out = append(out, "bg_"+name)
	}
	sort.Strings(out)
	return out
}

// Attributes returns the canonical attribute names, sorted.
func Attributes() []string {
	out := append([]string(nil), attributeNames...)
	sort.Strings(out)
	return out
}
