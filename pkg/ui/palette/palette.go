// Package palette renders the `pipetint colors` listing: every color
// and attribute name the color table accepts, demonstrated through the
// engine itself so the listing is exercised by the same code path that
// styles real input.
package palette

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/pipetint/pkg/colors"
	"github.com/arthur-debert/pipetint/pkg/tint"
)

//go:embed styles.yaml
var stylesYAML []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	MarginTop  int    `yaml:"marginTop,omitempty"`
}

type stylesConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// registry maps semantic names to lipgloss styles for the listing chrome.
var registry map[string]lipgloss.Style

func init() {
	var config stylesConfig
	if err := yaml.Unmarshal(stylesYAML, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded styles.yaml: %v", err))
	}

	adaptive := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		adaptive[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry = make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		style := lipgloss.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Foreground != "" {
			if color, ok := adaptive[def.Foreground]; ok {
				style = style.Foreground(color)
			}
		}
		if def.MarginTop > 0 {
			style = style.MarginTop(def.MarginTop)
		}
		registry[name] = style
	}
}

// GetStyle safely retrieves a style from the registry, falling back to
// an unstyled lipgloss style for unknown names.
func GetStyle(name string) lipgloss.Style {
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

const swatch = "████"

// Render writes the color listing. When colored is false every
// demonstration degrades to plain text (piped output, NO_COLOR).
func Render(w io.Writer, colored bool) error {
	mode := tint.ModeStyled
	if !colored {
		mode = tint.ModePlain
	}

	demo := func(sample, assignment string) string {
		t, err := tint.New(sample).Colorize(assignment)
		if err != nil {
			return sample
		}
		return t.Render(mode)
	}

	if _, err := fmt.Fprintln(w, GetStyle("Header").Render("Available Colors")); err != nil {
		return err
	}
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintln(w, GetStyle("Section").Render("Foreground Colors"))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, name := range colors.Foregrounds() {
		fmt.Fprintf(w, "  %s  %s\n", demo(swatch, name), demo("This is "+name, name))
	}

	fmt.Fprintln(w, GetStyle("Section").Render("Background Colors"))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, name := range colors.Backgrounds() {
		fmt.Fprintf(w, "  %s  %s\n", demo(swatch, name+",black"), demo("This is "+name, name+",black"))
	}

	fmt.Fprintln(w, GetStyle("Section").Render("Text Styles"))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, name := range colors.Attributes() {
		if name == "hidden" {
			fmt.Fprintf(w, "  This is %s (text hidden in terminal)\n", name)
			continue
		}
		fmt.Fprintf(w, "  %s\n", demo("This is "+name, name))
	}

	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, GetStyle("Hint").Render("Usage: pipetint 'pattern' <color>"))

	return nil
}
