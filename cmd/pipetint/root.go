package pipetint

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/pipetint/pkg/config"
	tinterrors "github.com/arthur-debert/pipetint/pkg/errors"
	"github.com/arthur-debert/pipetint/pkg/logging"
	"github.com/arthur-debert/pipetint/pkg/tint"
	"github.com/arthur-debert/pipetint/pkg/ui"
)

var (
	verbosity     int
	caseSensitive bool
	replaceAll    bool
	unbuffered    bool
	formatName    string
	themeName     string
)

// NewRootCmd builds the pipetint command tree.
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:   "pipetint [PATTERN] [COLORS...]",
		Short: "Colorize text from stdin using regex patterns",
		Long: `pipetint reads lines from stdin, matches them against a regular
expression and writes them back with the capture groups colored.

Styling survives pipes: a downstream pipetint stage decodes the colors
added upstream and anything it highlights itself takes precedence, so
stages compose naturally.

Each COLORS argument styles one capture group (1-based). Join several
colors with commas to stack them on one group (e.g. red,bold). Inner
capture groups always win over the groups that contain them.`,
		Example: helpExamples(),
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:          runRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false,
		"Make pattern matching case sensitive")
	rootCmd.Flags().BoolVar(&replaceAll, "replace-all", false,
		"Clear all previous colors before applying new ones (useful in pipelines)")
	rootCmd.Flags().BoolVarP(&unbuffered, "unbuffered", "u", false,
		"Flush output after each line (real-time log streaming)")
	rootCmd.Flags().StringVar(&formatName, "format", "",
		"Output format: auto, styled, plain or markup")
	rootCmd.Flags().StringVar(&themeName, "theme", "",
		"Apply a named theme instead of PATTERN and COLORS")

	rootCmd.AddCommand(colorsCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(manCmd)

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger("cmd.root")

	settings, err := config.Load()
	if err != nil {
		return err
	}

	pattern := settings.Pattern
	colorArgs := settings.Colors
	sensitive := settings.CaseSensitive || caseSensitive

	usingDefaults := len(args) == 0 && themeName == ""
	if len(args) > 0 {
		pattern = args[0]
		if len(args) > 1 {
			colorArgs = args[1:]
		}
	}

	if themeName != "" {
		theme, err := config.LoadTheme(themeName)
		if err != nil {
			return err
		}
		pattern = theme.Pattern
		colorArgs = theme.Colors
		sensitive = theme.CaseSensitive || caseSensitive
	}

	// Interactive terminal with nothing to do: show help instead of
	// blocking on a stdin that will never deliver a pipe.
	if usingDefaults && isatty.IsTerminal(os.Stdin.Fd()) {
		return cmd.Help()
	}

	name := formatName
	if name == "" {
		name = settings.Format
	}
	format, err := ui.ParseFormat(name)
	if err != nil {
		return tinterrors.Wrap(err, tinterrors.ErrInvalidInput, "invalid --format")
	}
	mode := format.Mode()

	compiled, err := tint.Compile(pattern, sensitive)
	if err != nil {
		return err
	}

	// Validate color assignments once, before any input is consumed.
	if _, err := tint.New("").HighlightWith(compiled, colorArgs, tint.HighlightOptions{}); err != nil {
		return err
	}

	logger.Debug().
		Str("pattern", pattern).
		Strs("colors", colorArgs).
		Bool("caseSensitive", sensitive).
		Bool("replaceAll", replaceAll).
		Str("format", format.String()).
		Msg("Starting stream")

	return stream(os.Stdin, os.Stdout, compiled, colorArgs, mode)
}

// stream applies the highlight to every input line. Write errors from
// a closed downstream pipe end the stream silently; every other error
// is reported.
func stream(in io.Reader, out io.Writer, p *tint.Pattern, colorArgs []string, mode tint.Mode) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	writer := bufio.NewWriter(out)
	defer writer.Flush()

	flushEachLine := unbuffered || isatty.IsTerminal(os.Stdout.Fd())

	for scanner.Scan() {
		result, err := processLine(scanner.Text(), p, colorArgs, mode)
		if err != nil {
			return err
		}
		if _, err := writer.WriteString(result + "\n"); err != nil {
			if isBrokenPipe(err) {
				return nil
			}
			return err
		}
		if flushEachLine {
			if err := writer.Flush(); err != nil {
				if isBrokenPipe(err) {
					return nil
				}
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return tinterrors.Wrap(err, tinterrors.ErrInvalidInput, "failed to read input")
	}
	return nil
}

// processLine runs one line through the engine: decode any styling a
// previous pipe stage added, apply the highlight, render.
func processLine(line string, p *tint.Pattern, colorArgs []string, mode tint.Mode) (string, error) {
	t := tint.Parse(line)
	t, err := t.HighlightWith(p, colorArgs, tint.HighlightOptions{ReplaceAll: replaceAll})
	if err != nil {
		return "", err
	}
	return t.Render(mode), nil
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}

// helpExamples renders the usage examples, colored through the engine
// itself when stdout is an interactive color terminal.
func helpExamples() string {
	colored := ui.ChromeIsColored(os.Stdout)

	show := func(input, pattern string, assignments ...string) string {
		if !colored {
			return input
		}
		p, err := tint.Compile(pattern, false)
		if err != nil {
			return input
		}
		t, err := tint.New(input).Highlight(p, assignments)
		if err != nil {
			return input
		}
		return t.String()
	}

	return fmt.Sprintf(`  # Highlight errors in red
  $ echo "ERROR: Connection failed" | pipetint 'ERROR' red
  %s

  # Nested groups - inner color wins
  $ echo "hello world" | pipetint '(h.(ll))' red blue
  %s

  # Background + foreground on one group
  $ echo "WARN: Check logs" | pipetint 'WARN' black,bg_yellow
  %s

  # Pipeline composition - later stages win
  $ echo "ERROR at 10:30:45" | pipetint 'ERROR' red,bold | pipetint '\d{2}:\d{2}:\d{2}' blue
  %s

  # List all available colors
  $ pipetint colors`,
		show("ERROR: Connection failed", `ERROR`, "red"),
		show("hello world", `(h.(ll))`, "red", "blue"),
		show("WARN: Check logs", `WARN`, "black,bg_yellow"),
		show("ERROR at 10:30:45", `ERROR|(\d{2}:\d{2}:\d{2})`, "blue"),
	)
}
