package pipetint

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pipetint/internal/version"
	"github.com/arthur-debert/pipetint/pkg/config"
	"github.com/arthur-debert/pipetint/pkg/paths"
	"github.com/arthur-debert/pipetint/pkg/ui"
	"github.com/arthur-debert/pipetint/pkg/ui/palette"
)

//go:embed topics/guide.md
var guideMarkdown string

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List all available colors and text styles",
	Long: `Display every color and attribute name pipetint accepts, each one
demonstrated in its own styling. Pipe through a pager if the list
scrolls past (pipetint colors | less -R).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return palette.Render(cmd.OutOrStdout(), ui.ChromeIsColored(os.Stdout))
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List the named themes found in the themes directory.

Themes are TOML files with a pattern and colors, applied with --theme:

  pattern = "(ERROR)|(WARN)"
  colors = ["red,bold", "yellow"]`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := config.ListThemes()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No themes found in %s\n", paths.ThemesDir())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Available themes:")
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
		}
		return nil
	},
}

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the pipetint usage guide",
	Long:  `Render the full usage guide: patterns, capture groups, color stacking and pipeline composition.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ChromeIsColored(os.Stdout) {
			fmt.Fprint(cmd.OutOrStdout(), guideMarkdown)
			return nil
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			fmt.Fprint(cmd.OutOrStdout(), guideMarkdown)
			return nil
		}
		rendered, err := renderer.Render(guideMarkdown)
		if err != nil {
			fmt.Fprint(cmd.OutOrStdout(), guideMarkdown)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for pipetint`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pipetint version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(pipetint completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ pipetint completion bash > /etc/bash_completion.d/pipetint
  # macOS:
  $ pipetint completion bash > /usr/local/etc/bash_completion.d/pipetint

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ pipetint completion zsh > "${fpath[1]}/_pipetint"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ pipetint completion fish | source
  # To load completions for each session, execute once:
  $ pipetint completion fish > ~/.config/fish/completions/pipetint.fish

PowerShell:
  PS> pipetint completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> pipetint completion powershell > pipetint.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate bash completion")
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate zsh completion")
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
				log.Error().Err(err).Msg("Failed to generate fish completion")
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate powershell completion")
			}
		}
	},
}

var manCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man page",
	Long:  `Generate man page for pipetint`,
	RunE: func(cmd *cobra.Command, args []string) error {
		header := &doc.GenManHeader{
			Title:   "PIPETINT",
			Section: "1",
		}
		return doc.GenManTree(cmd.Root(), header, "/tmp")
	},
}
