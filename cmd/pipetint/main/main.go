package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pipetint/cmd/pipetint"
	"github.com/arthur-debert/pipetint/pkg/ui/palette"
)

func main() {
	rootCmd := pipetint.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		errorStyle := palette.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))

		fmt.Fprintln(os.Stderr)
		_ = rootCmd.Help()

		os.Exit(1)
	}
}
