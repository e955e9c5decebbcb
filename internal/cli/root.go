// Package cli implements the changegov command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cgerrors "github.com/dlevinson-dev/changegov/internal/errors"
	"github.com/dlevinson-dev/changegov/internal/gitinfo"
)

var (
	configFlag string
	plainFlag  bool
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "changegov",
	Short: "Change governance for agent-driven development",
	Long: `changegov governs code changes: it classifies a change description
into a conventional commit type, derives the semantic version bump, renders
a validated commit message, and appends an immutable entry to the changelog
ledger.

changegov computes artifacts only. It never stages or commits; the rendered
commit message is handed to your version control tooling as-is.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			gitinfo.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", args...)
			})
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to project config file (default .changegov/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain text output (no colors/icons)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
}

// Execute runs the root command and prints structured errors. It returns a
// non-nil error when the process should exit non-zero.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		// Message already printed where the error occurred.
		return err
	}

	var cliErr *cgerrors.CLIError
	if errors.As(err, &cliErr) {
		cgerrors.PrintError(cliErr)
		return err
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}
