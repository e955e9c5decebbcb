package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dlevinson-dev/changegov/internal/classify"
	cgerrors "github.com/dlevinson-dev/changegov/internal/errors"
	"github.com/dlevinson-dev/changegov/internal/semver"
)

var (
	bumpTypeFlag     string
	bumpBreakingFlag bool
)

var bumpCmd = &cobra.Command{
	Use:   "bump <current> [summary]",
	Short: "Compute the next semantic version (dry run)",
	Long: `Compute the version transition for a change without touching the
ledger or the manifest. The classification comes either from the summary
argument or from an explicit --type flag.

Exactly one version component increases and everything to its right resets:
breaking changes bump major, features bump minor, everything else bumps patch.

Examples:
  changegov bump 1.4.2 "add --retry flag"
  changegov bump 1.5.0 --type fix
  changegov bump 1.5.1 --type refactor --breaking`,
	Args:         cobra.RangeArgs(1, 2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := semver.Parse(args[0])
		if err != nil {
			cgerrors.FprintError(cmd.ErrOrStderr(), cgerrors.Wrap(err, cgerrors.Validation,
				"Pass the current version as MAJOR.MINOR.PATCH, e.g. 1.4.2"))
			return NewExitError(ExitValidationFailed)
		}

		c, err := resolveClassification(cmd, args[1:], bumpTypeFlag, bumpBreakingFlag)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), semver.Bump(current, c))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bumpCmd)

	bumpCmd.Flags().StringVar(&bumpTypeFlag, "type", "", "Commit type (fix, feat, docs, ...) instead of classifying a summary")
	bumpCmd.Flags().BoolVar(&bumpBreakingFlag, "breaking", false, "Treat the change as breaking")
}

// resolveClassification derives a classification from an explicit --type
// flag or by classifying the summary argument. The --breaking flag wins in
// both paths.
func resolveClassification(cmd *cobra.Command, summaryArgs []string, typeFlag string, breaking bool) (classify.Classification, error) {
	if typeFlag != "" {
		t, err := classify.ParseType(typeFlag)
		if err != nil {
			cgerrors.FprintError(cmd.ErrOrStderr(), cgerrors.Wrap(err, cgerrors.Argument))
			return classify.Classification{}, NewExitError(ExitInvalidArguments)
		}
		c := classify.Classification{Type: t, Breaking: breaking}
		return c, nil
	}

	if len(summaryArgs) == 0 {
		cgerrors.FprintError(cmd.ErrOrStderr(), cgerrors.NewArgumentError(
			"no summary and no --type given",
			"Pass a change summary to classify, or an explicit --type"))
		return classify.Classification{}, NewExitError(ExitInvalidArguments)
	}

	d := classify.Descriptor{Summary: summaryArgs[0]}
	if cmd.Flags().Changed("breaking") {
		d.Breaking = &breaking
	}

	c, err := classify.Classify(d)
	if err != nil {
		var ambiguous *classify.AmbiguousError
		if errors.As(err, &ambiguous) {
			cgerrors.FprintError(cmd.ErrOrStderr(), cgerrors.Wrap(err, cgerrors.Classification,
				"Re-describe the change, or pass an explicit --type"))
			return classify.Classification{}, NewExitError(ExitAmbiguous)
		}
		return classify.Classification{}, err
	}
	return c, nil
}
