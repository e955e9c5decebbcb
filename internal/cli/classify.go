package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dlevinson-dev/changegov/internal/classify"
	cgerrors "github.com/dlevinson-dev/changegov/internal/errors"
)

var (
	classifyBreakingFlag bool
	classifyJSONFlag     bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <summary>",
	Short: "Classify a change description into a commit type",
	Long: `Classify a free-form change description into a conventional commit
type plus a breaking-change flag.

Classification uses an ordered rule table; the first matching rule wins.
When no rule matches, the command fails rather than guessing: re-describe
the change or use 'changegov record --interactive'.

Examples:
  changegov classify "fix off-by-one in loop"
  changegov classify "remove the --legacy flag"
  changegov classify "rewrite parser" --breaking
  changegov classify "add retry flag" --json`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := classify.Descriptor{Summary: args[0]}
		if cmd.Flags().Changed("breaking") {
			d.Breaking = &classifyBreakingFlag
		}

		c, err := classify.Classify(d)
		if err != nil {
			var ambiguous *classify.AmbiguousError
			if errors.As(err, &ambiguous) {
				cgerrors.FprintError(cmd.ErrOrStderr(), cgerrors.Wrap(err, cgerrors.Classification,
					"Re-describe the change with a verb the rule table knows (fix, add, remove, refactor, ...)",
					"Or run 'changegov record --interactive' to pick the type yourself"))
				return NewExitError(ExitAmbiguous)
			}
			return err
		}

		if classifyJSONFlag {
			out, err := json.Marshal(map[string]any{
				"type":     string(c.Type),
				"breaking": c.Breaking,
			})
			if err != nil {
				return fmt.Errorf("encoding classification: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "type: %s\nbreaking: %v\n", c.Type, c.Breaking)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().BoolVar(&classifyBreakingFlag, "breaking", false, "Override breaking-change detection")
	classifyCmd.Flags().BoolVar(&classifyJSONFlag, "json", false, "Output as JSON")
}
