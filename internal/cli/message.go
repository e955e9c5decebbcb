package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dlevinson-dev/changegov/internal/commitmsg"
	"github.com/dlevinson-dev/changegov/internal/config"
	cgerrors "github.com/dlevinson-dev/changegov/internal/errors"
)

var (
	messageTypeFlag     string
	messageBreakingFlag bool
	messageScopeFlag    string
	messageSubjectFlag  string
	messageBodyFlags    []string
	messageIssueFlags   []int
	messageNoteFlag     string
)

var messageCmd = &cobra.Command{
	Use:   "message <summary>",
	Short: "Build a validated conventional commit message",
	Long: `Build a conventional commit message from a change summary and print
it. The output is the literal text to hand to your version control tooling.

Validation is exhaustive and fail-fast: subjects over 50 characters, body
lines over 72 characters, forbidden characters ($ ` + "`" + ` ! \ | & ;), and
messages of 500+ characters are rejected with the offending field named.
Nothing is ever truncated or rewritten to fit.

Examples:
  changegov message "fix off-by-one in loop"
  changegov message "remove the --legacy flag" --scope cli
  changegov message "add retry" --body "Retries transient errors." --issue 42
  changegov message "rewrite parser" --type refactor --breaking --note "AST shape changed"`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFlag)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		c, err := resolveClassification(cmd, args, messageTypeFlag, messageBreakingFlag)
		if err != nil {
			return err
		}

		scope := messageScopeFlag
		if scope == "" {
			scope = cfg.DefaultScope
		}

		subject := messageSubjectFlag
		if subject == "" {
			subject = commitmsg.Subjectify(args[0])
		}

		var body []string
		for _, paragraph := range messageBodyFlags {
			if len(body) > 0 {
				body = append(body, "")
			}
			body = append(body, commitmsg.Wrap(paragraph)...)
		}

		msg, err := commitmsg.Build(c, scope, subject, body, messageIssueFlags, messageNoteFlag)
		if err != nil {
			if isValidationError(err) {
				cgerrors.FprintError(cmd.ErrOrStderr(), cgerrors.Wrap(err, cgerrors.Validation,
					"Shorten or reword the offending field; changegov never truncates for you"))
				return NewExitError(ExitValidationFailed)
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), msg.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(messageCmd)

	messageCmd.Flags().StringVar(&messageTypeFlag, "type", "", "Commit type instead of classifying the summary")
	messageCmd.Flags().BoolVar(&messageBreakingFlag, "breaking", false, "Mark the change as breaking")
	messageCmd.Flags().StringVar(&messageScopeFlag, "scope", "", "Commit scope (component name)")
	messageCmd.Flags().StringVar(&messageSubjectFlag, "subject", "", "Explicit subject (default: derived from the summary)")
	messageCmd.Flags().StringArrayVar(&messageBodyFlags, "body", nil, "Body paragraph (repeatable; wrapped at 72 columns)")
	messageCmd.Flags().IntSliceVar(&messageIssueFlags, "issue", nil, "Issue reference for the footer (repeatable)")
	messageCmd.Flags().StringVar(&messageNoteFlag, "note", "", "BREAKING CHANGE explanation (default: the subject)")
}

// isValidationError reports whether err is one of the commitmsg constraint
// violations.
func isValidationError(err error) bool {
	var subjErr *commitmsg.SubjectError
	var bodyErr *commitmsg.BodyLineError
	var charErr *commitmsg.ForbiddenCharError
	var lenErr *commitmsg.MessageTooLongError
	return errors.As(err, &subjErr) || errors.As(err, &bodyErr) ||
		errors.As(err, &charErr) || errors.As(err, &lenErr)
}
