package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/dlevinson-dev/changegov/internal/classify"
	"github.com/dlevinson-dev/changegov/internal/config"
	cgerrors "github.com/dlevinson-dev/changegov/internal/errors"
	"github.com/dlevinson-dev/changegov/internal/gitinfo"
	"github.com/dlevinson-dev/changegov/internal/ledger"
	"github.com/dlevinson-dev/changegov/internal/manifest"
	"github.com/dlevinson-dev/changegov/internal/semver"
	"github.com/dlevinson-dev/changegov/internal/session"
)

var (
	recordScopeFlag       string
	recordBreakingFlag    bool
	recordLabelFlag       string
	recordCurrentFlag     string
	recordTargetFlag      string
	recordInteractiveFlag bool
)

var recordCmd = &cobra.Command{
	Use:   "record <summary>",
	Short: "Record a change: classify, bump, message, ledger entry",
	Long: `Record one change event as a single governance transaction:
classify the description, compute the version bump, build the commit
message, and append an entry to the changelog ledger. If any step fails,
nothing is written.

The current version is resolved from --current, then the configured
manifest, then the newest semver git tag. When a manifest is configured,
its version field is updated to the new version after the ledger append.

Examples:
  changegov record "fix off-by-one in loop"
  changegov record "remove the --legacy flag" --label cli
  changegov record "add retry flag" --current 1.4.2
  changegov record "overhaul everything" --interactive
  changegov record "emergency hotfix" --target 2.0.1`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().StringVar(&recordScopeFlag, "scope", "", "Commit scope (default: config default_scope)")
	recordCmd.Flags().BoolVar(&recordBreakingFlag, "breaking", false, "Override breaking-change detection")
	recordCmd.Flags().StringVar(&recordLabelFlag, "label", "", "Ledger entry label")
	recordCmd.Flags().StringVar(&recordCurrentFlag, "current", "", "Current version (default: manifest, then newest git tag)")
	recordCmd.Flags().StringVar(&recordTargetFlag, "target", "", "Explicit new version, overriding the computed bump")
	recordCmd.Flags().BoolVarP(&recordInteractiveFlag, "interactive", "i", false, "Pick the commit type interactively when classification is ambiguous")
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	current, err := resolveCurrentVersion(cmd, cfg)
	if err != nil {
		return err
	}

	scope := recordScopeFlag
	if scope == "" {
		scope = cfg.DefaultScope
	}

	d := classify.Descriptor{
		Summary:       args[0],
		Scope:         scope,
		TargetVersion: recordTargetFlag,
	}
	if cmd.Flags().Changed("breaking") {
		d.Breaking = &recordBreakingFlag
	}

	store := ledger.NewStore(cfg.LedgerPath)
	sess := session.New(store)

	result, err := sess.Record(cmd.Context(), d, current, time.Now(), recordLabelFlag)
	var ambiguous *classify.AmbiguousError
	if errors.As(err, &ambiguous) {
		if !recordInteractiveFlag || cfg.Strict {
			cgerrors.FprintError(cmd.ErrOrStderr(), cgerrors.Wrap(err, cgerrors.Classification,
				"Re-describe the change with a verb the rule table knows",
				"Or rerun with --interactive to pick the type yourself"))
			return NewExitError(ExitAmbiguous)
		}
		c, pickErr := pickType(d)
		if pickErr != nil {
			return fmt.Errorf("picking commit type: %w", pickErr)
		}
		result, err = sess.RecordClassified(cmd.Context(), d, c, current, time.Now(), recordLabelFlag)
	}
	if err != nil {
		return reportRecordError(cmd, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n\n%s\n", current, result.NewVersion, result.Message.String())

	if cfg.ManifestPath != "" {
		if err := manifest.Write(cfg.ManifestPath, result.NewVersion); err != nil {
			// The ledger entry is already committed; the manifest is the
			// caller's to fix.
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: updating manifest %s failed: %v\n", cfg.ManifestPath, err)
		}
	}

	return nil
}

// resolveCurrentVersion resolves the version to bump from: the --current
// flag, then the configured manifest, then the newest semver git tag.
func resolveCurrentVersion(cmd *cobra.Command, cfg *config.Configuration) (semver.Version, error) {
	if recordCurrentFlag != "" {
		v, err := semver.Parse(recordCurrentFlag)
		if err != nil {
			cgerrors.FprintError(cmd.ErrOrStderr(), cgerrors.Wrap(err, cgerrors.Validation,
				"Pass --current as MAJOR.MINOR.PATCH, e.g. 1.4.2"))
			return semver.Version{}, NewExitError(ExitValidationFailed)
		}
		return v, nil
	}

	if cfg.ManifestPath != "" {
		v, err := manifest.Read(cfg.ManifestPath)
		if err != nil {
			cgerrors.FprintError(cmd.ErrOrStderr(), cgerrors.WrapWithMessage(err, cgerrors.Configuration,
				"reading version from manifest",
				"Fix the manifest's version field, or pass --current explicitly"))
			return semver.Version{}, NewExitError(ExitValidationFailed)
		}
		return v, nil
	}

	if v, found, err := gitinfo.LatestVersionTag(); err == nil && found {
		return v, nil
	}

	cgerrors.FprintError(cmd.ErrOrStderr(), cgerrors.NewConfigError(
		"cannot determine the current version",
		"Pass --current explicitly",
		"Or set manifest_path in .changegov/config.yml",
		"Or tag a release so the newest semver tag can be used"))
	return semver.Version{}, NewExitError(ExitInvalidArguments)
}

// pickType prompts for the commit type with a fuzzy finder and asks the
// classifier's breaking-change detection to fill in the flag (the explicit
// flag still wins).
func pickType(d classify.Descriptor) (classify.Classification, error) {
	types := classify.ValidTypes()
	idx, err := fuzzyfinder.Find(types, func(i int) string {
		return string(types[i])
	}, fuzzyfinder.WithHeader(fmt.Sprintf("Commit type for %q", d.Summary)))
	if err != nil {
		return classify.Classification{}, err
	}

	c := classify.Classification{Type: types[idx], Breaking: classify.DetectBreaking(d.Summary)}
	if d.Breaking != nil {
		c.Breaking = *d.Breaking
	}
	return c, nil
}

// reportRecordError maps session failures to structured CLI errors and
// exit codes.
func reportRecordError(cmd *cobra.Command, err error) error {
	var unavailable *ledger.UnavailableError
	if errors.As(err, &unavailable) {
		cgerrors.FprintError(cmd.ErrOrStderr(), cgerrors.Wrap(err, cgerrors.Ledger,
			"Check that the ledger path is writable",
			"Set ledger_path in .changegov/config.yml if the default is wrong"))
		return NewExitError(ExitLedgerUnavailable)
	}

	var invalid *semver.InvalidVersionError
	if errors.As(err, &invalid) || isValidationError(err) {
		cgerrors.FprintError(cmd.ErrOrStderr(), cgerrors.Wrap(err, cgerrors.Validation))
		return NewExitError(ExitValidationFailed)
	}

	return err
}
