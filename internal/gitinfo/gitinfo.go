// Package gitinfo provides read-only git repository introspection for
// changegov: current branch (a scope hint) and the newest semantic version
// tag (a fallback source for the current version). It uses the go-git
// library; changegov never stages, commits, or otherwise mutates the
// repository.
package gitinfo

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"

	"github.com/dlevinson-dev/changegov/internal/semver"
)

// debugLogger logs debug messages when set via SetDebugLogger. Nil disables
// debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations. Pass nil
// to disable. The function signature matches log.Printf.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the repository containing path (or the working directory
// when path is empty), traversing up to find the .git directory.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// CurrentBranch returns the current branch name, or empty string in
// detached HEAD state.
func CurrentBranch() (string, error) {
	repo, err := openRepo("")
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	if !head.Name().IsBranch() {
		logDebug("[gitinfo] CurrentBranch: detached HEAD state")
		return "", nil
	}
	return head.Name().Short(), nil
}

// LatestVersionTag returns the highest tag that parses as a semantic
// version. The boolean is false when the repository has no such tag.
func LatestVersionTag() (semver.Version, bool, error) {
	repo, err := openRepo("")
	if err != nil {
		return semver.Version{}, false, err
	}

	tags, err := repo.Tags()
	if err != nil {
		return semver.Version{}, false, fmt.Errorf("listing tags: %w", err)
	}
	defer tags.Close()

	var best semver.Version
	found := false
	for {
		ref, err := tags.Next()
		if err != nil {
			break
		}
		v, perr := semver.Parse(ref.Name().Short())
		if perr != nil {
			logDebug("[gitinfo] skipping non-semver tag %s", ref.Name().Short())
			continue
		}
		if !found || v.Compare(best) > 0 {
			best = v
			found = true
		}
	}

	logDebug("[gitinfo] LatestVersionTag: %s (found=%v)", best, found)
	return best, found, nil
}

// RepoRoot returns the absolute path of the repository's working tree root.
func RepoRoot() (string, error) {
	repo, err := openRepo("")
	if err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}
