// Package classify maps free-form change descriptions to conventional commit
// classifications. It drives both version bumping and commit message rendering,
// so the commit type enumeration here is the closed contract shared with any
// external automation that consumes changegov output.
package classify

import "fmt"

// CommitType is a conventional commit type. The set is closed: external
// consumers (reporting, CI automation) rely on exactly these ten values.
type CommitType string

const (
	TypeFix      CommitType = "fix"
	TypeFeat     CommitType = "feat"
	TypeDocs     CommitType = "docs"
	TypeStyle    CommitType = "style"
	TypeRefactor CommitType = "refactor"
	TypeTest     CommitType = "test"
	TypeChore    CommitType = "chore"
	TypeBuild    CommitType = "build"
	TypeCI       CommitType = "ci"
	TypePerf     CommitType = "perf"
)

// ValidTypes returns all commit types in their canonical order.
func ValidTypes() []CommitType {
	return []CommitType{
		TypeFix, TypeFeat, TypeDocs, TypeStyle, TypeRefactor,
		TypeTest, TypeChore, TypeBuild, TypeCI, TypePerf,
	}
}

// ParseType converts a string to a CommitType.
// Returns an error for anything outside the closed enumeration.
func ParseType(s string) (CommitType, error) {
	for _, t := range ValidTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown commit type %q (valid: fix, feat, docs, style, refactor, test, chore, build, ci, perf)", s)
}

// Classification is the (commit type, breaking flag) pair assigned to a change.
// It is always embedded in a commit message or version decision, never
// persisted on its own.
type Classification struct {
	Type     CommitType
	Breaking bool
}

// String renders the classification in conventional commit notation,
// e.g. "feat!" for a breaking feature.
func (c Classification) String() string {
	if c.Breaking {
		return string(c.Type) + "!"
	}
	return string(c.Type)
}

// Descriptor describes a single code change to be governed.
// It is treated as immutable once handed to Classify.
type Descriptor struct {
	// Summary is the free-text description of the change.
	Summary string
	// Scope optionally names the affected component (used in the commit subject).
	Scope string
	// Breaking, when non-nil, overrides breaking-change detection.
	Breaking *bool
	// TargetVersion, when set, overrides the computed version bump.
	TargetVersion string
}

// AmbiguousError is returned when no classification rule matches a
// descriptor. The caller must disambiguate (re-describe the change or pass
// an explicit type); the classifier never guesses.
type AmbiguousError struct {
	Summary string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("cannot classify change %q: no rule matched; re-describe the change or pass an explicit type", e.Summary)
}
