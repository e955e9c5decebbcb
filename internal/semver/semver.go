// Package semver implements the MAJOR.MINOR.PATCH version model and the
// bump rules that translate a change classification into a version
// transition. All functions are pure; the package holds no state.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlevinson-dev/changegov/internal/classify"
)

// Version is an ordered (major, minor, patch) triple of non-negative
// integers. The zero value is "0.0.0".
type Version struct {
	Major int
	Minor int
	Patch int
}

// InvalidVersionError is returned when a version string cannot be parsed
// into three non-negative integers.
type InvalidVersionError struct {
	Input  string
	Reason string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// Parse parses a MAJOR.MINOR.PATCH string. A leading "v" prefix is accepted
// and normalized away. Anything else (missing components, negatives,
// pre-release suffixes) returns *InvalidVersionError.
func Parse(s string) (Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return Version{}, &InvalidVersionError{Input: s, Reason: "expected exactly three dot-separated components"}
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, &InvalidVersionError{Input: s, Reason: fmt.Sprintf("component %q is not an integer", p)}
		}
		if n < 0 {
			return Version{}, &InvalidVersionError{Input: s, Reason: fmt.Sprintf("component %d is negative", n)}
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String renders the version as MAJOR.MINOR.PATCH without a "v" prefix.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater
// than other, comparing major, then minor, then patch.
func (v Version) Compare(other Version) int {
	for _, d := range []int{v.Major - other.Major, v.Minor - other.Minor, v.Patch - other.Patch} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return 0
}

// Bump computes the version transition for a classification. Exactly one
// component increases and every component to its right resets to zero:
//
//	breaking            -> major+1.0.0
//	feat (non-breaking) -> minor+1, patch 0
//	everything else     -> patch+1
//
// Bump is referentially transparent and safe to call speculatively for
// dry runs.
func Bump(current Version, c classify.Classification) Version {
	switch {
	case c.Breaking:
		return Version{Major: current.Major + 1}
	case c.Type == classify.TypeFeat:
		return Version{Major: current.Major, Minor: current.Minor + 1}
	default:
		return Version{Major: current.Major, Minor: current.Minor, Patch: current.Patch + 1}
	}
}
