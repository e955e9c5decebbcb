package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlevinson-dev/changegov/internal/classify"
)

func TestParse_Valid(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected Version
	}{
		"plain":            {"1.4.2", Version{1, 4, 2}},
		"v prefix":         {"v3.2.1", Version{3, 2, 1}},
		"zeros":            {"0.0.0", Version{0, 0, 0}},
		"surrounding ws":   {"  2.0.0 ", Version{2, 0, 0}},
		"large components": {"10.20.30", Version{10, 20, 30}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"two components":    "1.4",
		"four components":   "1.4.2.7",
		"non-numeric":       "1.4.x",
		"negative":          "1.-4.2",
		"prerelease suffix": "1.4.2-rc1",
		"empty":             "",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)

			var invalid *InvalidVersionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, input, invalid.Input)
		})
	}
}

func TestBump_Table(t *testing.T) {
	tests := map[string]struct {
		current        string
		classification classify.Classification
		expected       string
	}{
		"feat bumps minor": {
			current:        "1.4.2",
			classification: classify.Classification{Type: classify.TypeFeat},
			expected:       "1.5.0",
		},
		"fix bumps patch": {
			current:        "1.5.0",
			classification: classify.Classification{Type: classify.TypeFix},
			expected:       "1.5.1",
		},
		"breaking bumps major": {
			current:        "1.5.1",
			classification: classify.Classification{Type: classify.TypeRefactor, Breaking: true},
			expected:       "2.0.0",
		},
		"breaking feat bumps major": {
			current:        "3.2.1",
			classification: classify.Classification{Type: classify.TypeFeat, Breaking: true},
			expected:       "4.0.0",
		},
		"docs bumps patch": {
			current:        "0.9.0",
			classification: classify.Classification{Type: classify.TypeDocs},
			expected:       "0.9.1",
		},
		"perf bumps patch": {
			current:        "2.3.9",
			classification: classify.Classification{Type: classify.TypePerf},
			expected:       "2.3.10",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			current, err := Parse(tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Bump(current, tt.classification).String())
		})
	}
}

// TestBump_ExactlyOneComponentIncreases checks the structural invariant for
// every commit type and breaking flag combination: exactly one component
// increases, everything to its right resets to zero, and nothing decreases.
func TestBump_ExactlyOneComponentIncreases(t *testing.T) {
	currents := []Version{{0, 0, 0}, {0, 9, 0}, {1, 4, 2}, {3, 2, 1}, {12, 0, 7}}

	for _, current := range currents {
		for _, ctype := range classify.ValidTypes() {
			for _, breaking := range []bool{false, true} {
				c := classify.Classification{Type: ctype, Breaking: breaking}
				next := Bump(current, c)

				assert.Equal(t, 1, next.Compare(current), "bump from %s with %s must increase the version", current, c)

				switch {
				case next.Major == current.Major+1:
					assert.Equal(t, Version{current.Major + 1, 0, 0}, next)
				case next.Minor == current.Minor+1:
					assert.Equal(t, Version{current.Major, current.Minor + 1, 0}, next)
				default:
					assert.Equal(t, Version{current.Major, current.Minor, current.Patch + 1}, next)
				}
			}
		}
	}
}

func TestBump_Pure(t *testing.T) {
	current := Version{1, 2, 3}
	c := classify.Classification{Type: classify.TypeFeat}

	first := Bump(current, c)
	second := Bump(current, c)

	assert.Equal(t, first, second)
	assert.Equal(t, Version{1, 2, 3}, current, "input is never mutated")
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Version{1, 2, 3}.Compare(Version{1, 2, 3}))
	assert.Equal(t, -1, Version{1, 2, 3}.Compare(Version{1, 2, 4}))
	assert.Equal(t, 1, Version{2, 0, 0}.Compare(Version{1, 9, 9}))
	assert.Equal(t, -1, Version{1, 2, 3}.Compare(Version{1, 3, 0}))
}
