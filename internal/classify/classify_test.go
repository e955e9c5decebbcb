package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_RuleTable(t *testing.T) {
	tests := map[string]struct {
		summary  string
		expected Classification
	}{
		"typo maps to docs": {
			summary:  "fix typo in README",
			expected: Classification{Type: TypeDocs},
		},
		"wording maps to docs": {
			summary:  "improve wording of error message docs",
			expected: Classification{Type: TypeDocs},
		},
		"bug fix maps to fix": {
			summary:  "fix off-by-one in loop",
			expected: Classification{Type: TypeFix},
		},
		"crash maps to fix": {
			summary:  "resolve crash when input is empty",
			expected: Classification{Type: TypeFix},
		},
		"extract helper maps to refactor": {
			summary:  "extract parsing helper",
			expected: Classification{Type: TypeRefactor},
		},
		"new flag maps to feat": {
			summary:  "add a new --retry flag",
			expected: Classification{Type: TypeFeat},
		},
		"new command maps to feat": {
			summary:  "introduce export command",
			expected: Classification{Type: TypeFeat},
		},
		"remove flag is breaking feat": {
			summary:  "remove the --legacy flag",
			expected: Classification{Type: TypeFeat, Breaking: true},
		},
		"drop command is breaking feat": {
			summary:  "drop the migrate subcommand",
			expected: Classification{Type: TypeFeat, Breaking: true},
		},
		"rename public symbol is breaking refactor": {
			summary:  "rename exported Parse to ParseStrict for the public API",
			expected: Classification{Type: TypeRefactor, Breaking: true},
		},
		"ci pipeline maps to ci": {
			summary:  "speed up the CI pipeline cache",
			expected: Classification{Type: TypeCI},
		},
		"benchmark maps to perf": {
			summary:  "optimize hot path shown by benchmark",
			expected: Classification{Type: TypePerf},
		},
		"tests map to test": {
			summary:  "add tests for the parser edge cases",
			expected: Classification{Type: TypeTest},
		},
		"gofmt maps to style": {
			summary:  "run gofmt over the tree",
			expected: Classification{Type: TypeStyle},
		},
		"dependency bump maps to build": {
			summary:  "update go.mod dependency pins",
			expected: Classification{Type: TypeBuild},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := Classify(Descriptor{Summary: tt.summary})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// "fix typo" matches both the docs rule and the fix rule; the docs rule
	// comes first in the table.
	c, err := Classify(Descriptor{Summary: "fix typo in comment"})
	require.NoError(t, err)
	assert.Equal(t, TypeDocs, c.Type)
}

func TestClassify_Ambiguous(t *testing.T) {
	_, err := Classify(Descriptor{Summary: "miscellaneous adjustments"})
	require.Error(t, err)

	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "miscellaneous adjustments", ambiguous.Summary)
}

func TestClassify_ExplicitBreakingFlag(t *testing.T) {
	yes, no := true, false

	tests := map[string]struct {
		descriptor Descriptor
		expected   Classification
	}{
		"flag forces breaking on": {
			descriptor: Descriptor{Summary: "fix off-by-one in loop", Breaking: &yes},
			expected:   Classification{Type: TypeFix, Breaking: true},
		},
		"flag forces breaking off even for removals": {
			descriptor: Descriptor{Summary: "remove the --legacy flag", Breaking: &no},
			expected:   Classification{Type: TypeFeat, Breaking: false},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := Classify(tt.descriptor)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestClassify_BreakingCues(t *testing.T) {
	tests := map[string]string{
		"signature change":   "fix handler by changing the callback signature",
		"wire format change": "correct encoder to change the wire format framing",
		"stated breaking":    "fix validation with a breaking tightening of accepted input",
	}

	for name, summary := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := Classify(Descriptor{Summary: summary})
			require.NoError(t, err)
			assert.True(t, c.Breaking, "summary %q should be detected as breaking", summary)
		})
	}
}

func TestDetectBreaking(t *testing.T) {
	assert.True(t, DetectBreaking("drop the exported Walk API"))
	assert.True(t, DetectBreaking("overhaul storage, changing the on-disk format"))
	assert.False(t, DetectBreaking("tidy internal helpers"))
}

func TestParseType(t *testing.T) {
	for _, valid := range ValidTypes() {
		got, err := ParseType(string(valid))
		require.NoError(t, err)
		assert.Equal(t, valid, got)
	}

	_, err := ParseType("feature")
	require.Error(t, err)

	var ambiguous *AmbiguousError
	assert.False(t, errors.As(err, &ambiguous), "ParseType failure is not a classification ambiguity")
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "feat!", Classification{Type: TypeFeat, Breaking: true}.String())
	assert.Equal(t, "fix", Classification{Type: TypeFix}.String())
}
