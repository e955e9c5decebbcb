package classify

// Classify maps a change descriptor to a classification using the ordered
// rule table. The first matching rule decides the commit type; ties are
// impossible by construction. When no rule matches, Classify returns
// *AmbiguousError rather than defaulting: guessing a type would silently
// misgovern the version bump.
func Classify(d Descriptor) (Classification, error) {
	var c Classification
	matched := false

	for _, r := range defaultRules {
		if r.pattern.MatchString(d.Summary) {
			c.Type = r.ctype
			c.Breaking = r.breaking
			matched = true
			break
		}
	}

	if !matched {
		return Classification{}, &AmbiguousError{Summary: d.Summary}
	}

	if !c.Breaking {
		c.Breaking = DetectBreaking(d.Summary)
	}

	// The explicit flag always wins over text detection, in both directions.
	if d.Breaking != nil {
		c.Breaking = *d.Breaking
	}

	return c, nil
}

// DetectBreaking reports whether the summary describes a consumer-visible
// incompatibility: removal, rename, or an incompatible signature or format
// change of something public. Callers that resolve the commit type
// themselves (interactive disambiguation) can still use it for the
// breaking flag.
func DetectBreaking(summary string) bool {
	for _, cue := range breakingCues {
		if cue.MatchString(summary) {
			return true
		}
	}
	return false
}
