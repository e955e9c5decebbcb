package classify

import "regexp"

// rule maps a description pattern to a commit type. Rules are evaluated in
// order and the first match wins, so more specific patterns must precede
// more general ones.
type rule struct {
	pattern *regexp.Regexp
	ctype   CommitType
	// breaking marks rules whose match alone implies a breaking change
	// (removal or rename of a public surface).
	breaking bool
}

// defaultRules is the ordered classification table. It is data, not dispatch:
// adding a rule is appending a row. Patterns are matched case-insensitively
// against the descriptor summary.
var defaultRules = []rule{
	// Removal or rename of public surface is breaking. Removing a flag or
	// command changes the public feature surface, so it classifies as feat.
	{re(`\b(remove|drop|delete)\b.*\b(flag|option|command|subcommand)\b`), TypeFeat, true},
	{re(`\b(remove|drop|delete|rename)\b.*\b(public|exported)\b`), TypeRefactor, true},
	{re(`\bincompatibl\w*\b|\bbreaking\b`), TypeFeat, true},

	// Documentation before fix: "fix typo" is a docs change, not a bug fix.
	{re(`\btypo\b|\bwording\b|\bdocs?\b|\bdocumentation\b|\breadme\b|\bcomments?\b`), TypeDocs, false},

	// Tooling and plumbing.
	{re(`\bci\b|\bpipeline\b|\bgithub actions?\b|\bworkflow file\b`), TypeCI, false},
	{re(`\bbuild\b|\bmakefile\b|\bdependenc\w+\b|\bgo\.mod\b`), TypeBuild, false},
	{re(`\bbenchmark\b|\bperformance\b|\bspeed up\b|\boptimi[sz]e\b|\bfaster\b`), TypePerf, false},
	{re(`\btests?\b|\bcoverage\b|\bassert\w*\b`), TypeTest, false},

	// Pure restructuring.
	{re(`\brefactor\w*\b|\bextract\b.*\bhelper\b|\bsplit\b.*\b(function|file|package)\b|\bsimplif\w+\b`), TypeRefactor, false},
	{re(`\bformat\w*\b|\bwhitespace\b|\bindent\w*\b|\blint\w*\b|\bgofmt\b`), TypeStyle, false},

	// Behavior corrections.
	{re(`\bfix\w*\b|\bbug\b|\boff-by-one\b|\bcrash\w*\b|\bpanic\w*\b|\bregression\b|\bcorrect\w*\b`), TypeFix, false},

	// New surface.
	{re(`\badd\w*\b|\bnew\b.*\b(command|flag|option|api|endpoint|field)\b|\bintroduc\w+\b|\bsupport\b|\bimplement\w*\b`), TypeFeat, false},

	// Repository housekeeping.
	{re(`\bchore\w*\b|\bbump\b|\bupdate\b.*\bversion\b|\bcleanup\b|\bhousekeeping\b`), TypeChore, false},
}

func re(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}

// breakingCues match summaries that describe a consumer-visible incompatibility
// even when the matched type rule itself is not inherently breaking.
var breakingCues = []*regexp.Regexp{
	re(`\b(remove|drop|delete)\b.*\b(public|exported|api|flag|option|command)\b`),
	re(`\brename\b.*\b(public|exported|api|flag|option|command)\b`),
	re(`\bincompatibl\w*\b`),
	re(`\bbreaking\b`),
	re(`\bchange\w*\b.*\b(signature|wire format|on-disk format|schema)\b`),
}
