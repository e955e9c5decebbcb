package commitmsg

import "strings"

// Wrap breaks a paragraph into lines of at most MaxBodyLineLen characters,
// splitting on word boundaries only. Words longer than the limit are kept
// intact on their own line; Build will then reject them rather than cut
// them mid-word.
func Wrap(paragraph string) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if len([]rune(current))+1+len([]rune(w)) > MaxBodyLineLen {
			lines = append(lines, current)
			current = w
			continue
		}
		current += " " + w
	}
	lines = append(lines, current)
	return lines
}

// articles are dropped when deriving a subject from a free-form summary:
// imperative subjects read better without them and every character counts
// against the 50-character limit.
var articles = map[string]bool{"the": true, "a": true, "an": true}

// Subjectify derives a commit subject from a free-form change summary.
// It strips backtick quoting and flag dashes, drops articles, collapses
// whitespace, and trims a trailing period. Unlike Build, this is a
// deliberate normalization step on caller input, not silent rewriting of
// an already-built message.
func Subjectify(summary string) string {
	var words []string
	for _, w := range strings.Fields(summary) {
		w = strings.Trim(w, "`")
		w = strings.TrimLeft(w, "-")
		if w == "" || articles[strings.ToLower(w)] {
			continue
		}
		words = append(words, w)
	}

	subject := strings.Join(words, " ")
	return strings.TrimSuffix(subject, ".")
}
