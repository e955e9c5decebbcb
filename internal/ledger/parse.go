package ledger

import (
	"strings"
	"time"
)

// Parse reads a persisted ledger document. Content before the section
// marker becomes the preamble; after the marker, only entry headings,
// bullet lines, and blank lines are legal. A document without the marker
// parses as a ledger with no entries whose preamble is the whole document
// (the store synthesizes the marker on first append).
func Parse(text string) (*Ledger, error) {
	markerIdx := findMarker(text)
	if markerIdx < 0 {
		return &Ledger{Preamble: text}, nil
	}

	l := &Ledger{Preamble: text[:markerIdx]}
	body := text[markerIdx:]
	lines := strings.Split(body, "\n")

	// Count preamble lines so ParseError positions refer to the whole file.
	offset := strings.Count(text[:markerIdx], "\n")

	var current *Entry
	flush := func() {
		if current != nil {
			l.entries = append(l.entries, *current)
			current = nil
		}
	}

	for i, line := range lines[1:] { // lines[0] is the marker itself
		lineno := offset + i + 2
		trimmed := strings.TrimRight(line, " \t")

		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "### "):
			flush()
			e, err := parseHeading(trimmed, lineno)
			if err != nil {
				return nil, err
			}
			current = &e
		case strings.HasPrefix(trimmed, "- "):
			if current == nil {
				return nil, &ParseError{Line: lineno, Content: trimmed, Reason: "bullet before any entry heading"}
			}
			current.Bullets = append(current.Bullets, strings.TrimPrefix(trimmed, "- "))
		default:
			return nil, &ParseError{Line: lineno, Content: trimmed, Reason: "expected entry heading or bullet"}
		}
	}
	flush()

	return l, nil
}

// parseHeading parses "### 2026-08-26 14:05 (label)" with the label part
// optional.
func parseHeading(line string, lineno int) (Entry, error) {
	rest := strings.TrimPrefix(line, "### ")

	label := ""
	if open := strings.Index(rest, " ("); open >= 0 {
		if !strings.HasSuffix(rest, ")") {
			return Entry{}, &ParseError{Line: lineno, Content: line, Reason: "unterminated label"}
		}
		label = rest[open+2 : len(rest)-1]
		rest = rest[:open]
	}

	ts, err := time.Parse(TimestampLayout, rest)
	if err != nil {
		return Entry{}, &ParseError{Line: lineno, Content: line, Reason: "malformed timestamp"}
	}

	return Entry{Timestamp: ts, Label: label}, nil
}

// findMarker returns the byte offset of the section marker line, or -1.
// The marker must occupy a whole line.
func findMarker(text string) int {
	idx := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimRight(line, " \t") == SectionMarker {
			return idx
		}
		idx += len(line) + 1
	}
	return -1
}
