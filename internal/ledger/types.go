// Package ledger implements the append-only changelog ledger: an ordered,
// reverse-chronological sequence of immutable dated entries with a single
// insertion point at the head. The public contract has no update or remove
// operation; immutability is enforced by the component, not by convention.
package ledger

import (
	"fmt"
	"time"
)

// SectionMarker is the fixed heading that opens the ledger section in the
// persisted file. New entries are inserted immediately after it, before all
// prior entries.
const SectionMarker = "## Changelog"

// TimestampLayout is the entry heading timestamp format: ISO date plus
// 24-hour time, minute precision.
const TimestampLayout = "2006-01-02 15:04"

// Entry is a single dated ledger record. It is created once, appended, and
// never edited or removed afterward.
type Entry struct {
	Timestamp time.Time
	// Label optionally tags the entry (rendered parenthetically in the heading).
	Label string
	// Bullets are the entry's change lines, in the order they were recorded.
	Bullets []string
}

// NewEntry constructs an entry with the timestamp normalized to UTC and
// truncated to minute precision, matching what the heading format can
// represent (it carries no zone). This keeps serialize/parse round trips
// exact regardless of the host zone.
func NewEntry(ts time.Time, label string, bullets []string) Entry {
	return Entry{
		Timestamp: ts.UTC().Truncate(time.Minute),
		Label:     label,
		Bullets:   append([]string(nil), bullets...),
	}
}

// Heading renders the entry's heading line.
func (e Entry) Heading() string {
	h := "### " + e.Timestamp.Format(TimestampLayout)
	if e.Label != "" {
		h += " (" + e.Label + ")"
	}
	return h
}

// Equal reports whether two entries have the same timestamp, label, and
// bullet sequence.
func (e Entry) Equal(other Entry) bool {
	if !e.Timestamp.Equal(other.Timestamp) || e.Label != other.Label || len(e.Bullets) != len(other.Bullets) {
		return false
	}
	for i := range e.Bullets {
		if e.Bullets[i] != other.Bullets[i] {
			return false
		}
	}
	return true
}

// Ledger holds entries newest-first. The only mutation is Prepend.
type Ledger struct {
	// Preamble is any file content preceding the section marker. It is
	// preserved verbatim across parse/render cycles and never touched by
	// appends.
	Preamble string

	entries []Entry
}

// New returns an empty ledger with the default preamble.
func New() *Ledger {
	return &Ledger{Preamble: "# Changelog\n\n"}
}

// Prepend inserts an entry at the head of the ledger. Prior entries are
// never reordered or modified.
func (l *Ledger) Prepend(e Entry) {
	l.entries = append([]Entry{e}, l.entries...)
}

// Entries returns the entries newest-first. The returned slice is a copy;
// mutating it does not affect the ledger.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// ParseError reports a malformed line in a persisted ledger section.
type ParseError struct {
	Line    int
	Content string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ledger line %d: %s (%q)", e.Line, e.Reason, e.Content)
}

// UnavailableError is returned when the ledger's backing store cannot be
// read or written.
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("ledger at %s unavailable: %v", e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}
