package ledger

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the ledger document: preamble, section marker, then every
// entry newest-first. Given the same ledger it produces identical output,
// and Parse(Render(l)) yields a ledger equal to l.
func Render(l *Ledger, w io.Writer) error {
	preamble := l.Preamble
	if preamble != "" && !strings.HasSuffix(preamble, "\n") {
		preamble += "\n"
	}

	if _, err := io.WriteString(w, preamble+SectionMarker+"\n"); err != nil {
		return fmt.Errorf("writing ledger header: %w", err)
	}

	for _, e := range l.entries {
		if _, err := io.WriteString(w, "\n"+e.Heading()+"\n"); err != nil {
			return fmt.Errorf("writing entry heading: %w", err)
		}
		for _, b := range e.Bullets {
			if _, err := io.WriteString(w, "- "+b+"\n"); err != nil {
				return fmt.Errorf("writing entry bullet: %w", err)
			}
		}
	}

	return nil
}

// RenderString is a convenience wrapper that renders to a string.
func RenderString(l *Ledger) string {
	var sb strings.Builder
	// strings.Builder writes cannot fail.
	_ = Render(l, &sb)
	return sb.String()
}
