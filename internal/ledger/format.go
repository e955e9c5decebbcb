package ledger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	headingStyle = color.New(color.FgCyan, color.Bold)
	labelStyle   = color.New(color.FgYellow)
	bulletStyle  = color.New(color.FgGreen)
)

// FormatOptions controls terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes ledger entries to the writer with terminal styling,
// newest first. Bullets longer than the resolved width wrap with a hanging
// indent.
func FormatTerminal(entries []Entry, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, e := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := formatEntry(e, w, opts, width); err != nil {
			return fmt.Errorf("formatting entry %s: %w", e.Timestamp.Format(TimestampLayout), err)
		}
	}

	return nil
}

func formatEntry(e Entry, w io.Writer, opts FormatOptions, width int) error {
	heading := e.Timestamp.Format(TimestampLayout)
	label := ""
	if e.Label != "" {
		label = " (" + e.Label + ")"
	}

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "%s%s\n", heading, label); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%s%s\n", headingStyle.Sprint(heading), labelStyle.Sprint(label)); err != nil {
			return err
		}
	}

	for _, b := range e.Bullets {
		if err := formatBullet(b, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

func formatBullet(text string, w io.Writer, opts FormatOptions, width int) error {
	marker := "  - "
	if !opts.Plain {
		marker = "  " + bulletStyle.Sprint("-") + " "
	}

	lines := wrapText(text, width-4)
	for i, line := range lines {
		prefix := marker
		if i > 0 {
			prefix = "    "
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, line); err != nil {
			return err
		}
	}
	return nil
}

// resolveWidth determines the output width: explicit option, then terminal
// width, then a default of 80.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		return w
	}
	return 80
}

// wrapText wraps on word boundaries into lines of at most width characters.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	lines = append(lines, current)
	return lines
}
