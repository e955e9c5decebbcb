// Package commitmsg builds and renders conventional commit messages under
// strict formatting constraints. Validation is exhaustive and fail-fast:
// the builder reports the offending field with a typed error and never
// truncates or rewrites input to make it fit.
package commitmsg

import (
	"strconv"
	"strings"

	"github.com/dlevinson-dev/changegov/internal/classify"
)

const (
	// MaxSubjectLen is the maximum subject length in characters.
	MaxSubjectLen = 50
	// MaxBodyLineLen is the maximum length of a single body line.
	MaxBodyLineLen = 72
	// MaxMessageLen bounds the serialized message: total length must be
	// strictly less than this.
	MaxMessageLen = 500
)

// forbiddenChars must not appear in the subject or body. The breaking
// marker "!" is emitted by the renderer itself, never written by the caller.
const forbiddenChars = "$`!\\|&;"

// Message is a validated conventional commit message. Construct it with
// Build; a Message obtained from Build always renders within the limits.
type Message struct {
	Type     classify.CommitType
	Scope    string
	Breaking bool
	Subject  string
	Body     []string
	// BreakingNote explains the breaking change in the footer.
	BreakingNote string
	// Issues are referenced in the footer as #<n>.
	Issues []int
}

// Build validates all fields against the formatting constraints and returns
// the assembled message. It fails with *SubjectError, *BodyLineError,
// *ForbiddenCharError, or *MessageTooLongError; on any failure no message
// is returned (accept or reject as a whole, no partial construction).
func Build(c classify.Classification, scope, subject string, body []string, issues []int, breakingNote string) (*Message, error) {
	if err := validateSubject(subject); err != nil {
		return nil, err
	}
	if err := validateBody(body); err != nil {
		return nil, err
	}
	if ch, ok := findForbidden(breakingNote); ok {
		return nil, &ForbiddenCharError{Field: "breaking note", Char: ch}
	}

	m := &Message{
		Type:         c.Type,
		Scope:        scope,
		Breaking:     c.Breaking,
		Subject:      subject,
		Body:         body,
		BreakingNote: breakingNote,
		Issues:       issues,
	}
	if m.Breaking && m.BreakingNote == "" {
		m.BreakingNote = subject
	}

	if n := len(m.String()); n >= MaxMessageLen {
		return nil, &MessageTooLongError{Length: n}
	}

	return m, nil
}

func validateSubject(subject string) error {
	if subject == "" {
		return &SubjectError{Subject: subject, Reason: "empty"}
	}
	if len([]rune(subject)) > MaxSubjectLen {
		return &SubjectError{Subject: subject, Reason: "exceeds 50 characters"}
	}
	if strings.HasSuffix(subject, ".") {
		return &SubjectError{Subject: subject, Reason: "trailing period"}
	}
	if ch, ok := findForbidden(subject); ok {
		return &ForbiddenCharError{Field: "subject", Char: ch}
	}
	return nil
}

func validateBody(body []string) error {
	for i, line := range body {
		if len([]rune(line)) > MaxBodyLineLen {
			return &BodyLineError{Line: i + 1, Length: len([]rune(line))}
		}
		if ch, ok := findForbidden(line); ok {
			return &ForbiddenCharError{Field: "body", Char: ch}
		}
	}
	return nil
}

// findForbidden returns the first forbidden character in s. Nested quoting
// (both quote kinds in one field) counts as forbidden: such text cannot be
// safely re-quoted by downstream shells.
func findForbidden(s string) (rune, bool) {
	for _, r := range s {
		if strings.ContainsRune(forbiddenChars, r) {
			return r, true
		}
	}
	if strings.ContainsRune(s, '"') && strings.ContainsRune(s, '\'') {
		return '"', true
	}
	return 0, false
}

// String renders the message in the conventional commit wire format:
// header line, blank line, body, blank line, footer. This is the literal
// text handed to the version-control collaborator.
func (m *Message) String() string {
	var sb strings.Builder

	sb.WriteString(string(m.Type))
	if m.Scope != "" {
		sb.WriteString("(")
		sb.WriteString(m.Scope)
		sb.WriteString(")")
	}
	if m.Breaking {
		sb.WriteString("!")
	}
	sb.WriteString(": ")
	sb.WriteString(m.Subject)

	if len(m.Body) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(strings.Join(m.Body, "\n"))
	}

	footer := m.footerLines()
	if len(footer) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(strings.Join(footer, "\n"))
	}

	return sb.String()
}

func (m *Message) footerLines() []string {
	var lines []string
	if m.Breaking {
		lines = append(lines, "BREAKING CHANGE: "+m.BreakingNote)
	}
	if len(m.Issues) > 0 {
		refs := make([]string, len(m.Issues))
		for i, n := range m.Issues {
			refs[i] = "#" + strconv.Itoa(n)
		}
		lines = append(lines, "Refs: "+strings.Join(refs, ", "))
	}
	return lines
}
