package commitmsg

import "fmt"

// SubjectError reports a subject line constraint violation.
type SubjectError struct {
	Subject string
	Reason  string
}

func (e *SubjectError) Error() string {
	return fmt.Sprintf("invalid subject %q: %s", e.Subject, e.Reason)
}

// BodyLineError reports a body line constraint violation, identified by the
// 1-based line number so the caller can point at the offending input.
type BodyLineError struct {
	Line   int
	Length int
}

func (e *BodyLineError) Error() string {
	return fmt.Sprintf("body line %d is %d characters (max %d)", e.Line, e.Length, MaxBodyLineLen)
}

// ForbiddenCharError reports a forbidden character found in a message field.
type ForbiddenCharError struct {
	Field string // "subject" or "body"
	Char  rune
}

func (e *ForbiddenCharError) Error() string {
	return fmt.Sprintf("forbidden character %q in %s", e.Char, e.Field)
}

// MessageTooLongError reports that the serialized message exceeds the
// total length limit.
type MessageTooLongError struct {
	Length int
}

func (e *MessageTooLongError) Error() string {
	return fmt.Sprintf("serialized message is %d characters (max %d)", e.Length, MaxMessageLen-1)
}
