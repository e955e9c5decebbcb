// Package session orchestrates one governance transaction: classify a
// change, derive the version bump, build the commit message, and append a
// ledger entry. The ledger append is the only side effect; every failure
// propagates before it, so a failed session never leaves a partial write.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dlevinson-dev/changegov/internal/classify"
	"github.com/dlevinson-dev/changegov/internal/commitmsg"
	"github.com/dlevinson-dev/changegov/internal/ledger"
	"github.com/dlevinson-dev/changegov/internal/semver"
)

// Result carries the three artifacts of a governance session.
type Result struct {
	Classification classify.Classification
	NewVersion     semver.Version
	Message        *commitmsg.Message
	Entry          ledger.Entry
}

// Session records change events against a single ledger store. Two
// concurrent Record calls against the same store are serialized by the
// store itself.
type Session struct {
	store *ledger.Store
}

// New creates a session bound to a ledger store.
func New(store *ledger.Store) *Session {
	return &Session{store: store}
}

// Record runs the full governance transaction for one change. The
// descriptor's explicit flags take precedence over text detection, and its
// target version, when set, overrides the computed bump.
func (s *Session) Record(ctx context.Context, d classify.Descriptor, current semver.Version, ts time.Time, label string) (*Result, error) {
	c, err := classify.Classify(d)
	if err != nil {
		return nil, err
	}
	return s.RecordClassified(ctx, d, c, current, ts, label)
}

// RecordClassified records a change whose classification was resolved by
// the caller (for example after interactive disambiguation of an ambiguous
// description).
func (s *Session) RecordClassified(ctx context.Context, d classify.Descriptor, c classify.Classification, current semver.Version, ts time.Time, label string) (*Result, error) {
	next, err := resolveVersion(d, current, c)
	if err != nil {
		return nil, err
	}

	subject := commitmsg.Subjectify(d.Summary)
	msg, err := commitmsg.Build(c, d.Scope, subject, nil, nil, "")
	if err != nil {
		return nil, err
	}

	entry := ledger.NewEntry(ts, label, []string{
		headerLine(msg),
		fmt.Sprintf("version %s -> %s", current, next),
	})

	if err := s.store.Append(ctx, entry); err != nil {
		return nil, err
	}

	return &Result{
		Classification: c,
		NewVersion:     next,
		Message:        msg,
		Entry:          entry,
	}, nil
}

// resolveVersion applies the descriptor's explicit target version when set,
// otherwise computes the bump from the classification.
func resolveVersion(d classify.Descriptor, current semver.Version, c classify.Classification) (semver.Version, error) {
	if d.TargetVersion == "" {
		return semver.Bump(current, c), nil
	}
	target, err := semver.Parse(d.TargetVersion)
	if err != nil {
		return semver.Version{}, err
	}
	return target, nil
}

// headerLine is the first line of the rendered commit message, used as the
// ledger bullet summarizing the change.
func headerLine(m *commitmsg.Message) string {
	header := string(m.Type)
	if m.Scope != "" {
		header += "(" + m.Scope + ")"
	}
	if m.Breaking {
		header += "!"
	}
	return header + ": " + m.Subject
}
