package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/semaphore"
)

// Store persists a ledger to a file. Appends are serialized through a
// single-permit semaphore: "insert at head" is not commutative under
// interleaving, so two concurrent appends against the same store must not
// overlap. Writes are atomic (temp file + rename) so a failed append never
// leaves a half-written ledger behind.
type Store struct {
	path  string
	write *semaphore.Weighted
}

// NewStore creates a store for the ledger file at path. The file does not
// need to exist yet; the first append creates it.
func NewStore(path string) *Store {
	return &Store{
		path:  path,
		write: semaphore.NewWeighted(1),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the persisted ledger. A missing file is not an
// error: it loads as an empty ledger (lazy initialization happens on the
// first append).
func (s *Store) Load() (*Ledger, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, &UnavailableError{Path: s.path, Err: err}
	}
	return Parse(string(data))
}

// Append loads the ledger, prepends the entry, and writes the result back
// atomically. If the file or its section marker is missing, Append
// synthesizes them rather than failing. The context bounds the wait for the
// writer permit.
func (s *Store) Append(ctx context.Context, e Entry) error {
	if err := s.write.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquiring ledger writer: %w", err)
	}
	defer s.write.Release(1)

	l, err := s.Load()
	if err != nil {
		return err
	}
	if l.Len() == 0 && l.Preamble != "" {
		// File content without a ledger section: keep it as the preamble,
		// blank-line separated, and let Render add the marker after it.
		if !strings.HasSuffix(l.Preamble, "\n") {
			l.Preamble += "\n"
		}
		if !strings.HasSuffix(l.Preamble, "\n\n") {
			l.Preamble += "\n"
		}
	}

	l.Prepend(e)

	return s.writeAtomic(l)
}

// writeAtomic renders the ledger to a temp file in the same directory and
// renames it over the target, so readers never observe a partial write.
func (s *Store) writeAtomic(l *Ledger) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &UnavailableError{Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &UnavailableError{Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	if err := Render(l, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &UnavailableError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &UnavailableError{Path: s.path, Err: err}
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &UnavailableError{Path: s.path, Err: err}
	}
	return nil
}
