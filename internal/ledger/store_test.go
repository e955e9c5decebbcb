package ledger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestStore_AppendCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	store := NewStore(path)

	entry := NewEntry(ts("2026-08-26 14:05"), "cli", []string{"feat: add retry flag"})
	require.NoError(t, store.Append(context.Background(), entry))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), SectionMarker)
	assert.Contains(t, string(data), "### 2026-08-26 14:05 (cli)")
}

func TestStore_AppendIsMonotonic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	store := NewStore(path)
	ctx := context.Background()

	var previous string
	for i := 0; i < 5; i++ {
		entry := NewEntry(ts(fmt.Sprintf("2026-08-2%d 10:00", i+1)), "", []string{fmt.Sprintf("fix: change %d", i)})
		require.NoError(t, store.Append(ctx, entry))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		current := string(data)

		if previous != "" {
			// Everything after the marker in the previous render must
			// reappear byte-identical: prior entries are never rewritten.
			markerIdx := strings.Index(previous, SectionMarker)
			priorEntries := previous[markerIdx+len(SectionMarker):]
			assert.True(t, strings.HasSuffix(current, priorEntries),
				"append %d rewrote prior entries", i)
		}
		previous = current

		l, err := store.Load()
		require.NoError(t, err)
		require.Equal(t, i+1, l.Len())

		// Newest first.
		entries := l.Entries()
		for j := 1; j < len(entries); j++ {
			assert.True(t, entries[j-1].Timestamp.After(entries[j].Timestamp))
		}
	}
}

func TestStore_SynthesizesMarkerInExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	existing := "# My Project\n\nHand-written introduction.\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	store := NewStore(path)
	entry := NewEntry(ts("2026-08-26 14:05"), "", []string{"fix: a"})
	require.NoError(t, store.Append(context.Background(), entry))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, existing), "existing content is preserved")
	assert.Contains(t, content, SectionMarker)

	l, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, 1, l.Len())
}

func TestStore_ConcurrentAppendsAreSerialized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	store := NewStore(path)

	const writers = 8
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < writers; i++ {
		entry := NewEntry(ts(fmt.Sprintf("2026-08-26 14:0%d", i)), "", []string{fmt.Sprintf("fix: change %d", i)})
		g.Go(func() error {
			return store.Append(ctx, entry)
		})
	}
	require.NoError(t, g.Wait())

	l, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, writers, l.Len(), "no append may be lost to interleaving")
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "CHANGELOG.md"))
	l, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestStore_AppendContextCancelled(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "CHANGELOG.md"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Append(ctx, NewEntry(ts("2026-08-26 14:05"), "", nil))
	require.Error(t, err)
}
