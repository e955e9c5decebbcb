package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(value string) time.Time {
	t, err := time.Parse(TimestampLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestLedger_PrependKeepsNewestFirst(t *testing.T) {
	l := New()
	first := NewEntry(ts("2026-08-24 09:00"), "", []string{"fix: a"})
	second := NewEntry(ts("2026-08-25 10:30"), "cli", []string{"feat: b"})
	third := NewEntry(ts("2026-08-26 14:05"), "", []string{"docs: c"})

	l.Prepend(first)
	l.Prepend(second)
	l.Prepend(third)

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Equal(third))
	assert.True(t, entries[1].Equal(second))
	assert.True(t, entries[2].Equal(first))
}

func TestLedger_EntriesReturnsCopy(t *testing.T) {
	l := New()
	l.Prepend(NewEntry(ts("2026-08-26 14:05"), "", []string{"fix: a"}))

	entries := l.Entries()
	entries[0] = NewEntry(ts("2020-01-01 00:00"), "tampered", nil)

	fresh := l.Entries()
	assert.Equal(t, "", fresh[0].Label)
	assert.Equal(t, []string{"fix: a"}, fresh[0].Bullets)
}

func TestRenderParse_RoundTrip(t *testing.T) {
	tests := map[string]*Ledger{
		"empty ledger": New(),
		"single entry": func() *Ledger {
			l := New()
			l.Prepend(NewEntry(ts("2026-08-26 14:05"), "cli", []string{"feat!: remove legacy flag", "version 3.2.1 -> 4.0.0"}))
			return l
		}(),
		"multiple entries with and without labels": func() *Ledger {
			l := New()
			l.Prepend(NewEntry(ts("2026-08-24 09:00"), "", []string{"fix: off-by-one"}))
			l.Prepend(NewEntry(ts("2026-08-25 10:30"), "parser", []string{"refactor: extract helper", "version 1.4.2 -> 1.4.3"}))
			return l
		}(),
	}

	for name, original := range tests {
		t.Run(name, func(t *testing.T) {
			rendered := RenderString(original)
			parsed, err := Parse(rendered)
			require.NoError(t, err)

			require.Equal(t, original.Len(), parsed.Len())
			for i, e := range original.Entries() {
				assert.True(t, e.Equal(parsed.Entries()[i]), "entry %d differs", i)
			}

			// Idempotence: rendering the parsed ledger is byte-identical.
			assert.Equal(t, rendered, RenderString(parsed))
		})
	}
}

func TestRenderParse_RoundTripNonUTCZone(t *testing.T) {
	// The heading carries no zone, so entries created in a local zone must
	// still compare equal after a render/parse cycle.
	zone := time.FixedZone("EST", -5*60*60)
	l := New()
	l.Prepend(NewEntry(time.Date(2026, 8, 26, 14, 5, 33, 0, zone), "cli", []string{"fix: a"}))

	parsed, err := Parse(RenderString(l))
	require.NoError(t, err)
	require.Equal(t, 1, parsed.Len())
	assert.True(t, l.Entries()[0].Equal(parsed.Entries()[0]))
}

func TestParse_PreamblePreserved(t *testing.T) {
	doc := "# Changelog for widget\n\nIntro prose kept verbatim.\n\n" + SectionMarker + "\n\n### 2026-08-26 14:05\n- fix: a\n"

	l, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, "# Changelog for widget\n\nIntro prose kept verbatim.\n\n", l.Preamble)
	require.Equal(t, 1, l.Len())

	assert.Equal(t, doc, RenderString(l))
}

func TestParse_NoMarker(t *testing.T) {
	l, err := Parse("# Some other document\n")
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, "# Some other document\n", l.Preamble)
}

func TestParse_Malformed(t *testing.T) {
	tests := map[string]string{
		"stray prose after marker":  SectionMarker + "\nnot a heading\n",
		"bullet before any heading": SectionMarker + "\n- orphan bullet\n",
		"bad timestamp":             SectionMarker + "\n### yesterday at noon\n",
		"unterminated label":        SectionMarker + "\n### 2026-08-26 14:05 (cli\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(doc)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Greater(t, parseErr.Line, 0)
		})
	}
}

func TestEntry_Heading(t *testing.T) {
	withLabel := NewEntry(ts("2026-08-26 14:05"), "cli", nil)
	assert.Equal(t, "### 2026-08-26 14:05 (cli)", withLabel.Heading())

	noLabel := NewEntry(ts("2026-08-26 14:05"), "", nil)
	assert.Equal(t, "### 2026-08-26 14:05", noLabel.Heading())
}

func TestNewEntry_TruncatesToMinute(t *testing.T) {
	precise := time.Date(2026, 8, 26, 14, 5, 33, 123456, time.UTC)
	e := NewEntry(precise, "", nil)
	assert.Equal(t, time.Date(2026, 8, 26, 14, 5, 0, 0, time.UTC), e.Timestamp)
}
