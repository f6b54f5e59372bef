// Package phrasetable holds the static source-to-target phrase mapping the
// decoder consumes. Tables are loaded once and read-only afterwards; a single
// table may be shared by any number of concurrent decodes.
package phrasetable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lingolabs/phraseo/pkg/phraseo/internalerr"
)

// Entry is one phrase pair. Cost is in bits; lower means more likely.
// Multiple entries may share a source (alternative translations).
type Entry struct {
	Source string
	Target string
	Cost   float64
}

// Table is a read-only collection of phrase entries.
type Table struct {
	entries []Entry
}

// New validates the entries and builds a table. Empty source or target text
// and negative costs are rejected: the decoder assumes well-formed entries.
func New(entries []Entry) (*Table, error) {
	for i, e := range entries {
		if strings.TrimSpace(e.Source) == "" || strings.TrimSpace(e.Target) == "" {
			return nil, fmt.Errorf("entry %d: empty phrase text: %w", i, internalerr.ErrMalformedEntry)
		}
		if e.Cost < 0 {
			return nil, fmt.Errorf("entry %d (%q): negative cost %f: %w", i, e.Source, e.Cost, internalerr.ErrMalformedEntry)
		}
	}
	t := &Table{entries: make([]Entry, len(entries))}
	copy(t.entries, entries)
	return t, nil
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns all phrase pairs. Callers must not mutate the result.
func (t *Table) Entries() []Entry { return t.entries }

// Relevant returns the entries whose source text occurs somewhere in the
// space-joined source sentence. This is a coarse containment pre-filter:
// it can admit a phrase that straddles token boundaries, but exact
// occurrence is re-checked against coverage by the decoder, so false
// positives only cost a little extra work.
func (t *Table) Relevant(source []string) []Entry {
	text := strings.Join(source, " ")
	var out []Entry
	for _, e := range t.entries {
		if strings.Contains(text, e.Source) {
			out = append(out, e)
		}
	}
	return out
}

// Translations returns the entries for an exact source phrase, cheapest
// first.
func (t *Table) Translations(source string) []Entry {
	var out []Entry
	for _, e := range t.entries {
		if e.Source == source {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cost < out[j].Cost })
	return out
}
