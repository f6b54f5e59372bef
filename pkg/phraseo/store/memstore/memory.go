package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/lingolabs/phraseo/pkg/phraseo/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu           sync.RWMutex
	phrases      map[pairKey]store.Phrase
	translations []store.Translation
}

type pairKey struct {
	source string
	target string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		phrases: make(map[pairKey]store.Phrase),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertPhrase inserts or replaces a phrase pair.
func (s *Store) UpsertPhrase(ctx context.Context, p store.Phrase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phrases[pairKey{p.Source, p.Target}] = p
	return nil
}

// AllPhrases returns every stored phrase pair.
func (s *Store) AllPhrases(ctx context.Context) ([]store.Phrase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Phrase, 0, len(s.phrases))
	for _, p := range s.phrases {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Cost < out[j].Cost
	})
	return out, nil
}

// PhrasesForSource returns the pairs for one exact source phrase, cheapest
// first.
func (s *Store) PhrasesForSource(ctx context.Context, source string) ([]store.Phrase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Phrase
	for _, p := range s.phrases {
		if p.Source == source {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cost < out[j].Cost })
	return out, nil
}

// SaveTranslation appends a completed decode to the history.
func (s *Store) SaveTranslation(ctx context.Context, tr store.Translation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.translations = append(s.translations, tr)
	return nil
}

// RecentTranslations returns the newest translations first.
func (s *Store) RecentTranslations(ctx context.Context, limit int) ([]store.Translation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	out := make([]store.Translation, len(s.translations))
	copy(out, s.translations)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
