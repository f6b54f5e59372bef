package store

import (
	"context"
	"time"
)

// Store persists phrase pairs and translation history. Phrase data is
// written by the offline table-building jobs and read once per session;
// translations are appended as decodes complete.
type Store interface {
	Close() error

	// Phrases
	UpsertPhrase(ctx context.Context, p Phrase) error
	AllPhrases(ctx context.Context) ([]Phrase, error)
	PhrasesForSource(ctx context.Context, source string) ([]Phrase, error)

	// Translation history
	SaveTranslation(ctx context.Context, tr Translation) error
	RecentTranslations(ctx context.Context, limit int) ([]Translation, error)
}

// Phrase is a stored phrase pair; cost is in bits.
type Phrase struct {
	Source string
	Target string
	Cost   float64
}

// Translation records one completed decode.
type Translation struct {
	ID        string // ULID
	Source    string
	Output    string
	Cost      float64
	BeamWidth int
	CreatedAt time.Time
}
