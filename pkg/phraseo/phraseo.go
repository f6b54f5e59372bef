// Package phraseo ties the phrase table, language model and stack decoder
// together behind a single translation facade.
package phraseo

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lingolabs/phraseo/pkg/phraseo/decoder"
	"github.com/lingolabs/phraseo/pkg/phraseo/internalerr"
	"github.com/lingolabs/phraseo/pkg/phraseo/phrasetable"
	"github.com/lingolabs/phraseo/pkg/phraseo/store"
	"github.com/lingolabs/phraseo/pkg/phraseo/tokenizer"
)

// Translator is the main translation facade. The phrase table and language
// model are read-only after construction, so one Translator can serve
// concurrent callers.
type Translator struct {
	dec         *decoder.Decoder
	table       *phrasetable.Table
	st          store.Store
	beamWidth   int
	topK        int
	parallelism int

	idMu    sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Translator instance
type Options struct {
	Table  *phrasetable.Table
	Model  decoder.LanguageModel
	Config decoder.Config // zero value means decoder.DefaultConfig()
	Store  store.Store    // optional translation history sink
	TopK   int            // candidates kept per result; default 5
	// Parallelism bounds concurrent sentence decodes in TranslateBatch;
	// default 4.
	Parallelism int
}

// New creates a Translator with the given dependencies
func New(opts Options) (*Translator, error) {
	if opts.Table == nil {
		return nil, fmt.Errorf("nil phrase table: %w", internalerr.ErrInvalidConfig)
	}
	cfg := opts.Config
	if cfg == (decoder.Config{}) {
		cfg = decoder.DefaultConfig()
	}
	dec, err := decoder.New(opts.Model, cfg)
	if err != nil {
		return nil, err
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = 5
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = 4
	}

	return &Translator{
		dec:         dec,
		table:       opts.Table,
		st:          opts.Store,
		beamWidth:   cfg.BeamWidth,
		topK:        topK,
		parallelism: parallelism,
		entropy:     ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close cleanly shuts down the Translator instance
func (t *Translator) Close() error {
	if t.st == nil {
		return nil
	}
	return t.st.Close()
}

// Candidate is one complete translation with its cost in bits.
type Candidate struct {
	Output []string
	Cost   float64
}

// Result holds the ranked complete translations of one sentence. An empty
// Candidates list means no full-coverage translation was found, which is a
// normal outcome, not an error.
type Result struct {
	ID         string
	Source     []string
	Candidates []Candidate
}

// Best returns the cheapest candidate, if any.
func (r Result) Best() (Candidate, bool) {
	if len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}

// Text returns the best translation as a plain string, or "" when none was
// found.
func (r Result) Text() string {
	best, ok := r.Best()
	if !ok {
		return ""
	}
	return strings.Join(best.Output, " ")
}

// Translate tokenizes and decodes one sentence.
func (t *Translator) Translate(ctx context.Context, text string) (Result, error) {
	return t.TranslateTokens(ctx, tokenizer.Tokenize(text))
}

// TranslateTokens decodes a pre-tokenized sentence. The table's relevance
// pre-filter narrows the options handed to the decoder; when a store is
// configured, the best translation is recorded in the history.
func (t *Translator) TranslateTokens(ctx context.Context, source []string) (Result, error) {
	relevant := t.table.Relevant(source)
	phrases := make([]decoder.Phrase, len(relevant))
	for i, e := range relevant {
		phrases[i] = decoder.NewPhrase(e.Source, e.Target, e.Cost)
	}

	hyps, err := t.dec.Decode(source, phrases)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		ID:     t.newID(),
		Source: source,
	}
	for i, h := range hyps {
		if i >= t.topK {
			break
		}
		res.Candidates = append(res.Candidates, Candidate{Output: h.Output, Cost: h.Score})
	}

	if t.st != nil {
		if best, ok := res.Best(); ok {
			tr := store.Translation{
				ID:        res.ID,
				Source:    strings.Join(source, " "),
				Output:    strings.Join(best.Output, " "),
				Cost:      best.Cost,
				BeamWidth: t.beamWidth,
				CreatedAt: time.Now(),
			}
			if err := t.st.SaveTranslation(ctx, tr); err != nil {
				return Result{}, fmt.Errorf("save translation: %w", err)
			}
		}
	}

	return res, nil
}

// TranslateBatch decodes independent sentences concurrently. The table and
// model are shared read-only; each decode builds its own search state.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string) ([]Result, error) {
	results := make([]Result, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.parallelism)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			res, err := t.Translate(ctx, text)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (t *Translator) newID() string {
	t.idMu.Lock()
	defer t.idMu.Unlock()
	return ulid.MustNew(ulid.Now(), t.entropy).String()
}

// TableFromStore loads every stored phrase pair into a table. A store with
// no phrases yields ErrNotFound rather than an unusable empty table.
func TableFromStore(ctx context.Context, st store.Store) (*phrasetable.Table, error) {
	phrases, err := st.AllPhrases(ctx)
	if err != nil {
		return nil, fmt.Errorf("load phrases: %w", err)
	}
	if len(phrases) == 0 {
		return nil, fmt.Errorf("store holds no phrases: %w", internalerr.ErrNotFound)
	}
	entries := make([]phrasetable.Entry, len(phrases))
	for i, p := range phrases {
		entries[i] = phrasetable.Entry{Source: p.Source, Target: p.Target, Cost: p.Cost}
	}
	return phrasetable.New(entries)
}

// ImportTable copies a table's entries into a store, replacing the cost of
// pairs already present.
func ImportTable(ctx context.Context, st store.Store, table *phrasetable.Table) error {
	for _, e := range table.Entries() {
		p := store.Phrase{Source: e.Source, Target: e.Target, Cost: e.Cost}
		if err := st.UpsertPhrase(ctx, p); err != nil {
			return fmt.Errorf("import %q: %w", e.Source, err)
		}
	}
	return nil
}
