// Package decoder implements stack decoding for phrase-based translation:
// beam search over partial translations organized into stacks indexed by how
// many source words each has covered. A hypothesis in stack k only ever
// expands into stacks above k, so processing stacks in increasing order
// visits every hypothesis exactly once and terminates after L+1 stacks.
package decoder

import (
	"fmt"
	"math"
	"strings"

	"github.com/lingolabs/phraseo/pkg/phraseo/internalerr"
)

// Phrase is one translation option: pre-tokenized source and target text
// plus the table cost in bits.
type Phrase struct {
	Source []string
	Target []string
	Cost   float64
}

// NewPhrase builds a Phrase from space-separated phrase text.
func NewPhrase(source, target string, cost float64) Phrase {
	return Phrase{
		Source: strings.Fields(source),
		Target: strings.Fields(target),
		Cost:   cost,
	}
}

// LanguageModel scores target-word continuations. CostBits returns the cost
// in bits of emitting next conditioned on history; implementations must be
// deterministic and side-effect-free, and must handle histories shorter
// than the model order by start padding rather than failing.
type LanguageModel interface {
	Order() int
	CostBits(history, next []string) float64
}

// Config holds the search parameters.
type Config struct {
	BeamWidth       int     // hypotheses kept per stack after pruning
	DistortionAlpha float64 // reordering decay in (0,1); each skipped position costs -log2(alpha) bits
	MaxExpansions   int     // safety valve for pathological tables; 0 disables the cap
}

// DefaultConfig returns the standard search parameters.
func DefaultConfig() Config {
	return Config{
		BeamWidth:       200,
		DistortionAlpha: 0.5,
	}
}

// Decoder runs stack decoding against one language model. It holds no
// per-sentence state, so a single Decoder may serve concurrent Decode calls
// as long as the model and tables are read-only.
type Decoder struct {
	lm            LanguageModel
	cfg           Config
	distortionBit float64 // bits per position of reordering jump
}

// New validates the configuration and builds a Decoder.
func New(lm LanguageModel, cfg Config) (*Decoder, error) {
	if lm == nil {
		return nil, fmt.Errorf("nil language model: %w", internalerr.ErrInvalidConfig)
	}
	if cfg.BeamWidth <= 0 {
		return nil, fmt.Errorf("beam width %d: %w", cfg.BeamWidth, internalerr.ErrInvalidConfig)
	}
	if cfg.DistortionAlpha <= 0 || cfg.DistortionAlpha >= 1 {
		return nil, fmt.Errorf("distortion alpha %g outside (0,1): %w", cfg.DistortionAlpha, internalerr.ErrInvalidConfig)
	}
	if cfg.MaxExpansions < 0 {
		return nil, fmt.Errorf("negative expansion cap %d: %w", cfg.MaxExpansions, internalerr.ErrInvalidConfig)
	}
	return &Decoder{
		lm:            lm,
		cfg:           cfg,
		distortionBit: -math.Log2(cfg.DistortionAlpha),
	}, nil
}

// Decode translates one source sentence against the given phrase options
// and returns every full-coverage hypothesis found, cheapest first. An
// empty result is a normal outcome: the table cannot cover the sentence,
// or pruning discarded all complete paths.
func (d *Decoder) Decode(source []string, table []Phrase) ([]*Hypothesis, error) {
	// Coarse pre-filter: keep options whose source text occurs in the
	// space-joined sentence. Containment can match across token
	// boundaries; the coverage scan below settles exact applicability.
	text := strings.Join(source, " ")
	relevant := make([]Phrase, 0, len(table))
	for _, p := range table {
		if len(p.Source) == 0 || len(p.Target) == 0 || p.Cost < 0 {
			return nil, fmt.Errorf("phrase %q -> %q (cost %g): %w",
				strings.Join(p.Source, " "), strings.Join(p.Target, " "), p.Cost, internalerr.ErrMalformedEntry)
		}
		if strings.Contains(text, strings.Join(p.Source, " ")) {
			relevant = append(relevant, p)
		}
	}

	stacks := make([]*bucket, len(source)+1)
	for i := range stacks {
		stacks[i] = newBucket(d.lm.Order())
	}
	stacks[0].insert(emptyHypothesis(len(source)))

	expansions := 0
	for k := 0; k < len(stacks); k++ {
		// Every expansion covers at least one new position, so inserts
		// land strictly above stack k and this iteration is stable.
		for _, h := range stacks[k].hyps {
			for i := range relevant {
				p := &relevant[i]
				loc := findUncovered(p.Source, source, h.Coverage)
				if loc < 0 {
					continue
				}
				expansions++
				if d.cfg.MaxExpansions > 0 && expansions > d.cfg.MaxExpansions {
					// Past the cap, give up: report no translation
					// instead of a partially explored result set.
					return nil, nil
				}
				next := d.expand(h, p, loc)
				nb := stacks[next.Coverage.Count()]
				nb.insert(next)
				nb.prune(d.cfg.BeamWidth)
			}
		}
	}

	return stacks[len(source)].sorted(), nil
}

// expand applies one phrase at loc, producing the successor hypothesis.
// The new score adds the table cost, the language-model cost of the new
// target words given the emitted output, and the distortion charge for
// jumping away from the position right after the previous phrase.
func (d *Decoder) expand(h *Hypothesis, p *Phrase, loc int) *Hypothesis {
	score := h.Score + p.Cost
	score += d.lm.CostBits(h.Output, p.Target)
	if distance := loc - (h.LastForeignEnd + 1); distance != 0 {
		if distance < 0 {
			distance = -distance
		}
		score += float64(distance) * d.distortionBit
	}

	coverage := h.Coverage.Clone()
	coverage.MarkSpan(loc, len(p.Source))

	output := make([]string, 0, len(h.Output)+len(p.Target))
	output = append(output, h.Output...)
	output = append(output, p.Target...)

	return &Hypothesis{
		Output:         output,
		Score:          score,
		Coverage:       coverage,
		LastForeignEnd: loc + len(p.Source) - 1,
	}
}

// findUncovered returns the leftmost index where phrase occurs as a
// contiguous run of uncovered source tokens, or -1. Checking coverage
// inside the window is what makes repeated words safe: an occurrence
// already translated by an ancestor can never match again.
func findUncovered(phrase, source []string, coverage Coverage) int {
	if len(phrase) == 0 || len(phrase) > len(source) {
		return -1
	}
	for start := 0; start+len(phrase) <= len(source); start++ {
		match := true
		for i, w := range phrase {
			if coverage[start+i] || source[start+i] != w {
				match = false
				break
			}
		}
		if match {
			return start
		}
	}
	return -1
}
