package lm

import (
	"math"
	"strings"
)

// Sentence boundary markers used for context padding.
const (
	StartToken = "<s>"
	EndToken   = "</s>"
)

// UnseenCost is the cost in bits charged for a word with no probability mass
// at all. A finite ceiling keeps hypothesis scores comparable; returning an
// infinite cost would make every pruning decision degenerate.
const UnseenCost = 30.0

// DefaultBackoff is the constant discount applied when falling back to a
// shorter context.
const DefaultBackoff = 0.4

// Model is a backoff n-gram language model. Probabilities are stored per
// order, keyed by space-joined context; when a context (or a word under it)
// was never observed, the model backs off to the next shorter context,
// discounted by the backoff factor. Read-only after load, safe for
// concurrent use.
type Model struct {
	order         int
	backoff       float64
	probs         map[int]map[string]map[string]float64 // order -> context -> word -> P(word|context)
	totalUnigrams int64
	vocab         map[string]struct{}
}

// New creates an empty model of the given order. A backoff factor outside
// (0,1) falls back to DefaultBackoff.
func New(order int, backoff float64) *Model {
	if order < 1 {
		order = 1
	}
	if backoff <= 0 || backoff >= 1 {
		backoff = DefaultBackoff
	}
	return &Model{
		order:   order,
		backoff: backoff,
		probs:   make(map[int]map[string]map[string]float64),
		vocab:   make(map[string]struct{}),
	}
}

// Order returns the n of the n-gram model.
func (m *Model) Order() int { return m.order }

// Backoff returns the backoff discount factor.
func (m *Model) Backoff() float64 { return m.backoff }

// AddNGram records P(word|context). Contexts longer than order-1 are
// rejected by truncation at query time, not here; loaders are expected to
// supply well-formed entries.
func (m *Model) AddNGram(context []string, word string, prob float64) {
	order := len(context) + 1
	byCtx, ok := m.probs[order]
	if !ok {
		byCtx = make(map[string]map[string]float64)
		m.probs[order] = byCtx
	}
	key := contextKey(context)
	words, ok := byCtx[key]
	if !ok {
		words = make(map[string]float64)
		byCtx[key] = words
	}
	words[word] = prob
	m.vocab[word] = struct{}{}
}

// SetUnigramCount sets the total number of unigram observations, which
// scales the floor probability handed to completely unknown words.
func (m *Model) SetUnigramCount(n int64) { m.totalUnigrams = n }

// Probability returns P(word|context) with backoff. The context is trimmed
// to the model order; a miss at order k falls back to order k-1 discounted
// by the backoff factor, bottoming out at a floor for unknown words.
func (m *Model) Probability(word string, context []string) float64 {
	if len(context) > m.order-1 {
		context = context[len(context)-(m.order-1):]
	}
	order := len(context) + 1

	if byCtx, ok := m.probs[order]; ok {
		if words, ok := byCtx[contextKey(context)]; ok {
			if p, ok := words[word]; ok {
				return p
			}
		}
	}

	if order > 1 {
		return m.backoff * m.Probability(word, context[1:])
	}

	denom := float64(m.totalUnigrams) + float64(len(m.vocab))
	if denom <= 0 {
		return 0
	}
	return 1.0 / denom
}

// CostBits returns the total cost in bits of emitting next conditioned on
// history. The context window is the last order-1 words of history,
// left-padded with the start marker when history is shorter, and slides
// forward over next one word at a time.
func (m *Model) CostBits(history, next []string) float64 {
	n1 := m.order - 1
	window := make([]string, n1)
	for i := range window {
		window[i] = StartToken
	}
	tail := history
	if len(tail) > n1 {
		tail = tail[len(tail)-n1:]
	}
	copy(window[n1-len(tail):], tail)

	total := 0.0
	for _, w := range next {
		total += m.wordCost(w, window)
		if n1 > 0 {
			window = append(window[1:], w)
		}
	}
	return total
}

// SentenceCostBits returns the cost in bits of a complete sentence,
// including the end-of-sentence transition.
func (m *Model) SentenceCostBits(words []string) float64 {
	seq := make([]string, 0, len(words)+1)
	seq = append(seq, words...)
	seq = append(seq, EndToken)
	return m.CostBits(nil, seq)
}

func (m *Model) wordCost(word string, context []string) float64 {
	p := m.Probability(word, context)
	if p <= 0 {
		return UnseenCost
	}
	return -math.Log2(p)
}

func contextKey(context []string) string {
	return strings.Join(context, " ")
}

func splitContextKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, " ")
}
