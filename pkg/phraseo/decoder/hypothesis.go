package decoder

import "strings"

// Hypothesis is a candidate partial translation: the target words emitted so
// far, the accumulated cost in bits, the source coverage, and the end index
// of the most recently translated source span (-1 before the first phrase).
// Hypotheses are immutable after creation; expansion builds new ones.
type Hypothesis struct {
	Output         []string
	Score          float64
	Coverage       Coverage
	LastForeignEnd int
}

func emptyHypothesis(sourceLen int) *Hypothesis {
	return &Hypothesis{
		Coverage:       NewCoverage(sourceLen),
		LastForeignEnd: -1,
	}
}

// recombKey identifies hypotheses that are interchangeable for future
// search: same coverage and same language-model context (the last order-1
// output words), so future translation options and LM costs are identical.
// LastForeignEnd is omitted even though the next distortion charge depends
// on it, so recombination can discard a hypothesis whose next jump would
// have been cheaper.
type recombKey struct {
	coverage string
	context  string
}

func (h *Hypothesis) key(order int) recombKey {
	tail := h.Output
	if n1 := order - 1; len(tail) > n1 {
		tail = tail[len(tail)-n1:]
	}
	return recombKey{
		coverage: h.Coverage.Key(),
		context:  strings.Join(tail, " "),
	}
}
