package decoder

import "sort"

// bucket holds every live hypothesis that has covered the same number of
// source positions. Inserts recombine on the fly so a stale, more expensive
// duplicate is never kept around to be expanded later.
type bucket struct {
	order int // language model order, for recombination keys
	hyps  []*Hypothesis
	byKey map[recombKey]int // key -> index into hyps
}

func newBucket(order int) *bucket {
	return &bucket{order: order, byKey: make(map[recombKey]int)}
}

func (b *bucket) len() int { return len(b.hyps) }

// insert adds h unless an equivalent hypothesis with an equal or lower
// score is already present; an equivalent worse one is replaced in place.
func (b *bucket) insert(h *Hypothesis) {
	k := h.key(b.order)
	if i, ok := b.byKey[k]; ok {
		if h.Score < b.hyps[i].Score {
			b.hyps[i] = h
		}
		return
	}
	b.byKey[k] = len(b.hyps)
	b.hyps = append(b.hyps, h)
}

// prune applies histogram pruning: sort ascending by score and keep only
// the cheapest beamWidth hypotheses.
func (b *bucket) prune(beamWidth int) {
	if len(b.hyps) <= beamWidth {
		return
	}
	sort.Slice(b.hyps, func(i, j int) bool { return b.hyps[i].Score < b.hyps[j].Score })
	b.hyps = b.hyps[:beamWidth]

	b.byKey = make(map[recombKey]int, len(b.hyps))
	for i, h := range b.hyps {
		b.byKey[h.key(b.order)] = i
	}
}

// sorted returns the bucket's hypotheses, cheapest first, as a new slice.
func (b *bucket) sorted() []*Hypothesis {
	out := make([]*Hypothesis, len(b.hyps))
	copy(out, b.hyps)
	sort.Slice(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}
