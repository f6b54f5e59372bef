package decoder

import "testing"

func hyp(output []string, score float64, coverage Coverage, lastEnd int) *Hypothesis {
	return &Hypothesis{Output: output, Score: score, Coverage: coverage, LastForeignEnd: lastEnd}
}

func TestRecombinationKeyUsesContextTail(t *testing.T) {
	cov := NewCoverage(3)
	cov.MarkSpan(0, 2)

	a := hyp([]string{"x", "the", "commission"}, 1, cov, 1)
	b := hyp([]string{"y", "the", "commission"}, 2, cov, 1)

	// Trigram model: only the last two words matter.
	if a.key(3) != b.key(3) {
		t.Error("hypotheses differing before the LM context window should share a key")
	}
	// Full-history key for a wider model distinguishes them.
	if a.key(4) == b.key(4) {
		t.Error("hypotheses differing inside the context window should not share a key")
	}
}

func TestRecombinationKeySeparatesCoverage(t *testing.T) {
	covA := NewCoverage(3)
	covA.MarkSpan(0, 1)
	covB := NewCoverage(3)
	covB.MarkSpan(2, 1)

	a := hyp([]string{"the"}, 1, covA, 0)
	b := hyp([]string{"the"}, 1, covB, 2)
	if a.key(2) == b.key(2) {
		t.Error("different coverage must never recombine")
	}
}

func TestInsertKeepsCheaperOfEquivalents(t *testing.T) {
	cov := NewCoverage(2)
	cov.MarkSpan(0, 1)

	b := newBucket(2)
	b.insert(hyp([]string{"the"}, 5, cov, 0))
	b.insert(hyp([]string{"the"}, 3, cov.Clone(), 0))
	if b.len() != 1 {
		t.Fatalf("bucket holds %d hypotheses, want 1 after recombination", b.len())
	}
	if b.hyps[0].Score != 3 {
		t.Errorf("surviving score = %f, want 3 (the cheaper)", b.hyps[0].Score)
	}

	// A later, more expensive equivalent must be discarded.
	b.insert(hyp([]string{"the"}, 4, cov.Clone(), 0))
	if b.len() != 1 || b.hyps[0].Score != 3 {
		t.Errorf("stale duplicate survived: len=%d score=%f", b.len(), b.hyps[0].Score)
	}
}

func TestInsertKeepsDistinctKeys(t *testing.T) {
	cov := NewCoverage(2)
	cov.MarkSpan(0, 1)

	b := newBucket(2)
	b.insert(hyp([]string{"the"}, 1, cov, 0))
	b.insert(hyp([]string{"a"}, 2, cov.Clone(), 0))
	if b.len() != 2 {
		t.Errorf("bucket holds %d hypotheses, want 2 distinct contexts", b.len())
	}
}

func TestPruneBoundsBucketAndKeepsCheapest(t *testing.T) {
	b := newBucket(2)
	for i := 0; i < 10; i++ {
		cov := NewCoverage(10)
		cov.MarkSpan(i, 1)
		b.insert(hyp([]string{"w"}, float64(10-i), cov, i))
	}
	b.prune(3)

	if b.len() != 3 {
		t.Fatalf("bucket holds %d hypotheses after prune, want 3", b.len())
	}
	for _, h := range b.hyps {
		if h.Score > 3 {
			t.Errorf("prune kept score %f; cheapest three are 1,2,3", h.Score)
		}
	}

	// Map stays consistent: reinserting an evicted key must work.
	cov := NewCoverage(10)
	cov.MarkSpan(0, 1)
	b.insert(hyp([]string{"w"}, 0.5, cov, 0))
	if b.len() != 4 {
		t.Errorf("insert after prune: len = %d, want 4", b.len())
	}
}

func TestSortedAscending(t *testing.T) {
	b := newBucket(2)
	scores := []float64{4, 1, 3, 2}
	for i, s := range scores {
		cov := NewCoverage(4)
		cov.MarkSpan(i, 1)
		b.insert(hyp([]string{"w"}, s, cov, i))
	}
	out := b.sorted()
	for i := 1; i < len(out); i++ {
		if out[i-1].Score > out[i].Score {
			t.Fatalf("sorted() not ascending: %f before %f", out[i-1].Score, out[i].Score)
		}
	}
}
