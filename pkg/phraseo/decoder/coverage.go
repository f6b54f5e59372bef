package decoder

// Coverage tracks which source positions a hypothesis has translated, one
// flag per token. Each hypothesis owns its vector: expansions mark a clone,
// never the parent's copy.
type Coverage []bool

// NewCoverage returns an all-uncovered vector for a sentence of n tokens.
func NewCoverage(n int) Coverage { return make(Coverage, n) }

// Clone returns an independent copy.
func (c Coverage) Clone() Coverage {
	out := make(Coverage, len(c))
	copy(out, c)
	return out
}

// MarkSpan covers n positions starting at start.
func (c Coverage) MarkSpan(start, n int) {
	for i := start; i < start+n; i++ {
		c[i] = true
	}
}

// Count returns the number of covered positions.
func (c Coverage) Count() int {
	n := 0
	for _, covered := range c {
		if covered {
			n++
		}
	}
	return n
}

// Full reports whether every position is covered.
func (c Coverage) Full() bool {
	for _, covered := range c {
		if !covered {
			return false
		}
	}
	return true
}

// Key returns a compact representation suitable for use in map keys.
func (c Coverage) Key() string {
	b := make([]byte, len(c))
	for i, covered := range c {
		if covered {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}
