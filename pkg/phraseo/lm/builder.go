package lm

// Estimate builds a model from a tokenized corpus by relative-frequency
// estimation for every order up to order. Each sentence is padded with
// order-1 start markers and one end marker; start markers are never
// predicted, only conditioned on.
func Estimate(order int, sentences [][]string) *Model {
	m := New(order, DefaultBackoff)

	counts := make(map[int]map[string]map[string]int64)
	ctxTotals := make(map[int]map[string]int64)
	for o := 1; o <= m.order; o++ {
		counts[o] = make(map[string]map[string]int64)
		ctxTotals[o] = make(map[string]int64)
	}

	for _, sent := range sentences {
		if len(sent) == 0 {
			continue
		}
		padded := make([]string, 0, len(sent)+m.order)
		for i := 0; i < m.order-1; i++ {
			padded = append(padded, StartToken)
		}
		padded = append(padded, sent...)
		padded = append(padded, EndToken)

		for o := 1; o <= m.order; o++ {
			for i := o - 1; i < len(padded); i++ {
				word := padded[i]
				if word == StartToken {
					continue
				}
				key := contextKey(padded[i-o+1 : i])
				words, ok := counts[o][key]
				if !ok {
					words = make(map[string]int64)
					counts[o][key] = words
				}
				words[word]++
				ctxTotals[o][key]++
			}
		}
	}

	for o := 1; o <= m.order; o++ {
		for key, words := range counts[o] {
			total := ctxTotals[o][key]
			if total == 0 {
				continue
			}
			var ctx []string
			if key != "" {
				ctx = splitContextKey(key)
			}
			for word, c := range words {
				m.AddNGram(ctx, word, float64(c)/float64(total))
			}
		}
	}
	m.SetUnigramCount(ctxTotals[1][""])

	return m
}
