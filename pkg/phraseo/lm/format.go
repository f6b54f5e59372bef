package lm

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// The on-disk model format is line oriented and tab separated:
//
//	phraseo-lm	1
//	order	3
//	backoff	0.4
//	unigrams	152341
//	ngram	2	la	comisión	0.25
//
// An ngram line carries the order, the space-joined context (empty for
// unigrams), the predicted word, and its probability.

const formatMagic = "phraseo-lm"
const formatVersion = 1

// Save writes the model in the phraseo-lm text format. Entries are emitted
// in sorted order so the output is deterministic.
func (m *Model) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\t%d\n", formatMagic, formatVersion)
	fmt.Fprintf(bw, "order\t%d\n", m.order)
	fmt.Fprintf(bw, "backoff\t%g\n", m.backoff)
	fmt.Fprintf(bw, "unigrams\t%d\n", m.totalUnigrams)

	for o := 1; o <= m.order; o++ {
		byCtx := m.probs[o]
		keys := make([]string, 0, len(byCtx))
		for k := range byCtx {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			words := byCtx[key]
			ws := make([]string, 0, len(words))
			for w := range words {
				ws = append(ws, w)
			}
			sort.Strings(ws)
			for _, word := range ws {
				fmt.Fprintf(bw, "ngram\t%d\t%s\t%s\t%g\n", o, key, word, words[word])
			}
		}
	}
	return bw.Flush()
}

// Load reads a model in the phraseo-lm text format.
func Load(r io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("empty model file")
	}
	header := strings.Split(scanner.Text(), "\t")
	if len(header) != 2 || header[0] != formatMagic {
		return nil, fmt.Errorf("not a %s file", formatMagic)
	}

	order := 0
	backoff := DefaultBackoff
	var unigrams int64
	var model *Model

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		switch fields[0] {
		case "order":
			if len(fields) != 2 {
				return nil, fmt.Errorf("malformed order line %q", line)
			}
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("parse order: %w", err)
			}
			order = v
		case "backoff":
			if len(fields) != 2 {
				return nil, fmt.Errorf("malformed backoff line %q", line)
			}
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("parse backoff: %w", err)
			}
			backoff = v
		case "unigrams":
			if len(fields) != 2 {
				return nil, fmt.Errorf("malformed unigrams line %q", line)
			}
			v, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse unigrams: %w", err)
			}
			unigrams = v
		case "ngram":
			if model == nil {
				if order < 1 {
					return nil, fmt.Errorf("ngram line before order header")
				}
				model = New(order, backoff)
				model.SetUnigramCount(unigrams)
			}
			if len(fields) != 5 {
				return nil, fmt.Errorf("malformed ngram line %q", line)
			}
			prob, err := strconv.ParseFloat(fields[4], 64)
			if err != nil {
				return nil, fmt.Errorf("parse ngram line %q: %w", line, err)
			}
			model.AddNGram(splitContextKey(fields[2]), fields[3], prob)
		default:
			return nil, fmt.Errorf("unknown line %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if model == nil {
		if order < 1 {
			return nil, fmt.Errorf("model file missing order header")
		}
		model = New(order, backoff)
		model.SetUnigramCount(unigrams)
	}
	return model, nil
}
