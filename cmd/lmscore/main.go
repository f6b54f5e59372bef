package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lingolabs/phraseo/pkg/phraseo/lm"
	"github.com/lingolabs/phraseo/pkg/phraseo/tokenizer"
)

// lmscore estimates a backoff n-gram model from a corpus or loads a saved
// one, then reports the cost in bits of each input sentence.
func main() {
	var (
		lmPath     = flag.String("lm", "", "Load a saved language model (phraseo-lm format)")
		corpusPath = flag.String("corpus", "", "Estimate a model from this corpus, one sentence per line")
		order      = flag.Int("order", 3, "Model order when estimating from a corpus")
		savePath   = flag.String("save", "", "Write the estimated model to this path")
	)
	flag.Parse()

	var model *lm.Model
	switch {
	case *lmPath != "":
		f, err := os.Open(*lmPath)
		if err != nil {
			log.Fatalf("open language model: %v", err)
		}
		var lerr error
		model, lerr = lm.Load(f)
		f.Close()
		if lerr != nil {
			log.Fatalf("load language model: %v", lerr)
		}
	case *corpusPath != "":
		sentences := readCorpus(*corpusPath)
		log.Printf("estimating order-%d model from %d sentences", *order, len(sentences))
		model = lm.Estimate(*order, sentences)
	default:
		log.Fatal("--lm or --corpus required")
	}

	if *savePath != "" {
		f, err := os.Create(*savePath)
		if err != nil {
			log.Fatalf("create %s: %v", *savePath, err)
		}
		if err := model.Save(f); err != nil {
			f.Close()
			log.Fatalf("save language model: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("close %s: %v", *savePath, err)
		}
		log.Printf("model written to %s", *savePath)
	}

	sentences := flag.Args()
	if len(sentences) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				sentences = append(sentences, line)
			}
		}
	}

	for _, text := range sentences {
		words := tokenizer.Tokenize(text)
		cost := model.SentenceCostBits(words)
		perWord := cost
		if len(words) > 0 {
			perWord = cost / float64(len(words)+1) // +1 for the end marker
		}
		fmt.Printf("%8.2f bits  %6.2f bits/word  %s\n", cost, perWord, strings.Join(words, " "))
	}
}

func readCorpus(path string) [][]string {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open corpus: %v", err)
	}
	defer f.Close()

	var sentences [][]string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		words := tokenizer.Tokenize(scanner.Text())
		if len(words) > 0 {
			sentences = append(sentences, words)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read corpus: %v", err)
	}
	return sentences
}
