package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lingolabs/phraseo/pkg/phraseo"
	"github.com/lingolabs/phraseo/pkg/phraseo/config"
	"github.com/lingolabs/phraseo/pkg/phraseo/decoder"
	"github.com/lingolabs/phraseo/pkg/phraseo/internalerr"
	"github.com/lingolabs/phraseo/pkg/phraseo/lm"
	"github.com/lingolabs/phraseo/pkg/phraseo/phrasetable"
	"github.com/lingolabs/phraseo/pkg/phraseo/store"
	"github.com/lingolabs/phraseo/pkg/phraseo/store/sqlite"
)

func main() {
	var (
		cfgPath   = flag.String("config", "", "Optional YAML configuration file")
		tablePath = flag.String("table", "", "Fixed-width phrase table file")
		lmPath    = flag.String("lm", "", "Language model file (phraseo-lm format)")
		dbPath    = flag.String("db", "", "Optional SQLite database for phrases and history")
		beam      = flag.Int("beam", 0, "Beam width override")
		topK      = flag.Int("top", 5, "Candidates to print per sentence")
		history   = flag.Int("history", 0, "Print the N most recent saved translations and exit")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = *loaded
	}
	if *tablePath == "" {
		*tablePath = cfg.Paths.PhraseTable
	}
	if *lmPath == "" {
		*lmPath = cfg.Paths.LanguageModel
	}
	if *dbPath == "" {
		*dbPath = cfg.Paths.Database
	}
	if *beam > 0 {
		cfg.Decoder.BeamWidth = *beam
	}

	ctx := context.Background()

	var st store.Store
	if *dbPath != "" {
		var err error
		st, err = sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
	}

	if *history > 0 {
		if st == nil {
			log.Fatal("--db required with --history")
		}
		defer st.Close()
		printHistory(ctx, st, *history)
		return
	}

	table := loadTable(ctx, *tablePath, st)
	model := loadModel(*lmPath)

	translator, err := phraseo.New(phraseo.Options{
		Table: table,
		Model: model,
		Config: decoder.Config{
			BeamWidth:       cfg.Decoder.BeamWidth,
			DistortionAlpha: cfg.Decoder.DistortionAlpha,
			MaxExpansions:   cfg.Decoder.MaxExpansions,
		},
		Store: st,
		TopK:  *topK,
	})
	if err != nil {
		log.Fatalf("create translator: %v", err)
	}
	defer translator.Close()

	sentences := flag.Args()
	if len(sentences) == 0 {
		sentences = readLines(os.Stdin)
	}
	if len(sentences) == 0 {
		log.Fatal("no sentences: pass them as arguments or on stdin")
	}

	log.Printf("phrase table: %d entries, beam width %d", table.Len(), cfg.Decoder.BeamWidth)

	results, err := translator.TranslateBatch(ctx, sentences)
	if err != nil {
		log.Fatalf("translate: %v", err)
	}

	for _, res := range results {
		fmt.Printf("%s\n", strings.Repeat("-", 60))
		fmt.Printf("source : %s\n", strings.Join(res.Source, " "))
		if len(res.Candidates) == 0 {
			fmt.Printf("         ** no complete translation found **\n")
			continue
		}
		best := res.Candidates[0]
		fmt.Printf("best   : %s\n", strings.Join(best.Output, " "))
		fmt.Printf("cost   : %.2f bits\n", best.Cost)
		if len(res.Candidates) > 1 {
			fmt.Printf("top %d:\n", len(res.Candidates))
			for j, c := range res.Candidates {
				fmt.Printf("  %d. %-50s cost=%.2f\n", j+1, strings.Join(c.Output, " "), c.Cost)
			}
		}
	}
}

func loadTable(ctx context.Context, path string, st store.Store) *phrasetable.Table {
	switch {
	case path != "":
		table, err := phrasetable.LoadTextFile(path)
		if err != nil {
			log.Fatalf("load phrase table: %v", err)
		}
		if st != nil {
			if err := phraseo.ImportTable(ctx, st, table); err != nil {
				log.Fatalf("import phrase table: %v", err)
			}
		}
		return table
	case st != nil:
		table, err := phraseo.TableFromStore(ctx, st)
		if errors.Is(err, internalerr.ErrNotFound) {
			log.Fatal("database holds no phrases; import a table with --table")
		}
		if err != nil {
			log.Fatalf("load phrase table from database: %v", err)
		}
		return table
	default:
		log.Fatal("--table or --db required")
		return nil
	}
}

func loadModel(path string) *lm.Model {
	if path == "" {
		log.Fatal("--lm required")
	}
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open language model: %v", err)
	}
	defer f.Close()

	model, err := lm.Load(f)
	if err != nil {
		log.Fatalf("load language model: %v", err)
	}
	return model
}

func printHistory(ctx context.Context, st store.Store, n int) {
	trs, err := st.RecentTranslations(ctx, n)
	if err != nil {
		log.Fatalf("read history: %v", err)
	}
	for _, tr := range trs {
		fmt.Printf("%s  %s\n  %s -> %s  (%.2f bits, beam %d)\n",
			tr.CreatedAt.Format("2006-01-02 15:04:05"), tr.ID, tr.Source, tr.Output, tr.Cost, tr.BeamWidth)
	}
}

func readLines(r *os.File) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
