package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/lingolabs/phraseo/pkg/phraseo"
	"github.com/lingolabs/phraseo/pkg/phraseo/phrasetable"
	"github.com/lingolabs/phraseo/pkg/phraseo/store/sqlite"
	"github.com/lingolabs/phraseo/pkg/phraseo/tokenizer"
)

// tableinfo summarizes a phrase table and looks up translations for a
// given source phrase.
func main() {
	var (
		tablePath = flag.String("table", "", "Fixed-width phrase table file")
		dbPath    = flag.String("db", "", "SQLite database holding an imported table")
		source    = flag.String("source", "", "Print translations for this source phrase")
		n         = flag.Int("n", 10, "Entries to show in the cheapest/costliest listings")
	)
	flag.Parse()

	table := loadTable(*tablePath, *dbPath)

	if *source != "" {
		phrase := strings.Join(tokenizer.Tokenize(*source), " ")
		entries := table.Translations(phrase)
		if len(entries) == 0 {
			fmt.Printf("no translations for %q\n", phrase)
			return
		}
		for _, e := range entries {
			fmt.Printf("%-40s %-40s %8.2f\n", e.Source, e.Target, e.Cost)
		}
		return
	}

	entries := append([]phrasetable.Entry(nil), table.Entries()...)
	fmt.Printf("entries: %d\n", len(entries))
	if len(entries) == 0 {
		return
	}

	sources := make(map[string]int, len(entries))
	var total float64
	for _, e := range entries {
		sources[e.Source]++
		total += e.Cost
	}
	fmt.Printf("distinct sources: %d\n", len(sources))
	fmt.Printf("mean cost: %.2f bits\n", total/float64(len(entries)))

	sort.Slice(entries, func(i, j int) bool { return entries[i].Cost < entries[j].Cost })

	fmt.Printf("\ncheapest %d:\n", min(*n, len(entries)))
	for _, e := range entries[:min(*n, len(entries))] {
		fmt.Printf("  %-40s %-40s %8.2f\n", e.Source, e.Target, e.Cost)
	}

	fmt.Printf("\ncostliest %d:\n", min(*n, len(entries)))
	for i := len(entries) - 1; i >= max(0, len(entries)-*n); i-- {
		e := entries[i]
		fmt.Printf("  %-40s %-40s %8.2f\n", e.Source, e.Target, e.Cost)
	}
}

func loadTable(tablePath, dbPath string) *phrasetable.Table {
	switch {
	case tablePath != "":
		table, err := phrasetable.LoadTextFile(tablePath)
		if err != nil {
			log.Fatalf("load phrase table: %v", err)
		}
		return table
	case dbPath != "":
		ctx := context.Background()
		st, err := sqlite.Open(ctx, dbPath)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer st.Close()
		table, err := phraseo.TableFromStore(ctx, st)
		if err != nil {
			log.Fatalf("load phrase table from database: %v", err)
		}
		return table
	default:
		log.Fatal("--table or --db required")
		return nil
	}
}
