package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lingolabs/phraseo/pkg/phraseo/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TestSQLiteIntegrationPhrases tests phrase CRUD and lookup ordering
func TestSQLiteIntegrationPhrases(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	seed := []store.Phrase{
		{Source: "la", Target: "the", Cost: 1.0},
		{Source: "la", Target: "that", Cost: 3.5},
		{Source: "la comisión", Target: "the commission", Cost: 2.0},
	}
	for _, p := range seed {
		if err := st.UpsertPhrase(ctx, p); err != nil {
			t.Fatalf("UpsertPhrase: %v", err)
		}
	}

	// Upsert replaces the cost of an existing pair
	if err := st.UpsertPhrase(ctx, store.Phrase{Source: "la", Target: "the", Cost: 0.5}); err != nil {
		t.Fatalf("UpsertPhrase replace: %v", err)
	}

	all, err := st.AllPhrases(ctx)
	if err != nil {
		t.Fatalf("AllPhrases: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("AllPhrases returned %d rows, want 3", len(all))
	}

	forLa, err := st.PhrasesForSource(ctx, "la")
	if err != nil {
		t.Fatalf("PhrasesForSource: %v", err)
	}
	if len(forLa) != 2 {
		t.Fatalf("PhrasesForSource(la) returned %d rows, want 2", len(forLa))
	}
	if forLa[0].Target != "the" || forLa[0].Cost != 0.5 {
		t.Errorf("cheapest pair = %+v, want updated cost first", forLa[0])
	}

	missing, err := st.PhrasesForSource(ctx, "perro")
	if err != nil {
		t.Fatalf("PhrasesForSource(perro): %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("unknown source returned %d rows, want 0", len(missing))
	}
}

// TestSQLiteIntegrationTranslations tests history round trip and ordering
func TestSQLiteIntegrationTranslations(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ids := []string{"01A", "01B", "01C"}
	for i, id := range ids {
		tr := store.Translation{
			ID:        id,
			Source:    "la comisión europea",
			Output:    "the european commission",
			Cost:      10.5 + float64(i),
			BeamWidth: 200,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := st.SaveTranslation(ctx, tr); err != nil {
			t.Fatalf("SaveTranslation: %v", err)
		}
	}

	got, err := st.RecentTranslations(ctx, 2)
	if err != nil {
		t.Fatalf("RecentTranslations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d translations, want 2", len(got))
	}
	if got[0].ID != "01C" || got[1].ID != "01B" {
		t.Errorf("order = [%s %s], want newest first", got[0].ID, got[1].ID)
	}
	if !got[0].CreatedAt.Equal(base.Add(2 * time.Second)) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, base.Add(2*time.Second))
	}
	if got[0].Output != "the european commission" || got[0].BeamWidth != 200 {
		t.Errorf("round trip lost fields: %+v", got[0])
	}
}

// TestSQLiteIntegrationSubsecondOrdering verifies that a whole-second
// timestamp sorts below a later sub-second one in the same second
func TestSQLiteIntegrationSubsecondOrdering(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	whole := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	saves := []store.Translation{
		{ID: "01B", CreatedAt: whole.Add(500 * time.Millisecond)},
		{ID: "01A", CreatedAt: whole},
	}
	for _, tr := range saves {
		tr.Source, tr.Output, tr.BeamWidth = "la", "the", 200
		if err := st.SaveTranslation(ctx, tr); err != nil {
			t.Fatalf("SaveTranslation: %v", err)
		}
	}

	got, err := st.RecentTranslations(ctx, 10)
	if err != nil {
		t.Fatalf("RecentTranslations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d translations, want 2", len(got))
	}
	if got[0].ID != "01B" || got[1].ID != "01A" {
		t.Errorf("order = [%s %s], want the sub-second record first", got[0].ID, got[1].ID)
	}
	if !got[1].CreatedAt.Equal(whole) {
		t.Errorf("whole-second CreatedAt = %v, want %v", got[1].CreatedAt, whole)
	}
}

// TestSQLiteIntegrationReopen verifies data survives reopening the file
func TestSQLiteIntegrationReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := st.UpsertPhrase(ctx, store.Phrase{Source: "europea", Target: "european", Cost: 1.2}); err != nil {
		t.Fatalf("UpsertPhrase: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st2, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()

	all, err := st2.AllPhrases(ctx)
	if err != nil {
		t.Fatalf("AllPhrases: %v", err)
	}
	if len(all) != 1 || all[0].Source != "europea" {
		t.Errorf("AllPhrases after reopen = %v", all)
	}
}
