package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/claude/coachplan/internal/plan"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func entry(id, client, fecha, block string) plan.HistoricalSession {
	return plan.HistoricalSession{
		ID:        id,
		ClienteID: client,
		Fecha:     fecha,
		DayPlan: plan.DayPlan{
			Focus:    "Fuerza",
			Sessions: []plan.Session{{ID: id + "-s", Block: block, Modality: "Fuerza"}},
		},
	}
}

func TestAppendAndForClient(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, h := range []plan.HistoricalSession{
		entry("h1", "c1", "2026-08-01", "Sentadilla"),
		entry("h2", "c1", "2026-08-15", "Peso muerto"),
		entry("h3", "c2", "2026-08-10", "Remo"),
	} {
		if err := s.Append(ctx, h); err != nil {
			t.Fatalf("Append %s: %v", h.ID, err)
		}
	}

	got, err := s.ForClient(ctx, "c1")
	if err != nil {
		t.Fatalf("ForClient: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].ID != "h2" || got[1].ID != "h1" {
		t.Errorf("order = [%s %s], want most recent first", got[0].ID, got[1].ID)
	}
	if got[0].ClienteID != "c1" || got[0].DayPlan.Sessions[0].Block != "Peso muerto" {
		t.Errorf("round-tripped entry = %+v", got[0])
	}
}

func TestAppendReplacesSameID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, entry("h1", "c1", "2026-08-01", "Sentadilla")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, entry("h1", "c1", "2026-08-02", "Sentadilla frontal")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.ForClient(ctx, "c1")
	if err != nil {
		t.Fatalf("ForClient: %v", err)
	}
	if len(got) != 1 || got[0].Fecha != "2026-08-02" {
		t.Errorf("got %+v, want a single updated entry", got)
	}
}

func TestAppendRejectsIncompleteEntries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, h := range []plan.HistoricalSession{
		{ClienteID: "c1", Fecha: "2026-08-01"},
		{ID: "h1", Fecha: "2026-08-01"},
		{ID: "h1", ClienteID: "c1"},
	} {
		if err := s.Append(ctx, h); err == nil {
			t.Errorf("Append(%+v) succeeded, want error", h)
		}
	}
}

func TestTrimKeepsMostRecentPerClient(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < maxEntriesPerClient+10; i++ {
		fecha := fmt.Sprintf("2026-%02d-%02d", i/28+1, i%28+1)
		h := entry(fmt.Sprintf("h%03d", i), "c1", fecha, "Sentadilla")
		if err := s.Append(ctx, h); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	// Another client is unaffected by c1's trimming.
	if err := s.Append(ctx, entry("other", "c2", "2026-01-01", "Remo")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	n, err := s.Count(ctx, "c1")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != maxEntriesPerClient {
		t.Errorf("c1 has %d entries, want %d", n, maxEntriesPerClient)
	}

	got, err := s.ForClient(ctx, "c1")
	if err != nil {
		t.Fatalf("ForClient: %v", err)
	}
	// The oldest entries were inserted first; they must be the ones dropped.
	for _, h := range got {
		if h.ID < "h010" {
			t.Errorf("entry %s (fecha %s) survived the trim", h.ID, h.Fecha)
		}
	}

	if n, _ := s.Count(ctx, "c2"); n != 1 {
		t.Errorf("c2 has %d entries, want 1", n)
	}
}
