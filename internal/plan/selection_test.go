package plan

import (
	"reflect"
	"testing"
)

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("a")
	sel.Toggle("b")
	sel.Toggle("a")
	if sel.Has("a") {
		t.Error("a should be deselected after second toggle")
	}
	if !sel.Has("b") || sel.Len() != 1 {
		t.Errorf("selection = %d ids, want only b", sel.Len())
	}
	sel.Clear()
	if sel.Len() != 0 {
		t.Errorf("Clear left %d ids", sel.Len())
	}
}

func TestSelectionApplyFilter(t *testing.T) {
	w := testWeek(t)
	lunes := w["lunes"]
	lunes.Sessions[0].Tags = []string{"pesado"}
	lunes.Sessions[2].Tags = []string{"pesado", "aerobico"}
	w["lunes"] = lunes

	tests := []struct {
		name string
		crit Criterion
		want []string
	}{
		{"by modality", Criterion{Modality: "Fuerza"}, []string{"a", "b", "e"}},
		{"by day", Criterion{Day: "lunes"}, []string{"a", "b", "c", "d"}},
		{"by tag", Criterion{Tag: "pesado"}, []string{"a", "c"}},
		{"unknown modality", Criterion{Modality: "Yoga"}, []string{}},
		{"empty criterion", Criterion{}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelection()
			sel.Toggle("stale") // declarative filter replaces, never adds
			sel.ApplyFilter(w, tt.crit)
			got := sel.IDs(w)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("IDs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectionApplyFilterIdempotent(t *testing.T) {
	w := testWeek(t)
	sel := NewSelection()
	crit := Criterion{Modality: "Fuerza"}
	sel.ApplyFilter(w, crit)
	once := sel.IDs(w)
	sel.ApplyFilter(w, crit)
	twice := sel.IDs(w)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter not idempotent: %v vs %v", once, twice)
	}
}

func TestSelectionPrune(t *testing.T) {
	w := testWeek(t)
	sel := NewSelection()
	sel.Toggle("a")
	sel.Toggle("e")

	next, err := Move(w, []string{"a"}, "martes")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	sel.Prune(next)
	if !sel.Has("a") || !sel.Has("e") {
		t.Error("ids still present in the snapshot must survive a prune")
	}

	// Drop a from the plan entirely.
	gone := next.Clone()
	dp := gone["martes"]
	dp.Sessions = dp.Sessions[:len(dp.Sessions)-1]
	gone["martes"] = dp
	sel.Prune(gone)
	if sel.Has("a") {
		t.Error("pruned selection still references a removed session")
	}
}
