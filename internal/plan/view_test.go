package plan

import (
	"reflect"
	"testing"
)

// viewWeek: lunes 110 min / 4 sessions, martes 40 min / 1 session,
// everything else empty.
func viewWeek(t *testing.T) Weekly {
	t.Helper()
	w := testWeek(t)
	lunes := w["lunes"]
	lunes.Focus = "Fuerza"
	w["lunes"] = lunes
	martes := w["martes"]
	martes.Focus = "Empuje"
	martes.Tags = []string{"descarga"}
	w["martes"] = martes
	return w
}

func TestVisibleDaysPresets(t *testing.T) {
	w := viewWeek(t)
	targets := WeekTargets{Duration: 100}
	tests := []struct {
		name string
		cfg  ViewConfig
		want []string
	}{
		{"all", ViewConfig{Preset: PresetAll}, DayOrder},
		{"weekdays", ViewConfig{Preset: PresetWeekdays}, []string{"lunes", "martes", "miercoles", "jueves", "viernes"}},
		{"weekend", ViewConfig{Preset: PresetWeekend}, []string{"sabado", "domingo"}},
		{"empty days", ViewConfig{Preset: PresetEmpty}, []string{"miercoles", "jueves", "viernes", "sabado", "domingo"}},
		{"exceeded", ViewConfig{Preset: PresetExceeded}, []string{"lunes"}},
		{"custom defaults to all", ViewConfig{Preset: PresetCustom}, DayOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleDays(w, tt.cfg, targets)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VisibleDays = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleDaysPresetFallback(t *testing.T) {
	// No day exceeds an absent target; the preset list is empty and
	// falls back to all days.
	w := viewWeek(t)
	got := VisibleDays(w, ViewConfig{Preset: PresetExceeded}, WeekTargets{})
	if !reflect.DeepEqual(got, DayOrder) {
		t.Errorf("empty preset should fall back to all days, got %v", got)
	}
}

func TestVisibleDaysExceededIgnoresFilterOrder(t *testing.T) {
	// The exceeded preset must return exactly the exceeding days no
	// matter which content filters are also set.
	w := viewWeek(t)
	targets := WeekTargets{Duration: 100}
	cfg := ViewConfig{Preset: PresetExceeded, FocusFilter: "Fuerza", ModalityFilter: "Cardio"}
	got := VisibleDays(w, cfg, targets)
	if !reflect.DeepEqual(got, []string{"lunes"}) {
		t.Errorf("VisibleDays = %v, want [lunes]", got)
	}
}

func TestVisibleDaysCalorieTarget(t *testing.T) {
	w := viewWeek(t)
	// martes: 40 min × 8 = 320 kcal.
	got := VisibleDays(w, ViewConfig{Preset: PresetExceeded}, WeekTargets{Calories: 300})
	if !reflect.DeepEqual(got, []string{"lunes", "martes"}) {
		t.Errorf("VisibleDays = %v, want [lunes martes]", got)
	}
}

func TestVisibleDaysFilters(t *testing.T) {
	w := viewWeek(t)
	tests := []struct {
		name string
		cfg  ViewConfig
		want []string
	}{
		{"only with sessions", ViewConfig{OnlyWithSessions: true}, []string{"lunes", "martes"}},
		{"focus", ViewConfig{FocusFilter: "fuerza"}, []string{"lunes"}},
		{"modality", ViewConfig{ModalityFilter: "Cardio"}, []string{"lunes"}},
		{"exceeded filter", ViewConfig{OnlyExceededTargets: true}, []string{"lunes"}},
		{"stacked", ViewConfig{OnlyWithSessions: true, ModalityFilter: "Fuerza"}, []string{"lunes", "martes"}},
	}
	targets := WeekTargets{Duration: 100}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleDays(w, tt.cfg, targets)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VisibleDays = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleDaysSortModes(t *testing.T) {
	w := viewWeek(t)
	tests := []struct {
		name string
		cfg  ViewConfig
		want []string
	}{
		{"sessions desc", ViewConfig{SortMode: SortSessions, OnlyWithSessions: true}, []string{"lunes", "martes"}},
		{"duration desc", ViewConfig{SortMode: SortDuration, OnlyWithSessions: true}, []string{"lunes", "martes"}},
		{"alphabetical", ViewConfig{SortMode: SortAlphabetical, OnlyWithSessions: true}, []string{"lunes", "martes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleDays(w, tt.cfg, WeekTargets{})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VisibleDays = %v, want %v", got, tt.want)
			}
		})
	}

	// Alphabetical over the whole week exercises a real re-ordering.
	got := VisibleDays(w, ViewConfig{SortMode: SortAlphabetical}, WeekTargets{})
	want := []string{"domingo", "jueves", "lunes", "martes", "miercoles", "sabado", "viernes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("alphabetical = %v, want %v", got, want)
	}
}

func TestVisibleDaysTruncation(t *testing.T) {
	w := viewWeek(t)
	got := VisibleDays(w, ViewConfig{MaxVisibleDays: 3}, WeekTargets{})
	if !reflect.DeepEqual(got, []string{"lunes", "martes", "miercoles"}) {
		t.Errorf("VisibleDays = %v", got)
	}
	// Zero means unlimited rather than hiding everything.
	if got := VisibleDays(w, ViewConfig{}, WeekTargets{}); len(got) != 7 {
		t.Errorf("unbounded view shows %d days, want 7", len(got))
	}
}

func TestVisibleDaysSelectionModes(t *testing.T) {
	w := viewWeek(t)
	lunes := w["lunes"]
	lunes.Sessions[0].Tags = []string{"pesado"}
	w["lunes"] = lunes

	tests := []struct {
		name string
		cfg  ViewConfig
		want []string
	}{
		{"manual pins", ViewConfig{SelectionMode: SelectManual, PinnedDays: []string{"viernes", "lunes", "nope"}}, []string{"viernes", "lunes"}},
		{"weekday substring", ViewConfig{SelectionMode: SelectWeekday, WeekdayQuery: "mar"}, []string{"martes"}},
		{"tag matches day tag", ViewConfig{SelectionMode: SelectTag, TagQuery: "descarga"}, []string{"martes"}},
		{"tag matches session tag", ViewConfig{SelectionMode: SelectTag, TagQuery: "pesado"}, []string{"lunes"}},
		{"tag without match", ViewConfig{SelectionMode: SelectTag, TagQuery: "zzz"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleDays(w, tt.cfg, WeekTargets{})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VisibleDays = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleDaysIsPure(t *testing.T) {
	w := viewWeek(t)
	cfg := ViewConfig{Preset: PresetAll, SortMode: SortAlphabetical}
	a := VisibleDays(w, cfg, WeekTargets{})
	b := VisibleDays(w, cfg, WeekTargets{})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated derivation differs: %v vs %v", a, b)
	}
	if !sameIDs(w["lunes"].Sessions, "a", "b", "c", "d") {
		t.Error("view derivation mutated the plan")
	}
}
