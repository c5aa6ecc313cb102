package plan

// Criterion selects sessions declaratively. Exactly one field should
// be set; an empty criterion matches nothing.
type Criterion struct {
	Modality string
	Day      string
	Tag      string
}

func (c Criterion) matches(day string, s Session) bool {
	switch {
	case c.Modality != "":
		return s.Modality == c.Modality
	case c.Day != "":
		return day == c.Day
	case c.Tag != "":
		return s.HasTag(c.Tag)
	}
	return false
}

// Selection tracks which session IDs are selected. It is valid only
// for one plan snapshot; call Prune after the snapshot is replaced so
// that stale IDs do not linger.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips membership of a single session ID.
func (sel *Selection) Toggle(id string) {
	if _, ok := sel.ids[id]; ok {
		delete(sel.ids, id)
		return
	}
	sel.ids[id] = struct{}{}
}

// Has reports whether the ID is selected.
func (sel *Selection) Has(id string) bool {
	_, ok := sel.ids[id]
	return ok
}

// Len returns the number of selected IDs.
func (sel *Selection) Len() int { return len(sel.ids) }

// Clear empties the selection.
func (sel *Selection) Clear() {
	sel.ids = make(map[string]struct{})
}

// ApplyFilter replaces the entire selection with every session in the
// plan matching the criterion. This is a declarative re-selection, not
// an additive one; an empty or unknown criterion yields an empty set.
func (sel *Selection) ApplyFilter(w Weekly, c Criterion) {
	next := make(map[string]struct{})
	for _, day := range DayOrder {
		for _, s := range w[day].Sessions {
			if c.matches(day, s) {
				next[s.ID] = struct{}{}
			}
		}
	}
	sel.ids = next
}

// Prune drops IDs that no longer exist in the given snapshot. Stale
// IDs are harmless (they select nothing) but should not silently
// survive a plan replacement.
func (sel *Selection) Prune(w Weekly) {
	for id := range sel.ids {
		if _, _, ok := w.FindSession(id); !ok {
			delete(sel.ids, id)
		}
	}
}

// IDs returns the selected session IDs in plan order (day order, then
// position within the day), so bulk operations see a stable input.
func (sel *Selection) IDs(w Weekly) []string {
	out := make([]string, 0, len(sel.ids))
	for _, day := range DayOrder {
		for _, s := range w[day].Sessions {
			if _, ok := sel.ids[s.ID]; ok {
				out = append(out, s.ID)
			}
		}
	}
	return out
}
