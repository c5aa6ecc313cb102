package plan

import "fmt"

// Callbacks are the contracts the hosting view supplies. Each fires
// after the corresponding operation succeeded and the editor snapshot
// was replaced. Any callback may be nil.
type Callbacks struct {
	OnReorderSessions  func(day string, sessions []Session)
	OnBulkDuplicate    func(ids []string)
	OnBulkMove         func(ids []string, targetDay string)
	OnBulkReduceVolume func(ids []string, percentage float64)
	OnUpdateSession    func(day, sessionID string, updated Session)
	OnDropFromLibrary  func(day string, payload DropPayload)
}

// Editor owns one current plan snapshot plus the live selection and
// routes user gestures through the engines. It is single-threaded by
// contract, matching the event-driven host.
type Editor struct {
	plan      Weekly
	selection *Selection
	cb        Callbacks
}

// NewEditor starts an editor on the given snapshot.
func NewEditor(w Weekly, cb Callbacks) *Editor {
	return &Editor{plan: w.Clone(), selection: NewSelection(), cb: cb}
}

// Plan returns the current snapshot.
func (e *Editor) Plan() Weekly { return e.plan }

// Selection exposes the live selection for toggling and filtering.
func (e *Editor) Selection() *Selection { return e.selection }

// Replace swaps in an externally produced snapshot and prunes the
// selection of IDs that no longer exist.
func (e *Editor) Replace(w Weekly) {
	e.plan = w.Clone()
	e.selection.Prune(e.plan)
}

// ReorderSingle applies a one-session drag and notifies the host with
// the new session lists of the touched days.
func (e *Editor) ReorderSingle(srcDay string, srcIndex int, dstDay string, dstIndex int) error {
	next, err := ReorderSingle(e.plan, srcDay, srcIndex, dstDay, dstIndex)
	if err != nil {
		return err
	}
	e.commitReorder(next, srcDay, dstDay)
	return nil
}

// ReorderSelected drags the currently selected sessions of srcDay to
// dstIndex in dstDay. The selection must lie entirely within srcDay;
// sessions selected elsewhere make the drop undefined input.
func (e *Editor) ReorderSelected(srcDay string, dstDay string, dstIndex int) error {
	indices, err := e.selectedIndices(srcDay)
	if err != nil {
		return err
	}
	next, err := ReorderMulti(e.plan, srcDay, indices, dstDay, dstIndex)
	if err != nil {
		return err
	}
	e.commitReorder(next, srcDay, dstDay)
	return nil
}

func (e *Editor) selectedIndices(srcDay string) ([]int, error) {
	var indices []int
	for id := range e.selection.ids {
		day, idx, ok := e.plan.FindSession(id)
		if !ok {
			continue
		}
		if day != srcDay {
			return nil, fmt.Errorf("%w: selected session %s is in %s, not %s", ErrInvalidParameter, id, day, srcDay)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

func (e *Editor) commitReorder(next Weekly, srcDay, dstDay string) {
	e.plan = next
	if e.cb.OnReorderSessions != nil {
		e.cb.OnReorderSessions(srcDay, next[srcDay].Sessions)
		if dstDay != srcDay {
			e.cb.OnReorderSessions(dstDay, next[dstDay].Sessions)
		}
	}
}

// DuplicateSelected duplicates the selected sessions in place.
func (e *Editor) DuplicateSelected() {
	ids := e.selection.IDs(e.plan)
	if len(ids) == 0 {
		return
	}
	e.plan = Duplicate(e.plan, ids)
	if e.cb.OnBulkDuplicate != nil {
		e.cb.OnBulkDuplicate(ids)
	}
}

// MoveSelected moves the selected sessions to the end of targetDay.
func (e *Editor) MoveSelected(targetDay string) error {
	ids := e.selection.IDs(e.plan)
	if len(ids) == 0 {
		return nil
	}
	next, err := Move(e.plan, ids, targetDay)
	if err != nil {
		return err
	}
	e.plan = next
	if e.cb.OnBulkMove != nil {
		e.cb.OnBulkMove(ids, targetDay)
	}
	return nil
}

// ReduceSelectedVolume scales series and peso of the selected sessions
// down by percentage.
func (e *Editor) ReduceSelectedVolume(percentage float64) error {
	ids := e.selection.IDs(e.plan)
	if len(ids) == 0 {
		return nil
	}
	next, err := ReduceVolume(e.plan, ids, percentage)
	if err != nil {
		return err
	}
	e.plan = next
	if e.cb.OnBulkReduceVolume != nil {
		e.cb.OnBulkReduceVolume(ids, percentage)
	}
	return nil
}

// UpdateSession replaces one session after an inline field edit. The
// session keeps its position and ID.
func (e *Editor) UpdateSession(day, sessionID string, updated Session) error {
	ownDay, idx, ok := e.plan.FindSession(sessionID)
	if !ok || ownDay != day {
		return fmt.Errorf("%w: session %s not found in %s", ErrInvalidParameter, sessionID, day)
	}
	next := e.plan.Clone()
	updated.ID = sessionID
	dp := next[day]
	dp.Sessions[idx] = updated.Clone()
	next[day] = dp
	e.plan = next
	if e.cb.OnUpdateSession != nil {
		e.cb.OnUpdateSession(day, sessionID, updated)
	}
	return nil
}

// HandleDrop routes a drag payload dropped on a day. The editor only
// interprets its own multi-session variant; all other kinds are
// forwarded to the host unchanged.
func (e *Editor) HandleDrop(day string, payload DropPayload) error {
	if payload.Type == PayloadMultiSession {
		item, err := payload.DecodeMultiSession()
		if err != nil {
			return err
		}
		next, err := AppendToDay(e.plan, item.SourceDay, item.Indices, day)
		if err != nil {
			return err
		}
		e.commitReorder(next, item.SourceDay, day)
		return nil
	}
	if e.cb.OnDropFromLibrary != nil {
		e.cb.OnDropFromLibrary(day, payload)
	}
	return nil
}
