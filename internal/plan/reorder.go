package plan

import (
	"fmt"
	"sort"
)

// ReorderSingle moves the session at srcIndex in srcDay to dstIndex in
// dstDay and returns the resulting plan. dstIndex is interpreted in
// the post-removal frame of the target day: a same-day forward drag
// lands exactly at dstIndex after the dragged card vacated its slot,
// which is one position earlier than the naive pre-removal reading.
// This is what makes ReorderSingle(ReorderSingle(w,d,i,d,j),d,j,d,i)
// restore the original order. dstIndex == len(sessions) appends.
func ReorderSingle(w Weekly, srcDay string, srcIndex int, dstDay string, dstIndex int) (Weekly, error) {
	if !validDay(srcDay) || !validDay(dstDay) {
		return w, fmt.Errorf("%w: unknown day %q/%q", ErrInvalidParameter, srcDay, dstDay)
	}
	src := w[srcDay].Sessions
	if srcIndex < 0 || srcIndex >= len(src) {
		return w, fmt.Errorf("%w: source index %d out of range", ErrInvalidParameter, srcIndex)
	}
	if dstIndex < 0 || dstIndex > len(w[dstDay].Sessions) {
		return w, fmt.Errorf("%w: target index %d out of range", ErrInvalidParameter, dstIndex)
	}
	if srcDay == dstDay && srcIndex == dstIndex {
		return w, nil
	}

	next := w.Clone()

	sd := next[srcDay]
	moved := sd.Sessions[srcIndex]
	sd.Sessions = append(sd.Sessions[:srcIndex], sd.Sessions[srcIndex+1:]...)
	next[srcDay] = sd

	dd := next[dstDay]
	if dstIndex > len(dd.Sessions) {
		// Same-day append: the removal shortened the day by one.
		dstIndex = len(dd.Sessions)
	}
	dd.Sessions = insertSessions(dd.Sessions, dstIndex, moved)
	next[dstDay] = dd
	return next, nil
}

// ReorderMulti moves the sessions at srcIndices (an unordered set
// within srcDay) as one contiguous block to dstIndex in dstDay,
// preserving their original relative order. Within one day the target
// index is adjusted down by the number of removed indices that sat
// before it. An empty index set is a no-op. Both day edits of a
// cross-day move land in the single returned plan.
func ReorderMulti(w Weekly, srcDay string, srcIndices []int, dstDay string, dstIndex int) (Weekly, error) {
	if !validDay(srcDay) || !validDay(dstDay) {
		return w, fmt.Errorf("%w: unknown day %q/%q", ErrInvalidParameter, srcDay, dstDay)
	}
	if len(srcIndices) == 0 {
		return w, nil
	}
	src := w[srcDay].Sessions
	if dstIndex < 0 || dstIndex > len(w[dstDay].Sessions) {
		return w, fmt.Errorf("%w: target index %d out of range", ErrInvalidParameter, dstIndex)
	}

	idx := append([]int(nil), srcIndices...)
	sort.Ints(idx)
	seen := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		if i < 0 || i >= len(src) {
			return w, fmt.Errorf("%w: source index %d out of range", ErrInvalidParameter, i)
		}
		if _, dup := seen[i]; dup {
			return w, fmt.Errorf("%w: duplicate source index %d", ErrInvalidParameter, i)
		}
		seen[i] = struct{}{}
	}

	next := w.Clone()

	// Collect in ascending (original relative) order, then remove from
	// highest to lowest so earlier indices stay valid.
	moved := make([]Session, 0, len(idx))
	for _, i := range idx {
		moved = append(moved, next[srcDay].Sessions[i])
	}
	sd := next[srcDay]
	for k := len(idx) - 1; k >= 0; k-- {
		i := idx[k]
		sd.Sessions = append(sd.Sessions[:i], sd.Sessions[i+1:]...)
	}
	next[srcDay] = sd

	if srcDay == dstDay {
		shift := 0
		for _, i := range idx {
			if i < dstIndex {
				shift++
			}
		}
		dstIndex -= shift
	}

	dd := next[dstDay]
	dd.Sessions = insertSessions(dd.Sessions, dstIndex, moved...)
	next[dstDay] = dd
	return next, nil
}

// AppendToDay moves the sessions at srcIndices to the end of dstDay.
// This is the first-class "drop below the last card" variant.
func AppendToDay(w Weekly, srcDay string, srcIndices []int, dstDay string) (Weekly, error) {
	if !validDay(dstDay) {
		return w, fmt.Errorf("%w: unknown day %q", ErrInvalidParameter, dstDay)
	}
	return ReorderMulti(w, srcDay, srcIndices, dstDay, len(w[dstDay].Sessions))
}

func insertSessions(list []Session, at int, sessions ...Session) []Session {
	out := make([]Session, 0, len(list)+len(sessions))
	out = append(out, list[:at]...)
	out = append(out, sessions...)
	out = append(out, list[at:]...)
	return out
}
