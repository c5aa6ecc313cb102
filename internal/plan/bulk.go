package plan

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Bulk transforms operate on an explicit list of session IDs rather
// than the live Selection so they stay testable in isolation.
// Unmatched IDs are ignored. Each transform is atomic: it either
// returns a fully transformed plan or the untouched input with an
// error.

// Duplicate inserts, for each matched session, a copy with a fresh ID
// immediately after the original in its own day.
func Duplicate(w Weekly, ids []string) Weekly {
	wanted := idSet(ids)
	next := w.Clone()
	for _, day := range DayOrder {
		dp := next[day]
		out := make([]Session, 0, len(dp.Sessions))
		for _, s := range dp.Sessions {
			out = append(out, s)
			if _, ok := wanted[s.ID]; ok {
				dup := s.Clone()
				dup.ID = uuid.NewString()
				out = append(out, dup)
			}
		}
		dp.Sessions = out
		next[day] = dp
	}
	return next
}

// Move removes every matched session from its current day and appends
// all of them, in their original relative order, to the end of
// targetDay.
func Move(w Weekly, ids []string, targetDay string) (Weekly, error) {
	if !validDay(targetDay) {
		return w, fmt.Errorf("%w: unknown day %q", ErrInvalidParameter, targetDay)
	}
	wanted := idSet(ids)
	next := w.Clone()

	var moved []Session
	for _, day := range DayOrder {
		dp := next[day]
		remain := make([]Session, 0, len(dp.Sessions))
		for _, s := range dp.Sessions {
			if _, ok := wanted[s.ID]; ok {
				moved = append(moved, s)
			} else {
				remain = append(remain, s)
			}
		}
		dp.Sessions = remain
		next[day] = dp
	}

	dp := next[targetDay]
	dp.Sessions = append(dp.Sessions, moved...)
	next[targetDay] = dp
	return next, nil
}

// ReduceVolume scales numeric series and peso of every matched session
// down by percentage (10 means multiply by 0.90). Series is rounded to
// the nearest integer and never drops below 1. Percentages outside
// [5,50] are rejected without touching the plan.
func ReduceVolume(w Weekly, ids []string, percentage float64) (Weekly, error) {
	if percentage < 5 || percentage > 50 {
		return w, fmt.Errorf("%w: reduction percentage %.1f outside [5,50]", ErrInvalidParameter, percentage)
	}
	factor := 1 - percentage/100
	wanted := idSet(ids)
	next := w.Clone()
	for _, day := range DayOrder {
		dp := next[day]
		for i, s := range dp.Sessions {
			if _, ok := wanted[s.ID]; !ok {
				continue
			}
			if s.Series != nil {
				scaled := int(math.Round(float64(*s.Series) * factor))
				if scaled < 1 {
					scaled = 1
				}
				*dp.Sessions[i].Series = scaled
			}
			if s.Peso != nil {
				*dp.Sessions[i].Peso = *s.Peso * factor
			}
		}
		next[day] = dp
	}
	return next, nil
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
