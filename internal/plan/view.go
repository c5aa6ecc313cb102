package plan

import (
	"sort"
	"strings"
)

// View presets and sort modes mirror the editor's toolbar options.
const (
	PresetCustom   = "custom"
	PresetAll      = "all"
	PresetWeekdays = "weekdays"
	PresetWeekend  = "weekend"
	PresetEmpty    = "empty"
	PresetExceeded = "exceeded"

	SortDefault      = "default"
	SortAlphabetical = "alphabetical"
	SortSessions     = "sessions"
	SortDuration     = "duration"

	SelectManual  = "manual"
	SelectWeekday = "weekday"
	SelectTag     = "tag"
)

// Calories are estimated from summed session minutes at a flat rate.
const caloriesPerMinute = 8

// WeekTargets are the caller-supplied weekly ceilings used by the
// exceeded preset and filter. Zero means "no target".
type WeekTargets struct {
	Duration float64 `json:"duration"`
	Calories float64 `json:"calories"`
}

// ViewConfig describes which day columns are visible and in what
// order. It holds no reference to a plan; VisibleDays must be
// re-derived whenever the plan, config, or targets change.
type ViewConfig struct {
	Preset              string `json:"preset"`
	SortMode            string `json:"sortMode"`
	MaxVisibleDays      int    `json:"maxVisibleDays"`
	FocusFilter         string `json:"focusFilter,omitempty"`
	ModalityFilter      string `json:"modalityFilter,omitempty"`
	OnlyWithSessions    bool   `json:"onlyWithSessions,omitempty"`
	OnlyExceededTargets bool   `json:"onlyExceededTargets,omitempty"`

	// Day-selection mode, applied before any non-custom preset
	// overrides it.
	SelectionMode string   `json:"selectionMode,omitempty"`
	PinnedDays    []string `json:"pinnedDays,omitempty"`
	WeekdayQuery  string   `json:"weekdayQuery,omitempty"`
	TagQuery      string   `json:"tagQuery,omitempty"`
}

// VisibleDays derives the ordered list of visible day columns. It is a
// pure function of its inputs. Resolution order: day-selection mode,
// preset override, content filters, sort, truncation.
func VisibleDays(w Weekly, cfg ViewConfig, targets WeekTargets) []string {
	days := selectDays(w, cfg)

	if cfg.Preset != "" && cfg.Preset != PresetCustom {
		days = presetDays(w, cfg.Preset, targets)
		if len(days) == 0 {
			days = append([]string(nil), DayOrder...)
		}
	}

	days = filterDays(w, days, cfg, targets)
	days = sortDays(w, days, cfg.SortMode)

	if cfg.MaxVisibleDays >= 1 && len(days) > cfg.MaxVisibleDays {
		days = days[:cfg.MaxVisibleDays]
	}
	return days
}

// DayExceedsTargets reports whether a day's summed duration or derived
// calorie estimate surpasses the weekly targets.
func DayExceedsTargets(dp DayPlan, targets WeekTargets) bool {
	minutes := dp.DurationMinutes()
	if targets.Duration > 0 && minutes > targets.Duration {
		return true
	}
	if targets.Calories > 0 && minutes*caloriesPerMinute > targets.Calories {
		return true
	}
	return false
}

func selectDays(w Weekly, cfg ViewConfig) []string {
	switch cfg.SelectionMode {
	case SelectManual:
		out := make([]string, 0, len(cfg.PinnedDays))
		for _, day := range cfg.PinnedDays {
			if validDay(day) {
				out = append(out, day)
			}
		}
		return out
	case SelectWeekday:
		q := strings.ToLower(cfg.WeekdayQuery)
		if q == "" {
			return append([]string(nil), DayOrder...)
		}
		var out []string
		for _, day := range DayOrder {
			if strings.Contains(day, q) {
				out = append(out, day)
			}
		}
		return out
	case SelectTag:
		q := strings.ToLower(cfg.TagQuery)
		if q == "" {
			return append([]string(nil), DayOrder...)
		}
		var out []string
		for _, day := range DayOrder {
			if dayMatchesTag(w[day], q) {
				out = append(out, day)
			}
		}
		return out
	}
	return append([]string(nil), DayOrder...)
}

func dayMatchesTag(dp DayPlan, q string) bool {
	for _, t := range dp.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	for _, s := range dp.Sessions {
		for _, t := range s.Tags {
			if strings.Contains(strings.ToLower(t), q) {
				return true
			}
		}
	}
	return false
}

func presetDays(w Weekly, preset string, targets WeekTargets) []string {
	var out []string
	for i, day := range DayOrder {
		switch preset {
		case PresetAll:
			out = append(out, day)
		case PresetWeekdays:
			if i < 5 {
				out = append(out, day)
			}
		case PresetWeekend:
			if i >= 5 {
				out = append(out, day)
			}
		case PresetEmpty:
			if len(w[day].Sessions) == 0 {
				out = append(out, day)
			}
		case PresetExceeded:
			if DayExceedsTargets(w[day], targets) {
				out = append(out, day)
			}
		}
	}
	return out
}

func filterDays(w Weekly, days []string, cfg ViewConfig, targets WeekTargets) []string {
	out := days[:0:0]
	for _, day := range days {
		dp := w[day]
		if cfg.FocusFilter != "" && !strings.EqualFold(dp.Focus, cfg.FocusFilter) {
			continue
		}
		if cfg.ModalityFilter != "" && !dayHasModality(dp, cfg.ModalityFilter) {
			continue
		}
		if cfg.OnlyWithSessions && len(dp.Sessions) == 0 {
			continue
		}
		if cfg.OnlyExceededTargets && !DayExceedsTargets(dp, targets) {
			continue
		}
		out = append(out, day)
	}
	return out
}

func dayHasModality(dp DayPlan, modality string) bool {
	for _, s := range dp.Sessions {
		if strings.EqualFold(s.Modality, modality) {
			return true
		}
	}
	return false
}

func sortDays(w Weekly, days []string, mode string) []string {
	switch mode {
	case SortAlphabetical:
		sort.SliceStable(days, func(i, j int) bool { return days[i] < days[j] })
	case SortSessions:
		sort.SliceStable(days, func(i, j int) bool {
			return len(w[days[i]].Sessions) > len(w[days[j]].Sessions)
		})
	case SortDuration:
		sort.SliceStable(days, func(i, j int) bool {
			return w[days[i]].DurationMinutes() > w[days[j]].DurationMinutes()
		})
	}
	// SortDefault keeps calendar order as produced upstream.
	return days
}
