// Package plan implements the weekly training-plan engine: value types
// for sessions and day plans, selection tracking, drag/reorder index
// arithmetic, bulk transforms, view composition, and comparison of an
// exercise against its most recent historical occurrence.
//
// Every operation takes a plan snapshot and returns a new one; inputs
// are never mutated. Callers own the canonical plan and replace it
// wholesale with each returned value.
package plan

import "errors"

// ErrInvalidParameter is the only explicit failure kind in the engine:
// an out-of-range index, an unknown day, or a volume-reduction
// percentage outside the accepted range. Operations that fail with it
// leave the input plan untouched.
var ErrInvalidParameter = errors.New("invalid parameter")

// DayOrder is the fixed week layout. Day keys are wire data inherited
// from the coaching console, not display strings.
var DayOrder = []string{"lunes", "martes", "miercoles", "jueves", "viernes", "sabado", "domingo"}

// Session is one trainable unit inside a day. Duration, Repeticiones
// and Tempo are intentionally free text ("30 min", "8-12", "3-1-1");
// numeric totals are derived with LeadingNumber.
type Session struct {
	ID                 string   `json:"id"`
	Time               string   `json:"time"`
	Block              string   `json:"block"`
	Duration           string   `json:"duration"`
	Modality           string   `json:"modality"`
	Intensity          string   `json:"intensity"`
	Notes              string   `json:"notes"`
	Tags               []string `json:"tags,omitempty"`
	TrainingType       string   `json:"tipoEntrenamiento,omitempty"`
	MuscleGroups       []string `json:"gruposMusculares,omitempty"`
	Series             *int     `json:"series,omitempty"`
	Repeticiones       string   `json:"repeticiones,omitempty"`
	Peso               *float64 `json:"peso,omitempty"`
	Tempo              string   `json:"tempo,omitempty"`
	Descanso           *int     `json:"descanso,omitempty"`
	MaterialAlternativo string   `json:"materialAlternativo,omitempty"`
	FechaSesion        string   `json:"fechaSesion,omitempty"`
}

// HasTag reports whether the session carries the given tag.
func (s Session) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	c := s
	if s.Tags != nil {
		c.Tags = append([]string(nil), s.Tags...)
	}
	if s.MuscleGroups != nil {
		c.MuscleGroups = append([]string(nil), s.MuscleGroups...)
	}
	if s.Series != nil {
		v := *s.Series
		c.Series = &v
	}
	if s.Peso != nil {
		v := *s.Peso
		c.Peso = &v
	}
	if s.Descanso != nil {
		v := *s.Descanso
		c.Descanso = &v
	}
	return c
}

// DayPlan is one calendar day. Sessions order is the display and
// execution order. Summary is a secondary suggested-exercises list,
// independent of Sessions.
type DayPlan struct {
	MicroCycle     string    `json:"microCycle"`
	Focus          string    `json:"focus"`
	Volume         string    `json:"volume"`
	Intensity      string    `json:"intensity"`
	Restorative    string    `json:"restorative"`
	Summary        []string  `json:"summary"`
	Sessions       []Session `json:"sessions"`
	TargetDuration *float64  `json:"targetDuration,omitempty"`
	TargetCalories *float64  `json:"targetCalories,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
}

// Clone returns a deep copy of the day plan.
func (d DayPlan) Clone() DayPlan {
	c := d
	if d.Summary != nil {
		c.Summary = append([]string(nil), d.Summary...)
	}
	if d.Tags != nil {
		c.Tags = append([]string(nil), d.Tags...)
	}
	c.Sessions = make([]Session, len(d.Sessions))
	for i, s := range d.Sessions {
		c.Sessions[i] = s.Clone()
	}
	if d.TargetDuration != nil {
		v := *d.TargetDuration
		c.TargetDuration = &v
	}
	if d.TargetCalories != nil {
		v := *d.TargetCalories
		c.TargetCalories = &v
	}
	return c
}

// DurationMinutes sums the leading numeric token of every session
// duration. Non-numeric durations contribute nothing.
func (d DayPlan) DurationMinutes() float64 {
	var total float64
	for _, s := range d.Sessions {
		if v, ok := LeadingNumber(s.Duration); ok {
			total += v
		}
	}
	return total
}

// Weekly maps day keys (DayOrder) to day plans.
type Weekly map[string]DayPlan

// Clone returns a deep copy of the weekly plan.
func (w Weekly) Clone() Weekly {
	c := make(Weekly, len(w))
	for day, dp := range w {
		c[day] = dp.Clone()
	}
	return c
}

// EmptyWeek returns a plan with an empty DayPlan for every day key,
// satisfying the invariant that the view engine never meets a missing
// day.
func EmptyWeek() Weekly {
	w := make(Weekly, len(DayOrder))
	for _, day := range DayOrder {
		w[day] = DayPlan{Sessions: []Session{}, Summary: []string{}}
	}
	return w
}

// FindSession locates a session by ID. Returns the owning day, its
// index within the day, and false when no session matches.
func (w Weekly) FindSession(id string) (day string, index int, ok bool) {
	for _, d := range DayOrder {
		for i, s := range w[d].Sessions {
			if s.ID == id {
				return d, i, true
			}
		}
	}
	return "", 0, false
}

func validDay(day string) bool {
	for _, d := range DayOrder {
		if d == day {
			return true
		}
	}
	return false
}
