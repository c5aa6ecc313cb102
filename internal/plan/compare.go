package plan

import (
	"fmt"
	"sort"
)

// ChangeKind classifies one field of an exercise comparison. The
// values are wire data shared with the coaching console.
type ChangeKind string

const (
	ChangeMejora    ChangeKind = "mejora"
	ChangeRetroceso ChangeKind = "retroceso"
	ChangeSinCambio ChangeKind = "sin_cambio"
)

// Changes below this percentage are treated as noise.
const changeThresholdPct = 5

// HistoricalSession is one logged occurrence of a day plan, tagged
// with its date. The history store keeps the most recent 50 per
// client; this package only reads them.
type HistoricalSession struct {
	ID        string  `json:"id"`
	Fecha     string  `json:"fecha"`
	DayPlan   DayPlan `json:"dayPlan"`
	ClienteID string  `json:"clienteId,omitempty"`
}

// NumericChange records a numeric field diff.
type NumericChange struct {
	Actual           *float64   `json:"actual,omitempty"`
	Anterior         *float64   `json:"anterior,omitempty"`
	Tipo             ChangeKind `json:"tipo"`
	CambioPorcentual *float64   `json:"cambioPorcentual,omitempty"`
}

// TextChange records a free-text field diff. No directional judgement
// is made for free text, so Tipo is always sin_cambio; the change is
// still reported so the coach can see it.
type TextChange struct {
	Actual   string     `json:"actual,omitempty"`
	Anterior string     `json:"anterior,omitempty"`
	Tipo     ChangeKind `json:"tipo"`
}

// ComparisonResult is the read-only diff of a session against its most
// recent prior occurrence. Created on demand, never persisted.
type ComparisonResult struct {
	EjercicioID     string   `json:"ejercicioId"`
	EjercicioNombre string   `json:"ejercicioNombre"`
	SesionActual    Session  `json:"sesionActual"`
	SesionAnterior  *Session `json:"sesionAnterior,omitempty"`

	Series              *NumericChange `json:"series,omitempty"`
	Peso                *NumericChange `json:"peso,omitempty"`
	Descanso            *NumericChange `json:"descanso,omitempty"`
	Repeticiones        *TextChange    `json:"repeticiones,omitempty"`
	Tempo               *TextChange    `json:"tempo,omitempty"`
	MaterialAlternativo *TextChange    `json:"materialAlternativo,omitempty"`

	TieneMejoras         bool     `json:"tieneMejoras"`
	TieneRetrocesos      bool     `json:"tieneRetrocesos"`
	MejorasDestacadas    []string `json:"mejorasDestacadas"`
	RetrocesosDestacados []string `json:"retrocesosDestacados"`
}

// FindPrior returns the most recent historical session matching the
// given ID, or falling back to a block-name match against current.
// Returns nil when the history holds no occurrence; that is normal
// output, not an error.
func FindPrior(sessionID string, current Session, history []HistoricalSession) *Session {
	sorted := append([]HistoricalSession(nil), history...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Fecha > sorted[j].Fecha })

	for _, h := range sorted {
		for _, s := range h.DayPlan.Sessions {
			if s.ID == sessionID {
				prior := s.Clone()
				return &prior
			}
		}
	}
	for _, h := range sorted {
		for _, s := range h.DayPlan.Sessions {
			if s.Block != "" && s.Block == current.Block {
				prior := s.Clone()
				return &prior
			}
		}
	}
	return nil
}

// Compare diffs a session against its prior occurrence. A nil prior
// yields an empty-change result. Numeric fields use a percentage
// threshold; for descanso a decrease (less rest) counts as the
// improvement direction.
func Compare(id, name string, current Session, prior *Session) ComparisonResult {
	res := ComparisonResult{
		EjercicioID:          id,
		EjercicioNombre:      name,
		SesionActual:         current.Clone(),
		MejorasDestacadas:    []string{},
		RetrocesosDestacados: []string{},
	}
	if prior == nil {
		return res
	}
	p := prior.Clone()
	res.SesionAnterior = &p

	res.Series = numericChange(intPtr(current.Series), intPtr(prior.Series), false)
	res.Peso = numericChange(current.Peso, prior.Peso, false)
	res.Descanso = numericChange(intPtr(current.Descanso), intPtr(prior.Descanso), true)

	res.Repeticiones = textChange(current.Repeticiones, prior.Repeticiones)
	res.Tempo = textChange(current.Tempo, prior.Tempo)
	res.MaterialAlternativo = textChange(current.MaterialAlternativo, prior.MaterialAlternativo)

	highlight := func(field string, c *NumericChange, unit string) {
		if c == nil || c.Actual == nil || c.Anterior == nil {
			return
		}
		line := fmt.Sprintf("%s: %s → %s", field, formatValue(*c.Anterior, unit), formatValue(*c.Actual, unit))
		switch c.Tipo {
		case ChangeMejora:
			res.MejorasDestacadas = append(res.MejorasDestacadas, line)
		case ChangeRetroceso:
			res.RetrocesosDestacados = append(res.RetrocesosDestacados, line)
		}
	}
	highlight("series", res.Series, "")
	highlight("peso", res.Peso, " kg")
	highlight("descanso", res.Descanso, " s")

	res.TieneMejoras = len(res.MejorasDestacadas) > 0
	res.TieneRetrocesos = len(res.RetrocesosDestacados) > 0
	return res
}

// numericChange computes the percentage change for a numeric field.
// lessIsBetter flips the improvement direction (rest time). A missing
// value on either side yields sin_cambio.
func numericChange(actual, anterior *float64, lessIsBetter bool) *NumericChange {
	if actual == nil && anterior == nil {
		return nil
	}
	c := &NumericChange{Actual: actual, Anterior: anterior, Tipo: ChangeSinCambio}
	if actual == nil || anterior == nil || *anterior == 0 {
		return c
	}
	pct := (*actual - *anterior) / *anterior * 100
	c.CambioPorcentual = &pct
	if pct >= changeThresholdPct {
		c.Tipo = ChangeMejora
		if lessIsBetter {
			c.Tipo = ChangeRetroceso
		}
	} else if pct <= -changeThresholdPct {
		c.Tipo = ChangeRetroceso
		if lessIsBetter {
			c.Tipo = ChangeMejora
		}
	}
	return c
}

func textChange(actual, anterior string) *TextChange {
	if actual == "" && anterior == "" {
		return nil
	}
	return &TextChange{Actual: actual, Anterior: anterior, Tipo: ChangeSinCambio}
}

func intPtr(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func formatValue(v float64, unit string) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d%s", int64(v), unit)
	}
	return fmt.Sprintf("%.1f%s", v, unit)
}
