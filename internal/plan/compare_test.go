package plan

import (
	"math"
	"testing"
)

func histSession(fecha string, sessions ...Session) HistoricalSession {
	return HistoricalSession{
		ID:      "hist-" + fecha,
		Fecha:   fecha,
		DayPlan: DayPlan{Sessions: sessions},
	}
}

func numSession(id, block string, series int, peso float64, descanso int) Session {
	s := sess(id, block, "Fuerza", "45 min")
	s.Series = &series
	s.Peso = &peso
	s.Descanso = &descanso
	return s
}

func TestFindPrior(t *testing.T) {
	current := sess("x1", "Sentadilla", "Fuerza", "45 min")
	history := []HistoricalSession{
		histSession("2026-08-01", sess("x1", "Sentadilla", "Fuerza", "40 min")),
		histSession("2026-08-20", sess("x1", "Sentadilla", "Fuerza", "42 min")),
		histSession("2026-08-10", sess("z9", "Peso muerto", "Fuerza", "30 min")),
	}

	t.Run("most recent id match wins", func(t *testing.T) {
		prior := FindPrior("x1", current, history)
		if prior == nil || prior.Duration != "42 min" {
			t.Fatalf("prior = %+v, want the 2026-08-20 occurrence", prior)
		}
	})

	t.Run("falls back to block name", func(t *testing.T) {
		renamed := sess("new-id", "Peso muerto", "Fuerza", "30 min")
		prior := FindPrior("new-id", renamed, history)
		if prior == nil || prior.ID != "z9" {
			t.Fatalf("prior = %+v, want block-name match z9", prior)
		}
	})

	t.Run("no match", func(t *testing.T) {
		other := sess("q", "Dominadas", "Fuerza", "10 min")
		if prior := FindPrior("q", other, history); prior != nil {
			t.Errorf("prior = %+v, want nil", prior)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		if prior := FindPrior("x1", current, nil); prior != nil {
			t.Errorf("prior = %+v, want nil", prior)
		}
	})
}

func TestCompareWithoutPrior(t *testing.T) {
	current := numSession("x1", "Sentadilla", 4, 80, 90)
	res := Compare("x1", "Sentadilla", current, nil)
	if res.SesionAnterior != nil || res.TieneMejoras || res.TieneRetrocesos {
		t.Errorf("empty-change result expected, got %+v", res)
	}
	if res.Series != nil || res.Peso != nil || res.Descanso != nil {
		t.Error("no field changes expected without a prior session")
	}
	if len(res.MejorasDestacadas) != 0 || len(res.RetrocesosDestacados) != 0 {
		t.Error("highlights must be empty without a prior session")
	}
}

func TestComparePeso(t *testing.T) {
	tests := []struct {
		name    string
		prior   float64
		current float64
		want    ChangeKind
		wantPct float64
	}{
		{"clear gain", 80, 88, ChangeMejora, 10},
		{"below threshold", 80, 82, ChangeSinCambio, 2.5},
		{"clear drop", 80, 72, ChangeRetroceso, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := numSession("x1", "Sentadilla", 4, tt.current, 90)
			prior := numSession("x1", "Sentadilla", 4, tt.prior, 90)
			res := Compare("x1", "Sentadilla", cur, &prior)
			if res.Peso == nil {
				t.Fatal("peso change missing")
			}
			if res.Peso.Tipo != tt.want {
				t.Errorf("tipo = %s, want %s", res.Peso.Tipo, tt.want)
			}
			if res.Peso.CambioPorcentual == nil || math.Abs(*res.Peso.CambioPorcentual-tt.wantPct) > 0.01 {
				t.Errorf("cambioPorcentual = %v, want %.1f", res.Peso.CambioPorcentual, tt.wantPct)
			}
		})
	}
}

func TestCompareDescansoDirectionFlipped(t *testing.T) {
	tests := []struct {
		name    string
		prior   int
		current int
		want    ChangeKind
	}{
		{"less rest is improvement", 90, 70, ChangeMejora},
		{"more rest is regression", 90, 110, ChangeRetroceso},
		{"small shift is noise", 90, 92, ChangeSinCambio},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := numSession("x1", "Sentadilla", 4, 80, tt.current)
			prior := numSession("x1", "Sentadilla", 4, 80, tt.prior)
			res := Compare("x1", "Sentadilla", cur, &prior)
			if res.Descanso == nil || res.Descanso.Tipo != tt.want {
				t.Errorf("descanso tipo = %+v, want %s", res.Descanso, tt.want)
			}
		})
	}
}

func TestCompareTextFieldsNeverDirectional(t *testing.T) {
	cur := sess("x1", "Sentadilla", "Fuerza", "45 min")
	cur.Repeticiones = "8-10"
	cur.Tempo = "3-1-1"
	prior := sess("x1", "Sentadilla", "Fuerza", "45 min")
	prior.Repeticiones = "10-12"
	prior.MaterialAlternativo = "mancuernas"

	res := Compare("x1", "Sentadilla", cur, &prior)
	for name, tc := range map[string]*TextChange{
		"repeticiones":        res.Repeticiones,
		"tempo":               res.Tempo,
		"materialAlternativo": res.MaterialAlternativo,
	} {
		if tc == nil {
			t.Errorf("%s: change record missing", name)
			continue
		}
		if tc.Tipo != ChangeSinCambio {
			t.Errorf("%s: tipo = %s, free-text fields are never classified", name, tc.Tipo)
		}
	}
	if res.TieneMejoras || res.TieneRetrocesos {
		t.Error("text-only changes must not produce highlight flags")
	}
}

func TestCompareMissingValues(t *testing.T) {
	cur := numSession("x1", "Sentadilla", 4, 80, 90)
	prior := sess("x1", "Sentadilla", "Fuerza", "45 min") // no numeric fields

	res := Compare("x1", "Sentadilla", cur, &prior)
	for name, c := range map[string]*NumericChange{
		"series":   res.Series,
		"peso":     res.Peso,
		"descanso": res.Descanso,
	} {
		if c == nil {
			t.Errorf("%s: change record missing", name)
			continue
		}
		if c.Tipo != ChangeSinCambio {
			t.Errorf("%s: tipo = %s, missing prior must yield sin_cambio", name, c.Tipo)
		}
	}
}

func TestCompareHighlights(t *testing.T) {
	cur := numSession("x1", "Sentadilla", 5, 88, 110)
	prior := numSession("x1", "Sentadilla", 4, 80, 90)

	res := Compare("x1", "Sentadilla", cur, &prior)
	if !res.TieneMejoras {
		t.Error("series and peso both improved; TieneMejoras should be set")
	}
	if !res.TieneRetrocesos {
		t.Error("descanso grew; TieneRetrocesos should be set")
	}
	if len(res.MejorasDestacadas) != 2 {
		t.Errorf("mejoras = %v, want 2 lines", res.MejorasDestacadas)
	}
	if len(res.RetrocesosDestacados) != 1 {
		t.Errorf("retrocesos = %v, want 1 line", res.RetrocesosDestacados)
	}
	if res.MejorasDestacadas[1] != "peso: 80 kg → 88 kg" {
		t.Errorf("highlight line = %q", res.MejorasDestacadas[1])
	}
}
