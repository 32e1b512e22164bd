package dashboard

import (
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/normalize"
)

// Presets aceptados en ?preset=.
const (
	PresetToday = "0"
	PresetAll   = "all"
)

// Filter rango de fechas inclusivo. Un límite vacío significa sin límite.
// Preset se devuelve tal como llegó para que la UI marque el botón activo.
type Filter struct {
	Start  string
	End    string
	Preset string
}

// ResolveFilter traduce preset/start/end al rango efectivo.
//
//	"0"            → hoy..hoy
//	"7","30","90"  → hoy−N..(sin fin); registros con fecha futura también entran
//	"all"          → sin límites
//	otro / vacío   → start/end normalizados; lo ilegible queda sin límite
func ResolveFilter(preset, start, end string, now time.Time, loc *time.Location) Filter {
	preset = strings.TrimSpace(preset)
	f := Filter{Preset: preset}

	switch preset {
	case PresetToday:
		today := normalize.Today(now, loc)
		f.Start, f.End = today, today
	case "7", "30", "90":
		n, _ := strconv.Atoi(preset)
		f.Start = normalize.DaysAgo(n, now, loc)
	case PresetAll:
	default:
		f.Start = normalize.Date(start, loc)
		f.End = normalize.Date(end, loc)
	}
	return f
}

// Contains indica si date cae dentro del filtro.
func (f Filter) Contains(date string) bool {
	return normalize.InRange(date, f.Start, f.End)
}
