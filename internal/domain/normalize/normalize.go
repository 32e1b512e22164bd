// Package normalize convierte celdas crudas de la planilha en valores definidos.
//
// Contrato "parse-or-default": ninguna función falla. Un número ilegible vale 0 y
// una fecha ilegible vale "", lo que hace que los filtros posteriores descarten la
// fila sin cortar la agregación.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ISODate layout de fecha normalizada (YYYY-MM-DD).
const ISODate = "2006-01-02"

var (
	reISODate   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reBRDate    = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	reISOPrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)
)

// Number interpreta un valor monetario o de cantidad.
// Acepta números nativos o texto en formato brasileño ("R$ 1.234,56").
// Todo lo que no sea un número finito devuelve 0.
func Number(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case float64:
		return fromFloat(x)
	case float32:
		return fromFloat(float64(x))
	case int:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case uint:
		return decimal.NewFromInt(int64(x))
	case uint32:
		return decimal.NewFromInt(int64(x))
	case json.Number:
		d, err := decimal.NewFromString(string(x))
		if err != nil {
			return decimal.Zero
		}
		return d
	case bool:
		return decimal.Zero
	case string:
		return parseBR(x)
	default:
		return parseBR(fmt.Sprint(x))
	}
}

// Int piso de Number; cantidades fraccionarias se truncan hacia abajo.
func Int(v any) int64 {
	return Number(v).Floor().IntPart()
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// parseBR: quita espacios y "R$", elimina separadores de miles "." y
// convierte la primera coma decimal en punto.
func parseBR(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Date normaliza una fecha a YYYY-MM-DD. Formas aceptadas:
//   - "2026-01-31"            → igual
//   - "31/01/2026"            → "2026-01-31"
//   - "2026-01-31T10:00:00"   → "2026-01-31"
//   - time.Time               → fecha en loc (no UTC, evita corrimientos cerca de medianoche)
//
// Cualquier otra cosa devuelve "".
func Date(v any, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.In(loc).Format(ISODate)
	case *time.Time:
		if x == nil || x.IsZero() {
			return ""
		}
		return x.In(loc).Format(ISODate)
	}

	var s string
	if str, ok := v.(string); ok {
		s = str
	} else {
		s = fmt.Sprint(v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if reISODate.MatchString(s) {
		return s
	}
	if m := reBRDate.FindStringSubmatch(s); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	if m := reISOPrefix.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// InRange indica si date (ya normalizada) cae en [start, end]. Un límite vacío
// significa "sin límite". La comparación es lexicográfica, válida porque las
// fechas ISO tienen ancho fijo. Una fecha vacía nunca está en rango.
func InRange(date, start, end string) bool {
	if date == "" {
		return false
	}
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

// Bool interpreta banderas de la planilha: true/1/sim/yes.
func Bool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	switch strings.ToLower(strings.TrimSpace(text(v))) {
	case "true", "1", "sim", "yes":
		return true
	}
	return false
}

// Active como Bool, pero una celda vacía cuenta como activa (columna usuarios.ativo).
func Active(v any) bool {
	if strings.TrimSpace(text(v)) == "" {
		return true
	}
	return Bool(v)
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Today fecha actual en loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(ISODate)
}

// DaysAgo fecha de hace n días en loc.
func DaysAgo(n int, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).AddDate(0, 0, -n).Format(ISODate)
}

// LoadLocation carga la zona horaria del establecimiento; si no existe usa UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
