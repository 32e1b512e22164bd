package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HeaderRow número físico de la fila de encabezado; los datos empiezan en la 2.
const HeaderRow = 1

// Row fila cruda de una hoja: celdas posicionales tal como las entrega el almacenamiento.
// Number es la fila física (1-based) y sirve para actualizar o borrar.
type Row struct {
	Number int
	Cells  []any
}

// CellAt devuelve la celda idx o "" si la fila es más corta o la celda es nil.
func CellAt(row Row, idx int) any {
	if idx < 0 || idx >= len(row.Cells) {
		return ""
	}
	v := row.Cells[idx]
	if v == nil {
		return ""
	}
	return v
}

// Str devuelve la celda idx como texto recortado.
func Str(row Row, idx int) string {
	return strings.TrimSpace(CellString(CellAt(row, idx)))
}

// CellString convierte un valor de celda a texto. Los float enteros se imprimen
// sin exponente para que los ids numéricos (timestamps en ms) no se deformen.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Set escribe la celda idx, extendiendo la fila si hace falta.
func (r *Row) Set(idx int, v any) {
	for len(r.Cells) <= idx {
		r.Cells = append(r.Cells, "")
	}
	r.Cells[idx] = v
}
