package usecase

import (
	"strconv"
	"time"
)

// newID id de fila: timestamp en milisegundos, igual que las filas cargadas a mano.
// CompareIDs ordena estos ids numéricamente.
func newID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}
