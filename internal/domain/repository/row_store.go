package repository

import (
	"context"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
)

// RowStore define el puerto de persistencia de la planilha (DIP).
// Las filas son posicionales; Number es la fila física y la fila 1 es el encabezado.
//
// Si una tabla no puede leerse, la implementación devuelve un error que envuelve
// domain.ErrTableUnavailable; nunca un slice vacío.
type RowStore interface {
	Rows(ctx context.Context, table sheet.Table) ([]sheet.Row, error)
	Append(ctx context.Context, table sheet.Table, cells ...[]any) error
	Update(ctx context.Context, table sheet.Table, row sheet.Row) error
	Delete(ctx context.Context, table sheet.Table, rowNumber int) error
}
