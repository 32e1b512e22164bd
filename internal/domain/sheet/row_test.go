package sheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
)

func TestCellAt_FueraDeRangoYNil(t *testing.T) {
	row := sheet.Row{Number: 2, Cells: []any{"a", nil}}
	assert.Equal(t, "a", sheet.CellAt(row, 0))
	assert.Equal(t, "", sheet.CellAt(row, 1), "nil vale vacío")
	assert.Equal(t, "", sheet.CellAt(row, 5), "fila corta")
	assert.Equal(t, "", sheet.CellAt(row, -1))
}

func TestStr_IdsNumericosSinExponente(t *testing.T) {
	row := sheet.Row{Cells: []any{1767225600000.0, "  pix  ", 3.5}}
	assert.Equal(t, "1767225600000", sheet.Str(row, 0))
	assert.Equal(t, "pix", sheet.Str(row, 1))
	assert.Equal(t, "3.5", sheet.Str(row, 2))
}

func TestRowSet_ExtiendeLaFila(t *testing.T) {
	row := sheet.Row{Cells: []any{"id"}}
	row.Set(3, 10)
	assert.Equal(t, []any{"id", "", "", 10}, row.Cells)
}

func TestSchema_AnchoYEncabezados(t *testing.T) {
	assert.Equal(t, 7, sheet.Width(sheet.TableSaleItems))
	assert.Equal(t, "forma_pagamento", sheet.Headers(sheet.TableSales)[sheet.SalePaymentMethod])
	assert.Equal(t, "estoque", sheet.Headers(sheet.TableProducts)[sheet.ProductStock])
	assert.Equal(t, "ativo", sheet.Headers(sheet.TableUsers)[sheet.UserActive])

	h := sheet.Headers(sheet.TableExpenses)
	h[0] = "x"
	assert.Equal(t, "id", sheet.Headers(sheet.TableExpenses)[0], "Headers devuelve una copia")
}
