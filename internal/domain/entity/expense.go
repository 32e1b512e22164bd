package entity

import (
	"time"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/normalize"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
	"github.com/shopspring/decimal"
)

// Expense despesa operativa (hoja despesas).
type Expense struct {
	Row         int
	ID          string
	Date        string
	Category    string
	Description string
	Amount      decimal.Decimal
}

// Valid una despesa sin fecha o con valor <= 0 no entra en el dashboard.
func (e Expense) Valid() bool {
	return e.Date != "" && e.Amount.IsPositive()
}

// Cells fila posicional de despesas.
func (e Expense) Cells() []any {
	return []any{e.ID, e.Date, e.Category, e.Description, e.Amount.InexactFloat64()}
}

// ExpenseFromRow decodifica una fila de despesas.
func ExpenseFromRow(row sheet.Row, loc *time.Location) Expense {
	return Expense{
		Row:         row.Number,
		ID:          sheet.Str(row, sheet.ExpenseID),
		Date:        normalize.Date(sheet.CellAt(row, sheet.ExpenseDate), loc),
		Category:    sheet.Str(row, sheet.ExpenseCategory),
		Description: sheet.Str(row, sheet.ExpenseDescription),
		Amount:      normalize.Number(sheet.CellAt(row, sheet.ExpenseAmount)),
	}
}
