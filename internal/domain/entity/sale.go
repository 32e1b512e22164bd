package entity

import (
	"time"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/normalize"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
	"github.com/shopspring/decimal"
)

// Sale venta registrada en la hoja vendas.
type Sale struct {
	ID            string
	Date          string // YYYY-MM-DD
	Total         decimal.Decimal
	PaymentMethod string
	Note          string
}

// Valid una venta sin id, sin fecha o con total <= 0 se descarta.
func (s Sale) Valid() bool {
	return s.ID != "" && s.Date != "" && s.Total.IsPositive()
}

// Cells fila posicional para anexar a vendas.
func (s Sale) Cells() []any {
	return []any{s.ID, s.Date, s.Total.InexactFloat64(), s.PaymentMethod, s.Note}
}

// SaleFromRow decodifica una fila de vendas; nunca falla.
func SaleFromRow(row sheet.Row, loc *time.Location) Sale {
	return Sale{
		ID:            sheet.Str(row, sheet.SaleID),
		Date:          normalize.Date(sheet.CellAt(row, sheet.SaleDate), loc),
		Total:         normalize.Number(sheet.CellAt(row, sheet.SaleTotal)),
		PaymentMethod: sheet.Str(row, sheet.SalePaymentMethod),
		Note:          sheet.Str(row, sheet.SaleNote),
	}
}

// SaleItem línea de una venta (hoja venda_itens).
type SaleItem struct {
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	UnitCost    decimal.Decimal
	Subtotal    decimal.Decimal
}

// Revenue preco_unit × qtd.
func (i SaleItem) Revenue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Cost custo_unit × qtd.
func (i SaleItem) Cost() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(i.Quantity))
}

// Cells fila posicional para anexar a venda_itens.
func (i SaleItem) Cells() []any {
	return []any{
		i.SaleID,
		i.ProductID,
		i.ProductName,
		i.Quantity,
		i.UnitPrice.InexactFloat64(),
		i.UnitCost.InexactFloat64(),
		i.Subtotal.InexactFloat64(),
	}
}

// SaleItemFromRow decodifica una fila de venda_itens. El subtotal persistido
// se usa solo si es positivo; si no, se recalcula.
func SaleItemFromRow(row sheet.Row) SaleItem {
	it := SaleItem{
		SaleID:      sheet.Str(row, sheet.ItemSaleID),
		ProductID:   sheet.Str(row, sheet.ItemProductID),
		ProductName: sheet.Str(row, sheet.ItemProductName),
		Quantity:    normalize.Int(sheet.CellAt(row, sheet.ItemQuantity)),
		UnitPrice:   normalize.Number(sheet.CellAt(row, sheet.ItemUnitPrice)),
		UnitCost:    normalize.Number(sheet.CellAt(row, sheet.ItemUnitCost)),
	}
	it.Subtotal = normalize.Number(sheet.CellAt(row, sheet.ItemSubtotal))
	if !it.Subtotal.IsPositive() {
		it.Subtotal = it.Revenue()
	}
	return it
}
