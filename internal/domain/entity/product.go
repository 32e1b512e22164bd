package entity

import (
	"strings"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/normalize"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
	"github.com/shopspring/decimal"
)

// Product producto del catálogo (hoja produtos).
// TracksStock es false cuando la celda de estoque está vacía: el producto se
// vende sin control de inventario.
type Product struct {
	Row         int
	ID          string
	Name        string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	Stock       decimal.Decimal
	TracksStock bool
	Active      bool
	CreatedAt   string
}

// Cells fila posicional de produtos.
func (p Product) Cells() []any {
	var stock any = ""
	if p.TracksStock {
		stock = p.Stock.InexactFloat64()
	}
	return []any{
		p.ID,
		p.Name,
		p.Price.InexactFloat64(),
		p.Cost.InexactFloat64(),
		stock,
		p.Active,
		p.CreatedAt,
	}
}

// ProductFromRow decodifica una fila de produtos.
func ProductFromRow(row sheet.Row) Product {
	stockRaw := strings.TrimSpace(sheet.CellString(sheet.CellAt(row, sheet.ProductStock)))
	return Product{
		Row:         row.Number,
		ID:          sheet.Str(row, sheet.ProductID),
		Name:        sheet.Str(row, sheet.ProductName),
		Price:       normalize.Number(sheet.CellAt(row, sheet.ProductPrice)),
		Cost:        normalize.Number(sheet.CellAt(row, sheet.ProductCost)),
		Stock:       normalize.Number(stockRaw),
		TracksStock: stockRaw != "",
		Active:      normalize.Bool(sheet.CellAt(row, sheet.ProductActive)),
		CreatedAt:   sheet.Str(row, sheet.ProductCreatedAt),
	}
}

// IsBlank fila sin id ni nombre (filas vacías que deja la planilha).
func (p Product) IsBlank() bool {
	return p.ID == "" && p.Name == ""
}
