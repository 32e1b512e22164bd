package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/dashboard"
)

// Nombres de hoja del libro exportado.
const (
	SheetSummary  = "Resumo"
	SheetDays     = "Por dia"
	SheetProducts = "Top produtos"
	SheetSales    = "Últimas vendas"
)

const moneyFormat = `"R$" #,##0.00`

func renderXLSX(title string, r *dashboard.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	w := &xlsxWriter{f: f}
	w.styles()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	for _, name := range []string{SheetDays, SheetProducts, SheetSales} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
		}
	}

	m := r.Metrics
	best, bestProfit := "", any("")
	if m.BestDay != nil {
		best, bestProfit = m.BestDay.Date, m.BestDay.Profit.InexactFloat64()
	}
	w.rows(SheetSummary, []string{title, Period(r.Filter.Start, r.Filter.End)}, [][]any{
		{"Vendas", m.SalesCount},
		{"Faturamento", m.Revenue.InexactFloat64()},
		{"Custo dos produtos", m.ProductCost.InexactFloat64()},
		{"Despesas", m.Expenses.InexactFloat64()},
		{"Lucro", m.Profit.InexactFloat64()},
		{"Bilhete médio", m.AverageTicket.Round(2).InexactFloat64()},
		{"Margem de lucro (%)", m.ProfitMargin.Round(2).InexactFloat64()},
		{"Dias no prejuízo", m.LossDays},
		{"Lucro acumulado", m.FinalCumulativeProfit.InexactFloat64()},
		{"Melhor dia", best},
		{"Lucro do melhor dia", bestProfit},
	})
	w.money(SheetSummary, "B3", "B7")
	w.money(SheetSummary, "B10", "B10")
	w.money(SheetSummary, "B12", "B12")

	days := make([][]any, 0, len(r.Days))
	for i, d := range r.Days {
		days = append(days, []any{
			d.Date, d.SalesCount,
			d.Revenue.InexactFloat64(), d.Cost.InexactFloat64(),
			d.Expenses.InexactFloat64(), d.Profit.InexactFloat64(),
			r.Cumulative[i].CumulativeProfit.InexactFloat64(),
		})
	}
	w.rows(SheetDays, []string{"Data", "Vendas", "Faturamento", "Custo", "Despesas", "Lucro", "Lucro acumulado"}, days)
	if len(days) > 0 {
		w.money(SheetDays, "C2", fmt.Sprintf("G%d", len(days)+1))
	}

	products := make([][]any, 0, len(r.TopProducts))
	for _, p := range r.TopProducts {
		products = append(products, []any{p.Product, p.Quantity, p.Revenue.InexactFloat64(), p.Profit.InexactFloat64()})
	}
	w.rows(SheetProducts, []string{"Produto", "Qtd", "Faturamento", "Lucro"}, products)
	if len(products) > 0 {
		w.money(SheetProducts, "C2", fmt.Sprintf("D%d", len(products)+1))
	}

	sales := make([][]any, 0, len(r.RecentSales))
	for _, s := range r.RecentSales {
		sales = append(sales, []any{s.ID, s.Date, s.Total.InexactFloat64(), s.PaymentMethod, s.Note})
	}
	w.rows(SheetSales, []string{"ID", "Data", "Total", "Forma de pagamento", "Observação"}, sales)
	if len(sales) > 0 {
		w.money(SheetSales, "C2", fmt.Sprintf("C%d", len(sales)+1))
	}

	if w.err != nil {
		return nil, w.err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// xlsxWriter acumula el primer error para no cortar el armado en cada llamada.
type xlsxWriter struct {
	f      *excelize.File
	err    error
	bold   int
	moneyS int
}

func (w *xlsxWriter) styles() {
	w.bold, w.err = w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if w.err != nil {
		return
	}
	format := moneyFormat
	w.moneyS, w.err = w.f.NewStyle(&excelize.Style{CustomNumFmt: &format})
}

func (w *xlsxWriter) rows(sheetName string, header []string, data [][]any) {
	if w.err != nil {
		return
	}
	h := make([]any, len(header))
	for i, v := range header {
		h[i] = v
	}
	if w.err = w.f.SetSheetRow(sheetName, "A1", &h); w.err != nil {
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if w.err = w.f.SetCellStyle(sheetName, "A1", last, w.bold); w.err != nil {
		return
	}
	for i, r := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := r
		if w.err = w.f.SetSheetRow(sheetName, cell, &row); w.err != nil {
			return
		}
	}
	_ = w.f.SetColWidth(sheetName, "A", "A", 22)
}

func (w *xlsxWriter) money(sheetName, from, to string) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(sheetName, from, to, w.moneyS)
}
