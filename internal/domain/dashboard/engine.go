// Package dashboard agrega ventas, ítems y despesas en las métricas del painel.
//
// El cálculo es puro: recibe las filas crudas ya leídas del almacenamiento y no
// hace I/O. Filas mal formadas se descartan en silencio; nunca cortan el cálculo.
package dashboard

import (
	"sort"
	"time"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/entity"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
	"github.com/shopspring/decimal"
)

// Límites de las listas del reporte.
const (
	TopProductsLimit = 10
	RecentSalesLimit = 10

	// UnnamedProduct clave de producto sin nombre ni id.
	UnnamedProduct = "Sem nome"
)

var hundred = decimal.NewFromInt(100)

// Input filas crudas de las tres hojas que alimentan el painel.
type Input struct {
	Sales    []sheet.Row
	Items    []sheet.Row
	Expenses []sheet.Row
	Location *time.Location
}

// Compute arma el reporte para el filtro dado.
func Compute(in Input, f Filter) *Report {
	sales := filterSales(in.Sales, in.Location, f)

	// venda_id → fecha; con ids duplicados gana la última fila.
	saleDate := make(map[string]string, len(sales))
	for _, s := range sales {
		saleDate[s.ID] = s.Date
	}

	items := make([]entity.SaleItem, 0, len(in.Items))
	for _, row := range in.Items {
		it := entity.SaleItemFromRow(row)
		if it.SaleID == "" {
			continue
		}
		if _, ok := saleDate[it.SaleID]; !ok {
			continue
		}
		items = append(items, it)
	}

	expenses := make([]entity.Expense, 0, len(in.Expenses))
	for _, row := range in.Expenses {
		e := entity.ExpenseFromRow(row, in.Location)
		if !e.Valid() || !f.Contains(e.Date) {
			continue
		}
		expenses = append(expenses, e)
	}

	r := &Report{Filter: f}
	r.Metrics = totals(sales, items, expenses)
	r.Days = dayBuckets(sales, items, expenses, saleDate)

	for _, d := range r.Days {
		if d.Profit.IsNegative() {
			r.Metrics.LossDays++
		}
	}
	r.Metrics.BestDay = bestDay(r.Days)
	r.Cumulative, r.Metrics.FinalCumulativeProfit = cumulative(r.Days)
	r.TopProducts = topProducts(items, TopProductsLimit)
	r.RecentSales = recentSales(sales, RecentSalesLimit)
	return r
}

func filterSales(rows []sheet.Row, loc *time.Location, f Filter) []entity.Sale {
	out := make([]entity.Sale, 0, len(rows))
	for _, row := range rows {
		s := entity.SaleFromRow(row, loc)
		if !s.Valid() || !f.Contains(s.Date) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func totals(sales []entity.Sale, items []entity.SaleItem, expenses []entity.Expense) Metrics {
	m := Metrics{SalesCount: len(sales)}
	for _, s := range sales {
		m.Revenue = m.Revenue.Add(s.Total)
	}
	for _, it := range items {
		m.ProductCost = m.ProductCost.Add(it.Cost())
	}
	for _, e := range expenses {
		m.Expenses = m.Expenses.Add(e.Amount)
	}
	m.Profit = m.Revenue.Sub(m.ProductCost).Sub(m.Expenses)
	if m.SalesCount > 0 {
		m.AverageTicket = m.Revenue.Div(decimal.NewFromInt(int64(m.SalesCount)))
	}
	if m.Revenue.IsPositive() {
		m.ProfitMargin = m.Profit.Div(m.Revenue).Mul(hundred)
	}
	return m
}

// dayIndex asociación fecha → bucket con get-or-create.
type dayIndex struct {
	byDate map[string]*DayBucket
	order  []*DayBucket
}

func (x *dayIndex) get(date string) *DayBucket {
	if b, ok := x.byDate[date]; ok {
		return b
	}
	b := &DayBucket{Date: date}
	x.byDate[date] = b
	x.order = append(x.order, b)
	return b
}

func dayBuckets(sales []entity.Sale, items []entity.SaleItem, expenses []entity.Expense, saleDate map[string]string) []DayBucket {
	idx := &dayIndex{byDate: make(map[string]*DayBucket)}

	for _, s := range sales {
		b := idx.get(s.Date)
		b.SalesCount++
		b.Revenue = b.Revenue.Add(s.Total)
	}
	for _, it := range items {
		date, ok := saleDate[it.SaleID]
		if !ok {
			continue
		}
		b := idx.get(date)
		b.Cost = b.Cost.Add(it.Cost())
	}
	for _, e := range expenses {
		b := idx.get(e.Date)
		b.Expenses = b.Expenses.Add(e.Amount)
	}

	out := make([]DayBucket, 0, len(idx.order))
	for _, b := range idx.order {
		b.Profit = b.Revenue.Sub(b.Cost).Sub(b.Expenses)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// bestDay: en empate gana la fecha más temprana (comparación estricta).
func bestDay(days []DayBucket) *BestDay {
	var best *BestDay
	for _, d := range days {
		if best == nil || d.Profit.GreaterThan(best.Profit) {
			best = &BestDay{Date: d.Date, Profit: d.Profit, Revenue: d.Revenue}
		}
	}
	return best
}

func cumulative(days []DayBucket) ([]CumulativePoint, decimal.Decimal) {
	running := decimal.Zero
	out := make([]CumulativePoint, 0, len(days))
	for _, d := range days {
		running = running.Add(d.Profit)
		out = append(out, CumulativePoint{Date: d.Date, CumulativeProfit: running})
	}
	return out, running
}

func topProducts(items []entity.SaleItem, limit int) []ProductAggregate {
	byKey := make(map[string]int)
	var aggs []ProductAggregate

	for _, it := range items {
		key := it.ProductName
		if key == "" {
			key = it.ProductID
		}
		if key == "" {
			key = UnnamedProduct
		}
		i, ok := byKey[key]
		if !ok {
			i = len(aggs)
			byKey[key] = i
			aggs = append(aggs, ProductAggregate{Product: key})
		}
		revenue := it.Revenue()
		aggs[i].Quantity += it.Quantity
		aggs[i].Revenue = aggs[i].Revenue.Add(revenue)
		aggs[i].Profit = aggs[i].Profit.Add(revenue.Sub(it.Cost()))
	}

	sort.SliceStable(aggs, func(i, j int) bool { return aggs[i].Quantity > aggs[j].Quantity })
	if len(aggs) > limit {
		aggs = aggs[:limit]
	}
	if aggs == nil {
		aggs = []ProductAggregate{}
	}
	return aggs
}

// recentSales: fecha descendente; misma fecha, id descendente.
func recentSales(sales []entity.Sale, limit int) []entity.Sale {
	out := make([]entity.Sale, len(sales))
	copy(out, sales)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return CompareIDs(out[i].ID, out[j].ID) > 0
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
