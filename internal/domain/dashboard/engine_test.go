package dashboard_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/dashboard"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func rows(cells ...[]any) []sheet.Row {
	out := make([]sheet.Row, len(cells))
	for i, c := range cells {
		out[i] = sheet.Row{Number: i + 2, Cells: c}
	}
	return out
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got)
}

var unbounded = dashboard.Filter{}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_EscenarioCompleto(t *testing.T) {
	in := dashboard.Input{
		Sales:    rows([]any{"1", "2026-01-01", 100.0, "pix", ""}),
		Items:    rows([]any{"1", "p1", "Coxinha", 10.0, 10.0, 4.0, 100.0}),
		Expenses: rows([]any{"d1", "2026-01-01", "insumos", "óleo", 20.0}),
		Location: time.UTC,
	}

	r := dashboard.Compute(in, unbounded)
	m := r.Metrics

	assert.Equal(t, 1, m.SalesCount)
	assertDecimal(t, "100", m.Revenue, "faturamento")
	assertDecimal(t, "40", m.ProductCost, "custoProdutos")
	assertDecimal(t, "20", m.Expenses, "despesas")
	assertDecimal(t, "40", m.Profit, "lucro")
	assertDecimal(t, "100", m.AverageTicket, "bilheteMedio")
	assertDecimal(t, "40", m.ProfitMargin, "margemLucro")
	assert.Equal(t, 0, m.LossDays)
	assertDecimal(t, "40", m.FinalCumulativeProfit, "lucroAcumuladoFinal")

	require.Len(t, r.Days, 1)
	assert.Equal(t, "2026-01-01", r.Days[0].Date)
	assert.Equal(t, 1, r.Days[0].SalesCount)
	assertDecimal(t, "40", r.Days[0].Profit, "lucro do dia")

	require.Len(t, r.Cumulative, 1)
	assert.Equal(t, "2026-01-01", r.Cumulative[0].Date)
	assertDecimal(t, "40", r.Cumulative[0].CumulativeProfit, "acumulado")

	require.Len(t, r.TopProducts, 1)
	assert.Equal(t, "Coxinha", r.TopProducts[0].Product)
	assert.Equal(t, int64(10), r.TopProducts[0].Quantity)
	assertDecimal(t, "100", r.TopProducts[0].Revenue, "faturamento do produto")
	assertDecimal(t, "60", r.TopProducts[0].Profit, "lucro do produto")

	require.NotNil(t, m.BestDay)
	assert.Equal(t, "2026-01-01", m.BestDay.Date)

	require.Len(t, r.RecentSales, 1)
	assert.Equal(t, "pix", r.RecentSales[0].PaymentMethod)
}

func TestCompute_SinDatos(t *testing.T) {
	r := dashboard.Compute(dashboard.Input{Location: time.UTC}, unbounded)

	assert.Equal(t, 0, r.Metrics.SalesCount)
	assert.True(t, r.Metrics.AverageTicket.IsZero())
	assert.True(t, r.Metrics.ProfitMargin.IsZero())
	assert.Nil(t, r.Metrics.BestDay, "sin días no hay melhor dia")
	assert.Empty(t, r.Days)
	assert.Empty(t, r.Cumulative)
	assert.Empty(t, r.TopProducts)
	assert.Empty(t, r.RecentSales)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filas mal formadas
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_DescartaVentasInvalidas(t *testing.T) {
	in := dashboard.Input{
		Sales: rows(
			[]any{"1", "2026-01-01", 50.0},
			[]any{"2", "2026-01-01", 0.0},   // total cero
			[]any{"", "2026-01-01", 30.0},   // sin id
			[]any{"3", "ontem", 30.0},       // fecha ilegible
			[]any{"4", "2026-01-02", "abc"}, // total ilegible
			[]any{"5"},                      // fila corta
		),
		Items: rows(
			[]any{"2", "p1", "Pastel", 3.0, 5.0, 1.0},
			[]any{"", "p1", "Pastel", 3.0, 5.0, 1.0},
		),
		Location: time.UTC,
	}

	r := dashboard.Compute(in, unbounded)

	assert.Equal(t, 1, r.Metrics.SalesCount)
	assertDecimal(t, "50", r.Metrics.Revenue, "solo la venta válida suma")
	assert.True(t, r.Metrics.ProductCost.IsZero(), "ítems de ventas descartadas no cuentan")
	require.Len(t, r.Days, 1)
	assert.Equal(t, "2026-01-01", r.Days[0].Date)
	assert.Equal(t, 1, r.Days[0].SalesCount)
	assert.Empty(t, r.TopProducts)
}

func TestCompute_DescartaDespesasInvalidas(t *testing.T) {
	in := dashboard.Input{
		Expenses: rows(
			[]any{"d1", "2026-01-03", "luz", "conta", "R$ 120,50"},
			[]any{"d2", "", "luz", "sem data", 10.0},
			[]any{"d3", "2026-01-03", "luz", "zero", 0.0},
			[]any{"d4", "2026-01-03", "luz", "negativa", -5.0},
		),
		Location: time.UTC,
	}

	r := dashboard.Compute(in, unbounded)

	assertDecimal(t, "120.5", r.Metrics.Expenses, "despesas")
	require.Len(t, r.Days, 1, "un día solo con despesa también aparece")
	assert.Equal(t, 0, r.Days[0].SalesCount)
	assertDecimal(t, "-120.5", r.Days[0].Profit, "lucro")
	assert.Equal(t, 1, r.Metrics.LossDays)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtro de rango
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_FiltraPorRango(t *testing.T) {
	in := dashboard.Input{
		Sales: rows(
			[]any{"1", "2026-01-01", 10.0},
			[]any{"2", "05/01/2026", 20.0},
			[]any{"3", "2026-01-10T09:00:00", 30.0},
		),
		Items: rows(
			[]any{"1", "p1", "A", 1.0, 10.0, 1.0},
			[]any{"2", "p2", "B", 1.0, 20.0, 2.0},
			[]any{"3", "p3", "C", 1.0, 30.0, 3.0},
		),
		Expenses: rows(
			[]any{"d1", "2026-01-05", "x", "", 5.0},
			[]any{"d2", "2026-01-11", "x", "", 7.0},
		),
		Location: time.UTC,
	}

	r := dashboard.Compute(in, dashboard.Filter{Start: "2026-01-02", End: "2026-01-10"})

	assert.Equal(t, 2, r.Metrics.SalesCount)
	assertDecimal(t, "50", r.Metrics.Revenue, "faturamento")
	assertDecimal(t, "5", r.Metrics.ProductCost, "custo só dos itens em rango")
	assertDecimal(t, "5", r.Metrics.Expenses, "despesas em rango")
	require.Len(t, r.Days, 2)
	assert.Equal(t, "2026-01-05", r.Days[0].Date)
	assert.Equal(t, "2026-01-10", r.Days[1].Date)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades de las series
// ──────────────────────────────────────────────────────────────────────────────

func multiDayInput() dashboard.Input {
	return dashboard.Input{
		Sales: rows(
			[]any{"10", "2026-02-03", 80.0},
			[]any{"11", "2026-02-01", "1.234,56"},
			[]any{"12", "2026-02-02", 15.0},
			[]any{"13", "2026-02-01", 0.1},
		),
		Items: rows(
			[]any{"10", "p1", "Suco", 4.0, 20.0, 7.5},
			[]any{"11", "p2", "Bolo", 3.0, 411.52, 100.0},
			[]any{"12", "p1", "Suco", 1.0, 15.0, 7.5},
			[]any{"13", "p3", "Bala", 1.0, 0.1, 0.03},
		),
		Expenses: rows(
			[]any{"d1", "2026-02-02", "aluguel", "", 300.0},
			[]any{"d2", "2026-02-04", "luz", "", 0.2},
		),
		Location: time.UTC,
	}
}

func TestCompute_IdentidadDeLucroPorDia(t *testing.T) {
	r := dashboard.Compute(multiDayInput(), unbounded)
	require.NotEmpty(t, r.Days)
	for _, d := range r.Days {
		want := d.Revenue.Sub(d.Cost).Sub(d.Expenses)
		assert.True(t, want.Equal(d.Profit), "día %s: lucro %s != %s", d.Date, d.Profit, want)
	}
}

func TestCompute_DiasOrdenadosAscendente(t *testing.T) {
	r := dashboard.Compute(multiDayInput(), unbounded)
	dates := make([]string, 0, len(r.Days))
	for _, d := range r.Days {
		dates = append(dates, d.Date)
	}
	assert.Equal(t, []string{"2026-02-01", "2026-02-02", "2026-02-03", "2026-02-04"}, dates)
}

func TestCompute_AcumuladoEncadenado(t *testing.T) {
	r := dashboard.Compute(multiDayInput(), unbounded)
	require.Len(t, r.Cumulative, len(r.Days))

	prev := decimal.Zero
	for i, p := range r.Cumulative {
		assert.Equal(t, r.Days[i].Date, p.Date)
		assert.True(t, prev.Add(r.Days[i].Profit).Equal(p.CumulativeProfit), "punto %d", i)
		prev = p.CumulativeProfit
	}
	last := r.Cumulative[len(r.Cumulative)-1]
	assert.True(t, last.CumulativeProfit.Equal(r.Metrics.FinalCumulativeProfit))
	assert.True(t, r.Metrics.Profit.Equal(r.Metrics.FinalCumulativeProfit), "la suma por día coincide con el total")
}

func TestCompute_MelhorDiaEmpateGanaElMasTemprano(t *testing.T) {
	in := dashboard.Input{
		Sales: rows(
			[]any{"1", "2026-03-05", 50.0},
			[]any{"2", "2026-03-02", 50.0},
			[]any{"3", "2026-03-03", 20.0},
		),
		Location: time.UTC,
	}

	r := dashboard.Compute(in, unbounded)

	require.NotNil(t, r.Metrics.BestDay)
	assert.Equal(t, "2026-03-02", r.Metrics.BestDay.Date)
	assertDecimal(t, "50", r.Metrics.BestDay.Revenue, "faturamento do melhor dia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Top produtos
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_TopProdutosLimitadoA10(t *testing.T) {
	sales := make([][]any, 0, 15)
	items := make([][]any, 0, 15)
	for i := 1; i <= 15; i++ {
		id := fmt.Sprintf("%d", 100+i)
		sales = append(sales, []any{id, "2026-01-01", 1.0})
		items = append(items, []any{id, fmt.Sprintf("p%d", i), fmt.Sprintf("Produto %d", i), float64(i), 1.0, 0.5})
	}
	in := dashboard.Input{Sales: rows(sales...), Items: rows(items...), Location: time.UTC}

	r := dashboard.Compute(in, unbounded)

	require.Len(t, r.TopProducts, dashboard.TopProductsLimit)
	assert.Equal(t, "Produto 15", r.TopProducts[0].Product)
	assert.Equal(t, "Produto 6", r.TopProducts[9].Product)
	for i := 1; i < len(r.TopProducts); i++ {
		assert.Greater(t, r.TopProducts[i-1].Quantity, r.TopProducts[i].Quantity)
	}
}

func TestCompute_TopProdutosClaveYEmpateEstable(t *testing.T) {
	in := dashboard.Input{
		Sales: rows([]any{"1", "2026-01-01", 10.0}),
		Items: rows(
			[]any{"1", "p9", "", 2.0, 1.0, 0.0},       // sin nombre: clave = id
			[]any{"1", "", "", 2.0, 1.0, 0.0},         // sin nombre ni id
			[]any{"1", "p1", "Café", 2.0, 3.0, 1.0},   // Café
			[]any{"1", "p1-b", "Café", 1.0, 3.0, 1.0}, // mismo nombre, otro id: se agrupa
		),
		Location: time.UTC,
	}

	r := dashboard.Compute(in, unbounded)

	require.Len(t, r.TopProducts, 3)
	assert.Equal(t, "Café", r.TopProducts[0].Product)
	assert.Equal(t, int64(3), r.TopProducts[0].Quantity)
	assertDecimal(t, "6", r.TopProducts[0].Profit, "lucro Café")
	assert.Equal(t, "p9", r.TopProducts[1].Product, "empate: orden de aparición")
	assert.Equal(t, dashboard.UnnamedProduct, r.TopProducts[2].Product)
}

// ──────────────────────────────────────────────────────────────────────────────
// Últimas vendas
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_UltimasVendasOrden(t *testing.T) {
	in := dashboard.Input{
		Sales: rows(
			[]any{"999", "2026-01-02", 1.0},
			[]any{"1000", "2026-01-02", 1.0},
			[]any{"5", "2026-01-03", 1.0},
			[]any{"1", "2026-01-01", 1.0},
		),
		Location: time.UTC,
	}

	r := dashboard.Compute(in, unbounded)

	ids := make([]string, 0, len(r.RecentSales))
	for _, s := range r.RecentSales {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"5", "1000", "999", "1"}, ids)
}

func TestCompute_UltimasVendasLimitadoA10(t *testing.T) {
	sales := make([][]any, 0, 12)
	for i := 0; i < 12; i++ {
		sales = append(sales, []any{fmt.Sprintf("%d", 1700000000000+i), "2026-01-01", 1.0})
	}
	r := dashboard.Compute(dashboard.Input{Sales: rows(sales...), Location: time.UTC}, unbounded)

	require.Len(t, r.RecentSales, dashboard.RecentSalesLimit)
	assert.Equal(t, "1700000000011", r.RecentSales[0].ID)
	assert.Equal(t, 12, r.Metrics.SalesCount, "el límite no afecta las métricas")
}

func TestCompute_ItemsDeVentaDuplicadaUsanUltimaFecha(t *testing.T) {
	in := dashboard.Input{
		Sales: rows(
			[]any{"7", "2026-01-01", 10.0},
			[]any{"7", "2026-01-02", 10.0},
		),
		Items:    rows([]any{"7", "p1", "X", 1.0, 10.0, 4.0}),
		Location: time.UTC,
	}

	r := dashboard.Compute(in, unbounded)

	require.Len(t, r.Days, 2)
	assert.True(t, r.Days[0].Cost.IsZero())
	assertDecimal(t, "4", r.Days[1].Cost, "custo no último dia")
}
