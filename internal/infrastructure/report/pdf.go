package report

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/dashboard"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLoss    = &props.Color{Red: 185, Green: 28, Blue: 28}
)

// renderPDF arma el PDF A4 del painel:
//
//	encabezado (título + período)
//	métricas del período y melhor dia
//	tabla por día
//	top produtos y últimas vendas
func renderPDF(title string, r *dashboard.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, r.Filter))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metricsRows(r.Metrics)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Resumo por dia"))
	m.AddRows(tableHeader([]string{"Data", "Vendas", "Faturamento", "Custo", "Despesas", "Lucro"}, dayGrid))
	for _, d := range r.Days {
		m.AddRows(tableRow(dayGrid, d.Profit.IsNegative(),
			BRDate(d.Date),
			strconv.Itoa(d.SalesCount),
			BRL(d.Revenue),
			BRL(d.Cost),
			BRL(d.Expenses),
			BRL(d.Profit),
		))
	}

	m.AddRows(row.New(4))
	m.AddRows(sectionTitle("Top produtos"))
	m.AddRows(tableHeader([]string{"Produto", "Qtd", "Faturamento", "Lucro"}, productGrid))
	for _, p := range r.TopProducts {
		m.AddRows(tableRow(productGrid, p.Profit.IsNegative(),
			p.Product,
			strconv.FormatInt(p.Quantity, 10),
			BRL(p.Revenue),
			BRL(p.Profit),
		))
	}

	m.AddRows(row.New(4))
	m.AddRows(sectionTitle("Últimas vendas"))
	m.AddRows(tableHeader([]string{"ID", "Data", "Pagamento", "Total"}, salesGrid))
	for _, s := range r.RecentSales {
		m.AddRows(tableRow(salesGrid, false,
			s.ID,
			BRDate(s.Date),
			nonEmpty(s.PaymentMethod, "—"),
			BRL(s.Total),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// Anchos de columna (grilla de 12).
var (
	dayGrid     = []int{2, 1, 2, 2, 2, 3}
	productGrid = []int{6, 1, 2, 3}
	salesGrid   = []int{4, 2, 3, 3}
)

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, f dashboard.Filter) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Período", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(Period(f.Start, f.End), props.Text{
				Size: 10, Align: align.Right, Top: 6,
			}),
		),
	)
}

func metricsRows(m dashboard.Metrics) []core.Row {
	pair := func(label, value string, loss bool) core.Col {
		vp := props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}
		if loss {
			vp.Color = colorLoss
		}
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, vp),
		)
	}

	best := "—"
	if m.BestDay != nil {
		best = BRDate(m.BestDay.Date) + " (" + BRL(m.BestDay.Profit) + ")"
	}

	return []core.Row{
		row.New(13).Add(
			pair("Vendas", strconv.Itoa(m.SalesCount), false),
			pair("Faturamento", BRL(m.Revenue), false),
			pair("Custo dos produtos", BRL(m.ProductCost), false),
			pair("Despesas", BRL(m.Expenses), false),
		),
		row.New(13).Add(
			pair("Lucro", BRL(m.Profit), m.Profit.IsNegative()),
			pair("Bilhete médio", BRL(m.AverageTicket), false),
			pair("Margem de lucro", Percent(m.ProfitMargin), m.ProfitMargin.IsNegative()),
			pair("Dias no prejuízo", strconv.Itoa(m.LossDays), m.LossDays > 0),
		),
		row.New(10).Add(
			col.New(6).Add(
				text.New("Melhor dia: "+best, props.Text{Size: 9, Top: 2}),
			),
			col.New(6).Add(
				text.New("Lucro acumulado: "+BRL(m.FinalCumulativeProfit), props.Text{
					Size: 9, Top: 2, Align: align.Right,
				}),
			),
		),
	}
}

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels []string, grid []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols[i] = col.New(grid[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(cols...)
}

func tableRow(grid []int, loss bool, values ...string) core.Row {
	cols := make([]core.Col, len(values))
	for i, v := range values {
		p := props.Text{Size: 8, Align: align.Right, Top: 1, Left: 1, Right: 1}
		if i == 0 {
			p.Align = align.Left
		}
		if loss && i == len(values)-1 {
			p.Color = colorLoss
		}
		cols[i] = col.New(grid[i]).Add(text.New(v, p))
	}
	return row.New(6).Add(cols...)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
