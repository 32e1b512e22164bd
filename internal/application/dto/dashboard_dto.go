package dto

import (
	"github.com/jhoicas/pdv-planilha-api/internal/domain/dashboard"
	"github.com/shopspring/decimal"
)

// moneyPlaces decimales con que se publican los montos del painel.
const moneyPlaces = 2

// DashboardResponse respuesta de GET /api/dashboard.
// Los nombres JSON son los que consume la UI del caixa.
type DashboardResponse struct {
	OK             bool                  `json:"ok"`
	Filter         FilterDTO             `json:"filter"`
	Metrics        MetricsDTO            `json:"metrics"`
	ResumoPorDia   []DayBucketDTO        `json:"resumoPorDia"`
	LucroAcumulado []CumulativePointDTO  `json:"lucroAcumulado"`
	TopProdutos    []ProductAggregateDTO `json:"topProdutos"`
	UltimasVendas  []RecentSaleDTO       `json:"ultimasVendas"`
}

// FilterDTO filtro efectivo; start/end null = sin límite.
type FilterDTO struct {
	Start  *string `json:"start"`
	End    *string `json:"end"`
	Preset string  `json:"preset"`
}

// MetricsDTO escalares de la ventana filtrada.
type MetricsDTO struct {
	Vendas              int             `json:"vendas"`
	Faturamento         decimal.Decimal `json:"faturamento"`
	Despesas            decimal.Decimal `json:"despesas"`
	CustoProdutos       decimal.Decimal `json:"custoProdutos"`
	Lucro               decimal.Decimal `json:"lucro"`
	BilheteMedio        decimal.Decimal `json:"bilheteMedio"`
	MargemLucro         decimal.Decimal `json:"margemLucro"`
	DiasNoPrejuizo      int             `json:"diasNoPrejuizo"`
	LucroAcumuladoFinal decimal.Decimal `json:"lucroAcumuladoFinal"`
	MelhorDia           *BestDayDTO     `json:"melhorDia"`
}

// BestDayDTO día de mayor lucro.
type BestDayDTO struct {
	Data        string          `json:"data"`
	Lucro       decimal.Decimal `json:"lucro"`
	Faturamento decimal.Decimal `json:"faturamento"`
}

// DayBucketDTO fila de resumoPorDia.
type DayBucketDTO struct {
	Data        string          `json:"data"`
	Vendas      int             `json:"vendas"`
	Faturamento decimal.Decimal `json:"faturamento"`
	Despesas    decimal.Decimal `json:"despesas"`
	Custo       decimal.Decimal `json:"custo"`
	Lucro       decimal.Decimal `json:"lucro"`
}

// CumulativePointDTO punto de la serie lucroAcumulado.
type CumulativePointDTO struct {
	Data           string          `json:"data"`
	LucroAcumulado decimal.Decimal `json:"lucro_acumulado"`
}

// ProductAggregateDTO entrada de topProdutos.
type ProductAggregateDTO struct {
	Produto     string          `json:"produto"`
	Qtd         int64           `json:"qtd"`
	Faturamento decimal.Decimal `json:"faturamento"`
	Lucro       decimal.Decimal `json:"lucro"`
}

// RecentSaleDTO entrada de ultimasVendas.
type RecentSaleDTO struct {
	ID             string          `json:"id"`
	Data           string          `json:"data"`
	Total          decimal.Decimal `json:"total"`
	FormaPagamento string          `json:"forma_pagamento"`
	Observacao     string          `json:"observacao"`
}

// NewDashboardResponse traduce el reporte de dominio al formato de la UI,
// redondeando montos a 2 decimales. Las listas vacías salen como [] y no null.
func NewDashboardResponse(r *dashboard.Report) DashboardResponse {
	m := r.Metrics
	out := DashboardResponse{
		OK: true,
		Filter: FilterDTO{
			Start:  optional(r.Filter.Start),
			End:    optional(r.Filter.End),
			Preset: r.Filter.Preset,
		},
		Metrics: MetricsDTO{
			Vendas:              m.SalesCount,
			Faturamento:         round(m.Revenue),
			Despesas:            round(m.Expenses),
			CustoProdutos:       round(m.ProductCost),
			Lucro:               round(m.Profit),
			BilheteMedio:        round(m.AverageTicket),
			MargemLucro:         round(m.ProfitMargin),
			DiasNoPrejuizo:      m.LossDays,
			LucroAcumuladoFinal: round(m.FinalCumulativeProfit),
		},
		ResumoPorDia:   make([]DayBucketDTO, 0, len(r.Days)),
		LucroAcumulado: make([]CumulativePointDTO, 0, len(r.Days)),
		TopProdutos:    make([]ProductAggregateDTO, 0, len(r.TopProducts)),
		UltimasVendas:  make([]RecentSaleDTO, 0, len(r.RecentSales)),
	}
	if m.BestDay != nil {
		out.Metrics.MelhorDia = &BestDayDTO{
			Data:        m.BestDay.Date,
			Lucro:       round(m.BestDay.Profit),
			Faturamento: round(m.BestDay.Revenue),
		}
	}
	for _, d := range r.Days {
		out.ResumoPorDia = append(out.ResumoPorDia, DayBucketDTO{
			Data:        d.Date,
			Vendas:      d.SalesCount,
			Faturamento: round(d.Revenue),
			Despesas:    round(d.Expenses),
			Custo:       round(d.Cost),
			Lucro:       round(d.Profit),
		})
	}
	// El acumulado se arma sumando el lucro ya redondeado de cada día, así cada
	// punto es exactamente el anterior más el lucro publicado en resumoPorDia.
	running := decimal.Zero
	for _, d := range out.ResumoPorDia {
		running = running.Add(d.Lucro)
		out.LucroAcumulado = append(out.LucroAcumulado, CumulativePointDTO{
			Data:           d.Data,
			LucroAcumulado: running,
		})
	}
	if len(out.ResumoPorDia) > 0 {
		out.Metrics.LucroAcumuladoFinal = running
	}
	for _, p := range r.TopProducts {
		out.TopProdutos = append(out.TopProdutos, ProductAggregateDTO{
			Produto:     p.Product,
			Qtd:         p.Quantity,
			Faturamento: round(p.Revenue),
			Lucro:       round(p.Profit),
		})
	}
	for _, s := range r.RecentSales {
		out.UltimasVendas = append(out.UltimasVendas, RecentSaleDTO{
			ID:             s.ID,
			Data:           s.Date,
			Total:          round(s.Total),
			FormaPagamento: s.PaymentMethod,
			Observacao:     s.Note,
		})
	}
	return out
}

func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
