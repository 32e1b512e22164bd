package dashboard

import (
	"github.com/jhoicas/pdv-planilha-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Report resultado completo de una agregación.
type Report struct {
	Filter      Filter
	Metrics     Metrics
	Days        []DayBucket
	Cumulative  []CumulativePoint
	TopProducts []ProductAggregate
	RecentSales []entity.Sale
}

// Metrics escalares sobre toda la ventana filtrada.
type Metrics struct {
	SalesCount            int
	Revenue               decimal.Decimal
	ProductCost           decimal.Decimal
	Expenses              decimal.Decimal
	Profit                decimal.Decimal
	AverageTicket         decimal.Decimal
	ProfitMargin          decimal.Decimal // porcentaje, 0..100 (puede ser negativo)
	LossDays              int
	FinalCumulativeProfit decimal.Decimal
	BestDay               *BestDay // nil si no hay días
}

// BestDay día de mayor lucro.
type BestDay struct {
	Date    string
	Profit  decimal.Decimal
	Revenue decimal.Decimal
}

// DayBucket resumen de un día calendario.
type DayBucket struct {
	Date       string
	SalesCount int
	Revenue    decimal.Decimal
	Cost       decimal.Decimal
	Expenses   decimal.Decimal
	Profit     decimal.Decimal
}

// CumulativePoint lucro acumulado hasta Date inclusive.
type CumulativePoint struct {
	Date             string
	CumulativeProfit decimal.Decimal
}

// ProductAggregate totales de un producto en la ventana.
type ProductAggregate struct {
	Product  string
	Quantity int64
	Revenue  decimal.Decimal
	Profit   decimal.Decimal
}
