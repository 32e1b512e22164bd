package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-planilha-api/internal/application/analytics"
	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/dashboard"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/memory"
)

// ── Dobles de test ──────────────────────────────────────────────────────────

type fakeCache struct {
	entries map[dashboard.Filter]*dashboard.Report
	getErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[dashboard.Filter]*dashboard.Report{}}
}

func (c *fakeCache) Get(_ context.Context, f dashboard.Filter) (*dashboard.Report, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	r, ok := c.entries[f]
	return r, ok, nil
}

func (c *fakeCache) Set(_ context.Context, f dashboard.Filter, r *dashboard.Report) error {
	c.sets++
	c.entries[f] = r
	return nil
}

func (c *fakeCache) InvalidateAll(context.Context) error {
	c.entries = map[dashboard.Filter]*dashboard.Report{}
	return nil
}

type fakeExporter struct {
	last *dashboard.Report
}

func (e *fakeExporter) PDF(r *dashboard.Report) ([]byte, error) {
	e.last = r
	return []byte("%PDF"), nil
}

func (e *fakeExporter) XLSX(r *dashboard.Report) ([]byte, error) {
	e.last = r
	return []byte("PK"), nil
}

var fixedNow = time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) *memory.RowStore {
	t.Helper()
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Append(ctx, sheet.TableSales,
		[]any{"1", "2026-01-01", 100.0, "pix", ""},
		[]any{"2", "10/01/2026", "R$ 50,00", "dinheiro", "troco"},
	))
	require.NoError(t, s.Append(ctx, sheet.TableSaleItems,
		[]any{"1", "p1", "Coxinha", 10.0, 10.0, 4.0, 100.0},
		[]any{"2", "p2", "Suco", 5.0, 10.0, 3.0, 50.0},
	))
	require.NoError(t, s.Append(ctx, sheet.TableExpenses,
		[]any{"d1", "2026-01-01", "insumos", "farinha", 20.0},
	))
	return s
}

// ── Tests ───────────────────────────────────────────────────────────────────

func TestGetDashboard_TodoElPeriodo(t *testing.T) {
	uc := analytics.NewDashboardUseCase(seededStore(t), nil, nil, time.UTC, analytics.WithClock(func() time.Time { return fixedNow }))

	out, err := uc.GetDashboard(context.Background(), "all", "", "")
	require.NoError(t, err)

	assert.True(t, out.OK)
	assert.Nil(t, out.Filter.Start)
	assert.Nil(t, out.Filter.End)
	assert.Equal(t, "all", out.Filter.Preset)
	assert.Equal(t, 2, out.Metrics.Vendas)
	assert.True(t, decimal.NewFromInt(150).Equal(out.Metrics.Faturamento))
	assert.True(t, decimal.NewFromInt(55).Equal(out.Metrics.CustoProdutos))
	assert.True(t, decimal.NewFromInt(75).Equal(out.Metrics.Lucro))
	assert.True(t, decimal.NewFromInt(50).Equal(out.Metrics.MargemLucro))
	require.NotNil(t, out.Metrics.MelhorDia)
	assert.Equal(t, "2026-01-01", out.Metrics.MelhorDia.Data)
	assert.Len(t, out.ResumoPorDia, 2)
	require.Len(t, out.UltimasVendas, 2)
	assert.Equal(t, "2", out.UltimasVendas[0].ID)
}

func TestGetDashboard_PresetHoy(t *testing.T) {
	uc := analytics.NewDashboardUseCase(seededStore(t), nil, nil, time.UTC, analytics.WithClock(func() time.Time { return fixedNow }))

	out, err := uc.GetDashboard(context.Background(), "0", "", "")
	require.NoError(t, err)

	require.NotNil(t, out.Filter.Start)
	assert.Equal(t, "2026-01-10", *out.Filter.Start)
	assert.Equal(t, 1, out.Metrics.Vendas)
	assert.True(t, decimal.NewFromInt(50).Equal(out.Metrics.Faturamento))
	require.Len(t, out.TopProdutos, 1)
	assert.Equal(t, "Suco", out.TopProdutos[0].Produto)
}

func TestGetDashboard_SinDatosListasVacias(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.New(), nil, nil, time.UTC)

	out, err := uc.GetDashboard(context.Background(), "", "", "")
	require.NoError(t, err)
	assert.NotNil(t, out.ResumoPorDia)
	assert.Empty(t, out.ResumoPorDia)
	assert.NotNil(t, out.UltimasVendas)
	assert.Nil(t, out.Metrics.MelhorDia)
}

func TestGetDashboard_HojaAusenteAbortaSinReporteParcial(t *testing.T) {
	for _, missing := range []sheet.Table{sheet.TableSales, sheet.TableSaleItems, sheet.TableExpenses} {
		t.Run(string(missing), func(t *testing.T) {
			var tables []sheet.Table
			for _, tb := range sheet.AllTables {
				if tb != missing {
					tables = append(tables, tb)
				}
			}
			cache := newFakeCache()
			uc := analytics.NewDashboardUseCase(memory.New(tables...), cache, nil, time.UTC)

			out, err := uc.GetDashboard(context.Background(), "all", "", "")
			assert.Nil(t, out)
			assert.ErrorIs(t, err, domain.ErrTableUnavailable)
			assert.Zero(t, cache.sets, "un error no se cachea")
		})
	}
}

func TestReport_UsaCache(t *testing.T) {
	store := seededStore(t)
	cache := newFakeCache()
	uc := analytics.NewDashboardUseCase(store, cache, nil, time.UTC)

	first, err := uc.Report(context.Background(), "all", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Una venta nueva no aparece hasta invalidar.
	require.NoError(t, store.Append(context.Background(), sheet.TableSales, []any{"3", "2026-01-02", 10.0}))
	second, err := uc.Report(context.Background(), "all", "", "")
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, cache.InvalidateAll(context.Background()))
	third, err := uc.Report(context.Background(), "all", "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, third.Metrics.SalesCount)
}

func TestReport_ErrorDeCacheNoFalla(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("redis caído")
	uc := analytics.NewDashboardUseCase(seededStore(t), cache, nil, time.UTC)

	r, err := uc.Report(context.Background(), "all", "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Metrics.SalesCount)
}

func TestExport(t *testing.T) {
	exp := &fakeExporter{}
	uc := analytics.NewDashboardUseCase(seededStore(t), nil, exp, time.UTC)

	pdf, err := uc.ExportPDF(context.Background(), "all", "", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	require.NotNil(t, exp.last)
	assert.Equal(t, 2, exp.last.Metrics.SalesCount)

	xlsx, err := uc.ExportXLSX(context.Background(), "", "2026-01-05", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), xlsx)
	assert.Equal(t, "2026-01-05", exp.last.Filter.Start)
	assert.Equal(t, 1, exp.last.Metrics.SalesCount)
}

func TestExport_SinExportador(t *testing.T) {
	uc := analytics.NewDashboardUseCase(seededStore(t), nil, nil, time.UTC)

	_, err := uc.ExportPDF(context.Background(), "all", "", "")
	assert.Error(t, err)
}
