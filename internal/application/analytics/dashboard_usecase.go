// Package analytics contiene los casos de uso del painel financiero del caixa.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pdv-planilha-api/internal/application/dto"
	"github.com/jhoicas/pdv-planilha-api/internal/application/ports"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/dashboard"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/repository"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
	"github.com/jhoicas/pdv-planilha-api/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// DashboardUseCase arma el reporte del painel a partir de las hojas vendas,
// venda_itens y despesas.
//
// El cálculo vive en dashboard.Compute; este caso de uso solo resuelve el
// filtro, consulta la caché y lee las tres hojas en paralelo.
type DashboardUseCase struct {
	store    repository.RowStore
	cache    ports.DashboardCache
	exporter ports.ReportExporter
	log      *logger.Logger
	loc      *time.Location
	now      func() time.Time
}

// Option configura opciones secundarias del caso de uso.
type Option func(*DashboardUseCase)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *DashboardUseCase) { uc.now = now }
}

// WithLogger fija el logger; por defecto descarta.
func WithLogger(l *logger.Logger) Option {
	return func(uc *DashboardUseCase) { uc.log = l }
}

// NewDashboardUseCase construye el caso de uso. cache y exporter pueden ser nil.
func NewDashboardUseCase(
	store repository.RowStore,
	cache ports.DashboardCache,
	exporter ports.ReportExporter,
	loc *time.Location,
	opts ...Option,
) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	uc := &DashboardUseCase{
		store:    store,
		cache:    cache,
		exporter: exporter,
		log:      logger.Nop(),
		loc:      loc,
		now:      time.Now,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// GetDashboard devuelve el painel listo para serializar.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, preset, start, end string) (*dto.DashboardResponse, error) {
	report, err := uc.Report(ctx, preset, start, end)
	if err != nil {
		return nil, err
	}
	out := dto.NewDashboardResponse(report)
	return &out, nil
}

// Report resuelve el filtro y calcula (o recupera de la caché) el reporte de dominio.
//
// Las tres hojas se leen en paralelo; si una falla se cancelan las demás y no
// se devuelve un reporte parcial.
func (uc *DashboardUseCase) Report(ctx context.Context, preset, start, end string) (*dashboard.Report, error) {
	f := dashboard.ResolveFilter(preset, start, end, uc.now(), uc.loc)

	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, f)
		if err != nil {
			uc.log.Warn().Err(err).Msg("dashboard: caché no disponible, leyendo planilha")
		} else if ok {
			return cached, nil
		}
	}

	// ── Lectura paralela de las 3 hojas ──────────────────────────────────────
	in := dashboard.Input{Location: uc.loc}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := uc.store.Rows(gctx, sheet.TableSales)
		if err != nil {
			return fmt.Errorf("dashboard: leer vendas: %w", err)
		}
		in.Sales = rows
		return nil
	})
	g.Go(func() error {
		rows, err := uc.store.Rows(gctx, sheet.TableSaleItems)
		if err != nil {
			return fmt.Errorf("dashboard: leer venda_itens: %w", err)
		}
		in.Items = rows
		return nil
	})
	g.Go(func() error {
		rows, err := uc.store.Rows(gctx, sheet.TableExpenses)
		if err != nil {
			return fmt.Errorf("dashboard: leer despesas: %w", err)
		}
		in.Expenses = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := dashboard.Compute(in, f)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, f, report); err != nil {
			uc.log.Warn().Err(err).Msg("dashboard: no se pudo guardar en caché")
		}
	}
	return report, nil
}

// ExportPDF reporte del filtro dado en PDF.
func (uc *DashboardUseCase) ExportPDF(ctx context.Context, preset, start, end string) ([]byte, error) {
	return uc.export(ctx, preset, start, end, func(r *dashboard.Report) ([]byte, error) {
		return uc.exporter.PDF(r)
	})
}

// ExportXLSX reporte del filtro dado en Excel.
func (uc *DashboardUseCase) ExportXLSX(ctx context.Context, preset, start, end string) ([]byte, error) {
	return uc.export(ctx, preset, start, end, func(r *dashboard.Report) ([]byte, error) {
		return uc.exporter.XLSX(r)
	})
}

func (uc *DashboardUseCase) export(ctx context.Context, preset, start, end string, render func(*dashboard.Report) ([]byte, error)) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("dashboard: exportador no configurado")
	}
	report, err := uc.Report(ctx, preset, start, end)
	if err != nil {
		return nil, err
	}
	out, err := render(report)
	if err != nil {
		return nil, fmt.Errorf("dashboard: exportar: %w", err)
	}
	return out, nil
}
