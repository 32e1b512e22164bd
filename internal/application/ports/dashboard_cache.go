package ports

import (
	"context"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/dashboard"
)

// DashboardCache define el puerto de caché del painel.
// Un fallo de caché nunca debe hacer fallar la petición: el caso de uso lo
// registra y sigue contra el almacenamiento.
type DashboardCache interface {
	// Get devuelve (nil, false, nil) cuando no hay entrada para el filtro.
	Get(ctx context.Context, f dashboard.Filter) (*dashboard.Report, bool, error)
	Set(ctx context.Context, f dashboard.Filter, r *dashboard.Report) error
	// InvalidateAll se llama después de cualquier escritura en vendas, venda_itens o despesas.
	InvalidateAll(ctx context.Context) error
}
