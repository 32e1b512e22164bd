package usecase

import (
	"context"

	"github.com/jhoicas/pdv-planilha-api/internal/application/ports"
	"github.com/jhoicas/pdv-planilha-api/pkg/logger"
)

// invalidateDashboard descarta el painel cacheado tras una escritura.
// Un fallo solo se registra: la escritura ya quedó en la planilha y la
// entrada vence sola por TTL.
func invalidateDashboard(ctx context.Context, cache ports.DashboardCache, log *logger.Logger) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la caché del painel")
	}
}
