// Package storage elige la implementación de RowStore según STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/repository"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/memory"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/sheets"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/pdv-planilha-api/pkg/config"
)

// Open abre el store configurado. closeFn libera la conexión o el libro y
// siempre es distinto de nil.
func Open(ctx context.Context, cfg *config.Config) (store repository.RowStore, closeFn func(), err error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverSheets:
		s, err := sheets.New(ctx, sheets.Config{
			SpreadsheetID:   cfg.Storage.SpreadsheetID,
			CredentialsJSON: cfg.Storage.CredentialsJSON,
			ClientEmail:     cfg.Storage.ClientEmail,
			PrivateKey:      cfg.Storage.PrivateKey,
		})
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case config.DriverXLSX:
		s, err := xlsx.Open(cfg.Storage.XLSXPath)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, fmt.Errorf("postgres: %w", err)
		}
		s := postgres.NewRowStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return s, pool.Close, nil

	case config.DriverMemory:
		return memory.New(), noop, nil
	}
	return nil, noop, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
}
