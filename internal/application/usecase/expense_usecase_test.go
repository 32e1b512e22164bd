package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-planilha-api/internal/application/dto"
	"github.com/jhoicas/pdv-planilha-api/internal/application/usecase"
	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/dashboard"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/memory"
)

// countingCache cuenta invalidaciones.
type countingCache struct {
	invalidations int
}

func (c *countingCache) Get(context.Context, dashboard.Filter) (*dashboard.Report, bool, error) {
	return nil, false, nil
}

func (c *countingCache) Set(context.Context, dashboard.Filter, *dashboard.Report) error { return nil }

func (c *countingCache) InvalidateAll(context.Context) error {
	c.invalidations++
	return nil
}

func TestExpense_CRUD(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	cache := &countingCache{}
	uc := usecase.NewExpenseUseCase(store, cache, time.UTC, nil)
	uc.SetClock(func() time.Time { return fixedNow })

	created, err := uc.Create(ctx, dto.ExpenseRequest{
		Data:      "28/02/2026",
		Categoria: " insumos ",
		Descricao: "Farinha",
		Valor:     "R$ 1.234,56",
	})
	require.NoError(t, err)
	assert.Equal(t, "1772328600000", created.ID)
	assert.Equal(t, "2026-02-28", created.Data)
	assert.Equal(t, "insumos", created.Categoria)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(created.Valor))
	assert.Equal(t, 1, cache.invalidations)

	updated, err := uc.Update(ctx, created.ID, dto.ExpenseRequest{
		Data:      "2026-02-27",
		Descricao: "Farinha de trigo",
		Valor:     99.9,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "", updated.Categoria)
	assert.Equal(t, 2, cache.invalidations)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Farinha de trigo", list[0].Descricao)
	assert.True(t, decimal.RequireFromString("99.9").Equal(list[0].Valor))

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.Equal(t, 3, cache.invalidations)
	list, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExpense_Validacion(t *testing.T) {
	cache := &countingCache{}
	uc := usecase.NewExpenseUseCase(memory.New(), cache, time.UTC, nil)

	cases := map[string]dto.ExpenseRequest{
		"sin fecha":      {Descricao: "x", Valor: 1.0},
		"fecha ilegible": {Data: "ontem", Descricao: "x", Valor: 1.0},
		"sin descricao":  {Data: "2026-01-01", Valor: 1.0},
		"sin valor":      {Data: "2026-01-01", Descricao: "x"},
		"valor vacío":    {Data: "2026-01-01", Descricao: "x", Valor: "  "},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Zero(t, cache.invalidations)
}

func TestExpense_ListOmiteFilasSinIDOFecha(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Append(ctx, sheet.TableExpenses,
		[]any{"d1", "2026-01-01", "luz", "conta", 10.0},
		[]any{"", "2026-01-02", "luz", "sem id", 10.0},
		[]any{"d3", "", "luz", "sem data", 10.0},
		[]any{"d4", "2026-01-04", "", "valor zero", 0.0},
	))
	uc := usecase.NewExpenseUseCase(store, nil, time.UTC, nil)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "d1", list[0].ID)
	assert.Equal(t, "d4", list[1].ID, "el listado conserva valores en cero")
}

func TestExpense_UpdateInexistente(t *testing.T) {
	uc := usecase.NewExpenseUseCase(memory.New(), nil, time.UTC, nil)

	_, err := uc.Update(context.Background(), "nada", dto.ExpenseRequest{Data: "2026-01-01", Descricao: "x", Valor: 1.0})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
