package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/pdv-planilha-api/internal/application/dto"
	"github.com/jhoicas/pdv-planilha-api/internal/application/ports"
	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/entity"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/normalize"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/repository"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
	"github.com/jhoicas/pdv-planilha-api/pkg/logger"
)

// ExpenseUseCase CRUD de la hoja despesas. Toda escritura invalida la caché del painel.
type ExpenseUseCase struct {
	store repository.RowStore
	cache ports.DashboardCache
	log   *logger.Logger
	loc   *time.Location
	now   func() time.Time
}

// NewExpenseUseCase construye el caso de uso. log nil descarta.
func NewExpenseUseCase(store repository.RowStore, cache ports.DashboardCache, loc *time.Location, log *logger.Logger) *ExpenseUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ExpenseUseCase{store: store, cache: cache, log: log, loc: loc, now: time.Now}
}

// SetClock reemplaza time.Now (tests).
func (uc *ExpenseUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// List devuelve las despesas con id y fecha legible, en el orden de la hoja.
func (uc *ExpenseUseCase) List(ctx context.Context) ([]dto.ExpenseResponse, error) {
	rows, err := uc.store.Rows(ctx, sheet.TableExpenses)
	if err != nil {
		return nil, fmt.Errorf("despesas: listar: %w", err)
	}
	out := make([]dto.ExpenseResponse, 0, len(rows))
	for _, row := range rows {
		e := entity.ExpenseFromRow(row, uc.loc)
		if e.ID == "" || e.Date == "" {
			continue
		}
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

// Create agrega una despesa con id = timestamp en ms.
func (uc *ExpenseUseCase) Create(ctx context.Context, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := uc.fromRequest(in)
	if err != nil {
		return nil, err
	}
	e.ID = newID(uc.now())
	if err := uc.store.Append(ctx, sheet.TableExpenses, e.Cells()); err != nil {
		return nil, fmt.Errorf("despesas: crear: %w", err)
	}
	uc.invalidate(ctx)
	out := toExpenseResponse(e)
	return &out, nil
}

// Update reescribe data, categoria, descricao y valor de la despesa id.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := uc.fromRequest(in)
	if err != nil {
		return nil, err
	}
	row, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	e.ID = sheet.Str(row, sheet.ExpenseID)
	e.Row = row.Number
	for i, v := range e.Cells() {
		row.Set(i, v)
	}
	if err := uc.store.Update(ctx, sheet.TableExpenses, row); err != nil {
		return nil, fmt.Errorf("despesas: actualizar %s: %w", id, err)
	}
	uc.invalidate(ctx)
	out := toExpenseResponse(e)
	return &out, nil
}

// Delete borra la despesa id.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	row, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.store.Delete(ctx, sheet.TableExpenses, row.Number); err != nil {
		return fmt.Errorf("despesas: eliminar %s: %w", id, err)
	}
	uc.invalidate(ctx)
	return nil
}

// fromRequest valida y normaliza. Una fecha ilegible o un valor ausente son
// ErrInvalidInput; un valor ilegible se guarda como 0, como en la planilha.
func (uc *ExpenseUseCase) fromRequest(in dto.ExpenseRequest) (entity.Expense, error) {
	date := normalize.Date(in.Data, uc.loc)
	desc := strings.TrimSpace(in.Descricao)
	if date == "" || desc == "" || isEmptyValue(in.Valor) {
		return entity.Expense{}, domain.ErrInvalidInput
	}
	return entity.Expense{
		Date:        date,
		Category:    strings.TrimSpace(in.Categoria),
		Description: desc,
		Amount:      normalize.Number(in.Valor),
	}, nil
}

func (uc *ExpenseUseCase) find(ctx context.Context, id string) (sheet.Row, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return sheet.Row{}, domain.ErrInvalidInput
	}
	rows, err := uc.store.Rows(ctx, sheet.TableExpenses)
	if err != nil {
		return sheet.Row{}, fmt.Errorf("despesas: leer: %w", err)
	}
	for _, row := range rows {
		if sheet.Str(row, sheet.ExpenseID) == id {
			return row, nil
		}
	}
	return sheet.Row{}, domain.ErrNotFound
}

func (uc *ExpenseUseCase) invalidate(ctx context.Context) {
	invalidateDashboard(ctx, uc.cache, uc.log)
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func toExpenseResponse(e entity.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:        e.ID,
		Data:      e.Date,
		Categoria: e.Category,
		Descricao: e.Description,
		Valor:     e.Amount,
	}
}
