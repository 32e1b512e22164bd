package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/pdv-planilha-api/internal/application/dto"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/dashboard"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/entity"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/normalize"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/repository"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
)

// Límites de GET /api/vendas.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// SalesUseCase histórico de ventas con sus ítems.
type SalesUseCase struct {
	store repository.RowStore
	loc   *time.Location
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(store repository.RowStore, loc *time.Location) *SalesUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &SalesUseCase{store: store, loc: loc}
}

// History devuelve las ventas más recientes primero (id descendente), opcionalmente
// solo las de date. limit <= 0 usa DefaultHistoryLimit; el máximo es MaxHistoryLimit.
func (uc *SalesUseCase) History(ctx context.Context, date string, limit int) ([]dto.SaleResponse, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	day := ""
	if date != "" {
		if day = normalize.Date(date, uc.loc); day == "" {
			return []dto.SaleResponse{}, nil
		}
	}

	saleRows, err := uc.store.Rows(ctx, sheet.TableSales)
	if err != nil {
		return nil, fmt.Errorf("vendas: leer: %w", err)
	}
	sales := make([]entity.Sale, 0, len(saleRows))
	for _, row := range saleRows {
		s := entity.SaleFromRow(row, uc.loc)
		if s.ID == "" {
			continue
		}
		if day != "" && s.Date != day {
			continue
		}
		sales = append(sales, s)
	}
	sort.SliceStable(sales, func(i, j int) bool {
		return dashboard.CompareIDs(sales[i].ID, sales[j].ID) > 0
	})
	if len(sales) > limit {
		sales = sales[:limit]
	}

	itemRows, err := uc.store.Rows(ctx, sheet.TableSaleItems)
	if err != nil {
		return nil, fmt.Errorf("vendas: leer venda_itens: %w", err)
	}
	wanted := make(map[string]struct{}, len(sales))
	for _, s := range sales {
		wanted[s.ID] = struct{}{}
	}
	bySale := make(map[string][]dto.SaleItemResponse, len(sales))
	for _, row := range itemRows {
		it := entity.SaleItemFromRow(row)
		if _, ok := wanted[it.SaleID]; !ok {
			continue
		}
		bySale[it.SaleID] = append(bySale[it.SaleID], dto.SaleItemResponse{
			VendaID:     it.SaleID,
			ProdutoID:   it.ProductID,
			ProdutoNome: it.ProductName,
			Qtd:         it.Quantity,
			PrecoUnit:   it.UnitPrice,
			CustoUnit:   it.UnitCost,
			Subtotal:    it.Subtotal,
		})
	}

	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items := bySale[s.ID]
		if items == nil {
			items = []dto.SaleItemResponse{}
		}
		out = append(out, dto.SaleResponse{
			ID:             s.ID,
			Data:           s.Date,
			Total:          s.Total,
			FormaPagamento: s.PaymentMethod,
			Observacao:     s.Note,
			Itens:          items,
		})
	}
	return out, nil
}
