package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/pdv-planilha-api/internal/application/dto"
	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/entity"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/normalize"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/repository"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
)

// ProductUseCase CRUD de la hoja produtos. El estoque se descuenta en el checkout.
type ProductUseCase struct {
	store repository.RowStore
	loc   *time.Location
	now   func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store repository.RowStore, loc *time.Location) *ProductUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ProductUseCase{store: store, loc: loc, now: time.Now}
}

// SetClock reemplaza time.Now (tests).
func (uc *ProductUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// List devuelve los productos, sin las filas totalmente vacías.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	rows, err := uc.store.Rows(ctx, sheet.TableProducts)
	if err != nil {
		return nil, fmt.Errorf("produtos: listar: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(rows))
	for _, row := range rows {
		p := entity.ProductFromRow(row)
		if p.IsBlank() {
			continue
		}
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Create agrega un producto. Sin id se usa un timestamp en ms.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Nome)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = newID(now)
	}
	p := entity.Product{
		ID:        id,
		Name:      name,
		Price:     in.Preco,
		Cost:      in.Custo,
		Active:    in.Ativo,
		CreatedAt: normalize.Today(now, uc.loc),
	}
	if in.Estoque != nil {
		p.Stock = *in.Estoque
		p.TracksStock = true
	}
	if err := uc.store.Append(ctx, sheet.TableProducts, p.Cells()); err != nil {
		return nil, fmt.Errorf("produtos: crear: %w", err)
	}
	out := toProductResponse(p)
	return &out, nil
}

// Update aplica solo los campos presentes en in.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	row, p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Nome != nil {
		p.Name = strings.TrimSpace(*in.Nome)
	}
	if in.Preco != nil {
		p.Price = *in.Preco
	}
	if in.Custo != nil {
		p.Cost = *in.Custo
	}
	if in.Estoque != nil {
		p.Stock = *in.Estoque
		p.TracksStock = true
	}
	if in.Ativo != nil {
		p.Active = *in.Ativo
	}
	// Columnas fuera del esquema (notas a mano a la derecha) se conservan.
	for i, v := range p.Cells() {
		row.Set(i, v)
	}
	if err := uc.store.Update(ctx, sheet.TableProducts, row); err != nil {
		return nil, fmt.Errorf("produtos: actualizar %s: %w", id, err)
	}
	out := toProductResponse(p)
	return &out, nil
}

// Delete borra la fila del producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	row, _, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.store.Delete(ctx, sheet.TableProducts, row.Number); err != nil {
		return fmt.Errorf("produtos: eliminar %s: %w", id, err)
	}
	return nil
}

func (uc *ProductUseCase) find(ctx context.Context, id string) (sheet.Row, entity.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return sheet.Row{}, entity.Product{}, domain.ErrInvalidInput
	}
	rows, err := uc.store.Rows(ctx, sheet.TableProducts)
	if err != nil {
		return sheet.Row{}, entity.Product{}, fmt.Errorf("produtos: leer: %w", err)
	}
	for _, row := range rows {
		if p := entity.ProductFromRow(row); p.ID == id {
			return row, p, nil
		}
	}
	return sheet.Row{}, entity.Product{}, domain.ErrNotFound
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:       p.ID,
		Nome:     p.Name,
		Preco:    p.Price,
		Custo:    p.Cost,
		Ativo:    p.Active,
		CriadoEm: p.CreatedAt,
	}
	if p.TracksStock {
		stock := p.Stock
		out.Estoque = &stock
	}
	return out
}
