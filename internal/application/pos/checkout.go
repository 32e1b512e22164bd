// Package pos contiene el caso de uso de cierre de venta del caixa.
package pos

import (
	"context"
	"fmt"
	"strconv"
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
	"github.com/shopspring/decimal"
)

const (
	// LockKey bloqueo compartido por todos los checkouts: el estoque se lee,
	// se descuenta y se reescribe en la misma sección.
	LockKey = "pdv:checkout"

	// DefaultPaymentMethod forma de pago cuando el carrito no la informa.
	DefaultPaymentMethod = "nao_informado"
)

// CheckoutUseCase registra una venta: fila en vendas, filas en venda_itens y
// baja de estoque en produtos.
type CheckoutUseCase struct {
	store  repository.RowStore
	locker ports.Locker
	cache  ports.DashboardCache
	log    *logger.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewCheckoutUseCase construye el caso de uso. cache nil no invalida; log nil descarta.
func NewCheckoutUseCase(
	store repository.RowStore,
	locker ports.Locker,
	cache ports.DashboardCache,
	loc *time.Location,
	log *logger.Logger,
) *CheckoutUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CheckoutUseCase{store: store, locker: locker, cache: cache, log: log, loc: loc, now: time.Now}
}

// SetClock reemplaza time.Now (tests).
func (uc *CheckoutUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// Checkout valida el carrito, persiste la venta y descuenta estoque.
//
// Errores:
//   - ErrEmptyCart: carrito sin ítems
//   - ErrInvalidInput: ítem sin produto_id o qtd <= 0
//   - ErrNotFound: produto_id que no está en la columna A de produtos
//   - ErrInactiveProduct: producto con ativo = false
//   - ErrLockNotAcquired: otro checkout retuvo el bloqueo más allá del contexto
func (uc *CheckoutUseCase) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if len(in.Itens) == 0 {
		return nil, domain.ErrEmptyCart
	}
	for _, it := range in.Itens {
		if strings.TrimSpace(it.ProdutoID) == "" || it.Qtd <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	release, err := uc.locker.Acquire(ctx, LockKey)
	if err != nil {
		return nil, fmt.Errorf("pdv: %w", err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.log.Warn().Err(err).Msg("pdv: liberar bloqueo")
		}
	}()

	out, err := uc.checkoutLocked(ctx, in)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.InvalidateAll(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("pdv: no se pudo invalidar la caché del painel")
		}
	}
	uc.log.Info().
		Str("venda_id", out.VendaID).
		Str("total", out.Total.StringFixed(2)).
		Int("itens", len(in.Itens)).
		Msg("pdv: venta registrada")
	return out, nil
}

func (uc *CheckoutUseCase) checkoutLocked(ctx context.Context, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	// ── Catálogo por id (columna A) ─────────────────────────────────────────
	rows, err := uc.store.Rows(ctx, sheet.TableProducts)
	if err != nil {
		return nil, fmt.Errorf("pdv: leer produtos: %w", err)
	}
	type catalogEntry struct {
		row     sheet.Row
		product entity.Product
	}
	catalog := make(map[string]*catalogEntry, len(rows))
	for _, row := range rows {
		p := entity.ProductFromRow(row)
		if p.ID == "" {
			continue
		}
		if _, dup := catalog[p.ID]; dup {
			continue
		}
		catalog[p.ID] = &catalogEntry{row: row, product: p}
	}

	// ── Ítems con precio y costo efectivos ──────────────────────────────────
	now := uc.now()
	sale := entity.Sale{
		ID:            strconv.FormatInt(now.UnixMilli(), 10),
		Date:          normalize.Today(now, uc.loc),
		Total:         decimal.Zero,
		PaymentMethod: strings.TrimSpace(in.FormaPagamento),
		Note:          strings.TrimSpace(in.Observacao),
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = DefaultPaymentMethod
	}

	items := make([]entity.SaleItem, 0, len(in.Itens))
	for _, it := range in.Itens {
		pid := strings.TrimSpace(it.ProdutoID)
		entry, ok := catalog[pid]
		if !ok {
			return nil, fmt.Errorf("pdv: produto %s: %w", pid, domain.ErrNotFound)
		}
		p := entry.product
		if !p.Active {
			return nil, fmt.Errorf("pdv: produto %s: %w", displayName(p), domain.ErrInactiveProduct)
		}
		price, cost := p.Price, p.Cost
		if it.PrecoUnit != nil {
			price = *it.PrecoUnit
		}
		if it.CustoUnit != nil {
			cost = *it.CustoUnit
		}
		item := entity.SaleItem{
			SaleID:      sale.ID,
			ProductID:   pid,
			ProductName: p.Name,
			Quantity:    it.Qtd,
			UnitPrice:   price,
			UnitCost:    cost,
		}
		item.Subtotal = item.Revenue()
		sale.Total = sale.Total.Add(item.Subtotal)
		items = append(items, item)
	}

	// ── Persistencia: venta, ítems, estoque ─────────────────────────────────
	if err := uc.store.Append(ctx, sheet.TableSales, sale.Cells()); err != nil {
		return nil, fmt.Errorf("pdv: guardar venta: %w", err)
	}
	itemCells := make([][]any, 0, len(items))
	for _, item := range items {
		itemCells = append(itemCells, item.Cells())
	}
	if err := uc.store.Append(ctx, sheet.TableSaleItems, itemCells...); err != nil {
		return nil, fmt.Errorf("pdv: guardar itens de %s: %w", sale.ID, err)
	}

	if in.BaixarEstoque == nil || *in.BaixarEstoque {
		for _, item := range items {
			entry := catalog[item.ProductID]
			if !entry.product.TracksStock {
				continue
			}
			next := entry.product.Stock.Sub(decimal.NewFromInt(item.Quantity))
			if next.IsNegative() {
				next = decimal.Zero
			}
			entry.product.Stock = next
			entry.row.Set(sheet.ProductStock, next.InexactFloat64())
			if err := uc.store.Update(ctx, sheet.TableProducts, entry.row); err != nil {
				return nil, fmt.Errorf("pdv: baixar estoque de %s: %w", item.ProductID, err)
			}
		}
	}

	return &dto.CheckoutResponse{
		OK:      true,
		VendaID: sale.ID,
		Data:    sale.Date,
		Total:   sale.Total,
	}, nil
}

func displayName(p entity.Product) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
