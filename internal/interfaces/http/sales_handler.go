package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pdv-planilha-api/internal/application/dto"
	"github.com/jhoicas/pdv-planilha-api/internal/application/pos"
	"github.com/jhoicas/pdv-planilha-api/internal/application/usecase"
)

// SalesHandler histórico de ventas y checkout del caixa.
type SalesHandler struct {
	history  *usecase.SalesUseCase
	checkout *pos.CheckoutUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(history *usecase.SalesUseCase, checkout *pos.CheckoutUseCase) *SalesHandler {
	return &SalesHandler{history: history, checkout: checkout}
}

// History godoc
// @Summary      Histórico de ventas con ítems
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Param        date   query  string  false  "solo ventas de esta fecha"
// @Param        limit  query  int     false  "1..500"  default(50)
// @Success      200  {object}  dto.SalesHistoryResponse
// @Router       /api/vendas [get]
func (h *SalesHandler) History(c *fiber.Ctx) error {
	out, err := h.history.History(c.UserContext(), c.Query("date"), c.QueryInt("limit", usecase.DefaultHistoryLimit))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SalesHistoryResponse{OK: true, Vendas: out})
}

// Checkout godoc
// @Summary      Finalizar venta
// @Description  Registra la venta y sus ítems y descuenta estoque (baixarEstoque=false para omitirlo).
// @Tags         pdv
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "carrito"
// @Success      200   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pdv/finalizar [post]
func (h *SalesHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return invalidFields(c, err)
	}
	out, err := h.checkout.Checkout(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
