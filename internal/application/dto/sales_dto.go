package dto

import "github.com/shopspring/decimal"

// CheckoutItemRequest línea del carrito. PrecoUnit y CustoUnit reemplazan los
// valores del catálogo cuando vienen informados.
type CheckoutItemRequest struct {
	ProdutoID string           `json:"produto_id" validate:"required"`
	Qtd       int64            `json:"qtd" validate:"gt=0"`
	PrecoUnit *decimal.Decimal `json:"preco_unit"`
	CustoUnit *decimal.Decimal `json:"custo_unit"`
}

// CheckoutRequest cuerpo de POST /api/pdv/finalizar.
// BaixarEstoque nil equivale a true.
type CheckoutRequest struct {
	FormaPagamento string                `json:"forma_pagamento" validate:"max=50"`
	Observacao     string                `json:"observacao" validate:"max=500"`
	Itens          []CheckoutItemRequest `json:"itens" validate:"dive"`
	BaixarEstoque  *bool                 `json:"baixarEstoque"`
}

// CheckoutResponse venta registrada.
type CheckoutResponse struct {
	OK      bool            `json:"ok"`
	VendaID string          `json:"vendaId"`
	Data    string          `json:"data"`
	Total   decimal.Decimal `json:"total"`
}

// SaleItemResponse línea de una venta del histórico.
type SaleItemResponse struct {
	VendaID     string          `json:"venda_id"`
	ProdutoID   string          `json:"produto_id"`
	ProdutoNome string          `json:"produto_nome"`
	Qtd         int64           `json:"qtd"`
	PrecoUnit   decimal.Decimal `json:"preco_unit"`
	CustoUnit   decimal.Decimal `json:"custo_unit"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus ítems.
type SaleResponse struct {
	ID             string             `json:"id"`
	Data           string             `json:"data"`
	Total          decimal.Decimal    `json:"total"`
	FormaPagamento string             `json:"forma_pagamento"`
	Observacao     string             `json:"observacao"`
	Itens          []SaleItemResponse `json:"itens"`
}

// SalesHistoryResponse respuesta de GET /api/vendas.
type SalesHistoryResponse struct {
	OK     bool           `json:"ok"`
	Vendas []SaleResponse `json:"vendas"`
}
