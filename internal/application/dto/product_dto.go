package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto. Estoque nil deja la
// celda vacía: el producto se vende sin control de inventario.
type CreateProductRequest struct {
	ID      string           `json:"id" validate:"omitempty,max=64"`
	Nome    string           `json:"nome" validate:"required,max=200"`
	Preco   decimal.Decimal  `json:"preco"`
	Custo   decimal.Decimal  `json:"custo"`
	Estoque *decimal.Decimal `json:"estoque"`
	Ativo   bool             `json:"ativo"`
}

// UpdateProductRequest actualización parcial; solo se escriben los campos presentes.
type UpdateProductRequest struct {
	Nome    *string          `json:"nome" validate:"omitempty,min=1,max=200"`
	Preco   *decimal.Decimal `json:"preco"`
	Custo   *decimal.Decimal `json:"custo"`
	Estoque *decimal.Decimal `json:"estoque"`
	Ativo   *bool            `json:"ativo"`
}

// ProductResponse salida de un producto. Estoque null = sin control de inventario.
type ProductResponse struct {
	ID       string           `json:"id"`
	Nome     string           `json:"nome"`
	Preco    decimal.Decimal  `json:"preco"`
	Custo    decimal.Decimal  `json:"custo"`
	Estoque  *decimal.Decimal `json:"estoque"`
	Ativo    bool             `json:"ativo"`
	CriadoEm string           `json:"criado_em"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	OK       bool              `json:"ok"`
	Produtos []ProductResponse `json:"produtos"`
}
