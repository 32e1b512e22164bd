package dto

import "github.com/shopspring/decimal"

// ExpenseRequest alta o edición de una despesa. Valor acepta número o texto
// en formato brasileño ("R$ 1.234,56"); se normaliza en el caso de uso.
type ExpenseRequest struct {
	Data      string `json:"data" validate:"required"`
	Categoria string `json:"categoria" validate:"max=100"`
	Descricao string `json:"descricao" validate:"required,max=500"`
	Valor     any    `json:"valor"`
}

// ExpenseResponse salida de una despesa.
type ExpenseResponse struct {
	ID        string          `json:"id"`
	Data      string          `json:"data"`
	Categoria string          `json:"categoria"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
}

// ExpenseListResponse lista de despesas.
type ExpenseListResponse struct {
	OK       bool              `json:"ok"`
	Despesas []ExpenseResponse `json:"despesas"`
}
