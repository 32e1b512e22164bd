// Package sheet define el contrato posicional de las hojas de la planilha.
//
// Las filas se leen por índice de columna, no por el texto del encabezado:
// el encabezado de la planilha se edita a mano y no es confiable. Todo el
// mapeo columna → campo vive en este archivo; un cambio de esquema solo
// requiere tocar estas constantes.
package sheet

// Table nombre lógico de una hoja (pestaña) de la planilha.
type Table string

const (
	TableSales     Table = "vendas"
	TableSaleItems Table = "venda_itens"
	TableExpenses  Table = "despesas"
	TableProducts  Table = "produtos"
	TableUsers     Table = "usuarios"
)

// AllTables en el orden en que se crean en un libro nuevo.
var AllTables = []Table{TableSales, TableSaleItems, TableExpenses, TableProducts, TableUsers}

// vendas: A:id B:data C:total D:forma_pagamento E:observacao
const (
	SaleID = iota
	SaleDate
	SaleTotal
	SalePaymentMethod
	SaleNote
)

// venda_itens: A:venda_id B:produto_id C:produto_nome D:qtd E:preco_unit F:custo_unit G:subtotal
const (
	ItemSaleID = iota
	ItemProductID
	ItemProductName
	ItemQuantity
	ItemUnitPrice
	ItemUnitCost
	ItemSubtotal // no se lee; se recalcula como preco_unit × qtd
)

// despesas: A:id B:data C:categoria D:descricao E:valor
const (
	ExpenseID = iota
	ExpenseDate
	ExpenseCategory
	ExpenseDescription
	ExpenseAmount
)

// produtos: A:id B:nome C:preco D:custo E:estoque F:ativo G:criado_em
const (
	ProductID = iota
	ProductName
	ProductPrice
	ProductCost
	ProductStock
	ProductActive
	ProductCreatedAt
)

// usuarios: A:usuario B:senha_hash C:role D:ativo
const (
	UserName = iota
	UserPasswordHash
	UserRole
	UserActive
)

var headers = map[Table][]string{
	TableSales:     {"id", "data", "total", "forma_pagamento", "observacao"},
	TableSaleItems: {"venda_id", "produto_id", "produto_nome", "qtd", "preco_unit", "custo_unit", "subtotal"},
	TableExpenses:  {"id", "data", "categoria", "descricao", "valor"},
	TableProducts:  {"id", "nome", "preco", "custo", "estoque", "ativo", "criado_em"},
	TableUsers:     {"usuario", "senha_hash", "role", "ativo"},
}

// Headers devuelve la fila de encabezado de la tabla (solo informativa).
func Headers(t Table) []string {
	h := headers[t]
	out := make([]string, len(h))
	copy(out, h)
	return out
}

// Width número de columnas conocidas de la tabla.
func Width(t Table) int {
	return len(headers[t])
}
