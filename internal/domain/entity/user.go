package entity

import (
	"strings"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/normalize"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
)

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User operador del caixa (hoja usuarios).
type User struct {
	Username     string
	PasswordHash string // bcrypt
	Role         string // admin, user
	Active       bool
}

// UserFromRow decodifica una fila de usuarios. Las comillas sueltas alrededor
// del hash (pegado a mano en la planilha) se eliminan; rol vacío vale "user".
func UserFromRow(row sheet.Row) User {
	role := strings.ToLower(sheet.Str(row, sheet.UserRole))
	if role == "" {
		role = RoleUser
	}
	return User{
		Username:     sheet.Str(row, sheet.UserName),
		PasswordHash: strings.Trim(sheet.Str(row, sheet.UserPasswordHash), `"'`),
		Role:         role,
		Active:       normalize.Active(sheet.CellAt(row, sheet.UserActive)),
	}
}

// Cells fila posicional de usuarios.
func (u User) Cells() []any {
	return []any{u.Username, u.PasswordHash, u.Role, u.Active}
}
