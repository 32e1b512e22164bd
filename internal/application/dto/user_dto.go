package dto

// LoginRequest credenciales de la hoja usuarios.
type LoginRequest struct {
	Usuario string `json:"usuario" validate:"required,max=100"`
	Senha   string `json:"senha" validate:"required"`
}

// UserResponse usuario de la sesión (sin hash).
type UserResponse struct {
	Usuario string `json:"usuario"`
	Role    string `json:"role"`
}

// LoginResponse token JWT + usuario. El token también viaja en la cookie auth_token.
type LoginResponse struct {
	OK    bool         `json:"ok"`
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest alta de un usuario (senha en texto, se hashea en el caso de uso).
type CreateUserRequest struct {
	Usuario string `json:"usuario" validate:"required,max=100"`
	Senha   string `json:"senha" validate:"required,min=6"`
	Role    string `json:"role" validate:"omitempty,oneof=admin user"`
}

// UserListItem fila de GET /api/usuarios.
type UserListItem struct {
	Usuario string `json:"usuario"`
	Role    string `json:"role"`
	Ativo   bool   `json:"ativo"`
}
