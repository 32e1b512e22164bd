package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/pdv-planilha-api/internal/application/dto"
	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/entity"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/repository"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase administración de la hoja usuarios.
type UserUseCase struct {
	store repository.RowStore
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(store repository.RowStore) *UserUseCase {
	return &UserUseCase{store: store}
}

// List devuelve los usuarios sin el hash de la senha.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserListItem, error) {
	rows, err := uc.store.Rows(ctx, sheet.TableUsers)
	if err != nil {
		return nil, fmt.Errorf("usuarios: listar: %w", err)
	}
	out := make([]dto.UserListItem, 0, len(rows))
	for _, row := range rows {
		u := entity.UserFromRow(row)
		if u.Username == "" {
			continue
		}
		out = append(out, dto.UserListItem{Usuario: u.Username, Role: u.Role, Ativo: u.Active})
	}
	return out, nil
}

// Create agrega un usuario activo con la senha hasheada en bcrypt.
// Un nombre ya usado devuelve ErrDuplicate.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Usuario)
	if name == "" || in.Senha == "" {
		return nil, domain.ErrInvalidInput
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = entity.RoleUser
	}
	rows, err := uc.store.Rows(ctx, sheet.TableUsers)
	if err != nil {
		return nil, fmt.Errorf("usuarios: leer: %w", err)
	}
	for _, row := range rows {
		if entity.UserFromRow(row).Username == name {
			return nil, domain.ErrDuplicate
		}
	}
	hash, err := HashPassword(in.Senha)
	if err != nil {
		return nil, err
	}
	u := entity.User{Username: name, PasswordHash: hash, Role: role, Active: true}
	if err := uc.store.Append(ctx, sheet.TableUsers, u.Cells()); err != nil {
		return nil, fmt.Errorf("usuarios: crear: %w", err)
	}
	return &dto.UserResponse{Usuario: u.Username, Role: u.Role}, nil
}

// HashPassword hash bcrypt listo para pegar en la columna senha_hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("usuarios: hash: %w", err)
	}
	return string(hash), nil
}
