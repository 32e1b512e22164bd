package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/pdv-planilha-api/internal/application/dto"
	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/entity"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/repository"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
	"github.com/jhoicas/pdv-planilha-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// minHashLen longitud mínima de un hash bcrypt plausible; algo más corto es
// una celda mal pegada y se rechaza sin llamar a bcrypt.
const minHashLen = 30

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login contra la hoja usuarios.
type AuthUseCase struct {
	store  repository.RowStore
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(store repository.RowStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{store: store, jwtCfg: jwtCfg}
}

// Login verifica usuario/senha, genera JWT y retorna token + usuario.
// Usuario inexistente, inactivo o senha incorrecta devuelven el mismo
// ErrUnauthorized para no revelar cuál falló.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.findActive(ctx, in.Usuario)
	if err != nil {
		return nil, err
	}
	if user == nil || len(user.PasswordHash) < minHashLen {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Senha)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	return &dto.LoginResponse{
		OK:    true,
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

// Me devuelve el usuario de la sesión a partir de los claims ya validados.
func (uc *AuthUseCase) Me(claims *jwt.Claims) (*dto.UserResponse, error) {
	if claims == nil || claims.Usuario == "" {
		return nil, domain.ErrUnauthorized
	}
	role := claims.Role
	if role == "" {
		role = entity.RoleUser
	}
	return &dto.UserResponse{Usuario: claims.Usuario, Role: role}, nil
}

// findActive primer usuario activo cuyo nombre coincide exactamente.
func (uc *AuthUseCase) findActive(ctx context.Context, username string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil
	}
	rows, err := uc.store.Rows(ctx, sheet.TableUsers)
	if err != nil {
		return nil, fmt.Errorf("auth: leer usuarios: %w", err)
	}
	for _, row := range rows {
		u := entity.UserFromRow(row)
		if !u.Active || u.Username != username {
			continue
		}
		return &u, nil
	}
	return nil, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{Usuario: u.Username, Role: u.Role}
}
