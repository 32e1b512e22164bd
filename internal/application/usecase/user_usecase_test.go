package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pdv-planilha-api/internal/application/dto"
	"github.com/jhoicas/pdv-planilha-api/internal/application/usecase"
	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/memory"
)

func TestUser_CreateYList(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewUserUseCase(store)

	out, err := uc.Create(ctx, dto.CreateUserRequest{Usuario: "caixa1", Senha: "segredo"})
	require.NoError(t, err)
	assert.Equal(t, "user", out.Role)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Usuario: "caixa1", Senha: "outra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	rows, err := store.Rows(ctx, sheet.TableUsers)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	hash := sheet.Str(rows[0], sheet.UserPasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("segredo")))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, dto.UserListItem{Usuario: "caixa1", Role: "user", Ativo: true}, list[0])
}

func TestHashPassword(t *testing.T) {
	_, err := usecase.HashPassword("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	h, err := usecase.HashPassword("abc")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(h), 30)
}
