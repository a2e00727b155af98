package auth_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/patrimonio-api/internal/application/auth"
	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/domain"
	"github.com/jhoicas/patrimonio-api/internal/infrastructure/docstore"
	"github.com/jhoicas/patrimonio-api/pkg/config"
)

func newUseCase(t *testing.T) *auth.UseCase {
	t.Helper()
	store, err := docstore.NewFileStore(filepath.Join(t.TempDir(), "inventario.json"))
	require.NoError(t, err)
	return auth.NewUseCase(store, config.JWTConfig{
		Secret:     "test-secret",
		Expiration: 60,
		Issuer:     "patrimonio-api-test",
	})
}

// El documento sembrado trae admin/admin y usuario/usuario.
func TestLogin_UsuariosPorDefecto(t *testing.T) {
	uc := newUseCase(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "admin", out.User.Username)
	assert.Equal(t, "admin", out.User.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_AltaYLogin(t *testing.T) {
	uc := newUseCase(t)

	user, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "maria", Password: "secreta1",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role, "user es el rol por defecto")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreta1"})
	require.NoError(t, err)
	assert.Equal(t, "maria", out.User.Username)
}

func TestRegister_Validaciones(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "maria", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "password de menos de 6 caracteres")

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Username: "admin", Password: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Username: "x", Password: "secreta1", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol desconocido")
}

func TestListUsers_SinHash(t *testing.T) {
	uc := newUseCase(t)

	users, err := uc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
