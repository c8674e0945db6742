package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Promedio-api/internal/application/auth"
	"github.com/jhoicas/Promedio-api/internal/application/dto"
	"github.com/jhoicas/Promedio-api/internal/domain"
	"github.com/jhoicas/Promedio-api/internal/infrastructure/memory"
	"github.com/jhoicas/Promedio-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newStub(t *testing.T) *auth.StubAuthenticator {
	t.Helper()
	repo, err := memory.NewUserRepository("")
	require.NoError(t, err)
	return auth.NewStubAuthenticator(repo, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, RememberMinutes: 600, Issuer: "promedio-test",
	})
}

func TestStub_LoginExitoso(t *testing.T) {
	out, err := newStub(t).Login(dto.LoginRequest{Username: "test", Password: "test123"})
	require.NoError(t, err)

	assert.Equal(t, "test", out.Username)
	assert.Equal(t, auth.MsgLoginSucceeded, out.Message)
	username, role, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "test", username)
	assert.Equal(t, "user", role)
}

func TestStub_ClaveIncorrecta(t *testing.T) {
	_, err := newStub(t).Login(dto.LoginRequest{Username: "admin", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestStub_UsuarioInexistente(t *testing.T) {
	_, err := newStub(t).Login(dto.LoginRequest{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStub_CamposVacios(t *testing.T) {
	stub := newStub(t)

	_, err := stub.Login(dto.LoginRequest{Username: "  ", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), auth.MsgUsernameRequired)

	_, err = stub.Login(dto.LoginRequest{Username: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), auth.MsgPasswordRequired)
}
