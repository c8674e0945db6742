package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Promedio-api/internal/application/dto"
	"github.com/jhoicas/Promedio-api/internal/domain"
	"github.com/jhoicas/Promedio-api/internal/domain/repository"
	"github.com/jhoicas/Promedio-api/pkg/jwt"
)

// Mensajes que devuelve el autenticador de desarrollo.
const (
	MsgUsernameRequired   = "ingrese el usuario"
	MsgPasswordRequired   = "ingrese la contraseña"
	MsgInvalidCredentials = "usuario o contraseña incorrectos"
	MsgLoginSucceeded     = "inicio de sesión exitoso"
	MsgLoggedOut          = "sesión cerrada"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret          string
	ExpMinutes      int
	RememberMinutes int
	Issuer          string
}

// StubAuthenticator sustituto local del servicio de autenticación.
// Verifica usuario/clave contra el repositorio y emite un JWT; no guarda sesiones.
type StubAuthenticator struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewStubAuthenticator construye el autenticador de desarrollo.
func NewStubAuthenticator(userRepo repository.UserRepository, jwtCfg JWTConfig) *StubAuthenticator {
	return &StubAuthenticator{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario/password y genera el token. Con Remember el token dura RememberMinutes.
func (uc *StubAuthenticator) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, MsgUsernameRequired)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, MsgPasswordRequired)
	}
	user, err := uc.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	exp := uc.jwtCfg.ExpMinutes
	if in.Remember && uc.jwtCfg.RememberMinutes > 0 {
		exp = uc.jwtCfg.RememberMinutes
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Username, user.Role, uc.jwtCfg.Issuer, exp)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Username: user.Username,
		Message:  MsgLoginSucceeded,
	}, nil
}
