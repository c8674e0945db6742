package ports

import (
	"context"

	"github.com/jhoicas/Promedio-api/internal/application/dto"
)

// AuthGateway puerto de salida hacia el servicio de autenticación (POST /api/login).
// El adaptador HTTP vive en infrastructure/authapi; los tests usan fakes.
type AuthGateway interface {
	// Login envía las credenciales una sola vez (sin reintentos).
	// Errores esperados: domain.ErrNetwork si la petición no se completa,
	// *domain.AuthError si el servidor rechaza las credenciales.
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// TokenStore guarda el token de sesión. Load devuelve "" sin error si no hay token.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// TokenStores par de almacenes: Durable sobrevive al cierre ("recordarme"), Session no.
type TokenStores struct {
	Durable TokenStore
	Session TokenStore
}
