package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrNetwork        = errors.New("no fue posible conectar con el servidor")
	ErrAuthentication = errors.New("no fue posible iniciar sesión")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrUserNotFound   = errors.New("usuario no encontrado")
)

// AuthError rechazo de credenciales por parte del servidor de autenticación.
// Message es el texto devuelto por el servidor o, si vino vacío, el mensaje por defecto.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return ErrAuthentication.Error()
	}
	return e.Message
}

// Unwrap permite errors.Is(err, ErrAuthentication).
func (e *AuthError) Unwrap() error { return ErrAuthentication }
