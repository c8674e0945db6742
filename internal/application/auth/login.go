package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Promedio-api/internal/application/dto"
	"github.com/jhoicas/Promedio-api/internal/application/ports"
	"github.com/jhoicas/Promedio-api/internal/domain"
	"github.com/jhoicas/Promedio-api/pkg/logger"
)

// LoginConfig navegación tras un login exitoso.
type LoginConfig struct {
	LandingPath   string
	RedirectDelay time.Duration
}

// LoginUseCase flujo de login del lado cliente: envía credenciales al servicio
// de autenticación y guarda el token en el almacén que corresponde.
type LoginUseCase struct {
	gateway ports.AuthGateway
	cfg     LoginConfig
	log     *logger.Logger
}

// NewLoginUseCase construye el caso de uso. Sin LandingPath se usa /calculator.
func NewLoginUseCase(gateway ports.AuthGateway, cfg LoginConfig, log *logger.Logger) *LoginUseCase {
	if cfg.LandingPath == "" {
		cfg.LandingPath = "/calculator"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LoginUseCase{gateway: gateway, cfg: cfg, log: log.Component("login")}
}

// Login una sola petición, sin reintentos. Con Remember el token va a stores.Durable,
// si no a stores.Session; el otro almacén se limpia para que no quede un token viejo.
func (uc *LoginUseCase) Login(ctx context.Context, in dto.LoginRequest, stores ports.TokenStores) (*dto.LoginResult, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, MsgUsernameRequired)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, MsgPasswordRequired)
	}

	resp, err := uc.gateway.Login(ctx, in)
	if err != nil {
		var authErr *domain.AuthError
		switch {
		case errors.As(err, &authErr):
			uc.log.Info().Str("username", in.Username).Int("status", authErr.Status).Msg("credenciales rechazadas")
		default:
			uc.log.Warn().Err(err).Msg("servicio de autenticación no disponible")
		}
		return nil, err
	}

	target, other := stores.Session, stores.Durable
	if in.Remember {
		target, other = stores.Durable, stores.Session
	}
	if resp.Token != "" {
		if err := target.Save(resp.Token); err != nil {
			return nil, fmt.Errorf("login: guardar token: %w", err)
		}
		if other != nil {
			if err := other.Clear(); err != nil {
				uc.log.Warn().Err(err).Msg("no se pudo limpiar el otro almacén de token")
			}
		}
	}

	username := resp.Username
	if username == "" {
		username = strings.TrimSpace(in.Username)
	}
	msg := resp.Message
	if msg == "" {
		msg = MsgLoginSucceeded
	}
	uc.log.Info().Str("username", username).Bool("remember", in.Remember).Msg("login exitoso")

	return &dto.LoginResult{
		Username:      username,
		Durable:       in.Remember,
		LandingPath:   uc.cfg.LandingPath,
		RedirectDelay: uc.cfg.RedirectDelay.Milliseconds(),
		Message:       msg,
	}, nil
}

// Logout limpia ambos almacenes.
func Logout(stores ports.TokenStores) error {
	var errs []error
	for _, s := range []ports.TokenStore{stores.Durable, stores.Session} {
		if s == nil {
			continue
		}
		if err := s.Clear(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CurrentToken devuelve el token durable o, si no hay, el de sesión. "" si ninguno.
func CurrentToken(stores ports.TokenStores) (string, error) {
	for _, s := range []ports.TokenStore{stores.Durable, stores.Session} {
		if s == nil {
			continue
		}
		tok, err := s.Load()
		if err != nil {
			return "", err
		}
		if tok != "" {
			return tok, nil
		}
	}
	return "", nil
}
