package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Promedio-api/internal/application/ports"
)

// Nombres de cookie: la durable persiste entre sesiones del navegador, la de sesión no.
const (
	CookieDurable = "authToken"
	CookieSession = "sessionAuthToken"
)

// CookieConfig atributos de las cookies del token.
type CookieConfig struct {
	RememberFor time.Duration
	Secure      bool
}

// CookieStore implementa ports.TokenStore sobre una cookie de la respuesta en curso.
// Load lee la cookie que trajo la petición.
type CookieStore struct {
	c       *fiber.Ctx
	name    string
	persist time.Duration // 0 = cookie de sesión
	secure  bool
}

var _ ports.TokenStore = (*CookieStore)(nil)

// NewCookieStores par durable/sesión ligado a la petición c.
func NewCookieStores(c *fiber.Ctx, cfg CookieConfig) ports.TokenStores {
	remember := cfg.RememberFor
	if remember <= 0 {
		remember = 30 * 24 * time.Hour
	}
	return ports.TokenStores{
		Durable: &CookieStore{c: c, name: CookieDurable, persist: remember, secure: cfg.Secure},
		Session: &CookieStore{c: c, name: CookieSession, secure: cfg.Secure},
	}
}

func (s *CookieStore) Save(token string) error {
	ck := &fiber.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if s.persist > 0 {
		ck.Expires = time.Now().Add(s.persist)
	} else {
		ck.SessionOnly = true
	}
	s.c.Cookie(ck)
	return nil
}

func (s *CookieStore) Load() (string, error) {
	return s.c.Cookies(s.name), nil
}

func (s *CookieStore) Clear() error {
	s.c.Cookie(&fiber.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	return nil
}
