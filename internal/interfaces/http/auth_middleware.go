package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Promedio-api/internal/application/dto"
	jwtpkg "github.com/jhoicas/Promedio-api/pkg/jwt"
)

// LocalToken key del token en c.Locals.
const LocalToken = "auth_token"

// TokenFromRequest token del header "Authorization: Bearer <token>" o, si no hay,
// de las cookies (durable primero). "" si no hay ninguno.
func TokenFromRequest(c *fiber.Ctx) string {
	if h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if tok := strings.TrimSpace(parts[1]); tok != "" {
				return tok
			}
		}
	}
	if tok := c.Cookies(CookieDurable); tok != "" {
		return tok
	}
	return c.Cookies(CookieSession)
}

// RequireToken middleware para la API: solo comprueba que exista un token (no lo valida).
// Sin token responde 401 MISSING_TOKEN.
func RequireToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := TokenFromRequest(c)
		if tok == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token requerido"})
		}
		c.Locals(LocalToken, tok)
		return c.Next()
	}
}

// RequireTokenPage variante para páginas: sin token redirige a loginPath.
func RequireTokenPage(loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := TokenFromRequest(c)
		if tok == "" {
			return c.Redirect(loginPath, fiber.StatusFound)
		}
		c.Locals(LocalToken, tok)
		return c.Next()
	}
}

// TokenVerifier valida un token. Los guards Verified* lo usan además de la presencia.
type TokenVerifier func(token string) error

// JWTVerifier verifica firma HS256 y expiración con secret (AUTH_VERIFY_TOKENS).
func JWTVerifier(secret string) TokenVerifier {
	return func(token string) error {
		_, _, err := jwtpkg.Parse(secret, token)
		return err
	}
}

// RequireVerifiedToken como RequireToken, pero un token que verify rechaza responde
// 401 INVALID_TOKEN.
func RequireVerifiedToken(verify TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := TokenFromRequest(c)
		if tok == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token requerido"})
		}
		if err := verify(tok); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalToken, tok)
		return c.Next()
	}
}

// RequireVerifiedTokenPage como RequireTokenPage; un token rechazado también redirige a loginPath.
func RequireVerifiedTokenPage(loginPath string, verify TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := TokenFromRequest(c)
		if tok == "" || verify(tok) != nil {
			return c.Redirect(loginPath, fiber.StatusFound)
		}
		c.Locals(LocalToken, tok)
		return c.Next()
	}
}

// GetToken devuelve el token del contexto (después de RequireToken/RequireTokenPage).
func GetToken(c *fiber.Ctx) string {
	v := c.Locals(LocalToken)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
