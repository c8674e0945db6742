package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Promedio-api/internal/application/auth"
	"github.com/jhoicas/Promedio-api/internal/application/dto"
	"github.com/jhoicas/Promedio-api/internal/domain"
)

// AuthHandler endpoints del autenticador de desarrollo.
type AuthHandler struct {
	uc *auth.StubAuthenticator
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.StubAuthenticator) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password, remember"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Username) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: auth.MsgUsernameRequired})
	}
	if in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: auth.MsgPasswordRequired})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: auth.MsgInvalidCredentials})
		}
		return jsonError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: auth.MsgLoggedOut})
}

// Check godoc
// @Summary      Comprobar presencia de token
// @Description  Solo verifica que el header Authorization no esté vacío.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.CheckResponse
// @Router       /api/check [get]
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(dto.CheckResponse{Authenticated: strings.TrimSpace(c.Get(fiber.HeaderAuthorization)) != ""})
}
