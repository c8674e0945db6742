package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Promedio-api/internal/application/dto"
	"github.com/jhoicas/Promedio-api/internal/domain"
)

// userMessage texto para mostrar al usuario, sin el prefijo del sentinel.
func userMessage(err error) string {
	var authErr *domain.AuthError
	switch {
	case errors.As(err, &authErr):
		return authErr.Error()
	case errors.Is(err, domain.ErrNetwork):
		return domain.ErrNetwork.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	default:
		return "error interno"
	}
}

// statusFor status HTTP para un error de caso de uso.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrAuthentication),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNetwork):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// jsonError respuesta JSON estándar para err.
func jsonError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	code := "INTERNAL"
	switch status {
	case fiber.StatusBadRequest:
		code = "VALIDATION"
	case fiber.StatusUnauthorized:
		code = "UNAUTHORIZED"
	case fiber.StatusBadGateway:
		code = "AUTH_UNAVAILABLE"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: userMessage(err)})
}
