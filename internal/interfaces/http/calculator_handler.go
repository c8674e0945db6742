package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Promedio-api/internal/application/calculator"
	"github.com/jhoicas/Promedio-api/internal/application/dto"
)

// CalculatorHandler API JSON de la calculadora.
type CalculatorHandler struct {
	uc *calculator.CalculatorUseCase
}

// NewCalculatorHandler construye el handler.
func NewCalculatorHandler(uc *calculator.CalculatorUseCase) *CalculatorHandler {
	return &CalculatorHandler{uc: uc}
}

// Forward godoc
// @Summary      Nuevo precio promedio tras una compra
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ForwardRequest  true  "posición actual y compra"
// @Success      200   {object}  dto.CalculationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/calculator/forward [post]
func (h *CalculatorHandler) Forward(c *fiber.Ctx) error {
	var in dto.ForwardRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Forward(in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

// Reverse godoc
// @Summary      Cantidad a comprar para alcanzar un promedio objetivo
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ReverseRequest  true  "posición actual, objetivo y precio de compra"
// @Success      200   {object}  dto.CalculationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/calculator/reverse [post]
func (h *CalculatorHandler) Reverse(c *fiber.Ctx) error {
	var in dto.ReverseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Reverse(in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

// Evaluate godoc
// @Summary      Valoración de una posición a precio actual
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.EvaluateRequest  true  "promedio, cantidad y precio actual"
// @Success      200   {object}  dto.CalculationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/calculator/evaluate [post]
func (h *CalculatorHandler) Evaluate(c *fiber.Ctx) error {
	var in dto.EvaluateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Evaluate(in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Comprobante PDF de un cálculo
// @Tags         calculator
// @Accept       json
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        body  body  dto.ReportRequest  true  "modo y datos del modo"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/calculator/report [post]
func (h *CalculatorHandler) Report(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, pdf, err := h.uc.Receipt(c.UserContext(), in)
	if err != nil {
		return jsonError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="promedio-%s.pdf"`, res.Mode))
	return c.Send(pdf)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
