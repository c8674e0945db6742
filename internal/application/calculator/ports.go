package calculator

import (
	"context"

	"github.com/jhoicas/Promedio-api/internal/application/dto"
)

// ReceiptGenerator genera la versión imprimible (PDF) de un resultado de cálculo.
// Implementado por infrastructure/pdf.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, res *dto.CalculationResponse) ([]byte, error)
}
