package averaging

import (
	"fmt"

	"github.com/jhoicas/Promedio-api/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeReverse resuelve cuántas unidades hay que comprar a buyPrice para que el promedio
// de currentQuantity unidades a currentAvg baje hasta targetAvg.
//
// Despejando X en targetAvg = (currentAvg*currentQuantity + buyPrice*X) / (currentQuantity + X):
//
//	X = currentQuantity * (currentAvg - targetAvg) / (targetAvg - buyPrice)
//
// Requiere argumentos > 0, targetAvg < currentAvg y buyPrice < targetAvg; con eso numerador y
// denominador son estrictamente positivos y X es finito y positivo. X no se redondea.
func ComputeReverse(currentAvg, currentQuantity, targetAvg, buyPrice decimal.Decimal) (CalculationResult, error) {
	if err := requirePositive(
		field("current_avg", currentAvg),
		field("current_quantity", currentQuantity),
		field("target_avg", targetAvg),
		field("buy_price", buyPrice),
	); err != nil {
		return CalculationResult{}, err
	}
	if targetAvg.GreaterThanOrEqual(currentAvg) {
		return CalculationResult{}, fmt.Errorf("%w: target_avg debe ser menor que current_avg", domain.ErrInvalidInput)
	}
	if buyPrice.GreaterThanOrEqual(targetAvg) {
		return CalculationResult{}, fmt.Errorf("%w: buy_price debe ser menor que target_avg", domain.ErrInvalidInput)
	}

	required := currentQuantity.Mul(currentAvg.Sub(targetAvg)).Div(targetAvg.Sub(buyPrice))
	additionalAmount := buyPrice.Mul(required)

	return CalculationResult{
		AvgPrice:           targetAvg,
		TotalQuantity:      currentQuantity.Add(required),
		TotalAmount:        currentAvg.Mul(currentQuantity).Add(additionalAmount),
		AdditionalQuantity: &required,
		AdditionalAmount:   &additionalAmount,
	}, nil
}
