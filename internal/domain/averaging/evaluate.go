package averaging

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Evaluation valoración de una posición a un precio actual.
type Evaluation struct {
	TotalInvestment  decimal.Decimal
	EvaluationAmount decimal.Decimal
	ProfitLoss       decimal.Decimal
	ProfitLossRate   decimal.Decimal // porcentaje, ej. 20 = +20 %
}

// Evaluate calcula inversión, valor de mercado, ganancia/pérdida y rentabilidad (%)
// de quantity unidades compradas a avgPrice si hoy valen currentPrice.
func Evaluate(avgPrice, quantity, currentPrice decimal.Decimal) (Evaluation, error) {
	if err := requirePositive(
		field("avg_price", avgPrice),
		field("quantity", quantity),
		field("current_price", currentPrice),
	); err != nil {
		return Evaluation{}, err
	}
	investment := avgPrice.Mul(quantity)
	evaluation := currentPrice.Mul(quantity)
	pl := evaluation.Sub(investment)
	return Evaluation{
		TotalInvestment:  investment,
		EvaluationAmount: evaluation,
		ProfitLoss:       pl,
		ProfitLossRate:   pl.Div(investment).Mul(hundred),
	}, nil
}
