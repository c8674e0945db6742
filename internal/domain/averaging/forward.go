package averaging

import "github.com/shopspring/decimal"

// ComputeForward calcula el nuevo precio promedio tras comprar newQuantity a newPrice
// sobre una tenencia de oldQuantity a oldPrice.
//
//	TotalAmount   = oldPrice*oldQuantity + newPrice*newQuantity
//	TotalQuantity = oldQuantity + newQuantity
//	AvgPrice      = TotalAmount / TotalQuantity
//
// Todos los argumentos deben ser > 0; si no, devuelve domain.ErrInvalidInput envuelto.
func ComputeForward(oldPrice, oldQuantity, newPrice, newQuantity decimal.Decimal) (CalculationResult, error) {
	if err := requirePositive(
		field("old_price", oldPrice),
		field("old_quantity", oldQuantity),
		field("new_price", newPrice),
		field("new_quantity", newQuantity),
	); err != nil {
		return CalculationResult{}, err
	}
	return blend(
		Position{Price: oldPrice, Quantity: oldQuantity},
		Position{Price: newPrice, Quantity: newQuantity},
	), nil
}

// blend mezcla dos lotes con cantidades positivas.
func blend(held, bought Position) CalculationResult {
	totalAmount := held.Amount().Add(bought.Amount())
	totalQuantity := held.Quantity.Add(bought.Quantity)
	return CalculationResult{
		AvgPrice:      totalAmount.Div(totalQuantity),
		TotalQuantity: totalQuantity,
		TotalAmount:   totalAmount,
	}
}
