// Package averaging contiene la lógica pura de precio promedio ponderado (평단가):
// cálculo directo tras una compra, cálculo inverso de la cantidad necesaria para
// alcanzar un promedio objetivo y valoración de una posición a precio actual.
//
// Ninguna función guarda estado; cada llamada recibe valores ya parseados y devuelve
// un resultado nuevo.
package averaging

import (
	"fmt"

	"github.com/jhoicas/Promedio-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Position un lote (real o hipotético): precio por unidad y cantidad.
type Position struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// CalculationResult salida de ComputeForward y ComputeReverse.
// AdditionalQuantity y AdditionalAmount solo se informan en el cálculo inverso.
type CalculationResult struct {
	AvgPrice           decimal.Decimal
	TotalQuantity      decimal.Decimal
	TotalAmount        decimal.Decimal
	AdditionalQuantity *decimal.Decimal
	AdditionalAmount   *decimal.Decimal
}

// IsReverse indica si el resultado proviene del cálculo inverso.
func (r CalculationResult) IsReverse() bool {
	return r.AdditionalQuantity != nil
}

// Amount valor del lote (precio * cantidad).
func (p Position) Amount() decimal.Decimal {
	return p.Price.Mul(p.Quantity)
}

// requirePositive devuelve ErrInvalidInput envuelto con el nombre del primer campo <= 0.
func requirePositive(fields ...namedValue) error {
	for _, f := range fields {
		if !f.value.IsPositive() {
			return fmt.Errorf("%w: %s debe ser mayor que 0", domain.ErrInvalidInput, f.name)
		}
	}
	return nil
}

type namedValue struct {
	name  string
	value decimal.Decimal
}

func field(name string, v decimal.Decimal) namedValue {
	return namedValue{name: name, value: v}
}
