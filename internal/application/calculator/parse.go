package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Promedio-api/internal/application/dto"
	"github.com/jhoicas/Promedio-api/internal/domain"
	"github.com/jhoicas/Promedio-api/pkg/numfmt"
)

// parseField convierte el texto de un campo en decimal con los separadores del idioma de nf
// (miles y decimal); vacío o no numérico devuelve domain.ErrInvalidInput con el nombre del campo.
// La validación de rango (> 0) queda en el dominio.
func parseField(nf *numfmt.Formatter, name, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, name)
	}
	v, err := nf.Parse(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s no es un número válido", domain.ErrInvalidInput, name)
	}
	return v, nil
}

type fieldParser struct {
	nf  *numfmt.Formatter
	err error
}

// parse acumula solo el primer error para que el mensaje nombre el primer campo inválido.
func (p *fieldParser) parse(name, raw string) decimal.Decimal {
	if p.err != nil {
		return decimal.Zero
	}
	v, err := parseField(p.nf, name, raw)
	if err != nil {
		p.err = err
	}
	return v
}

// ParseForward extrae la entrada del cálculo directo de un formulario.
func ParseForward(nf *numfmt.Formatter, f dto.CalculatorForm) (dto.ForwardRequest, error) {
	p := fieldParser{nf: nf}
	in := dto.ForwardRequest{
		OldPrice:    p.parse("old_price", f.OldPrice),
		OldQuantity: p.parse("old_quantity", f.OldQuantity),
		NewPrice:    p.parse("new_price", f.NewPrice),
		NewQuantity: p.parse("new_quantity", f.NewQuantity),
	}
	return in, p.err
}

// ParseReverse extrae la entrada del cálculo inverso de un formulario.
func ParseReverse(nf *numfmt.Formatter, f dto.CalculatorForm) (dto.ReverseRequest, error) {
	p := fieldParser{nf: nf}
	in := dto.ReverseRequest{
		CurrentAvg:      p.parse("current_avg", f.CurrentAvg),
		CurrentQuantity: p.parse("current_quantity", f.CurrentQuantity),
		TargetAvg:       p.parse("target_avg", f.TargetAvg),
		BuyPrice:        p.parse("buy_price", f.BuyPrice),
	}
	return in, p.err
}

// ParseEvaluate extrae la entrada de la valoración de un formulario.
func ParseEvaluate(nf *numfmt.Formatter, f dto.CalculatorForm) (dto.EvaluateRequest, error) {
	p := fieldParser{nf: nf}
	in := dto.EvaluateRequest{
		AvgPrice:     p.parse("avg_price", f.AvgPrice),
		Quantity:     p.parse("quantity", f.Quantity),
		CurrentPrice: p.parse("current_price", f.CurrentPrice),
	}
	return in, p.err
}
