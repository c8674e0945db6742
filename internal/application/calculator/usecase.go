package calculator

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Promedio-api/internal/application/dto"
	"github.com/jhoicas/Promedio-api/internal/domain"
	"github.com/jhoicas/Promedio-api/internal/domain/averaging"
	"github.com/jhoicas/Promedio-api/pkg/logger"
	"github.com/jhoicas/Promedio-api/pkg/numfmt"
)

// Units sufijos de presentación para precios/montos y cantidades.
type Units struct {
	Price    string
	Quantity string
}

// CalculatorUseCase orquesta los cálculos de precio promedio: recibe entradas ya parseadas
// (o parsea formularios de texto), invoca el dominio y arma la respuesta con valores formateados.
// No guarda estado entre llamadas.
type CalculatorUseCase struct {
	formatter *numfmt.Formatter
	units     Units
	receipts  ReceiptGenerator
	log       *logger.Logger
}

// NewCalculatorUseCase construye el caso de uso. receipts puede ser nil si no se exponen PDFs.
func NewCalculatorUseCase(formatter *numfmt.Formatter, units Units, receipts ReceiptGenerator, log *logger.Logger) *CalculatorUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CalculatorUseCase{
		formatter: formatter,
		units:     units,
		receipts:  receipts,
		log:       log.Component("calculator"),
	}
}

// Forward nuevo precio promedio tras una compra.
func (uc *CalculatorUseCase) Forward(in dto.ForwardRequest) (*dto.CalculationResponse, error) {
	res, err := averaging.ComputeForward(in.OldPrice, in.OldQuantity, in.NewPrice, in.NewQuantity)
	if err != nil {
		return nil, uc.rejected(dto.ModeForward, err)
	}
	uc.log.Debug().
		Str("mode", dto.ModeForward).
		Str("old_price", in.OldPrice.String()).
		Str("old_quantity", in.OldQuantity.String()).
		Str("new_price", in.NewPrice.String()).
		Str("new_quantity", in.NewQuantity.String()).
		Str("avg_price", res.AvgPrice.String()).
		Msg("cálculo directo")

	out := &dto.CalculationResponse{
		Mode: dto.ModeForward,
		Inputs: []dto.Field{
			uc.price("old_price", "Precio promedio actual", in.OldPrice),
			uc.quantity("old_quantity", "Cantidad actual", in.OldQuantity),
			uc.price("new_price", "Precio de compra", in.NewPrice),
			uc.quantity("new_quantity", "Cantidad a comprar", in.NewQuantity),
		},
	}
	uc.fillAverage(out, res)
	return out, nil
}

// Reverse cantidad adicional necesaria para llevar el promedio al objetivo.
func (uc *CalculatorUseCase) Reverse(in dto.ReverseRequest) (*dto.CalculationResponse, error) {
	res, err := averaging.ComputeReverse(in.CurrentAvg, in.CurrentQuantity, in.TargetAvg, in.BuyPrice)
	if err != nil {
		return nil, uc.rejected(dto.ModeReverse, err)
	}
	uc.log.Debug().
		Str("mode", dto.ModeReverse).
		Str("current_avg", in.CurrentAvg.String()).
		Str("current_quantity", in.CurrentQuantity.String()).
		Str("target_avg", in.TargetAvg.String()).
		Str("buy_price", in.BuyPrice.String()).
		Str("additional_quantity", res.AdditionalQuantity.String()).
		Msg("cálculo inverso")

	out := &dto.CalculationResponse{
		Mode: dto.ModeReverse,
		Inputs: []dto.Field{
			uc.price("current_avg", "Precio promedio actual", in.CurrentAvg),
			uc.quantity("current_quantity", "Cantidad actual", in.CurrentQuantity),
			uc.price("target_avg", "Precio promedio objetivo", in.TargetAvg),
			uc.price("buy_price", "Precio de compra", in.BuyPrice),
		},
	}
	out.AdditionalQuantity = res.AdditionalQuantity
	out.AdditionalAmount = res.AdditionalAmount
	out.Results = append(out.Results,
		uc.quantity("additional_quantity", "Cantidad a comprar", *res.AdditionalQuantity),
		uc.price("additional_amount", "Monto a invertir", *res.AdditionalAmount),
	)
	uc.fillAverage(out, res)
	return out, nil
}

// Evaluate valoración de una posición a precio actual.
func (uc *CalculatorUseCase) Evaluate(in dto.EvaluateRequest) (*dto.CalculationResponse, error) {
	ev, err := averaging.Evaluate(in.AvgPrice, in.Quantity, in.CurrentPrice)
	if err != nil {
		return nil, uc.rejected(dto.ModeEvaluate, err)
	}
	uc.log.Debug().
		Str("mode", dto.ModeEvaluate).
		Str("avg_price", in.AvgPrice.String()).
		Str("quantity", in.Quantity.String()).
		Str("current_price", in.CurrentPrice.String()).
		Str("profit_loss", ev.ProfitLoss.String()).
		Msg("valoración")

	return &dto.CalculationResponse{
		Mode:             dto.ModeEvaluate,
		TotalInvestment:  ptr(ev.TotalInvestment),
		EvaluationAmount: ptr(ev.EvaluationAmount),
		ProfitLoss:       ptr(ev.ProfitLoss),
		ProfitLossRate:   ptr(ev.ProfitLossRate),
		Inputs: []dto.Field{
			uc.price("avg_price", "Precio promedio", in.AvgPrice),
			uc.quantity("quantity", "Cantidad", in.Quantity),
			uc.price("current_price", "Precio actual", in.CurrentPrice),
		},
		Results: []dto.Field{
			uc.price("total_investment", "Inversión total", ev.TotalInvestment),
			uc.price("evaluation_amount", "Valor actual", ev.EvaluationAmount),
			uc.price("profit_loss", "Ganancia / pérdida", ev.ProfitLoss),
			{
				Name:      "profit_loss_rate",
				Label:     "Rentabilidad",
				Value:     ev.ProfitLossRate,
				Formatted: uc.formatter.FormatRate(ev.ProfitLossRate),
			},
		},
	}, nil
}

// Calculate parsea un formulario de texto según su modo y ejecuta el cálculo correspondiente.
func (uc *CalculatorUseCase) Calculate(form dto.CalculatorForm) (*dto.CalculationResponse, error) {
	switch form.Mode {
	case dto.ModeForward, "":
		in, err := ParseForward(uc.formatter, form)
		if err != nil {
			return nil, uc.rejected(dto.ModeForward, err)
		}
		return uc.Forward(in)
	case dto.ModeReverse:
		in, err := ParseReverse(uc.formatter, form)
		if err != nil {
			return nil, uc.rejected(dto.ModeReverse, err)
		}
		return uc.Reverse(in)
	case dto.ModeEvaluate:
		in, err := ParseEvaluate(uc.formatter, form)
		if err != nil {
			return nil, uc.rejected(dto.ModeEvaluate, err)
		}
		return uc.Evaluate(in)
	default:
		return nil, fmt.Errorf("%w: modo %q desconocido", domain.ErrInvalidInput, form.Mode)
	}
}

// Receipt calcula según ReportRequest y devuelve el PDF del resultado.
func (uc *CalculatorUseCase) Receipt(ctx context.Context, in dto.ReportRequest) (*dto.CalculationResponse, []byte, error) {
	if uc.receipts == nil {
		return nil, nil, errors.New("calculator: generador de PDF no configurado")
	}
	var (
		res *dto.CalculationResponse
		err error
	)
	switch {
	case in.Mode == dto.ModeForward && in.Forward != nil:
		res, err = uc.Forward(*in.Forward)
	case in.Mode == dto.ModeReverse && in.Reverse != nil:
		res, err = uc.Reverse(*in.Reverse)
	case in.Mode == dto.ModeEvaluate && in.Evaluate != nil:
		res, err = uc.Evaluate(*in.Evaluate)
	default:
		return nil, nil, fmt.Errorf("%w: mode y su bloque de datos son requeridos", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, nil, err
	}
	pdf, err := uc.receipts.GenerateReceipt(ctx, res)
	if err != nil {
		return nil, nil, fmt.Errorf("calculator: generar PDF: %w", err)
	}
	return res, pdf, nil
}

func (uc *CalculatorUseCase) fillAverage(out *dto.CalculationResponse, res averaging.CalculationResult) {
	out.AvgPrice = ptr(res.AvgPrice)
	out.TotalQuantity = ptr(res.TotalQuantity)
	out.TotalAmount = ptr(res.TotalAmount)
	out.Results = append(out.Results,
		uc.price("avg_price", "Nuevo precio promedio", res.AvgPrice),
		uc.quantity("total_quantity", "Cantidad total", res.TotalQuantity),
		uc.price("total_amount", "Monto total", res.TotalAmount),
	)
}

func (uc *CalculatorUseCase) rejected(mode string, err error) error {
	uc.log.Info().Str("mode", mode).Err(err).Msg("cálculo rechazado")
	return err
}

func (uc *CalculatorUseCase) price(name, label string, v decimal.Decimal) dto.Field {
	return dto.Field{Name: name, Label: label, Value: v, Formatted: uc.formatter.FormatWithUnit(v, uc.units.Price), Unit: uc.units.Price}
}

func (uc *CalculatorUseCase) quantity(name, label string, v decimal.Decimal) dto.Field {
	return dto.Field{Name: name, Label: label, Value: v, Formatted: uc.formatter.FormatWithUnit(v, uc.units.Quantity), Unit: uc.units.Quantity}
}

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }
