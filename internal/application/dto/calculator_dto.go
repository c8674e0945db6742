package dto

import "github.com/shopspring/decimal"

// Modos de cálculo.
const (
	ModeForward  = "forward"
	ModeReverse  = "reverse"
	ModeEvaluate = "evaluate"
)

// ForwardRequest entrada del cálculo directo (JSON).
type ForwardRequest struct {
	OldPrice    decimal.Decimal `json:"old_price"`
	OldQuantity decimal.Decimal `json:"old_quantity"`
	NewPrice    decimal.Decimal `json:"new_price"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// ReverseRequest entrada del cálculo inverso (JSON).
type ReverseRequest struct {
	CurrentAvg      decimal.Decimal `json:"current_avg"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	TargetAvg       decimal.Decimal `json:"target_avg"`
	BuyPrice        decimal.Decimal `json:"buy_price"`
}

// EvaluateRequest entrada de la valoración de una posición (JSON).
type EvaluateRequest struct {
	AvgPrice     decimal.Decimal `json:"avg_price"`
	Quantity     decimal.Decimal `json:"quantity"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// ReportRequest entrada de POST /api/calculator/report: el modo y solo los campos de ese modo.
type ReportRequest struct {
	Mode     string           `json:"mode"`
	Forward  *ForwardRequest  `json:"forward,omitempty"`
	Reverse  *ReverseRequest  `json:"reverse,omitempty"`
	Evaluate *EvaluateRequest `json:"evaluate,omitempty"`
}

// CalculatorForm campos de texto tal como llegan de un formulario HTML o de flags de la CLI.
// El use case los parsea antes de invocar el dominio.
type CalculatorForm struct {
	Mode string `form:"mode"`

	OldPrice    string `form:"old_price"`
	OldQuantity string `form:"old_quantity"`
	NewPrice    string `form:"new_price"`
	NewQuantity string `form:"new_quantity"`

	CurrentAvg      string `form:"current_avg"`
	CurrentQuantity string `form:"current_quantity"`
	TargetAvg       string `form:"target_avg"`
	BuyPrice        string `form:"buy_price"`

	AvgPrice     string `form:"avg_price"`
	Quantity     string `form:"quantity"`
	CurrentPrice string `form:"current_price"`
}

// Field un valor (de entrada o calculado) con su etiqueta y representación formateada,
// para mostrar en pantalla y en el PDF.
type Field struct {
	Name      string          `json:"name"`
	Label     string          `json:"label"`
	Value     decimal.Decimal `json:"value"`
	Formatted string          `json:"formatted"`
	Unit      string          `json:"unit,omitempty"` // sufijo incluido en Formatted
}

// CalculationResponse salida común de los tres modos.
// Los campos opcionales solo se informan en el modo que los produce.
type CalculationResponse struct {
	Mode               string           `json:"mode"`
	AvgPrice           *decimal.Decimal `json:"avg_price,omitempty"`
	TotalQuantity      *decimal.Decimal `json:"total_quantity,omitempty"`
	TotalAmount        *decimal.Decimal `json:"total_amount,omitempty"`
	AdditionalQuantity *decimal.Decimal `json:"additional_quantity,omitempty"`
	AdditionalAmount   *decimal.Decimal `json:"additional_amount,omitempty"`
	TotalInvestment    *decimal.Decimal `json:"total_investment,omitempty"`
	EvaluationAmount   *decimal.Decimal `json:"evaluation_amount,omitempty"`
	ProfitLoss         *decimal.Decimal `json:"profit_loss,omitempty"`
	ProfitLossRate     *decimal.Decimal `json:"profit_loss_rate,omitempty"`
	Inputs             []Field          `json:"inputs"`
	Results            []Field          `json:"results"`
}
