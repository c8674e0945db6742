// Package pdf genera el comprobante imprimible de un cálculo de precio promedio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + modo            │  fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS INGRESADOS: Concepto | Valor                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESULTADO: Concepto | Valor (resaltado)                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Promedio-api/internal/application/calculator"
	"github.com/jhoicas/Promedio-api/internal/application/dto"
)

// Verificar en tiempo de compilación que MarotoReceiptGenerator implementa ReceiptGenerator.
var _ calculator.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var modeTitles = map[string]string{
	dto.ModeForward:  "Cálculo de precio promedio",
	dto.ModeReverse:  "Cálculo inverso de precio promedio",
	dto.ModeEvaluate: "Valoración de posición",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa calculator.ReceiptGenerator usando Maroto v2.
// Usa las fuentes base (Windows-1252): las unidades fuera de ese juego, como "원",
// se omiten del valor en vez de imprimirse como caracteres sustituidos.
type MarotoReceiptGenerator struct {
	author string
	now    func() time.Time
}

// NewMarotoReceiptGenerator construye el generador; author va a los metadatos del PDF.
func NewMarotoReceiptGenerator(author string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{author: author, now: time.Now}
}

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(ctx context.Context, res *dto.CalculationResponse) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("pdf: resultado vacío")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	title, ok := modeTitles[res.Mode]
	if !ok {
		title = "Cálculo"
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, res.Mode, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("DATOS INGRESADOS"))
	m.AddRows(tableHeaderRow())
	for _, r := range fieldRows(res.Inputs, false) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionRow("RESULTADO"))
	m.AddRows(tableHeaderRow())
	for _, r := range fieldRows(res.Results, true) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title, mode string, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Modo: "+mode, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(at.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func sectionRow(label string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 7, align.Left),
		h("Valor", 5, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// fieldRows una fila por campo; highlight resalta los valores del resultado.
func fieldRows(fields []dto.Field, highlight bool) []core.Row {
	valueProps := props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1}
	if highlight {
		valueProps.Style = fontstyle.Bold
		valueProps.Color = colorPrimary
	}
	out := make([]core.Row, 0, len(fields))
	for _, f := range fields {
		out = append(out, row.New(7).Add(
			col.New(7).Add(text.New(f.Label, props.Text{Size: 9, Top: 1, Left: 1})),
			col.New(5).Add(text.New(valueText(f), valueProps)),
		))
	}
	return out
}

func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Cálculo informativo. Los valores se redondean al entero más cercano para su presentación.",
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// valueText valor a imprimir: el formateado si las fuentes base lo representan, si no
// el formateado sin la unidad y, en último caso, el decimal sin formato.
func valueText(f dto.Field) string {
	s := nonEmpty(f.Formatted, f.Value.String())
	if renderable(s) {
		return s
	}
	if f.Unit != "" {
		if trimmed := strings.TrimSuffix(s, f.Unit); trimmed != s && renderable(trimmed) {
			return trimmed
		}
	}
	return f.Value.String()
}

func renderable(s string) bool {
	_, err := charmap.Windows1252.NewEncoder().String(s)
	return err == nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
