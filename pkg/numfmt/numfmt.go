// Package numfmt formatea montos y cantidades para mostrarlos en pantalla:
// redondea al entero más cercano y agrupa miles según el idioma configurado.
// También interpreta lo que el usuario escribe con esos mismos separadores.
package numfmt

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale idioma por defecto de la interfaz (separador de miles ",").
const DefaultLocale = "ko-KR"

// ErrNotANumber texto vacío o que no representa un número.
var ErrNotANumber = errors.New("numfmt: no es un número")

var half = decimal.NewFromFloat(0.5)

// Formatter formatea decimales como enteros con separadores de miles locales.
// Es seguro para uso concurrente.
type Formatter struct {
	tag     language.Tag
	p       *message.Printer
	group   string // separador de miles, ej. "," en ko-KR y "." en es-CO
	decimal string // separador decimal
}

// New construye un Formatter para una etiqueta BCP-47 ("ko-KR", "es-CO", "en-US").
// Una etiqueta inválida cae en DefaultLocale.
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	p := message.NewPrinter(tag)
	group, dec := separators(p)
	return &Formatter{tag: tag, p: p, group: group, decimal: dec}
}

// separators deduce los separadores imprimiendo valores conocidos con el printer del idioma.
func separators(p *message.Printer) (group, dec string) {
	group = leadingNonDigits(strings.TrimPrefix(p.Sprintf("%d", 1234567), "1"))    // "1,234,567" | "1.234.567"
	dec = strings.TrimSuffix(strings.TrimPrefix(p.Sprintf("%.1f", 1.5), "1"), "5") // "1.5" | "1,5"
	if dec == "" || dec == group {
		dec = "."
	}
	return group, dec
}

func leadingNonDigits(s string) string {
	for i, r := range s {
		if unicode.IsDigit(r) {
			return s[:i]
		}
	}
	return s
}

// Locale etiqueta efectiva del formatter.
func (f *Formatter) Locale() string { return f.tag.String() }

// Separators separador de miles y separador decimal del idioma.
func (f *Formatter) Separators() (group, dec string) { return f.group, f.decimal }

// Round redondea al entero más cercano; los medios suben (floor(x + 0.5)).
func Round(v decimal.Decimal) decimal.Decimal {
	return v.Add(half).Floor()
}

// Format redondea v y lo imprime con agrupación de miles, ej. 180000 -> "180,000".
// Los valores fuera de int64 se agrupan a partir de los dígitos exactos del decimal.
func (f *Formatter) Format(v decimal.Decimal) string {
	r := Round(v)
	if n := r.BigInt(); n.IsInt64() {
		return f.p.Sprintf("%d", n.Int64())
	}
	digits := r.BigInt().String()
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	return sign + groupDigits(digits, f.group)
}

// groupDigits inserta sep cada tres dígitos desde la derecha.
func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatWithUnit agrega un sufijo de unidad ("원", "주") al número formateado.
func (f *Formatter) FormatWithUnit(v decimal.Decimal, unit string) string {
	return f.Format(v) + unit
}

// FormatRate formatea un porcentaje con dos decimales, ej. 12.345 -> "12.35%".
func (f *Formatter) FormatRate(v decimal.Decimal) string {
	return f.p.Sprintf("%.2f%%", v.Round(2).InexactFloat64())
}

// Parse interpreta un número escrito con los separadores del idioma: quita espacios y
// separadores de miles y toma el separador decimal local. Con ko-KR "1,234.5" es 1234.5;
// con es-CO "1.234,5" es 1234.5 y "1,5" es 1.5.
func (f *Formatter) Parse(raw string) (decimal.Decimal, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if f.group != "" {
		s = strings.ReplaceAll(s, f.group, "")
	}
	if f.decimal != "." {
		s = strings.ReplaceAll(s, f.decimal, ".")
	}
	if s == "" {
		return decimal.Zero, ErrNotANumber
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}
	return v, nil
}
