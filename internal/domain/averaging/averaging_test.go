package averaging_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Promedio-api/internal/domain"
	"github.com/jhoicas/Promedio-api/internal/domain/averaging"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// tolerance margen para comparar resultados que pasan por una división.
var tolerance = decimal.New(1, -8)

func assertNear(t *testing.T, want, got decimal.Decimal, context ...string) {
	t.Helper()
	assert.Truef(t, want.Sub(got).Abs().LessThanOrEqual(tolerance),
		"esperado %s, obtenido %s %v", want, got, context)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cálculo directo
// ──────────────────────────────────────────────────────────────────────────────

// Escenario 1: 10 a 10000 + 10 a 8000 → promedio 9000.
func TestComputeForward_Escenario1(t *testing.T) {
	res, err := averaging.ComputeForward(d("10000"), d("10"), d("8000"), d("10"))
	require.NoError(t, err)

	assert.True(t, res.AvgPrice.Equal(d("9000")), "avg: %s", res.AvgPrice)
	assert.True(t, res.TotalQuantity.Equal(d("20")), "qty: %s", res.TotalQuantity)
	assert.True(t, res.TotalAmount.Equal(d("180000")), "amount: %s", res.TotalAmount)
	assert.Nil(t, res.AdditionalQuantity, "el cálculo directo no informa cantidad adicional")
	assert.Nil(t, res.AdditionalAmount)
	assert.False(t, res.IsReverse())
}

// Escenario 3: cantidad cero se rechaza.
func TestComputeForward_CantidadCero(t *testing.T) {
	_, err := averaging.ComputeForward(d("100"), d("0"), d("50"), d("10"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "old_quantity")
}

func TestComputeForward_RechazaNoPositivos(t *testing.T) {
	cases := []struct {
		name  string
		args  [4]string
		field string
	}{
		{"precio anterior negativo", [4]string{"-1", "10", "50", "10"}, "old_price"},
		{"precio nuevo cero", [4]string{"100", "10", "0", "10"}, "new_price"},
		{"cantidad nueva negativa", [4]string{"100", "10", "50", "-3"}, "new_quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := averaging.ComputeForward(d(tc.args[0]), d(tc.args[1]), d(tc.args[2]), d(tc.args[3]))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestComputeForward_CantidadesFraccionarias(t *testing.T) {
	res, err := averaging.ComputeForward(d("1.5"), d("0.5"), d("2.5"), d("1.5"))
	require.NoError(t, err)
	// (0.75 + 3.75) / 2 = 2.25
	assert.True(t, res.AvgPrice.Equal(d("2.25")), "avg: %s", res.AvgPrice)
}

// El promedio queda dentro de [min, max] de los precios y es igual a ambos si coinciden.
func TestComputeForward_PromedioEntrePrecios(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		oldPrice := randomAmount(rng)
		newPrice := randomAmount(rng)
		if i%10 == 0 {
			newPrice = oldPrice
		}
		res, err := averaging.ComputeForward(oldPrice, randomAmount(rng), newPrice, randomAmount(rng))
		require.NoError(t, err)

		lo, hi := decimal.Min(oldPrice, newPrice), decimal.Max(oldPrice, newPrice)
		assert.True(t, res.AvgPrice.GreaterThanOrEqual(lo), "avg %s < min %s", res.AvgPrice, lo)
		assert.True(t, res.AvgPrice.LessThanOrEqual(hi), "avg %s > max %s", res.AvgPrice, hi)
		if oldPrice.Equal(newPrice) {
			assert.True(t, res.AvgPrice.Equal(oldPrice), "precios iguales: avg %s", res.AvgPrice)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cálculo inverso
// ──────────────────────────────────────────────────────────────────────────────

// Escenario 2: bajar de 10000 a 9000 comprando a 8000 requiere 10 unidades.
func TestComputeReverse_Escenario2(t *testing.T) {
	res, err := averaging.ComputeReverse(d("10000"), d("10"), d("9000"), d("8000"))
	require.NoError(t, err)
	require.NotNil(t, res.AdditionalQuantity)
	require.NotNil(t, res.AdditionalAmount)

	assert.True(t, res.AdditionalQuantity.Equal(d("10")), "required: %s", res.AdditionalQuantity)
	assert.True(t, res.AdditionalAmount.Equal(d("80000")), "additional amount: %s", res.AdditionalAmount)
	assert.True(t, res.TotalQuantity.Equal(d("20")))
	assert.True(t, res.TotalAmount.Equal(d("180000")))
	assert.True(t, res.AvgPrice.Equal(d("9000")))
	assert.True(t, res.IsReverse())
}

// Escenario 4: el objetivo no representa una reducción.
func TestComputeReverse_ObjetivoIgualAlActual(t *testing.T) {
	_, err := averaging.ComputeReverse(d("100"), d("10"), d("100"), d("50"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "target_avg")
}

// Frontera: comprar al mismo precio objetivo no tiene solución (denominador cero).
func TestComputeReverse_CompraIgualAlObjetivo(t *testing.T) {
	_, err := averaging.ComputeReverse(d("100"), d("10"), d("80"), d("80"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "buy_price")
}

func TestComputeReverse_Rechazos(t *testing.T) {
	cases := []struct {
		name string
		args [4]string
	}{
		{"objetivo mayor al actual", [4]string{"100", "10", "120", "50"}},
		{"compra por encima del objetivo", [4]string{"100", "10", "80", "90"}},
		{"cantidad actual cero", [4]string{"100", "0", "80", "50"}},
		{"precio de compra cero", [4]string{"100", "10", "80", "0"}},
		{"promedio actual negativo", [4]string{"-100", "10", "80", "50"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := averaging.ComputeReverse(d(tc.args[0]), d(tc.args[1]), d(tc.args[2]), d(tc.args[3]))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Cantidad fraccionaria: no se redondea.
func TestComputeReverse_CantidadFraccionaria(t *testing.T) {
	res, err := averaging.ComputeReverse(d("100"), d("1"), d("90"), d("60"))
	require.NoError(t, err)
	// 1 * 10 / 30 = 0.333...
	assert.False(t, res.AdditionalQuantity.IsInteger())
	assertNear(t, d("0.3333333333333333"), *res.AdditionalQuantity)
}

// Ley de ida y vuelta: comprar la cantidad calculada lleva el promedio al objetivo.
func TestComputeReverse_IdaYVuelta(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		buy := randomAmount(rng)
		target := buy.Add(randomAmount(rng))
		current := target.Add(randomAmount(rng))
		qty := randomAmount(rng)

		rev, err := averaging.ComputeReverse(current, qty, target, buy)
		require.NoError(t, err)
		require.True(t, rev.AdditionalQuantity.IsPositive())

		fwd, err := averaging.ComputeForward(current, qty, buy, *rev.AdditionalQuantity)
		require.NoError(t, err)
		assertNear(t, target, fwd.AvgPrice, fmt.Sprintf("current=%s qty=%s buy=%s", current, qty, buy))
		assertNear(t, rev.TotalQuantity, fwd.TotalQuantity)
		assertNear(t, rev.TotalAmount, fwd.TotalAmount)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Valoración
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_Ganancia(t *testing.T) {
	ev, err := averaging.Evaluate(d("10000"), d("10"), d("12000"))
	require.NoError(t, err)
	assert.True(t, ev.TotalInvestment.Equal(d("100000")))
	assert.True(t, ev.EvaluationAmount.Equal(d("120000")))
	assert.True(t, ev.ProfitLoss.Equal(d("20000")))
	assert.True(t, ev.ProfitLossRate.Equal(d("20")), "rate: %s", ev.ProfitLossRate)
}

func TestEvaluate_Perdida(t *testing.T) {
	ev, err := averaging.Evaluate(d("200"), d("5"), d("150"))
	require.NoError(t, err)
	assert.True(t, ev.ProfitLoss.Equal(d("-250")))
	assert.True(t, ev.ProfitLossRate.Equal(d("-25")), "rate: %s", ev.ProfitLossRate)
}

func TestEvaluate_PrecioActualCero(t *testing.T) {
	_, err := averaging.Evaluate(d("200"), d("5"), d("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// randomAmount valor positivo con dos decimales entre 0.01 y 100000.
func randomAmount(rng *rand.Rand) decimal.Decimal {
	return decimal.New(rng.Int63n(10_000_000)+1, -2)
}
