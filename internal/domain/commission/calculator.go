// Package commission contiene la aritmética de comisiones (servicio de dominio puro).
package commission

import "github.com/shopspring/decimal"

// Scale decimales de los montos monetarios.
const Scale = 2

// Topes de las columnas NUMERIC(14,2) de montos y comisiones y NUMERIC(5,2) de porcentajes.
var (
	MaxAmount     = decimal.RequireFromString("999999999999.99")
	MaxPercentage = decimal.RequireFromString("999.99")
)

// Calculate devuelve amount * percentage / 100 redondeado a 2 decimales (half-up).
// Un porcentaje nil se trata como cero.
func Calculate(amount decimal.Decimal, percentage *decimal.Decimal) decimal.Decimal {
	if percentage == nil {
		return decimal.Zero.Round(Scale)
	}
	// Shift(-2) divide por 100 sin pérdida de precisión antes de redondear.
	return amount.Mul(*percentage).Shift(-2).Round(Scale)
}

// Average divide total entre count redondeando a 2 decimales; cero si count <= 0.
func Average(total decimal.Decimal, count int64) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero.Round(Scale)
	}
	return total.DivRound(decimal.NewFromInt(count), Scale)
}
