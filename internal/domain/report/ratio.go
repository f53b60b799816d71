package report

import "github.com/shopspring/decimal"

// ratioPrecision decimales a los que se redondean las razones de los reportes.
const ratioPrecision = 6

// Ratio resultado de una división guardada contra denominador cero.
// Defined=false es el marcador "indefinido": jamás se produce NaN ni Inf.
type Ratio struct {
	Defined bool
	Value   decimal.Decimal
}

// Undefined marcador de razón indefinida (denominador cero).
var Undefined = Ratio{}

// RatioOf divide numerator/denominator como decimal. Devuelve Undefined si el
// denominador es cero.
func RatioOf(numerator, denominator int64) Ratio {
	if denominator == 0 {
		return Undefined
	}
	value := decimal.NewFromInt(numerator).
		Div(decimal.NewFromInt(denominator)).
		Round(ratioPrecision)
	return Ratio{Defined: true, Value: value}
}

// DeltaRatio variación relativa interanual: (current - prior) / |prior|.
// Undefined cuando no hay valor del período anterior.
func DeltaRatio(current, prior int64) Ratio {
	if prior == 0 {
		return Undefined
	}
	abs := prior
	if abs < 0 {
		abs = -abs
	}
	return RatioOf(current-prior, abs)
}
