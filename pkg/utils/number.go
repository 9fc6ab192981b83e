package utils

import "math"

// RoundWithTwoDecimalPlace arredonda para duas casas decimais (meio para longe do zero)
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// RatioWithTwoDecimalPlace divide numerator por denominator e arredonda o resultado.
// Retorna 0 quando o denominador não é positivo.
func RatioWithTwoDecimalPlace(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}

	return RoundWithTwoDecimalPlace(numerator / denominator)
}
