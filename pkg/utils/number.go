package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

func RoundWithOneDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*10) / 10
}

// Percentage calcula part/total*100, devolvendo 0 quando total é zero
func Percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}

	return part / total * 100
}

// Ratio calcula part/total, devolvendo 0 quando total é zero
func Ratio(part, total float64) float64 {
	if total == 0 {
		return 0
	}

	return part / total
}
