package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatSoles formats an amount as Peruvian soles, e.g. 1350.5 -> "S/ 1,350.50".
func FormatSoles(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	integerPart = strings.TrimPrefix(integerPart, "-")

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	result := strings.Join(groups, ",") + "." + decimalPart
	if negative {
		result = "-" + result
	}
	return "S/ " + result
}

// Round2 rounds an amount to 2 decimals, the precision every stored price
// and total uses.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
