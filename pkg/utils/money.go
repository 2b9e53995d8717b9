package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders v as Brazilian reais, e.g. "R$ 1.234,50".
func FormatBRL(v float64) string {
	return brPrinter.Sprintf("R$ %v", number.Decimal(v, number.Scale(2)))
}

// FormatDecimal renders v with pt-BR separators and the given fraction digits.
func FormatDecimal(v float64, digits int) string {
	return brPrinter.Sprintf("%v", number.Decimal(v, number.Scale(digits)))
}
