package pricing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sangkips/printshop-api/internal/domain/enum"
)

// categoryModes maps normalized category names to calculators. Lookups are
// exact; a category that is merely similar falls through to standard.
var categoryModes = map[string]enum.CalculatorMode{
	"adesivo":       enum.CalculatorModeSticker,
	"adesivos":      enum.CalculatorModeSticker,
	"etiqueta":      enum.CalculatorModeSticker,
	"etiquetas":     enum.CalculatorModeSticker,
	"rotulo":        enum.CalculatorModeSticker,
	"rotulos":       enum.CalculatorModeSticker,
	"laser":         enum.CalculatorModeLaser,
	"cnc":           enum.CalculatorModeLaser,
	"gravacao":      enum.CalculatorModeLaser,
	"brinde":        enum.CalculatorModeLaser,
	"brindes":       enum.CalculatorModeLaser,
	"envelopamento": enum.CalculatorModeAutomotive,
	"automotivo":    enum.CalculatorModeAutomotive,
}

// NormalizeCategory lowercases, trims and strips diacritics.
func NormalizeCategory(category string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, category)
	if err != nil {
		s = category
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// ResolveMode picks the calculator for a line: an explicit override wins,
// then the product's own tag, then the category table, then standard.
func ResolveMode(override, productMode enum.CalculatorMode, category string) enum.CalculatorMode {
	if override.IsValid() {
		return override
	}
	if productMode.IsValid() {
		return productMode
	}
	if m, ok := categoryModes[NormalizeCategory(category)]; ok {
		return m
	}
	return enum.CalculatorModeStandard
}

// StandardBillableQuantity is what a standard line multiplies the sale price
// by: area for m2, length for ml, count for un.
func StandardBillableQuantity(unit enum.UnitType, quantity int, widthM, heightM float64) float64 {
	if quantity <= 0 {
		return 0
	}
	q := float64(quantity)
	switch unit {
	case enum.UnitTypeSquareMeter:
		return q * nonNegative(widthM) * nonNegative(heightM)
	case enum.UnitTypeLinearMeter:
		return q * nonNegative(widthM)
	default:
		return q
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
