package enum

import (
	"fmt"
	"strings"
)

// CalculatorMode selects which pricing calculator produces a cart line.
type CalculatorMode string

const (
	CalculatorModeStandard   CalculatorMode = "standard"
	CalculatorModeSticker    CalculatorMode = "sticker"
	CalculatorModeLaser      CalculatorMode = "laser"
	CalculatorModeAutomotive CalculatorMode = "automotive"
)

func (m CalculatorMode) IsValid() bool {
	switch m {
	case CalculatorModeStandard, CalculatorModeSticker, CalculatorModeLaser, CalculatorModeAutomotive:
		return true
	}
	return false
}

// ParseCalculatorMode accepts an empty string as "no explicit mode".
func ParseCalculatorMode(s string) (CalculatorMode, error) {
	m := CalculatorMode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" || m.IsValid() {
		return m, nil
	}
	return "", fmt.Errorf("unknown calculator mode %q", s)
}

// StickerMode picks what the area yield calculator solves for.
type StickerMode string

const (
	// StickerModeQuantity solves roll length for a target label count.
	StickerModeQuantity StickerMode = "quantity"
	// StickerModeArea solves label count for a target fill rectangle.
	StickerModeArea StickerMode = "area"
)

func (m StickerMode) IsValid() bool {
	return m == StickerModeQuantity || m == StickerModeArea
}

// LaserMode is the machine-time sub-mode.
type LaserMode string

const (
	LaserModeCut         LaserMode = "cut"
	LaserModeEngrave     LaserMode = "engrave"
	LaserModePromotional LaserMode = "promotional"
)

func (m LaserMode) IsValid() bool {
	switch m {
	case LaserModeCut, LaserModeEngrave, LaserModePromotional:
		return true
	}
	return false
}
