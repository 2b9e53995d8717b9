package enum

import "fmt"

// UnitType is how a catalog product is sold.
type UnitType string

const (
	UnitTypeSquareMeter UnitType = "m2"
	UnitTypeUnit        UnitType = "un"
	UnitTypeLinearMeter UnitType = "ml"
)

func (u UnitType) IsValid() bool {
	return u == UnitTypeSquareMeter || u == UnitTypeUnit || u == UnitTypeLinearMeter
}

func ParseUnitType(s string) (UnitType, error) {
	u := UnitType(s)
	if u == "" {
		return UnitTypeUnit, nil
	}
	if !u.IsValid() {
		return "", fmt.Errorf("unknown unit type %q", s)
	}
	return u, nil
}
