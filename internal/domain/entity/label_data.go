package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sangkips/printshop-api/internal/domain/enum"
)

// LabelKind discriminates the calculator payload stored on a quote item.
type LabelKind string

const (
	LabelKindSticker    LabelKind = "sticker"
	LabelKindAutomotive LabelKind = "automotive"
	LabelKindLaser      LabelKind = "laser"
)

// Label is implemented by StickerLabel, WrapLabel and LaserLabel only.
type Label interface {
	Kind() LabelKind
	clone() Label
}

// StickerLabel records how a sticker line was nested on the roll.
type StickerLabel struct {
	Mode         enum.StickerMode `json:"mode"`
	UnitWidthCm  float64          `json:"unit_width_cm"`
	UnitHeightCm float64          `json:"unit_height_cm"`
	GapMm        float64          `json:"gap_mm"`
	RollWidthM   float64          `json:"roll_width_m"`
	ColsPerRow   int              `json:"cols_per_row"`
	RowsNeeded   int              `json:"rows_needed"`
	LinearMeters float64          `json:"linear_meters"`
	TotalLabels  int              `json:"total_labels"`
	AreaM2       float64          `json:"area_m2"`
}

func (*StickerLabel) Kind() LabelKind { return LabelKindSticker }

func (l *StickerLabel) clone() Label {
	c := *l
	return &c
}

// WrapLabel records the panels and tiers of an automotive wrap line.
type WrapLabel struct {
	Vehicle       string              `json:"vehicle"`
	Parts         []string            `json:"parts"`
	Complexity    enum.ComplexityTier `json:"complexity"`
	MaterialLevel enum.MaterialTier   `json:"material_level"`
	AreaM2        float64             `json:"area_m2"`
	EffectiveRate float64             `json:"effective_rate"`
}

func (*WrapLabel) Kind() LabelKind { return LabelKindAutomotive }

func (l *WrapLabel) clone() Label {
	c := *l
	c.Parts = append([]string(nil), l.Parts...)
	return &c
}

// LaserLabel records the machine-time inputs of a laser/CNC line.
type LaserLabel struct {
	Mode               enum.LaserMode `json:"mode"`
	Material           string         `json:"material"`
	MachineTimeMinutes float64        `json:"machine_time"`
	SetupFee           float64        `json:"setup_fee"`
	Quantity           int            `json:"quantity,omitempty"`
	TimeCost           float64        `json:"time_cost"`
	MaterialCost       float64        `json:"material_cost"`
	UnitProductCost    float64        `json:"unit_product_cost,omitempty"`
	UnitEngraveCost    float64        `json:"unit_engrave_cost,omitempty"`
}

func (*LaserLabel) Kind() LabelKind { return LabelKindLaser }

func (l *LaserLabel) clone() Label {
	c := *l
	return &c
}

// LabelData wraps an optional Label. It serializes as the label's fields
// plus a "type" discriminator, and is stored as a JSON text column.
type LabelData struct {
	Label Label
}

var ErrUnknownLabelKind = errors.New("unknown label type")

// IsZero reports whether no label is set.
func (d LabelData) IsZero() bool {
	return d.Label == nil
}

// Clone returns a deep copy.
func (d LabelData) Clone() LabelData {
	if d.Label == nil {
		return LabelData{}
	}
	return LabelData{Label: d.Label.clone()}
}

func (d LabelData) Sticker() (*StickerLabel, bool) {
	l, ok := d.Label.(*StickerLabel)
	return l, ok
}

func (d LabelData) Wrap() (*WrapLabel, bool) {
	l, ok := d.Label.(*WrapLabel)
	return l, ok
}

func (d LabelData) Laser() (*LaserLabel, bool) {
	l, ok := d.Label.(*LaserLabel)
	return l, ok
}

func (d LabelData) MarshalJSON() ([]byte, error) {
	switch l := d.Label.(type) {
	case nil:
		return []byte("null"), nil
	case *StickerLabel:
		return json.Marshal(struct {
			Type LabelKind `json:"type"`
			*StickerLabel
		}{LabelKindSticker, l})
	case *WrapLabel:
		return json.Marshal(struct {
			Type LabelKind `json:"type"`
			*WrapLabel
		}{LabelKindAutomotive, l})
	case *LaserLabel:
		return json.Marshal(struct {
			Type LabelKind `json:"type"`
			*LaserLabel
		}{LabelKindLaser, l})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownLabelKind, l)
	}
}

func (d *LabelData) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Label = nil
		return nil
	}
	var head struct {
		Type LabelKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	var l Label
	switch head.Type {
	case LabelKindSticker:
		l = &StickerLabel{}
	case LabelKindAutomotive:
		l = &WrapLabel{}
	case LabelKindLaser:
		l = &LaserLabel{}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLabelKind, head.Type)
	}
	if err := json.Unmarshal(data, l); err != nil {
		return err
	}
	d.Label = l
	return nil
}

// Value implements driver.Valuer
func (d LabelData) Value() (driver.Value, error) {
	if d.Label == nil {
		return nil, nil
	}
	b, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (d *LabelData) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		d.Label = nil
		return nil
	case []byte:
		return d.UnmarshalJSON(v)
	case string:
		return d.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into LabelData", value)
	}
}

// Requirement is one answered checklist question attached to a line.
type Requirement struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Requirements keeps checklist answers in the order they were given.
type Requirements []Requirement

func (r Requirements) Clone() Requirements {
	if r == nil {
		return nil
	}
	return append(Requirements(nil), r...)
}
