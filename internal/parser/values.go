// internal/parser/values.go
package parser

import (
	"fmt"
	"strconv"
)

// Unit is a length unit. Only pixels are supported.
type Unit int

const (
	Px Unit = iota
)

func (u Unit) String() string {
	switch u {
	case Px:
		return "px"
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// Color represents an RGBA color.
type Color struct {
	R, G, B, A uint8
}

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KeywordValue ValueKind = iota
	LengthValue
	ColorValue
)

// Value is a specified CSS value: a keyword, a length or a color.
// Values compare structurally with ==.
type Value struct {
	Kind    ValueKind
	Keyword string
	Length  float64
	Unit    Unit
	Color   Color
}

// Keyword creates a keyword value.
func Keyword(s string) Value {
	return Value{Kind: KeywordValue, Keyword: s}
}

// Length creates a length value in the given unit.
func Length(f float64, unit Unit) Value {
	return Value{Kind: LengthValue, Length: f, Unit: unit}
}

// PxLength creates a pixel length.
func PxLength(f float64) Value {
	return Length(f, Px)
}

// RGBA creates a color value.
func RGBA(r, g, b, a uint8) Value {
	return Value{Kind: ColorValue, Color: Color{R: r, G: g, B: b, A: a}}
}

// Auto is the keyword used by width and the horizontal margins.
var Auto = Keyword("auto")

// Zero is the default for margins, borders and padding.
var Zero = PxLength(0)

// ToPx returns the magnitude of a pixel length, and 0 for anything else.
func (v Value) ToPx() float64 {
	if v.Kind == LengthValue && v.Unit == Px {
		return v.Length
	}
	return 0
}

// IsAuto reports whether v is the keyword auto.
func (v Value) IsAuto() bool {
	return v == Auto
}

// IsPx reports whether v is a pixel length.
func (v Value) IsPx() bool {
	return v.Kind == LengthValue && v.Unit == Px
}

// AsColor returns the color held by v.
func (v Value) AsColor() (Color, bool) {
	if v.Kind != ColorValue {
		return Color{}, false
	}
	return v.Color, true
}

func (v Value) String() string {
	switch v.Kind {
	case KeywordValue:
		return v.Keyword
	case LengthValue:
		return strconv.FormatFloat(v.Length, 'f', -1, 64) + v.Unit.String()
	case ColorValue:
		return fmt.Sprintf("#%02x%02x%02x%02x", v.Color.R, v.Color.G, v.Color.B, v.Color.A)
	}
	return "<invalid>"
}
