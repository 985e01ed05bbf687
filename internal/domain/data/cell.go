package data

import (
	"math"
	"strconv"
)

// NullFloat is a numeric cell that may be missing
type NullFloat struct {
	Float64 float64
	Valid   bool // Valid is false when the cell had no value in the source
}

// Float returns a present numeric cell
func Float(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

// NullFloatValue returns a missing numeric cell
func NullFloatValue() NullFloat {
	return NullFloat{}
}

// Value returns the cell value, or NaN when missing
func (n NullFloat) Value() float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Float64
}

func (n NullFloat) String() string {
	if !n.Valid {
		return "NULL"
	}
	return strconv.FormatFloat(n.Float64, 'g', -1, 64)
}

// NullString is a text cell that may be missing
type NullString struct {
	String string
	Valid  bool
}

// Text returns a present text cell
func Text(s string) NullString {
	return NullString{String: s, Valid: true}
}
