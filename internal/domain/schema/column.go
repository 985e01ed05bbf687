package schema

import (
	"math"

	"github.com/leengari/lcanalyzer/internal/domain/data"
)

type ColumnType string

const (
	ColumnTypeInt   ColumnType = "INT"
	ColumnTypeFloat ColumnType = "FLOAT"
	ColumnTypeText  ColumnType = "TEXT"
)

// IsNumeric reports whether cells of this type are stored as floats
func (t ColumnType) IsNumeric() bool {
	return t == ColumnTypeInt || t == ColumnTypeFloat
}

// Column is a homogeneous, nullable sequence of cells.
// Numeric columns (INT, FLOAT) use Numbers, TEXT columns use Texts.
type Column struct {
	Name    string
	Type    ColumnType
	Numbers []data.NullFloat
	Texts   []data.NullString
}

// NewFloatColumn builds a FLOAT column. NaN values are stored as missing cells.
func NewFloatColumn(name string, values ...float64) *Column {
	cells := make([]data.NullFloat, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		cells[i] = data.Float(v)
	}
	return &Column{Name: name, Type: ColumnTypeFloat, Numbers: cells}
}

// NewNumericColumn builds a numeric column from explicit cells
func NewNumericColumn(name string, typ ColumnType, cells ...data.NullFloat) *Column {
	return &Column{Name: name, Type: typ, Numbers: cells}
}

// NewTextColumn builds a TEXT column with every cell present
func NewTextColumn(name string, values ...string) *Column {
	cells := make([]data.NullString, len(values))
	for i, v := range values {
		cells[i] = data.Text(v)
	}
	return &Column{Name: name, Type: ColumnTypeText, Texts: cells}
}

// Len returns the number of cells in the column
func (c *Column) Len() int {
	if c.Type.IsNumeric() {
		return len(c.Numbers)
	}
	return len(c.Texts)
}

// Cell returns the value at position i (float64 or string) and whether it is present
func (c *Column) Cell(i int) (interface{}, bool) {
	if c.Type.IsNumeric() {
		n := c.Numbers[i]
		return n.Float64, n.Valid
	}
	s := c.Texts[i]
	return s.String, s.Valid
}

// ValidNumbers returns the present values of a numeric column in row order.
// A present NaN is treated as missing.
func (c *Column) ValidNumbers() []float64 {
	out := make([]float64, 0, len(c.Numbers))
	for _, n := range c.Numbers {
		if n.Valid && !math.IsNaN(n.Float64) {
			out = append(out, n.Float64)
		}
	}
	return out
}

// pick returns a new column holding only the given positions
func (c *Column) pick(positions []int) *Column {
	out := &Column{Name: c.Name, Type: c.Type}
	if c.Type.IsNumeric() {
		out.Numbers = make([]data.NullFloat, len(positions))
		for i, p := range positions {
			out.Numbers[i] = c.Numbers[p]
		}
		return out
	}
	out.Texts = make([]data.NullString, len(positions))
	for i, p := range positions {
		out.Texts[i] = c.Texts[p]
	}
	return out
}
