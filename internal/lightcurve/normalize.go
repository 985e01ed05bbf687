package lightcurve

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/leengari/lcanalyzer/internal/domain/lcerrors"
	"github.com/leengari/lcanalyzer/internal/domain/schema"
)

// MagnitudeLimit is the largest absolute magnitude accepted by NormalizeLC.
// Larger values are upstream sentinels, not measurements.
const MagnitudeLimit = 90.0

// NormalizeLC rescales a magnitude column to [0,1] using the column's own
// minimum and range. The result is aligned row for row with the table.
//
// Any non-finite result is replaced with 0. This covers a constant column
// (zero range) as well as missing cells, without telling the two apart.
func NormalizeLC(table *schema.Table, column string) ([]float64, error) {
	col, err := table.NumericColumn(column)
	if err != nil {
		return nil, err
	}

	for i, n := range col.Numbers {
		if n.Valid && math.Abs(n.Float64) > MagnitudeLimit {
			return nil, &lcerrors.ValueOutOfRangeError{
				Column:   column,
				RowIndex: i,
				Value:    n.Float64,
				Limit:    MagnitudeLimit,
			}
		}
	}

	minValue, err := MinMag(table, column)
	if err != nil {
		return nil, err
	}

	rangeValue := math.NaN()
	if shifted := col.ValidNumbers(); len(shifted) > 0 {
		floats.AddConst(-minValue, shifted)
		rangeValue = floats.Max(shifted)
	}

	out := make([]float64, len(col.Numbers))
	for i, n := range col.Numbers {
		v := (n.Value() - minValue) / rangeValue
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		out[i] = v
	}
	return out, nil
}
