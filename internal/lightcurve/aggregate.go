package lightcurve

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/leengari/lcanalyzer/internal/domain/schema"
)

// BandStats holds the aggregates of one magnitude column
type BandStats struct {
	Max  float64 `json:"max" yaml:"max" msgpack:"max"`
	Mean float64 `json:"mean" yaml:"mean" msgpack:"mean"`
	Min  float64 `json:"min" yaml:"min" msgpack:"min"`
}

// MeanMag returns the mean of the present values of a column
func MeanMag(table *schema.Table, column string) (float64, error) {
	values, err := presentValues(table, column)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return math.NaN(), nil
	}
	return stat.Mean(values, nil), nil
}

// MaxMag returns the largest present value of a column
func MaxMag(table *schema.Table, column string) (float64, error) {
	values, err := presentValues(table, column)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return math.NaN(), nil
	}
	return floats.Max(values), nil
}

// MinMag returns the smallest present value of a column
func MinMag(table *schema.Table, column string) (float64, error) {
	values, err := presentValues(table, column)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return math.NaN(), nil
	}
	return floats.Min(values), nil
}

// Summarize computes max, mean and min of a column with a single lookup
func Summarize(table *schema.Table, column string) (BandStats, error) {
	values, err := presentValues(table, column)
	if err != nil {
		return BandStats{}, err
	}
	if len(values) == 0 {
		nan := math.NaN()
		return BandStats{Max: nan, Mean: nan, Min: nan}, nil
	}
	return BandStats{
		Max:  floats.Max(values),
		Mean: stat.Mean(values, nil),
		Min:  floats.Min(values),
	}, nil
}

func presentValues(table *schema.Table, column string) ([]float64, error) {
	col, err := table.NumericColumn(column)
	if err != nil {
		return nil, err
	}
	return col.ValidNumbers(), nil
}
