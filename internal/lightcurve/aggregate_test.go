package lightcurve

import (
	"errors"
	"math"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/lcanalyzer/internal/domain/data"
	"github.com/leengari/lcanalyzer/internal/domain/lcerrors"
	"github.com/leengari/lcanalyzer/internal/domain/schema"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func magTable(t *testing.T, name string, values ...float64) *schema.Table {
	t.Helper()
	table, err := schema.NewTable(name, schema.NewFloatColumn("mag", values...))
	assert.NilError(t, err)
	return table
}

// =============================================================================
// COLUMN AGGREGATOR
// =============================================================================

func TestAggregates(t *testing.T) {
	table := magTable(t, "lc", 1, 2, 3)

	mean, err := MeanMag(table, "mag")
	assert.NilError(t, err)
	assert.Equal(t, mean, 2.0)

	max, err := MaxMag(table, "mag")
	assert.NilError(t, err)
	assert.Equal(t, max, 3.0)

	min, err := MinMag(table, "mag")
	assert.NilError(t, err)
	assert.Equal(t, min, 1.0)
}

func TestAggregatesSkipMissing(t *testing.T) {
	col := schema.NewNumericColumn("mag", schema.ColumnTypeFloat,
		data.Float(4), data.NullFloatValue(), data.Float(8), data.NullFloatValue())
	table := schema.MustTable("lc", col)

	stats, err := Summarize(table, "mag")
	assert.NilError(t, err)
	assert.Equal(t, stats, BandStats{Max: 8, Mean: 6, Min: 4})
}

func TestAggregatesOrdering(t *testing.T) {
	cases := [][]float64{
		{1},
		{3, -2, 7.5, 0},
		{21.3, 21.1, 20.9, 21.7, 22.0},
		{-5, -5, -5},
	}
	for _, values := range cases {
		table := magTable(t, "lc", values...)
		min, err := MinMag(table, "mag")
		assert.NilError(t, err)
		mean, err := MeanMag(table, "mag")
		assert.NilError(t, err)
		max, err := MaxMag(table, "mag")
		assert.NilError(t, err)
		assert.Assert(t, min <= mean && mean <= max, "values %v: min=%v mean=%v max=%v", values, min, mean, max)
	}
}

// An empty reduction is NaN, not an error.
func TestAggregatesEmptyTable(t *testing.T) {
	table := magTable(t, "empty")

	for name, fn := range map[string]func(*schema.Table, string) (float64, error){
		"mean": MeanMag,
		"max":  MaxMag,
		"min":  MinMag,
	} {
		v, err := fn(table, "mag")
		assert.NilError(t, err, name)
		assert.Assert(t, math.IsNaN(v), "%s of empty table = %v", name, v)
	}

	allMissing := magTable(t, "missing", math.NaN(), math.NaN())
	stats, err := Summarize(allMissing, "mag")
	assert.NilError(t, err)
	assert.Assert(t, math.IsNaN(stats.Max) && math.IsNaN(stats.Mean) && math.IsNaN(stats.Min))
}

func TestAggregatesColumnNotFound(t *testing.T) {
	table := magTable(t, "lc", 1, 2, 3)

	_, err := MeanMag(table, "psfMag")
	var notFound *lcerrors.ColumnNotFoundError
	assert.Assert(t, errors.As(err, &notFound))
	assert.Equal(t, notFound.ColumnName, "psfMag")
	assert.ErrorContains(t, err, "psfMag")
}

func TestAggregatesTextColumn(t *testing.T) {
	table := schema.MustTable("lc", schema.NewTextColumn("band", "g", "r"))

	_, err := MaxMag(table, "band")
	var typeErr *lcerrors.ColumnTypeError
	assert.Assert(t, errors.As(err, &typeErr))
	assert.Equal(t, typeErr.Type, "TEXT")
}

func TestAggregatesIntColumn(t *testing.T) {
	col := schema.NewNumericColumn("count", schema.ColumnTypeInt, data.Float(2), data.Float(4))
	table := schema.MustTable("lc", col)

	mean, err := MeanMag(table, "count")
	assert.NilError(t, err)
	assert.Equal(t, mean, 3.0)
}
