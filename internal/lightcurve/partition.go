package lightcurve

import (
	"fmt"
	"strconv"

	"github.com/leengari/lcanalyzer/internal/domain/data"
	"github.com/leengari/lcanalyzer/internal/domain/lcerrors"
	"github.com/leengari/lcanalyzer/internal/domain/schema"
)

// PartitionByBand splits a table holding several bands into one table per
// band, keyed by the value of bandColumn. Bands appear in first-seen order.
// Rows with a missing band are dropped.
func PartitionByBand(table *schema.Table, bandColumn string) (*schema.BandMapping, error) {
	col, ok := table.Column(bandColumn)
	if !ok {
		return nil, &lcerrors.ColumnNotFoundError{
			TableName:  table.Name,
			ColumnName: bandColumn,
		}
	}

	var order []string
	seen := make(map[string]bool)
	for i := 0; i < col.Len(); i++ {
		val, ok := col.Cell(i)
		if !ok {
			continue
		}
		if band := bandKey(val); !seen[band] {
			seen[band] = true
			order = append(order, band)
		}
	}

	mapping := schema.NewBandMapping()
	for _, band := range order {
		part := table.Select(inBand(bandColumn, band))
		part.Name = fmt.Sprintf("%s[%s=%s]", table.Name, bandColumn, band)
		mapping.Set(band, part)
	}
	return mapping, nil
}

// inBand matches rows whose band cell is present and equal to band
func inBand(bandColumn, band string) func(data.Row) bool {
	return func(row data.Row) bool {
		val, ok := row.Get(bandColumn)
		return ok && bandKey(val) == band
	}
}

func bandKey(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
