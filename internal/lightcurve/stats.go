package lightcurve

import (
	"github.com/sourcegraph/conc/iter"

	"github.com/leengari/lcanalyzer/internal/domain/lcerrors"
	"github.com/leengari/lcanalyzer/internal/domain/schema"
)

// StatsRecord holds per-band aggregates. Bands keeps the requested order.
type StatsRecord struct {
	Column string
	Bands  []string
	Stats  map[string]BandStats
}

// Get returns the aggregates of one band
func (r *StatsRecord) Get(band string) (BandStats, bool) {
	s, ok := r.Stats[band]
	return s, ok
}

// CalcStats computes max, mean and min of column for every requested band.
// A band named more than once is reported once, at its first position.
//
// All bands and their columns are checked before any aggregate is computed,
// in the order given, so the first failing band is the one reported and no
// partial record is ever returned.
func CalcStats(bands *schema.BandMapping, bandNames []string, column string, opts ...Option) (*StatsRecord, error) {
	cfg := applyOptions(opts)
	bandNames = uniqueBands(bandNames)

	tables := make([]*schema.Table, len(bandNames))
	for i, band := range bandNames {
		t, ok := bands.Get(band)
		if !ok {
			return nil, &lcerrors.BandNotFoundError{Band: band}
		}
		if _, err := t.NumericColumn(column); err != nil {
			return nil, err
		}
		tables[i] = t
	}

	summarize := func(t **schema.Table) (BandStats, error) {
		return Summarize(*t, column)
	}

	var results []BandStats
	var err error
	if cfg.concurrency > 1 {
		mapper := iter.Mapper[*schema.Table, BandStats]{MaxGoroutines: cfg.concurrency}
		results, err = mapper.MapErr(tables, summarize)
	} else {
		results = make([]BandStats, len(tables))
		for i := range tables {
			if results[i], err = summarize(&tables[i]); err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}

	record := &StatsRecord{
		Column: column,
		Bands:  append([]string(nil), bandNames...),
		Stats:  make(map[string]BandStats, len(bandNames)),
	}
	for i, band := range bandNames {
		record.Stats[band] = results[i]
	}
	return record, nil
}

// uniqueBands drops repeated band names, keeping first occurrences in order
func uniqueBands(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
