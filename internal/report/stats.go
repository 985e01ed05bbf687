package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/leengari/lcanalyzer/internal/lightcurve"
)

type statsDoc struct {
	Column string         `json:"column" yaml:"column"`
	Bands  []bandStatsDoc `json:"bands" yaml:"bands"`
}

type bandStatsDoc struct {
	Band string   `json:"band" yaml:"band"`
	Max  *float64 `json:"max" yaml:"max"`
	Mean *float64 `json:"mean" yaml:"mean"`
	Min  *float64 `json:"min" yaml:"min"`
}

// WriteStats renders a stats record. The table format lays out one row per
// statistic (max, mean, min) and one column per band, in record order.
func WriteStats(w io.Writer, format Format, record *lightcurve.StatsRecord) error {
	if format != FormatTable {
		doc := statsDoc{Column: record.Column, Bands: make([]bandStatsDoc, 0, len(record.Bands))}
		for _, band := range record.Bands {
			s := record.Stats[band]
			doc.Bands = append(doc.Bands, bandStatsDoc{
				Band: band,
				Max:  number(s.Max),
				Mean: number(s.Mean),
				Min:  number(s.Min),
			})
		}
		return encode(w, format, doc)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s", record.Column)
	for _, band := range record.Bands {
		fmt.Fprintf(tw, "\t%s", band)
	}
	fmt.Fprintln(tw)

	rows := []struct {
		name string
		get  func(lightcurve.BandStats) float64
	}{
		{"max", func(s lightcurve.BandStats) float64 { return s.Max }},
		{"mean", func(s lightcurve.BandStats) float64 { return s.Mean }},
		{"min", func(s lightcurve.BandStats) float64 { return s.Min }},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s", row.name)
		for _, band := range record.Bands {
			fmt.Fprintf(tw, "\t%s", formatFloat(row.get(record.Stats[band])))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
