package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/leengari/lcanalyzer/internal/engine"
)

type normalizedDoc struct {
	Column string          `json:"column" yaml:"column"`
	Rows   []normalizedRow `json:"rows" yaml:"rows"`
}

type normalizedRow struct {
	Row        int      `json:"row" yaml:"row"`
	Magnitude  *float64 `json:"magnitude" yaml:"magnitude"`
	Normalized float64  `json:"normalized" yaml:"normalized"`
}

// WriteNormalized renders a normalized series next to the source magnitudes
func WriteNormalized(w io.Writer, format Format, res *engine.NormalizeResult) error {
	if format != FormatTable {
		doc := normalizedDoc{Column: res.Column, Rows: make([]normalizedRow, len(res.Normalized))}
		for i, v := range res.Normalized {
			doc.Rows[i] = normalizedRow{Row: i, Magnitude: number(res.Magnitudes[i].Value()), Normalized: v}
		}
		return encode(w, format, doc)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "row\t%s\tnormalized\n", res.Column)
	fmt.Fprintln(tw, "---\t---\t---")
	for i, v := range res.Normalized {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, res.Magnitudes[i], formatFloat(v))
	}
	return tw.Flush()
}
