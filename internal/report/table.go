package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/leengari/lcanalyzer/internal/domain/schema"
)

type tableDoc struct {
	Name    string      `json:"name" yaml:"name"`
	Path    string      `json:"path" yaml:"path"`
	Rows    int         `json:"rows" yaml:"rows"`
	Columns []columnDoc `json:"columns" yaml:"columns"`
}

type columnDoc struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Present int    `json:"present" yaml:"present"`
}

// WriteTable renders the layout of a loaded table: its columns, their types
// and how many cells of each are present
func WriteTable(w io.Writer, format Format, table *schema.Table) error {
	doc := tableDoc{Name: table.Name, Path: table.Path, Rows: table.NumRows()}
	for _, col := range table.Columns {
		present := 0
		for i := 0; i < col.Len(); i++ {
			if _, ok := col.Cell(i); ok {
				present++
			}
		}
		doc.Columns = append(doc.Columns, columnDoc{Name: col.Name, Type: string(col.Type), Present: present})
	}

	if format != FormatTable {
		return encode(w, format, doc)
	}

	fmt.Fprintf(w, "%s: %d rows\n", doc.Name, doc.Rows)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "column\ttype\tpresent")
	fmt.Fprintln(tw, "---\t---\t---")
	for _, c := range doc.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c.Name, c.Type, c.Present)
	}
	return tw.Flush()
}

type valueDoc struct {
	Column      string   `json:"column" yaml:"column"`
	Aggregation string   `json:"aggregation" yaml:"aggregation"`
	Value       *float64 `json:"value" yaml:"value"`
}

// WriteValue renders a single aggregate
func WriteValue(w io.Writer, format Format, column, aggregation string, value float64) error {
	if format != FormatTable {
		return encode(w, format, valueDoc{Column: column, Aggregation: aggregation, Value: number(value)})
	}
	_, err := fmt.Fprintf(w, "%s(%s) = %s\n", aggregation, column, formatFloat(value))
	return err
}
