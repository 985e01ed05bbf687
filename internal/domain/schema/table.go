package schema

import (
	"fmt"

	"github.com/leengari/lcanalyzer/internal/domain/data"
	"github.com/leengari/lcanalyzer/internal/domain/lcerrors"
)

// Table is a named, ordered set of typed columns of equal length.
// Tables are never mutated after construction; every operation that
// selects rows returns a new Table.
type Table struct {
	Name    string
	Path    string // source file (empty for tables built in memory)
	Columns []*Column
	index   map[string]int
	rows    int
}

// NewTable creates a table, checking that column names are unique and that
// every column has the same number of cells
func NewTable(name string, columns ...*Column) (*Table, error) {
	t := &Table{
		Name:    name,
		Columns: columns,
		index:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("table %s: column %d has no name", name, i)
		}
		if _, dup := t.index[col.Name]; dup {
			return nil, fmt.Errorf("table %s: duplicate column %s", name, col.Name)
		}
		if i == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return nil, fmt.Errorf("table %s: column %s has %d rows, expected %d",
				name, col.Name, col.Len(), t.rows)
		}
		t.index[col.Name] = i
	}

	return t, nil
}

// MustTable is like NewTable but panics on error. Intended for fixtures.
func MustTable(name string, columns ...*Column) *Table {
	t, err := NewTable(name, columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// NumRows returns the number of observations
func (t *Table) NumRows() int {
	return t.rows
}

// ColumnNames returns the column names in declaration order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.Columns[i], true
}

// NumericColumn looks up a column that must exist and be numeric
func (t *Table) NumericColumn(name string) (*Column, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, &lcerrors.ColumnNotFoundError{
			TableName:  t.Name,
			ColumnName: name,
		}
	}
	if !col.Type.IsNumeric() {
		return nil, &lcerrors.ColumnTypeError{
			TableName:  t.Name,
			ColumnName: name,
			Type:       string(col.Type),
		}
	}
	return col, nil
}

// Row returns the observation at position i as a name -> value mapping.
// Missing cells are left out of the mapping.
func (t *Table) Row(i int) data.Row {
	row := data.NewRow(make(map[string]interface{}, len(t.Columns)))
	for _, col := range t.Columns {
		if val, ok := col.Cell(i); ok {
			row.Data[col.Name] = val
		}
	}
	return row
}

// SelectRows returns a new table holding the given row positions in order
func (t *Table) SelectRows(positions []int) *Table {
	columns := make([]*Column, len(t.Columns))
	for i, col := range t.Columns {
		columns[i] = col.pick(positions)
	}
	out := &Table{
		Name:    t.Name,
		Path:    t.Path,
		Columns: columns,
		index:   make(map[string]int, len(t.index)),
		rows:    len(positions),
	}
	for k, v := range t.index {
		out.index[k] = v
	}
	return out
}

// Select returns a new table with the rows that match the given predicate
func (t *Table) Select(predicate func(data.Row) bool) *Table {
	var positions []int
	for i := 0; i < t.rows; i++ {
		if predicate(t.Row(i)) {
			positions = append(positions, i)
		}
	}
	return t.SelectRows(positions)
}
