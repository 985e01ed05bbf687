package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/spf13/afero"

	"github.com/leengari/lcanalyzer/internal/domain/data"
	"github.com/leengari/lcanalyzer/internal/domain/lcerrors"
	"github.com/leengari/lcanalyzer/internal/domain/schema"
)

// missingMarkers are raw cell values read as missing
var missingMarkers = []string{"", "NA", "NaN", "nan", "null", "NULL"}

var utf8BOM = []byte("\xef\xbb\xbf")

// LoadDataset reads a delimited text file with a header row into a Table.
// Column types are inferred from the cells unless declared with WithColumnTypes.
func LoadDataset(fsys afero.Fs, path string, opts ...Option) (*schema.Table, error) {
	cfg := applyOptions(opts)

	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, &lcerrors.FileError{Path: path, Err: err}
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if mt := mimetype.Detect(raw); !isText(mt) {
		return nil, &lcerrors.ParseError{
			Path:   path,
			Reason: fmt.Sprintf("not a delimited text file (detected %s)", mt.String()),
		}
	}

	header, lines, err := scanRecords(path, raw, cfg.delimiter)
	if err != nil {
		return nil, err
	}
	if err := checkDeclaredColumns(path, header, cfg.columnTypes); err != nil {
		return nil, err
	}

	var columns []*schema.Column
	if len(lines) > 0 {
		columns, err = parseColumns(path, raw, header, lines, cfg)
		if err != nil {
			return nil, err
		}
	} else {
		columns = emptyColumns(header, cfg)
	}

	table, err := schema.NewTable(tableName(path), columns...)
	if err != nil {
		return nil, &lcerrors.ParseError{Path: path, Err: err}
	}
	table.Path = path

	cfg.logger.Debug("table loaded",
		slog.String("table", table.Name),
		slog.String("path", path),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", len(table.Columns)),
	)

	return table, nil
}

// scanRecords validates the header row and returns it together with the
// line each data record starts on. Blank lines are skipped and a quoted
// field may span lines, so record i is not always on line i+2.
func scanRecords(path string, raw []byte, delimiter rune) ([]string, []int, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = delimiter

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, &lcerrors.ParseError{Path: path, Reason: "empty file, no header row"}
	}
	if err != nil {
		return nil, nil, csvParseError(path, err)
	}

	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, nil, &lcerrors.ParseError{
				Path:   path,
				Line:   1,
				Reason: fmt.Sprintf("header field %d is empty", i+1),
			}
		}
		if seen[name] {
			return nil, nil, &lcerrors.ParseError{
				Path:   path,
				Line:   1,
				Column: name,
				Reason: "duplicate column name",
			}
		}
		seen[name] = true
		header[i] = name
	}

	r.ReuseRecord = true
	var lines []int
	for {
		_, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, csvParseError(path, err)
		}
		line, _ := r.FieldPos(0)
		lines = append(lines, line)
	}
	return header, lines, nil
}

// checkDeclaredColumns rejects declared types for columns the file does not have
func checkDeclaredColumns(path string, header []string, declared map[string]schema.ColumnType) error {
	if len(declared) == 0 {
		return nil
	}
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !present[name] {
			return &lcerrors.ParseError{
				Path:   path,
				Line:   1,
				Column: name,
				Reason: "type declared for a column missing from the header",
			}
		}
	}
	return nil
}

// parseColumns runs the full CSV parse and builds typed columns
func parseColumns(path string, raw []byte, header []string, lines []int, cfg *config) ([]*schema.Column, error) {
	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingMarkers),
		dataframe.WithDelimiter(cfg.delimiter),
	)
	if df.Err != nil {
		return nil, csvParseError(path, df.Err)
	}

	names := df.Names()
	if len(names) != len(header) || df.Nrow() != len(lines) {
		reason := fmt.Sprintf("expected %d columns and %d rows, parsed %d and %d",
			len(header), len(lines), len(names), df.Nrow())
		return nil, &lcerrors.ParseError{Path: path, Reason: reason}
	}

	columns := make([]*schema.Column, len(names))
	for i, name := range names {
		s := df.Col(name)
		declared, hasDeclared := cfg.columnTypes[header[i]]
		col, err := buildColumn(path, header[i], s.Records(), s.IsNaN(), lines, declared, hasDeclared)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}
	return columns, nil
}

func emptyColumns(header []string, cfg *config) []*schema.Column {
	columns := make([]*schema.Column, len(header))
	for i, name := range header {
		typ, ok := cfg.columnTypes[name]
		if !ok {
			typ = schema.ColumnTypeFloat
		}
		columns[i] = &schema.Column{Name: name, Type: typ}
	}
	return columns
}

// buildColumn converts raw cells into a typed column.
// Without a declared type: all integers -> INT, all floats -> FLOAT, else TEXT.
// A column with no present cells is FLOAT.
func buildColumn(path, name string, raw []string, nulls []bool, lines []int, declared schema.ColumnType, hasDeclared bool) (*schema.Column, error) {
	present := make([]bool, len(raw))
	for i, v := range raw {
		present[i] = !nulls[i] && strings.TrimSpace(v) != ""
	}

	typ := declared
	if !hasDeclared {
		typ = inferType(raw, present)
	}

	if !typ.IsNumeric() {
		cells := make([]data.NullString, len(raw))
		for i, v := range raw {
			if present[i] {
				cells[i] = data.Text(v)
			}
		}
		return &schema.Column{Name: name, Type: schema.ColumnTypeText, Texts: cells}, nil
	}

	cells := make([]data.NullFloat, len(raw))
	for i, v := range raw {
		if !present[i] {
			continue
		}
		v = strings.TrimSpace(v)
		f, err := strconv.ParseFloat(v, 64)
		if err == nil && typ == schema.ColumnTypeInt {
			_, err = strconv.ParseInt(v, 10, 64)
		}
		if err != nil {
			return nil, &lcerrors.ParseError{
				Path:   path,
				Line:   lines[i],
				Column: name,
				Value:  v,
				Reason: fmt.Sprintf("expected %s value", typ),
			}
		}
		if math.IsNaN(f) {
			continue
		}
		cells[i] = data.Float(f)
	}
	return schema.NewNumericColumn(name, typ, cells...), nil
}

func inferType(raw []string, present []bool) schema.ColumnType {
	allInt, seen := true, false
	for i, v := range raw {
		if !present[i] {
			continue
		}
		seen = true
		v = strings.TrimSpace(v)
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			continue
		}
		allInt = false
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return schema.ColumnTypeText
		}
	}
	if seen && allInt {
		return schema.ColumnTypeInt
	}
	return schema.ColumnTypeFloat
}

func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func csvParseError(path string, err error) error {
	pe := &lcerrors.ParseError{Path: path, Err: err}
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		pe.Line = csvErr.Line
		pe.Err = csvErr.Err
	}
	return pe
}

func tableName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
