package loader

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"

	"github.com/leengari/lcanalyzer/internal/domain/lcerrors"
	"github.com/leengari/lcanalyzer/internal/domain/schema"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// memFile writes content to an in-memory filesystem and returns it
func memFile(t *testing.T, path, content string) afero.Fs {
	t.Helper()
	mem := afero.NewMemMapFs()
	err := afero.WriteFile(mem, path, []byte(content), 0o644)
	assert.NilError(t, err)
	return mem
}

const lsstCSV = `objectId,mjd,band,psfMag,psfMagErr,ccdVisitId
1,59580.03,g,21.35,0.05,1001
1,59580.04,r,20.91,0.04,1002
1,59581.02,g,21.28,,1003
1,59581.03,r,NaN,0.06,1004
`

// =============================================================================
// LOADING AND TYPE INFERENCE
// =============================================================================

func TestLoadDataset(t *testing.T) {
	mem := memFile(t, "/data/lsst_object.csv", lsstCSV)

	table, err := LoadDataset(mem, "/data/lsst_object.csv")
	assert.NilError(t, err)

	assert.Equal(t, table.Name, "lsst_object")
	assert.Equal(t, table.Path, "/data/lsst_object.csv")
	assert.Equal(t, table.NumRows(), 4)
	assert.DeepEqual(t, table.ColumnNames(),
		[]string{"objectId", "mjd", "band", "psfMag", "psfMagErr", "ccdVisitId"})

	types := map[string]schema.ColumnType{}
	for _, col := range table.Columns {
		types[col.Name] = col.Type
	}
	assert.DeepEqual(t, types, map[string]schema.ColumnType{
		"objectId":   schema.ColumnTypeInt,
		"mjd":        schema.ColumnTypeFloat,
		"band":       schema.ColumnTypeText,
		"psfMag":     schema.ColumnTypeFloat,
		"psfMagErr":  schema.ColumnTypeFloat,
		"ccdVisitId": schema.ColumnTypeInt,
	})
}

func TestLoadDatasetMissingCells(t *testing.T) {
	mem := memFile(t, "lc.csv", lsstCSV)

	table, err := LoadDataset(mem, "lc.csv")
	assert.NilError(t, err)

	mag, _ := table.Column("psfMag")
	assert.Assert(t, !mag.Numbers[3].Valid)
	assert.DeepEqual(t, mag.ValidNumbers(), []float64{21.35, 20.91, 21.28})

	magErr, _ := table.Column("psfMagErr")
	assert.Assert(t, !magErr.Numbers[2].Valid)
}

func TestLoadDatasetHeaderOnly(t *testing.T) {
	mem := memFile(t, "empty.csv", "time,mag\n")

	table, err := LoadDataset(mem, "empty.csv")
	assert.NilError(t, err)
	assert.Equal(t, table.NumRows(), 0)
	assert.DeepEqual(t, table.ColumnNames(), []string{"time", "mag"})

	col, _ := table.Column("mag")
	assert.Equal(t, col.Type, schema.ColumnTypeFloat)
}

func TestLoadDatasetAllMissingColumnIsFloat(t *testing.T) {
	mem := memFile(t, "lc.csv", "mag,note\n,\nNA,\n")

	table, err := LoadDataset(mem, "lc.csv")
	assert.NilError(t, err)

	col, _ := table.Column("mag")
	assert.Equal(t, col.Type, schema.ColumnTypeFloat)
	assert.Equal(t, len(col.ValidNumbers()), 0)
}

func TestLoadDatasetInfinity(t *testing.T) {
	mem := memFile(t, "lc.csv", "mag\n12.5\ninf\n")

	table, err := LoadDataset(mem, "lc.csv")
	assert.NilError(t, err)

	col, _ := table.Column("mag")
	assert.Equal(t, col.Type, schema.ColumnTypeFloat)
	assert.Equal(t, len(col.ValidNumbers()), 2)
}

func TestLoadDatasetWithDelimiter(t *testing.T) {
	mem := memFile(t, "lc.tsv", "time\tmag\n1\t20.5\n2\t20.7\n")

	table, err := LoadDataset(mem, "lc.tsv", WithDelimiter('\t'))
	assert.NilError(t, err)
	assert.DeepEqual(t, table.ColumnNames(), []string{"time", "mag"})
	assert.Equal(t, table.NumRows(), 2)
}

func TestLoadDatasetDeclaredTypes(t *testing.T) {
	mem := memFile(t, "lc.csv", "band,mag\n1,20.5\n2,20.7\n")

	table, err := LoadDataset(mem, "lc.csv", WithColumnTypes(map[string]schema.ColumnType{
		"band": schema.ColumnTypeText,
	}))
	assert.NilError(t, err)

	band, _ := table.Column("band")
	assert.Equal(t, band.Type, schema.ColumnTypeText)
	assert.Equal(t, band.Texts[1].String, "2")
}

func TestLoadDatasetDeclaredTypeMismatch(t *testing.T) {
	mem := memFile(t, "lc.csv", "mag\n20.5\nbright\n")

	_, err := LoadDataset(mem, "lc.csv", WithColumnTypes(map[string]schema.ColumnType{
		"mag": schema.ColumnTypeFloat,
	}))

	var parseErr *lcerrors.ParseError
	assert.Assert(t, errors.As(err, &parseErr))
	assert.Equal(t, parseErr.Column, "mag")
	assert.Equal(t, parseErr.Line, 3)
	assert.Equal(t, parseErr.Value, "bright")
}

func TestLoadDatasetDeclaredTypeMismatchLineSkipsBlankAndQuotedLines(t *testing.T) {
	// The first record spans lines 2-3 and line 4 is blank
	mem := memFile(t, "lc.csv", "id,note,mag\n1,\"two\nlines\",10\n\n2,ok,x\n")

	_, err := LoadDataset(mem, "lc.csv", WithColumnTypes(map[string]schema.ColumnType{
		"mag": schema.ColumnTypeFloat,
	}))

	var parseErr *lcerrors.ParseError
	assert.Assert(t, errors.As(err, &parseErr))
	assert.Equal(t, parseErr.Line, 5)
	assert.Equal(t, parseErr.Value, "x")
}

func TestLoadDatasetMultilineFieldKeepsRowCount(t *testing.T) {
	mem := memFile(t, "lc.csv", "note,mag\n\"first\nnote\",10\n\nplain,11\n")

	table, err := LoadDataset(mem, "lc.csv")
	assert.NilError(t, err)
	assert.Equal(t, table.NumRows(), 2)

	note, _ := table.Column("note")
	assert.Equal(t, note.Texts[0].String, "first\nnote")
}

func TestLoadDatasetDeclaredTypeForUnknownColumn(t *testing.T) {
	for name, content := range map[string]string{
		"with rows":   "psfMag\n20.1\n",
		"header only": "psfMag\n",
	} {
		t.Run(name, func(t *testing.T) {
			mem := memFile(t, "lc.csv", content)

			table, err := LoadDataset(mem, "lc.csv", WithColumnTypes(map[string]schema.ColumnType{
				"psfmag": schema.ColumnTypeFloat,
			}))
			assert.Assert(t, table == nil)

			var parseErr *lcerrors.ParseError
			assert.Assert(t, errors.As(err, &parseErr))
			assert.Equal(t, parseErr.Column, "psfmag")
			assert.ErrorContains(t, err, "psfmag")
		})
	}
}

func TestLoadDatasetDeclaredIntRejectsFraction(t *testing.T) {
	mem := memFile(t, "lc.csv", "visit\n1\n1.5\n")

	_, err := LoadDataset(mem, "lc.csv", WithColumnTypes(map[string]schema.ColumnType{
		"visit": schema.ColumnTypeInt,
	}))
	var parseErr *lcerrors.ParseError
	assert.Assert(t, errors.As(err, &parseErr))
}

func TestLoadDatasetFromDisk(t *testing.T) {
	dir := fs.NewDir(t, "lcanalyzer",
		fs.WithFile("kepler.csv", "time,flux,mag\n0.5,1.01,12.1\n1.0,0.99,12.3\n"))

	table, err := LoadDataset(afero.NewOsFs(), dir.Join("kepler.csv"))
	assert.NilError(t, err)
	assert.Equal(t, table.Name, "kepler")
	assert.Equal(t, table.NumRows(), 2)
}

// =============================================================================
// FAILURES
// =============================================================================

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := LoadDataset(afero.NewMemMapFs(), "nope.csv")

	var fileErr *lcerrors.FileError
	assert.Assert(t, errors.As(err, &fileErr))
	assert.Equal(t, fileErr.Path, "nope.csv")
	assert.Assert(t, errors.Is(err, os.ErrNotExist))
	assert.ErrorContains(t, err, "nope.csv")
}

func TestLoadDatasetMalformed(t *testing.T) {
	cases := map[string]string{
		"empty file":         "",
		"ragged row":         "time,mag\n1,20.5\n2,20.7,extra\n",
		"duplicate header":   "mag,mag\n1,2\n",
		"empty header field": "time,,mag\n1,2,3\n",
		"binary content":     "\x00\x01\x02\x03\xff\xfe",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			mem := memFile(t, "bad.csv", content)

			table, err := LoadDataset(mem, "bad.csv")
			assert.Assert(t, table == nil)

			var parseErr *lcerrors.ParseError
			assert.Assert(t, errors.As(err, &parseErr), "got %v", err)
			assert.ErrorContains(t, err, "bad.csv")
		})
	}
}

func TestLoadDatasetRaggedRowReportsLine(t *testing.T) {
	mem := memFile(t, "bad.csv", "time,mag\n1,20.5\n2,20.7\n3\n")

	_, err := LoadDataset(mem, "bad.csv")
	var parseErr *lcerrors.ParseError
	assert.Assert(t, errors.As(err, &parseErr))
	assert.Equal(t, parseErr.Line, 4)
}
