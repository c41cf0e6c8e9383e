package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sentipulse/internal/errors"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadTable_CSV(t *testing.T) {
	path := writeTempCSV(t, "input.csv", "date,value,classification\n2023-05-01,20,Extreme Fear\n2023-05-02,75,Greed\n")

	table, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, path, table.Source)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "2023-05-01", table.Get(0, "date"))
	assert.Equal(t, "Greed", table.Get(1, "classification"))
}

func TestReadTable_HeaderLookupIsCaseInsensitive(t *testing.T) {
	path := writeTempCSV(t, "input.csv", "Date, Value ,CLASSIFICATION\n2023-05-01,20,Fear\n")

	table, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, "2023-05-01", table.Get(0, "date"))
	assert.Equal(t, "20", table.Get(0, "Value"))
	assert.Equal(t, "Fear", table.Get(0, "classification"))
}

func TestReadTable_UnsupportedFormat(t *testing.T) {
	path := writeTempCSV(t, "input.txt", "whatever")

	_, err := ReadTable(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestReadTable_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "empty.csv", "")

	_, err := ReadTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestTable_Require(t *testing.T) {
	path := writeTempCSV(t, "input.csv", "date,value\n2023-05-01,20\n")

	table, err := ReadTable(path)
	require.NoError(t, err)

	assert.NoError(t, table.Require("date", "value"))

	err = table.Require("date", "classification")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	assert.Contains(t, err.Error(), "classification")
}

func TestTable_ShortRowsYieldEmptyCells(t *testing.T) {
	// XLSX readers drop trailing empty cells; Get must tolerate short rows.
	table := newTable("test", [][]string{
		{"a", "b", "c"},
		{"1", "2"},
	})

	assert.Equal(t, "2", table.Get(0, "b"))
	assert.Equal(t, "", table.Get(0, "c"))
}

func TestTable_RowNumber(t *testing.T) {
	table := newTable("test", [][]string{{"a"}, {"1"}, {"2"}})

	// Header occupies file row 1, first data row is file row 2.
	assert.Equal(t, 2, table.RowNumber(0))
	assert.Equal(t, 3, table.RowNumber(1))
}
