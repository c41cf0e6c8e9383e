package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"sentipulse/internal/errors"
)

// Table is a tabular input file loaded into memory: one header row followed
// by data rows. Column lookup is by header name, case-insensitive.
type Table struct {
	Source string
	Header []string
	Rows   [][]string

	index map[string]int
}

// ReadTable loads a tabular file into memory. CSV and XLSX inputs are
// supported, selected by file extension.
func ReadTable(path string) (*Table, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVRows(path)
	case ".xlsx":
		rows, err = readXLSXRows(path)
	default:
		return nil, errors.NewParsingError(
			fmt.Sprintf("%s: unsupported file format %q", path, filepath.Ext(path)), nil)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.NewParsingError(fmt.Sprintf("%s: file has no header row", path), nil)
	}

	return newTable(path, rows), nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open input file %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("%s: malformed CSV", path), err)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open input file %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError(fmt.Sprintf("%s: workbook has no sheets", path), nil)
	}

	// Data lives on the first sheet by convention.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("%s: failed to read sheet %q", path, sheets[0]), err)
	}
	return rows, nil
}

func newTable(source string, rows [][]string) *Table {
	header := rows[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[normalizeHeader(name)] = i
	}

	return &Table{
		Source: source,
		Header: header,
		Rows:   rows[1:],
		index:  index,
	}
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Require verifies that every named column exists, returning a parsing error
// naming the first missing one.
func (t *Table) Require(columns ...string) error {
	for _, name := range columns {
		if _, ok := t.index[normalizeHeader(name)]; !ok {
			return errors.NewParsingError(
				fmt.Sprintf("%s: missing required column %q", t.Source, name), nil).
				WithContext("input", t.Source).
				WithContext("field", name)
		}
	}
	return nil
}

// Get returns the cell at the given data row for the named column. Rows
// shorter than the header (trailing empty XLSX cells) yield "".
func (t *Table) Get(row int, column string) string {
	col, ok := t.index[normalizeHeader(column)]
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[row]
	if col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col])
}

// RowNumber converts a data row index to the 1-based file row number used in
// error messages (header occupies row 1).
func (t *Table) RowNumber(row int) int {
	return row + 2
}
