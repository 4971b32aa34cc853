// Package csvtable loads a CSV report into a header plus data rows.
package csvtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoColumns is returned for input without a header record.
var ErrNoColumns = errors.New("no columns to parse from file")

// Table is one CSV file held in memory. Rows excludes the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Load reads the CSV file at path.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads CSV records from r. The first record is the header. Records
// shorter than the header are padded with empty values; longer ones are
// rejected.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	table := &Table{Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// Columns returns the number of named columns.
func (t *Table) Columns() int {
	return len(t.Header)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
