package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// CSVReader reads a comma separated file with a header line.
type CSVReader struct {
	path string
}

func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

func (r *CSVReader) Location() string {
	return r.path
}

func (r *CSVReader) ReadRows(ctx context.Context) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", r.path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	table, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reader.ReadAll() > %w", err)
	}
	// Spreadsheet exports often start with a byte order mark.
	if len(table) > 0 && len(table[0]) > 0 {
		table[0][0] = strings.TrimPrefix(table[0][0], utf8BOM)
	}
	return rowsFromTable(table)
}
