package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads an .xlsx workbook. An empty sheet selects the first one.
type ExcelReader struct {
	path  string
	sheet string
}

func NewExcelReader(path, sheet string) *ExcelReader {
	return &ExcelReader{path: path, sheet: sheet}
}

func (r *ExcelReader) Location() string {
	if r.sheet == "" {
		return r.path
	}
	return r.path + "#" + r.sheet
}

func (r *ExcelReader) ReadRows(ctx context.Context) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile(%s) > %w", r.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", r.path)
		}
		sheet = sheets[0]
	}

	table, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("f.GetRows(%s) > %w", sheet, err)
	}
	return rowsFromTable(table)
}
