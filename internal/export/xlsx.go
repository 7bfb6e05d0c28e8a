package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"formpilot/internal/domain"
)

const sheetName = "Case Record"

// BuildXLSX returns an XLSX workbook holding the record in the same wide
// layout as the CSV export.
func BuildXLSX(rec *domain.StoredRecord) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	// The default sheet excelize creates is dead weight once ours exists.
	_ = f.DeleteSheet("Sheet1")

	write := func(col, row int, v interface{}) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheetName, cell, v)
	}

	for i, h := range Headers() {
		write(i+1, 1, h)
	}
	for i, v := range recordToRow(rec) {
		write(i+1, 2, v)
	}

	_ = f.SetColWidth(sheetName, "A", "A", 38) // token
	_ = f.SetColWidth(sheetName, "B", "D", 20)
	lastCol, _ := excelize.ColumnNumberToName(len(Headers()))
	_ = f.SetColWidth(sheetName, "E", lastCol, 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
