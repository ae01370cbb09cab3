package export

import (
	"fmt"
	"io"

	"github.com/produce-ledger/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

const columnWidth = 15

// Write renders the entry as an xlsx workbook with a single sheet.
func Write(w io.Writer, entry models.Entry) error {
	file := excelize.NewFile()
	defer file.Close()

	err := file.SetSheetName("Sheet1", SheetName)
	if err != nil {
		return fmt.Errorf("failed to set sheet name: %w", err)
	}

	for index, row := range Flatten(entry) {
		cell, err := excelize.CoordinatesToCellName(1, index+1)
		if err != nil {
			return fmt.Errorf("failed to build cell reference: %w", err)
		}

		err = file.SetSheetRow(SheetName, cell, &row)
		if err != nil {
			return fmt.Errorf("failed to write row %d: %w", index+1, err)
		}
	}

	// Uniform width for all used columns, two per grid column
	endColumn, err := excelize.ColumnNumberToName(2 * len(entry.Columns))
	if err == nil {
		err = file.SetColWidth(SheetName, "A", endColumn, columnWidth)
		if err != nil {
			return fmt.Errorf("failed to set column widths: %w", err)
		}
	}

	return file.Write(w)
}
