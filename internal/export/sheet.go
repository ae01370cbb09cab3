package export

import (
	"fmt"

	"github.com/produce-ledger/backend/internal/grid"
	"github.com/produce-ledger/backend/internal/models"
)

const dateFormat = "02-01-2006"

// SheetName is the name of the worksheet in exported files.
const SheetName = "Entry"

// Flatten renders an entry into rows and cells for a spreadsheet.
//
// The layout is a header block with the entry metadata, followed by the
// weight grid with two cells per column (weight and remark), the column
// totals and a footer with the derived amounts.
func Flatten(entry models.Entry) [][]any {
	rows := make([][]any, 0, grid.RowsPerColumn+10)

	rows = append(rows, []any{"Date", entry.Date.Format(dateFormat)})
	if entry.DealerName != "" {
		rows = append(rows, []any{"Dealer Name", entry.DealerName})
	}
	if entry.Location != "" {
		rows = append(rows, []any{"Location", entry.Location})
	}
	if entry.VehicleNumber != "" {
		rows = append(rows, []any{"Vehicle Number", entry.VehicleNumber})
	}
	rows = append(rows, []any{"Rate per 20kg", entry.RatePer20Kg.StringFixed(2)})
	if entry.PaymentDueDate != nil {
		rows = append(rows, []any{"Payment Due Date", entry.PaymentDueDate.Format(dateFormat)})
	}
	rows = append(rows,
		[]any{"Total Weight", fmt.Sprintf("%s kg", entry.GrandTotal.StringFixed(2))},
		[]any{"Total Earned", entry.TotalEarned.StringFixed(2)},
		[]any{},
	)

	// Two header rows for the grid, one with the column names and one
	// with the cell labels
	header := make([]any, 0, 2*len(entry.Columns))
	subHeader := make([]any, 0, 2*len(entry.Columns))
	for _, column := range entry.Columns {
		header = append(header, fmt.Sprintf("Column %d", column.ColumnNumber), "")
		subHeader = append(subHeader, "Weight (kg)", "Remark")
	}
	rows = append(rows, header, subHeader)

	// Shorter columns are padded with empty cells so that every data row
	// has the same width
	depth := 0
	for _, column := range entry.Columns {
		if len(column.Rows) > depth {
			depth = len(column.Rows)
		}
	}

	for rowIndex := 0; rowIndex < depth; rowIndex++ {
		row := make([]any, 0, 2*len(entry.Columns))
		for _, column := range entry.Columns {
			if rowIndex < len(column.Rows) {
				row = append(row, column.Rows[rowIndex].Weight.InexactFloat64(), column.Rows[rowIndex].Remark)
			} else {
				row = append(row, "", "")
			}
		}
		rows = append(rows, row)
	}

	totals := make([]any, 0, 2*len(entry.Columns))
	for _, column := range entry.Columns {
		totals = append(totals, fmt.Sprintf("Total: %s", column.ColumnTotal.StringFixed(2)), "")
	}
	rows = append(rows, []any{}, totals)

	rows = append(rows,
		[]any{},
		[]any{"Grand Total (kg):", entry.GrandTotal.StringFixed(2)},
		[]any{"Total Earned:", entry.TotalEarned.StringFixed(2)},
	)

	return rows
}

// Filename returns the download file name for an entry.
func Filename(entry models.Entry) string {
	return fmt.Sprintf("ProduceLedger_%s.xlsx", entry.Date.Format(dateFormat))
}
