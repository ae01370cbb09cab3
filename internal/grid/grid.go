// Package grid implements the tabular weight-entry structure: columns of
// weight rows, per-column totals and the rate based earnings calculation.
package grid

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// RowsPerColumn is the number of weight rows a new column is created with.
const RowsPerColumn = 10

// kgPerUnit is the fixed weight unit the rate refers to.
var kgPerUnit = decimal.NewFromInt(20)

var (
	ErrLastColumn    = errors.New("the last remaining column cannot be deleted")
	ErrColumnIndex   = errors.New("the column index is out of range")
	ErrRowIndex      = errors.New("the row index is out of range")
	ErrMissingWeight = errors.New("please enter at least one weight")
	ErrMissingRate   = errors.New("please enter the rate per 20 kg")
)

// WeightRow is a single row of the weight grid.
type WeightRow struct {
	Weight decimal.Decimal `json:"weight"`
	Remark string          `json:"remark"`
}

// Column is a numbered column of weight rows with a precomputed total.
type Column struct {
	ColumnNumber int             `json:"columnNumber"`
	Rows         []WeightRow     `json:"rows"`
	ColumnTotal  decimal.Decimal `json:"columnTotal"`
}

type Columns []Column

// NewColumn returns an empty column with the given number.
func NewColumn(number int) Column {
	return Column{
		ColumnNumber: number,
		Rows:         make([]WeightRow, RowsPerColumn),
	}
}

// New returns the initial grid for a draft entry: a single empty column.
func New() Columns {
	return Columns{NewColumn(1)}
}

// ParseWeight parses raw input into a non-negative weight.
//
// Empty, invalid or negative input normalizes to 0 so that typing into the
// grid never errors. Validation only happens when an entry is saved.
func ParseWeight(raw string) decimal.Decimal {
	weight, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || weight.IsNegative() {
		return decimal.Zero
	}

	return weight
}

// Total returns the sum of all row weights, rounded to two decimal places.
func (c Column) Total() decimal.Decimal {
	total := decimal.Zero
	for _, row := range c.Rows {
		total = total.Add(row.Weight)
	}

	return total.Round(2)
}

// SetWeight parses raw input into the given cell and recomputes the total of
// that column only.
func (columns Columns) SetWeight(column, row int, raw string) error {
	if column < 0 || column >= len(columns) {
		return ErrColumnIndex
	}

	if row < 0 || row >= len(columns[column].Rows) {
		return ErrRowIndex
	}

	columns[column].Rows[row].Weight = ParseWeight(raw)
	columns[column].ColumnTotal = columns[column].Total()
	return nil
}

// SetRemark sets the remark of the given cell.
func (columns Columns) SetRemark(column, row int, remark string) error {
	if column < 0 || column >= len(columns) {
		return ErrColumnIndex
	}

	if row < 0 || row >= len(columns[column].Rows) {
		return ErrRowIndex
	}

	columns[column].Rows[row].Remark = remark
	return nil
}

// Recalculate recomputes every column total from its rows. It is used when a
// grid arrives from an untrusted source and the totals cannot be relied on.
func (columns Columns) Recalculate() {
	for i := range columns {
		columns[i].ColumnTotal = columns[i].Total()
	}
}

// GrandTotal returns the sum of all column totals, rounded to two decimal
// places. As decimal addition is exact, the result does not depend on the
// order of the columns.
func (columns Columns) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, column := range columns {
		total = total.Add(column.ColumnTotal)
	}

	return total.Round(2)
}

// Earnings converts a grand total weight into earnings.
//
// The formula is (grandTotal / 20) * ratePer20kg, rounded to two decimal
// places. A missing or non-positive rate yields 0 earnings. Existing records
// were calculated with exactly this formula, so it must not change.
func Earnings(grandTotal, ratePer20kg decimal.Decimal) decimal.Decimal {
	if !ratePer20kg.IsPositive() {
		return decimal.Zero
	}

	return grandTotal.Div(kgPerUnit).Mul(ratePer20kg).Round(2)
}

// AddColumn appends a new empty column. The new column is numbered one past
// the highest existing column number, never reusing a number that a deleted
// column held before.
func (columns Columns) AddColumn() Columns {
	max := 0
	for _, column := range columns {
		if column.ColumnNumber > max {
			max = column.ColumnNumber
		}
	}

	return append(columns, NewColumn(max+1))
}

// DeleteColumn removes the column at the given index. Deleting the last
// remaining column is rejected, an entry always has at least one column.
func (columns Columns) DeleteColumn(index int) (Columns, error) {
	if index < 0 || index >= len(columns) {
		return columns, ErrColumnIndex
	}

	if len(columns) == 1 {
		return columns, ErrLastColumn
	}

	out := make(Columns, 0, len(columns)-1)
	out = append(out, columns[:index]...)
	return append(out, columns[index+1:]...), nil
}

// Validate checks whether the grid can be saved with the given rate.
//
// Both failure modes are user-correctable and are reported back to the
// caller, they never abort the process.
func (columns Columns) Validate(ratePer20kg decimal.Decimal) error {
	if columns.GrandTotal().IsZero() {
		return ErrMissingWeight
	}

	if !ratePer20kg.IsPositive() {
		return ErrMissingRate
	}

	return nil
}
