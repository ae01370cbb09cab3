package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/produce-ledger/backend/internal/grid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Entry represents one weighing session at a dealer, a grid of weights
// together with the rate that was agreed on.
type Entry struct {
	DefaultModel
	OwnerID        uuid.UUID `gorm:"index"`
	Date           time.Time // Day of the weighing, time of day is not relevant
	DealerName     string
	Location       string
	VehicleNumber  string
	Columns        grid.Columns    `gorm:"serializer:json"`
	RatePer20Kg    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	GrandTotal     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Sum of all column totals, derived on save
	TotalEarned    decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // (GrandTotal / 20) * RatePer20Kg, derived on save
	PaymentDueDate *time.Time
	Payments       []Payment `gorm:"constraint:OnDelete:CASCADE"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (e *Entry) AfterFind(tx *gorm.DB) (err error) {
	err = e.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	// Enforce dates to be in UTC
	e.Date = e.Date.In(time.UTC)
	if e.PaymentDueDate != nil {
		due := e.PaymentDueDate.In(time.UTC)
		e.PaymentDueDate = &due
	}

	return
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - trims whitespace from string fields
//   - recalculates the column totals and the derived amounts
//   - rejects entries without any weight or without a positive rate
func (e *Entry) BeforeSave(_ *gorm.DB) (err error) {
	e.DealerName = strings.TrimSpace(e.DealerName)
	e.Location = strings.TrimSpace(e.Location)
	e.VehicleNumber = strings.TrimSpace(e.VehicleNumber)

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	if e.PaymentDueDate != nil {
		due := e.PaymentDueDate.In(time.UTC)
		e.PaymentDueDate = &due
	}

	if len(e.Columns) == 0 {
		return ErrEntryNoColumns
	}

	err = e.Columns.Validate(e.RatePer20Kg)
	if err != nil {
		switch err {
		case grid.ErrMissingWeight:
			return ErrEntryNoWeight
		case grid.ErrMissingRate:
			return ErrEntryNoRate
		default:
			return err
		}
	}

	// The stored amounts are always derived from the grid, clients cannot
	// overwrite them
	e.Columns.Recalculate()
	e.GrandTotal = e.Columns.GrandTotal()
	e.TotalEarned = grid.Earnings(e.GrandTotal, e.RatePer20Kg)

	return
}
