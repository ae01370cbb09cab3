package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// PaymentMethod is the way a payment was received.
type PaymentMethod string

const (
	MethodGooglePay    PaymentMethod = "google_pay"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheque       PaymentMethod = "cheque"
)

// Payment records how the earnings of an entry were settled.
type Payment struct {
	DefaultModel
	EntryID          uuid.UUID
	Entry            Entry `json:"-"`
	Method           PaymentMethod
	TransactionID    string    // Reference for google_pay payments
	BankNumber       string    // Account number for bank_transfer payments
	ChequeNumber     string    // Cheque number for cheque payments
	ChequeIssuerName string    // Name of the bank that issued the cheque
	ReceivedDate     time.Time // Day the payment was received
	Note             string
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (p *Payment) AfterFind(tx *gorm.DB) (err error) {
	err = p.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	// Enforce dates to be in UTC
	p.ReceivedDate = p.ReceivedDate.In(time.UTC)
	return
}

// BeforeSave
//   - sets the timezone for the ReceivedDate to UTC
//   - trims whitespace from string fields
//   - verifies that the method specific reference fields are set
func (p *Payment) BeforeSave(_ *gorm.DB) (err error) {
	p.TransactionID = strings.TrimSpace(p.TransactionID)
	p.BankNumber = strings.TrimSpace(p.BankNumber)
	p.ChequeNumber = strings.TrimSpace(p.ChequeNumber)
	p.ChequeIssuerName = strings.TrimSpace(p.ChequeIssuerName)
	p.Note = strings.TrimSpace(p.Note)

	if p.ReceivedDate.IsZero() {
		p.ReceivedDate = time.Now().In(time.UTC)
	} else {
		p.ReceivedDate = p.ReceivedDate.In(time.UTC)
	}

	if !slices.Contains([]PaymentMethod{MethodGooglePay, MethodBankTransfer, MethodCheque}, p.Method) {
		return ErrPaymentMethodInvalid
	}

	switch p.Method {
	case MethodGooglePay:
		if p.TransactionID == "" {
			return ErrPaymentNoReference
		}
	case MethodBankTransfer:
		if p.BankNumber == "" {
			return ErrPaymentNoBankNumber
		}
	case MethodCheque:
		if p.ChequeNumber == "" || p.ChequeIssuerName == "" {
			return ErrPaymentNoCheque
		}
	}

	return
}
