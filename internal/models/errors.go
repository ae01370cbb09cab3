package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrEntryNoColumns       = errors.New("an entry must have at least one column")
	ErrEntryNoWeight        = errors.New("the entry does not contain any weight, please enter at least one weight")
	ErrEntryNoRate          = errors.New("the rate per 20 kg must be set and positive")
	ErrPaymentMethodInvalid = errors.New("the payment method must be one of: google_pay, bank_transfer, cheque")
	ErrPaymentNoReference   = errors.New("a digital wallet payment needs a transaction ID")
	ErrPaymentNoBankNumber  = errors.New("a bank transfer payment needs an account number")
	ErrPaymentNoCheque      = errors.New("a cheque payment needs the cheque number and the issuer name")
)
