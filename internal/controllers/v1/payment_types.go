package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/produce-ledger/backend/internal/models"
	pl_uuid "github.com/produce-ledger/backend/internal/uuid"
)

type PaymentEditable struct {
	EntryID          uuid.UUID            `json:"entryId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // ID of the entry the payment settles
	Method           models.PaymentMethod `json:"method" example:"bank_transfer"`                         // How the payment was received
	TransactionID    string               `json:"transactionId" example:"GPAY-8411" default:""`           // Reference for google_pay payments
	BankNumber       string               `json:"bankNumber" example:"1234567890" default:""`             // Account number for bank_transfer payments
	ChequeNumber     string               `json:"chequeNumber" example:"000451" default:""`               // Cheque number for cheque payments
	ChequeIssuerName string               `json:"chequeIssuerName" example:"Canara Bank" default:""`      // Name of the bank that issued the cheque
	ReceivedDate     time.Time            `json:"receivedDate" example:"2025-07-01T00:00:00Z"`            // Day the payment was received. Defaults to the current day.
	Note             string               `json:"note" example:"Settled in two parts" default:""`         // A note
}

// model returns the database resource for the API representation of the editable fields
func (editable PaymentEditable) model() models.Payment {
	return models.Payment{
		EntryID:          editable.EntryID,
		Method:           editable.Method,
		TransactionID:    editable.TransactionID,
		BankNumber:       editable.BankNumber,
		ChequeNumber:     editable.ChequeNumber,
		ChequeIssuerName: editable.ChequeIssuerName,
		ReceivedDate:     editable.ReceivedDate,
		Note:             editable.Note,
	}
}

type PaymentLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/payments/5cc25041-de50-4d3e-b73c-d5f8c1941d9e"`   // The payment itself
	Entry string `json:"entry" example:"https://example.com/api/v1/entries/d430d7c3-d14c-4712-9336-ee56965a6673"` // The entry the payment settles
}

// Payment is the representation of a Payment in API v1.
type Payment struct {
	models.DefaultModel
	PaymentEditable
	Links PaymentLinks `json:"links"`
}

// newPayment returns the API v1 representation of the resource
func newPayment(c *gin.Context, model models.Payment) Payment {
	url := c.GetString(string(models.DBContextURL))

	return Payment{
		DefaultModel: model.DefaultModel,
		PaymentEditable: PaymentEditable{
			EntryID:          model.EntryID,
			Method:           model.Method,
			TransactionID:    model.TransactionID,
			BankNumber:       model.BankNumber,
			ChequeNumber:     model.ChequeNumber,
			ChequeIssuerName: model.ChequeIssuerName,
			ReceivedDate:     model.ReceivedDate,
			Note:             model.Note,
		},
		Links: PaymentLinks{
			Self:  fmt.Sprintf("%s/v1/payments/%s", url, model.ID),
			Entry: fmt.Sprintf("%s/v1/entries/%s", url, model.EntryID),
		},
	}
}

type PaymentListResponse struct {
	Data       []Payment   `json:"data"`                                                          // List of payments
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PaymentCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []PaymentResponse `json:"data"`                                                          // List of created payments
}

func (r *PaymentCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, PaymentResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PaymentResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this payment
	Data  *Payment `json:"data"`                                                          // The payment data, if creation was successful
}

type PaymentQueryFilter struct {
	EntryID   pl_uuid.UUID         `form:"entry" filterField:"false"`     // ID of the entry the payment settles
	Method    models.PaymentMethod `form:"method"`                        // How the payment was received
	FromDate  time.Time            `form:"fromDate" filterField:"false"`  // Payments received at and after this day. Time is ignored.
	UntilDate time.Time            `form:"untilDate" filterField:"false"` // Payments received before and at this day. Time is ignored.
	Offset    uint                 `form:"offset" filterField:"false"`    // The offset of the first payment returned. Defaults to 0.
	Limit     int                  `form:"limit" filterField:"false"`     // Maximum number of payments to return. Defaults to 50.
}

func (f PaymentQueryFilter) model() (models.Payment, error) {
	return models.Payment{
		Method: f.Method,
	}, nil
}
