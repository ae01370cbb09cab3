package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/produce-ledger/backend/internal/controllers/v1"
	"github.com/produce-ledger/backend/internal/models"
	"github.com/produce-ledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestOptionsPayments() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/payments", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestOptionsPaymentDetail() {
	entry := suite.createTestEntry(v1.EntryEditable{})
	payment := suite.createTestPayment(v1.PaymentEditable{EntryID: entry.ID})

	recorder := test.Request(suite.T(), http.MethodOptions, payment.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH, DELETE", recorder.Header().Get("allow"))

	recorder = test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/payments/5b95e1a9-522d-4a36-9074-32f7c15846a9", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetPayment() {
	entry := suite.createTestEntry(v1.EntryEditable{})
	payment := suite.createTestPayment(v1.PaymentEditable{
		EntryID:       entry.ID,
		Method:        models.MethodGooglePay,
		TransactionID: "GPAY-8411",
	})

	recorder := test.Request(suite.T(), http.MethodGet, payment.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PaymentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), payment.ID, response.Data.ID)
	assert.Equal(suite.T(), models.MethodGooglePay, response.Data.Method)
	assert.Equal(suite.T(), "GPAY-8411", response.Data.TransactionID)
	assert.Equal(suite.T(), entryURL(entry.ID), response.Data.Links.Entry)
}

func (suite *TestSuiteStandard) TestGetPaymentNonexistent() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/payments/5b95e1a9-522d-4a36-9074-32f7c15846a9", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	var response v1.PaymentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "there is no payment matching your query", *response.Error)
}

// Payments on entries of other users look exactly like payments that do not
// exist.
func (suite *TestSuiteStandard) TestPaymentsOtherUserInvisible() {
	other := suite.otherUserEntry()

	payment := models.Payment{
		EntryID:    other.ID,
		Method:     models.MethodBankTransfer,
		BankNumber: "1234567890",
	}
	require.Nil(suite.T(), models.DB.Create(&payment).Error)

	recorder := test.Request(suite.T(), http.MethodGet, paymentURL(payment.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.T(), http.MethodDelete, paymentURL(payment.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/payments", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PaymentListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 0)
}

func (suite *TestSuiteStandard) TestGetPaymentsFilter() {
	first := suite.createTestEntry(v1.EntryEditable{})
	second := suite.createTestEntry(v1.EntryEditable{})

	_ = suite.createTestPayment(v1.PaymentEditable{
		EntryID:      first.ID,
		ReceivedDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})

	_ = suite.createTestPayment(v1.PaymentEditable{
		EntryID:       first.ID,
		Method:        models.MethodGooglePay,
		TransactionID: "GPAY-8411",
		ReceivedDate:  time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
	})

	_ = suite.createTestPayment(v1.PaymentEditable{
		EntryID:      second.ID,
		ReceivedDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Entry", fmt.Sprintf("entry=%s", first.ID), 2},
		{"Method", "method=google_pay", 1},
		{"From date", "fromDate=2025-07-15T00:00:00Z", 2},
		{"Until date", "untilDate=2025-07-15T00:00:00Z", 2},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/payments?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.PaymentListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len, "Wrong number of payments for query %s", tt.query)
		})
	}
}

func (suite *TestSuiteStandard) TestCreatePayment() {
	entry := suite.createTestEntry(v1.EntryEditable{})

	payment := suite.createTestPayment(v1.PaymentEditable{
		EntryID:          entry.ID,
		Method:           models.MethodCheque,
		ChequeNumber:     "000451",
		ChequeIssuerName: "Canara Bank",
	})

	assert.Equal(suite.T(), entry.ID, payment.EntryID)
	assert.False(suite.T(), payment.ReceivedDate.IsZero(), "ReceivedDate was not defaulted")
}

func (suite *TestSuiteStandard) TestCreatePaymentNoEntry() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/payments", []v1.PaymentEditable{{
		Method:     models.MethodBankTransfer,
		BankNumber: "1234567890",
	}})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	var response v1.PaymentCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Equal(suite.T(), "there is no entry matching your query", *response.Data[0].Error)
}

// Payments cannot be recorded on entries of other users.
func (suite *TestSuiteStandard) TestCreatePaymentOtherUserEntry() {
	other := suite.otherUserEntry()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/payments", []v1.PaymentEditable{{
		EntryID:    other.ID,
		Method:     models.MethodBankTransfer,
		BankNumber: "1234567890",
	}})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreatePaymentInvalid() {
	entry := suite.createTestEntry(v1.EntryEditable{})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/payments", []v1.PaymentEditable{{
		EntryID: entry.ID,
		Method:  models.MethodGooglePay,
	}})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.PaymentCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Equal(suite.T(), models.ErrPaymentNoReference.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestUpdatePayment() {
	entry := suite.createTestEntry(v1.EntryEditable{})
	payment := suite.createTestPayment(v1.PaymentEditable{EntryID: entry.ID})

	recorder := test.Request(suite.T(), http.MethodPatch, payment.Links.Self, map[string]any{
		"note": "Settled in two parts",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PaymentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "Settled in two parts", response.Data.Note)
}

// Switching the method requires the reference fields of the new method.
func (suite *TestSuiteStandard) TestUpdatePaymentMethodSwitch() {
	entry := suite.createTestEntry(v1.EntryEditable{})
	payment := suite.createTestPayment(v1.PaymentEditable{EntryID: entry.ID})

	recorder := test.Request(suite.T(), http.MethodPatch, payment.Links.Self, map[string]any{
		"method": models.MethodGooglePay,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodPatch, payment.Links.Self, map[string]any{
		"method":        models.MethodGooglePay,
		"transactionId": "GPAY-8411",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

// A payment can be moved between entries of the same user, but not to an
// entry of someone else.
func (suite *TestSuiteStandard) TestUpdatePaymentMoveEntry() {
	entry := suite.createTestEntry(v1.EntryEditable{})
	target := suite.createTestEntry(v1.EntryEditable{})
	payment := suite.createTestPayment(v1.PaymentEditable{EntryID: entry.ID})

	recorder := test.Request(suite.T(), http.MethodPatch, payment.Links.Self, map[string]any{
		"entryId": target.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	other := suite.otherUserEntry()
	recorder = test.Request(suite.T(), http.MethodPatch, payment.Links.Self, map[string]any{
		"entryId": other.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdatePaymentInvalidBody() {
	entry := suite.createTestEntry(v1.EntryEditable{})
	payment := suite.createTestPayment(v1.PaymentEditable{EntryID: entry.ID})

	recorder := test.Request(suite.T(), http.MethodPatch, payment.Links.Self, `{ Invalid request": Body }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDeletePayment() {
	entry := suite.createTestEntry(v1.EntryEditable{})
	payment := suite.createTestPayment(v1.PaymentEditable{EntryID: entry.ID})

	recorder := test.Request(suite.T(), http.MethodDelete, payment.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, payment.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
