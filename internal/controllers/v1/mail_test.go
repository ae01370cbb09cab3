package v1_test

import (
	"net/http"
	"os"

	v1 "github.com/produce-ledger/backend/internal/controllers/v1"
	"github.com/produce-ledger/backend/internal/mailer"
	"github.com/produce-ledger/backend/test"
	"github.com/stretchr/testify/assert"
)

// withConfiguredMailer runs the test with a mailer that has an SMTP
// configuration. Delivery happens in the background and fails silently, the
// controller only needs the configuration to accept requests.
func (suite *TestSuiteStandard) withConfiguredMailer(f func()) {
	os.Setenv("MAIL_SMTP_HOST", "smtp.example.com")
	os.Setenv("MAIL_FROM", "ledger@example.com")
	defer os.Unsetenv("MAIL_SMTP_HOST")
	defer os.Unsetenv("MAIL_FROM")

	m, err := mailer.FromEnv()
	if err != nil {
		suite.Assert().FailNow("Mailer could not be configured", "Error: %s", err)
	}

	v1.SetMailer(m)
	defer v1.SetMailer(&mailer.Mailer{})

	f()
}

func (suite *TestSuiteStandard) TestOptionsMail() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/mail", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestSendMailNotEnabled() {
	entry := suite.createTestEntry(v1.EntryEditable{})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/mail", v1.MailSendRequest{
		Kind:    v1.MailNewEntry,
		EntryID: entry.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "mail sending is not configured on this server", response.Error)
}

func (suite *TestSuiteStandard) TestSendMailNewEntry() {
	entry := suite.createTestEntry(v1.EntryEditable{})

	suite.withConfiguredMailer(func() {
		recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/mail", v1.MailSendRequest{
			Kind:    v1.MailNewEntry,
			EntryID: entry.ID,
		})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusAccepted)
	})
}

func (suite *TestSuiteStandard) TestSendMailPaymentDue() {
	entry := suite.createTestEntry(v1.EntryEditable{})

	suite.withConfiguredMailer(func() {
		recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/mail", v1.MailSendRequest{
			Kind:    v1.MailPaymentDue,
			EntryID: entry.ID,
		})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusAccepted)
	})
}

func (suite *TestSuiteStandard) TestSendMailMonthlyEarnings() {
	_ = suite.createTestEntry(v1.EntryEditable{})

	suite.withConfiguredMailer(func() {
		recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/mail", v1.MailSendRequest{
			Kind:  v1.MailMonthlyEarnings,
			Month: "2025-06",
		})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusAccepted)
	})
}

func (suite *TestSuiteStandard) TestSendMailMonthlyEarningsNoMonth() {
	suite.withConfiguredMailer(func() {
		recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/mail", v1.MailSendRequest{
			Kind: v1.MailMonthlyEarnings,
		})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

		recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/mail", v1.MailSendRequest{
			Kind:  v1.MailMonthlyEarnings,
			Month: "NotAMonth",
		})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	})
}

func (suite *TestSuiteStandard) TestSendMailInvalidKind() {
	suite.withConfiguredMailer(func() {
		recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/mail", map[string]string{
			"kind": "carrier-pigeon",
		})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	})
}

func (suite *TestSuiteStandard) TestSendMailEntryOfOtherUser() {
	other := suite.otherUserEntry()

	suite.withConfiguredMailer(func() {
		recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/mail", v1.MailSendRequest{
			Kind:    v1.MailNewEntry,
			EntryID: other.ID,
		})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
	})
}
