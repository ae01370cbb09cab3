package v1_test

import (
	"net/http"

	v1 "github.com/produce-ledger/backend/internal/controllers/v1"
	"github.com/produce-ledger/backend/internal/models"
	"github.com/produce-ledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCleanup() {
	entry := suite.createTestEntry(v1.EntryEditable{})
	_ = suite.createTestPayment(v1.PaymentEditable{EntryID: entry.ID})

	// A soft-deleted entry with a payment is removed as well
	deleted := suite.createTestEntry(v1.EntryEditable{})
	_ = suite.createTestPayment(v1.PaymentEditable{EntryID: deleted.ID})
	recorder := test.Request(suite.T(), http.MethodDelete, deleted.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Resources of other users survive the cleanup
	other := suite.otherUserEntry()

	recorder = test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	var entryCount, paymentCount int64
	require.Nil(suite.T(), models.DB.Unscoped().Model(&models.Entry{}).Count(&entryCount).Error)
	require.Nil(suite.T(), models.DB.Unscoped().Model(&models.Payment{}).Count(&paymentCount).Error)

	assert.Equal(suite.T(), int64(1), entryCount, "Only the entry of the other user should be left")
	assert.Equal(suite.T(), int64(0), paymentCount)

	var remaining models.Entry
	require.Nil(suite.T(), models.DB.First(&remaining, other.ID).Error)
}

func (suite *TestSuiteStandard) TestCleanupNoConfirmation() {
	_ = suite.createTestEntry(v1.EntryEditable{})

	tests := []string{
		"http://example.com/v1",
		"http://example.com/v1?confirm=yes",
	}

	for _, url := range tests {
		recorder := test.Request(suite.T(), http.MethodDelete, url, "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Entry{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count, "No entries may be deleted without confirmation")
}
