package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/produce-ledger/backend/internal/controllers/v1"
	"github.com/produce-ledger/backend/internal/types"
	"github.com/produce-ledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestOptionsMonths() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGetMonthsEmpty() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Empty(suite.T(), response.Data)
}

func (suite *TestSuiteStandard) TestGetMonths() {
	_ = suite.createTestEntry(v1.EntryEditable{Date: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)})
	_ = suite.createTestEntry(v1.EntryEditable{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)})
	_ = suite.createTestEntry(v1.EntryEditable{Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)})

	// Entries of other users do not appear in the summaries
	_ = suite.otherUserEntry()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.Len(suite.T(), response.Data, 2)

	// Most recent month first
	assert.True(suite.T(), response.Data[0].Month.Equal(types.NewMonth(2025, 7)))
	assert.Equal(suite.T(), 1, response.Data[0].Entries)

	assert.True(suite.T(), response.Data[1].Month.Equal(types.NewMonth(2025, 6)))
	assert.Equal(suite.T(), 2, response.Data[1].Entries)
	assert.Equal(suite.T(), "20.00", response.Data[1].Weight.StringFixed(2))
	assert.Equal(suite.T(), "600.00", response.Data[1].Earned.StringFixed(2))
}
