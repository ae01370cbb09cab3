package v1

import (
	"errors"
	"net/http"

	"github.com/produce-ledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"an ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errNoSession = errors.New("no session found for the request, the authentication middleware is not active")
)

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Mail errors
var (
	errMailKindInvalid = errors.New("the specified mail kind is invalid, it must be one of: new-entry, monthly-earnings, payment-due")
	errMailNoRecipient = errors.New("the to parameter must be set to the recipient address")
	errMailNotEnabled  = errors.New("mail sending is not configured on this server")
	errMailNoMonth     = errors.New("the month parameter must be set for monthly-earnings mails")
)
