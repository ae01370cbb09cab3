package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/produce-ledger/backend/internal/auth"
	pl_uuid "github.com/produce-ledger/backend/internal/uuid"
)

type URIID struct {
	ID pl_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// session returns the session of the request. Requests without a session
// cannot happen on registered routes, the authentication middleware runs
// before all of them.
func session(c *gin.Context) (auth.Session, bool) {
	s, ok := auth.SessionFromContext(c)
	if !ok {
		e := errNoSession.Error()
		c.JSON(http.StatusInternalServerError, httpError{Error: e})
		return auth.Session{}, false
	}

	return s, true
}
