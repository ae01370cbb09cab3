package v1

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/produce-ledger/backend/internal/export"
	"github.com/produce-ledger/backend/internal/httputil"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Entries
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/entries/{id}/export [options]
func OptionsEntryExport(c *gin.Context) {
	if _, ok := getOwnedEntry(c); !ok {
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Export entry
// @Description	Returns the entry as a spreadsheet download
// @Tags			Entries
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/entries/{id}/export [get]
func GetEntryExport(c *gin.Context) {
	entry, ok := getOwnedEntry(c)
	if !ok {
		return
	}

	var buffer bytes.Buffer
	err := export.Write(&buffer, entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(entry)))
	c.Data(http.StatusOK, xlsxContentType, buffer.Bytes())
}
