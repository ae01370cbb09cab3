package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/produce-ledger/backend/internal/httputil"
	"github.com/produce-ledger/backend/internal/models"
)

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMonths)
		r.GET("", GetMonths)
	}
}

type MonthListResponse struct {
	Data  []models.MonthlySummary `json:"data"`                                                 // List of monthly summaries, most recent month first
	Error *string                 `json:"error" example:"parsing \"yesterday\" as a month failed"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months [options]
func OptionsMonths(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Monthly summaries
// @Description	Returns the monthly weight and earnings summaries over all entries, most recent month first
// @Tags			Months
// @Produce		json
// @Success		200	{object}	MonthListResponse
// @Failure		400	{object}	MonthListResponse
// @Failure		500	{object}	MonthListResponse
// @Router			/v1/months [get]
func GetMonths(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var entries []models.Entry
	err := ownedEntries(s).Find(&entries).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthListResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, MonthListResponse{
		Data: models.MonthlySummaries(entries),
	})
}
