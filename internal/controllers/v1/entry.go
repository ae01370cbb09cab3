package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/produce-ledger/backend/internal/auth"
	"github.com/produce-ledger/backend/internal/httputil"
	"github.com/produce-ledger/backend/internal/mailer"
	"github.com/produce-ledger/backend/internal/models"
	"github.com/produce-ledger/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// mail is the notification sink for the controllers. The zero value is a
// disabled mailer, sending through it does nothing.
var mail = &mailer.Mailer{}

// SetMailer configures the notification sink for all controllers.
func SetMailer(m *mailer.Mailer) {
	mail = m
}

// RegisterEntryRoutes registers the routes for entries with
// the RouterGroup that is passed.
func RegisterEntryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEntries)
		r.GET("", GetEntries)
		r.POST("", CreateEntries)
	}

	// Entry with ID
	{
		r.OPTIONS("/:id", OptionsEntryDetail)
		r.GET("/:id", GetEntry)
		r.PATCH("/:id", UpdateEntry)
		r.DELETE("/:id", DeleteEntry)
	}

	// Spreadsheet download
	{
		r.OPTIONS("/:id/export", OptionsEntryExport)
		r.GET("/:id/export", GetEntryExport)
	}
}

// ownedEntries returns a query scoped to the entries of the requesting user.
//
// Entries of other users are invisible, requests for them return the same
// result as requests for entries that do not exist.
func ownedEntries(s auth.Session) *gorm.DB {
	return models.DB.Where("entries.owner_id = ?", s.UserID)
}

// fieldSet reports whether a field name is contained in the body fields.
func fieldSet(fields []any, name string) bool {
	for _, field := range fields {
		if field == name {
			return true
		}
	}

	return false
}

// getOwnedEntry loads one entry of the requesting user.
func getOwnedEntry(c *gin.Context) (models.Entry, bool) {
	s, ok := session(c)
	if !ok {
		return models.Entry{}, false
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &e,
		})
		return models.Entry{}, false
	}

	var entry models.Entry
	err = ownedEntries(s).First(&entry, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &e,
		})
		return models.Entry{}, false
	}

	return entry, true
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Entries
// @Success		204
// @Router			/v1/entries [options]
func OptionsEntries(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Entries
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/entries/{id} [options]
func OptionsEntryDetail(c *gin.Context) {
	if _, ok := getOwnedEntry(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get entry
// @Description	Returns a specific entry
// @Tags			Entries
// @Produce		json
// @Success		200	{object}	EntryResponse
// @Failure		400	{object}	EntryResponse
// @Failure		404	{object}	EntryResponse
// @Failure		500	{object}	EntryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/entries/{id} [get]
func GetEntry(c *gin.Context) {
	entry, ok := getOwnedEntry(c)
	if !ok {
		return
	}

	data := newEntry(c, entry)
	c.JSON(http.StatusOK, EntryResponse{Data: &data})
}

// @Summary		Get entries
// @Description	Returns a list of entries
// @Tags			Entries
// @Produce		json
// @Success		200	{object}	EntryListResponse
// @Failure		400	{object}	EntryListResponse
// @Failure		500	{object}	EntryListResponse
// @Router			/v1/entries [get]
// @Param			date		query	string	false	"Day of the entry. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			fromDate	query	string	false	"Entries at and after this day. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			untilDate	query	string	false	"Entries before and at this day. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			month		query	string	false	"Entries in this month, in YYYY-MM format"
// @Param			dealer		query	string	false	"Dealer name contains this string"
// @Param			location	query	string	false	"Location contains this string"
// @Param			vehicle		query	string	false	"Filter by vehicle number"
// @Param			unpaid		query	bool	false	"Only entries without any recorded payment"
// @Param			offset		query	uint	false	"The offset of the first entry returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of entries to return. Defaults to 50."
func GetEntries(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var filter EntryQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, EntryListResponse{
			Error: &e,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a model
	model, err := filter.model()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryListResponse{
			Error: &e,
		})
		return
	}

	q := ownedEntries(s).
		Order("datetime(entries.date) DESC, datetime(entries.created_at) DESC").
		Where(&model, queryFields...)

	// Filter for the entry being on the same day
	if !filter.Date.IsZero() {
		date := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("entries.date >= date(?)", date).Where("entries.date < date(?)", date.AddDate(0, 0, 1))
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("entries.date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("entries.date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, EntryListResponse{
				Error: &e,
			})
			return
		}

		first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("entries.date >= date(?)", first).Where("entries.date < date(?)", first.AddDate(0, 1, 0))
	}

	if filter.DealerName != "" {
		q = q.Where("entries.dealer_name LIKE ?", fmt.Sprintf("%%%s%%", filter.DealerName))
	} else if slices.Contains(setFields, "DealerName") {
		q = q.Where("entries.dealer_name = ''")
	}

	if filter.Location != "" {
		q = q.Where("entries.location LIKE ?", fmt.Sprintf("%%%s%%", filter.Location))
	} else if slices.Contains(setFields, "Location") {
		q = q.Where("entries.location = ''")
	}

	if filter.Unpaid {
		q = q.Where("entries.id NOT IN (?)", models.DB.Model(&models.Payment{}).Select("payments.entry_id"))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 entries and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var entries []models.Entry
	err = q.Find(&entries).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Entry, 0)
	for _, entry := range entries {
		data = append(data, newEntry(c, entry))
	}

	c.JSON(http.StatusOK, EntryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create entries
// @Description	Creates entries from the list of submitted entry data. The response code is the highest response code number that a single entry creation would have caused. If it is not equal to 201, at least one entry has an error.
// @Tags			Entries
// @Produce		json
// @Success		201		{object}	EntryCreateResponse
// @Failure		400		{object}	EntryCreateResponse
// @Failure		404		{object}	EntryCreateResponse
// @Failure		500		{object}	EntryCreateResponse
// @Param			entries	body		[]EntryEditable	true	"Entries"
// @Router			/v1/entries [post]
func CreateEntries(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var editables []EntryEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	responseStatus := http.StatusCreated
	r := EntryCreateResponse{}

	for _, editable := range editables {
		entry := editable.model(s.UserID)
		err := models.DB.Create(&entry).Error
		// Append the error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		if s.Email != "" {
			mail.SendAsync(mailer.NewEntryMessage(s.Email, entry))
		}

		data := newEntry(c, entry)
		r.Data = append(r.Data, EntryResponse{Data: &data})
	}

	c.JSON(responseStatus, r)
}

// @Summary		Update entry
// @Description	Updates an existing entry. Only values to be updated need to be specified.
// @Tags			Entries
// @Accept			json
// @Produce		json
// @Success		200		{object}	EntryResponse
// @Failure		400		{object}	EntryResponse
// @Failure		404		{object}	EntryResponse
// @Failure		500		{object}	EntryResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			entry	body		EntryEditable	true	"Entry"
// @Router			/v1/entries/{id} [patch]
func UpdateEntry(c *gin.Context) {
	entry, ok := getOwnedEntry(c)
	if !ok {
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, EntryEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &e,
		})
		return
	}

	// Bind the update for the patch
	var update EntryEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &e,
		})
		return
	}

	// Fields that are not part of the update keep their current value so
	// that the validation and recalculation hooks see the full entry
	if !fieldSet(updateFields, "Columns") {
		update.Columns = entry.Columns
	}

	if !fieldSet(updateFields, "RatePer20Kg") {
		update.RatePer20Kg = entry.RatePer20Kg
	}

	if !fieldSet(updateFields, "Date") {
		update.Date = entry.Date
	}

	// The derived amounts are always written, they change with every
	// update of the grid or the rate
	updateFields = append(updateFields, "Date", "GrandTotal", "TotalEarned")

	err = models.DB.Model(&entry).Select("", updateFields...).Updates(update.model(entry.OwnerID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &e,
		})
		return
	}

	data := newEntry(c, entry)
	c.JSON(http.StatusOK, EntryResponse{Data: &data})
}

// @Summary		Delete entry
// @Description	Deletes an entry and all payments recorded for it
// @Tags			Entries
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/entries/{id} [delete]
func DeleteEntry(c *gin.Context) {
	entry, ok := getOwnedEntry(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&entry).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
