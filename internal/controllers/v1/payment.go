package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/produce-ledger/backend/internal/auth"
	"github.com/produce-ledger/backend/internal/httputil"
	"github.com/produce-ledger/backend/internal/models"
	pl_uuid "github.com/produce-ledger/backend/internal/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterPaymentRoutes registers the routes for payments with
// the RouterGroup that is passed.
func RegisterPaymentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPayments)
		r.GET("", GetPayments)
		r.POST("", CreatePayments)
	}

	// Payment with ID
	{
		r.OPTIONS("/:id", OptionsPaymentDetail)
		r.GET("/:id", GetPayment)
		r.PATCH("/:id", UpdatePayment)
		r.DELETE("/:id", DeletePayment)
	}
}

// ownedPayments returns a query scoped to the payments on entries of the
// requesting user.
func ownedPayments(s auth.Session) *gorm.DB {
	return models.DB.
		Joins("JOIN entries ON entries.id = payments.entry_id").
		Where("entries.owner_id = ?", s.UserID)
}

// getOwnedPayment loads one payment on an entry of the requesting user.
func getOwnedPayment(c *gin.Context) (models.Payment, bool) {
	s, ok := session(c)
	if !ok {
		return models.Payment{}, false
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return models.Payment{}, false
	}

	var payment models.Payment
	err = ownedPayments(s).First(&payment, "payments.id = ?", uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return models.Payment{}, false
	}

	return payment, true
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Router			/v1/payments [options]
func OptionsPayments(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payments/{id} [options]
func OptionsPaymentDetail(c *gin.Context) {
	if _, ok := getOwnedPayment(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get payment
// @Description	Returns a specific payment
// @Tags			Payments
// @Produce		json
// @Success		200	{object}	PaymentResponse
// @Failure		400	{object}	PaymentResponse
// @Failure		404	{object}	PaymentResponse
// @Failure		500	{object}	PaymentResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payments/{id} [get]
func GetPayment(c *gin.Context) {
	payment, ok := getOwnedPayment(c)
	if !ok {
		return
	}

	data := newPayment(c, payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &data})
}

// @Summary		Get payments
// @Description	Returns a list of payments
// @Tags			Payments
// @Produce		json
// @Success		200	{object}	PaymentListResponse
// @Failure		400	{object}	PaymentListResponse
// @Failure		500	{object}	PaymentListResponse
// @Router			/v1/payments [get]
// @Param			entry		query	string	false	"Filter by entry ID"
// @Param			method		query	string	false	"Filter by payment method"
// @Param			fromDate	query	string	false	"Payments received at and after this day. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			untilDate	query	string	false	"Payments received before and at this day. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			offset		query	uint	false	"The offset of the first payment returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of payments to return. Defaults to 50."
func GetPayments(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var filter PaymentQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, PaymentListResponse{
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
		c.JSON(status(err), PaymentListResponse{
			Error: &e,
		})
		return
	}

	q := ownedPayments(s).
		Order("datetime(payments.received_date) DESC, datetime(payments.created_at) DESC").
		Where(&model, queryFields...)

	if filter.EntryID != pl_uuid.Nil {
		q = q.Where("payments.entry_id = ?", filter.EntryID)
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("payments.received_date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("payments.received_date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 payments and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var payments []models.Payment
	err = q.Find(&payments).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Payment, 0)
	for _, payment := range payments {
		data = append(data, newPayment(c, payment))
	}

	c.JSON(http.StatusOK, PaymentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create payments
// @Description	Creates payments from the list of submitted payment data. The response code is the highest response code number that a single payment creation would have caused. If it is not equal to 201, at least one payment has an error.
// @Tags			Payments
// @Produce		json
// @Success		201			{object}	PaymentCreateResponse
// @Failure		400			{object}	PaymentCreateResponse
// @Failure		404			{object}	PaymentCreateResponse
// @Failure		500			{object}	PaymentCreateResponse
// @Param			payments	body		[]PaymentEditable	true	"Payments"
// @Router			/v1/payments [post]
func CreatePayments(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var editables []PaymentEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	responseStatus := http.StatusCreated
	r := PaymentCreateResponse{}

	for _, editable := range editables {
		// The entry must exist and belong to the requesting user
		var entry models.Entry
		err := ownedEntries(s).First(&entry, "entries.id = ?", editable.EntryID).Error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		payment := editable.model()
		err = models.DB.Create(&payment).Error
		// Append the error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		data := newPayment(c, payment)
		r.Data = append(r.Data, PaymentResponse{Data: &data})
	}

	c.JSON(responseStatus, r)
}

// @Summary		Update payment
// @Description	Updates an existing payment. Only values to be updated need to be specified.
// @Tags			Payments
// @Accept			json
// @Produce		json
// @Success		200		{object}	PaymentResponse
// @Failure		400		{object}	PaymentResponse
// @Failure		404		{object}	PaymentResponse
// @Failure		500		{object}	PaymentResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		PaymentEditable	true	"Payment"
// @Router			/v1/payments/{id} [patch]
func UpdatePayment(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	payment, ok := getOwnedPayment(c)
	if !ok {
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, PaymentEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return
	}

	// Bind the update for the patch
	var update PaymentEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return
	}

	// The payment can be moved to another entry of the same user, but not
	// to an entry of someone else
	if fieldSet(updateFields, "EntryID") {
		var entry models.Entry
		err := ownedEntries(s).First(&entry, "entries.id = ?", update.EntryID).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), PaymentResponse{
				Error: &e,
			})
			return
		}
	}

	// Fields that are not part of the update keep their current value so
	// that the validation hooks see the full payment
	if !fieldSet(updateFields, "Method") {
		update.Method = payment.Method
	}

	if !fieldSet(updateFields, "TransactionID") {
		update.TransactionID = payment.TransactionID
	}

	if !fieldSet(updateFields, "BankNumber") {
		update.BankNumber = payment.BankNumber
	}

	if !fieldSet(updateFields, "ChequeNumber") {
		update.ChequeNumber = payment.ChequeNumber
	}

	if !fieldSet(updateFields, "ChequeIssuerName") {
		update.ChequeIssuerName = payment.ChequeIssuerName
	}

	if !fieldSet(updateFields, "ReceivedDate") {
		update.ReceivedDate = payment.ReceivedDate
	}

	err = models.DB.Model(&payment).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &e,
		})
		return
	}

	data := newPayment(c, payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &data})
}

// @Summary		Delete payment
// @Description	Deletes a payment
// @Tags			Payments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payments/{id} [delete]
func DeletePayment(c *gin.Context) {
	payment, ok := getOwnedPayment(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&payment).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
