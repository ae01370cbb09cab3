package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/produce-ledger/backend/internal/httputil"
	"github.com/produce-ledger/backend/internal/mailer"
	"github.com/produce-ledger/backend/internal/models"
	"github.com/produce-ledger/backend/internal/types"
)

// MailKind selects the notification template to send.
//
// swagger:enum MailKind
type MailKind string

const (
	MailNewEntry        MailKind = "new-entry"
	MailMonthlyEarnings MailKind = "monthly-earnings"
	MailPaymentDue      MailKind = "payment-due"
)

type MailSendRequest struct {
	Kind    MailKind  `json:"kind" example:"monthly-earnings"`                         // Which notification to send
	To      string    `json:"to" example:"jane@example.com"`                           // Recipient address. Defaults to the mail address of the requesting user.
	EntryID uuid.UUID `json:"entryId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"`  // The entry for new-entry and payment-due mails
	Month   string    `json:"month" example:"2025-06"`                                 // The month for monthly-earnings mails, in YYYY-MM format
}

// RegisterMailRoutes registers the routes for mail notifications with
// the RouterGroup that is passed.
func RegisterMailRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMail)
		r.POST("", SendMail)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Mail
// @Success		204
// @Router			/v1/mail [options]
func OptionsMail(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Send notification mail
// @Description	Queues a notification mail. Delivery happens in the background, the response only confirms that the mail was accepted.
// @Tags			Mail
// @Accept			json
// @Produce		json
// @Success		202
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			mail	body		MailSendRequest	true	"Mail"
// @Router			/v1/mail [post]
func SendMail(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var request MailSendRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if !mail.Enabled() {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errMailNotEnabled.Error(),
		})
		return
	}

	to := request.To
	if to == "" {
		to = s.Email
	}
	if to == "" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errMailNoRecipient.Error(),
		})
		return
	}

	var message mailer.Message

	switch request.Kind {
	case MailNewEntry, MailPaymentDue:
		var entry models.Entry
		err := ownedEntries(s).First(&entry, "entries.id = ?", request.EntryID).Error
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		if request.Kind == MailNewEntry {
			message = mailer.NewEntryMessage(to, entry)
		} else {
			message = mailer.PaymentDueMessage(to, entry)
		}

	case MailMonthlyEarnings:
		if request.Month == "" {
			c.JSON(http.StatusBadRequest, httpError{
				Error: errMailNoMonth.Error(),
			})
			return
		}

		month, err := types.ParseMonth(request.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{
				Error: err.Error(),
			})
			return
		}

		var entries []models.Entry
		err = ownedEntries(s).Find(&entries).Error
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		// The summary for a month without entries is all zeroes
		summary := models.MonthlySummary{Month: month, Label: month.Label()}
		for _, candidate := range models.MonthlySummaries(entries) {
			if candidate.Month.Equal(month) {
				summary = candidate
				break
			}
		}

		message = mailer.MonthlyEarningsMessage(to, summary)

	default:
		c.JSON(http.StatusBadRequest, httpError{
			Error: errMailKindInvalid.Error(),
		})
		return
	}

	mail.SendAsync(message)
	c.JSON(http.StatusAccepted, nil)
}
