package mailer

import (
	"fmt"

	"github.com/produce-ledger/backend/internal/models"
)

const dateFormat = "02 Jan 2006"

// NewEntryMessage announces a freshly saved entry.
func NewEntryMessage(to string, entry models.Entry) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("New entry saved: %s on %s", entry.DealerName, entry.Date.Format(dateFormat)),
		Text: fmt.Sprintf(
			"A new entry was saved.\n\nDealer: %s\nDate: %s\nTotal weight: %s kg\nRate per 20 kg: %s\nTotal earned: %s\n",
			entry.DealerName,
			entry.Date.Format(dateFormat),
			entry.GrandTotal.StringFixed(2),
			entry.RatePer20Kg.StringFixed(2),
			entry.TotalEarned.StringFixed(2),
		),
		HTML: fmt.Sprintf(
			`<h2>New entry saved</h2><table><tr><td>Dealer</td><td>%s</td></tr><tr><td>Date</td><td>%s</td></tr><tr><td>Total weight</td><td>%s kg</td></tr><tr><td>Rate per 20 kg</td><td>%s</td></tr><tr><td><strong>Total earned</strong></td><td><strong>%s</strong></td></tr></table>`,
			entry.DealerName,
			entry.Date.Format(dateFormat),
			entry.GrandTotal.StringFixed(2),
			entry.RatePer20Kg.StringFixed(2),
			entry.TotalEarned.StringFixed(2),
		),
	}
}

// MonthlyEarningsMessage summarizes a calendar month.
func MonthlyEarningsMessage(to string, summary models.MonthlySummary) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Your earnings for %s", summary.Label),
		Text: fmt.Sprintf(
			"Earnings summary for %s.\n\nEntries: %d\nTotal weight: %s kg\nTotal earned: %s\n",
			summary.Label,
			summary.Entries,
			summary.Weight.StringFixed(2),
			summary.Earned.StringFixed(2),
		),
		HTML: fmt.Sprintf(
			`<h2>Earnings for %s</h2><table><tr><td>Entries</td><td>%d</td></tr><tr><td>Total weight</td><td>%s kg</td></tr><tr><td><strong>Total earned</strong></td><td><strong>%s</strong></td></tr></table>`,
			summary.Label,
			summary.Entries,
			summary.Weight.StringFixed(2),
			summary.Earned.StringFixed(2),
		),
	}
}

// PaymentDueMessage reminds about an entry with an upcoming payment due date.
func PaymentDueMessage(to string, entry models.Entry) Message {
	due := "not set"
	if entry.PaymentDueDate != nil {
		due = entry.PaymentDueDate.Format(dateFormat)
	}

	return Message{
		To:      to,
		Subject: fmt.Sprintf("Payment due: %s from %s", entry.TotalEarned.StringFixed(2), entry.DealerName),
		Text: fmt.Sprintf(
			"A payment is due.\n\nDealer: %s\nEntry date: %s\nAmount: %s\nDue date: %s\n",
			entry.DealerName,
			entry.Date.Format(dateFormat),
			entry.TotalEarned.StringFixed(2),
			due,
		),
		HTML: fmt.Sprintf(
			`<h2>Payment due</h2><table><tr><td>Dealer</td><td>%s</td></tr><tr><td>Entry date</td><td>%s</td></tr><tr><td><strong>Amount</strong></td><td><strong>%s</strong></td></tr><tr><td>Due date</td><td>%s</td></tr></table>`,
			entry.DealerName,
			entry.Date.Format(dateFormat),
			entry.TotalEarned.StringFixed(2),
			due,
		),
	}
}
