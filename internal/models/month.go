package models

import (
	"github.com/produce-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// MonthlySummary aggregates all entries of a calendar month.
type MonthlySummary struct {
	Month   types.Month     `json:"month" example:"2025-06"`
	Label   string          `json:"label" example:"Jun 2025"`
	Weight  decimal.Decimal `json:"weight" example:"152.35"`  // Sum of the grand totals of the month
	Earned  decimal.Decimal `json:"earned" example:"4570.50"` // Sum of the earnings of the month
	Entries int             `json:"entries" example:"4"`      // Number of entries in the month
}

// MonthlySummaries groups entries by calendar month, most recent month
// first.
func MonthlySummaries(entries []Entry) []MonthlySummary {
	byMonth := make(map[types.Month]*MonthlySummary)

	for _, entry := range entries {
		month := types.MonthOf(entry.Date)

		summary, ok := byMonth[month]
		if !ok {
			summary = &MonthlySummary{
				Month:  month,
				Label:  month.Label(),
				Weight: decimal.Zero,
				Earned: decimal.Zero,
			}
			byMonth[month] = summary
		}

		summary.Weight = summary.Weight.Add(entry.GrandTotal)
		summary.Earned = summary.Earned.Add(entry.TotalEarned)
		summary.Entries++
	}

	summaries := make([]MonthlySummary, 0, len(byMonth))
	for _, summary := range byMonth {
		summaries = append(summaries, *summary)
	}

	slices.SortFunc(summaries, func(a, b MonthlySummary) int {
		if a.Month.After(b.Month) {
			return -1
		}
		if a.Month.Before(b.Month) {
			return 1
		}
		return 0
	})

	return summaries
}
