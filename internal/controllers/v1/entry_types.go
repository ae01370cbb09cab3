package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/produce-ledger/backend/internal/grid"
	"github.com/produce-ledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

type EntryEditable struct {
	Date           time.Time       `json:"date" example:"2025-06-15T00:00:00Z"`                                     // Day of the weighing. Defaults to the current day.
	DealerName     string          `json:"dealerName" example:"Highland Traders" default:""`                        // Name of the dealer
	Location       string          `json:"location" example:"Wholesale Market" default:""`                          // Where the weighing took place
	VehicleNumber  string          `json:"vehicleNumber" example:"KA-01-1234" default:""`                           // Vehicle that carried the produce
	Columns        grid.Columns    `json:"columns"`                                                                 // The weight grid
	RatePer20Kg    decimal.Decimal `json:"ratePer20kg" example:"600" minimum:"0.00000001" multipleOf:"0.00000001"`  // Agreed rate for 20 kg
	PaymentDueDate *time.Time      `json:"paymentDueDate" example:"2025-07-01T00:00:00Z"`                           // Day the payment is due, if agreed
}

// model returns the database resource for the API representation of the editable fields
func (editable EntryEditable) model(ownerID uuid.UUID) models.Entry {
	return models.Entry{
		OwnerID:        ownerID,
		Date:           editable.Date,
		DealerName:     editable.DealerName,
		Location:       editable.Location,
		VehicleNumber:  editable.VehicleNumber,
		Columns:        editable.Columns,
		RatePer20Kg:    editable.RatePer20Kg,
		PaymentDueDate: editable.PaymentDueDate,
	}
}

type EntryLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/entries/d430d7c3-d14c-4712-9336-ee56965a6673"`          // The entry itself
	Export   string `json:"export" example:"https://example.com/api/v1/entries/d430d7c3-d14c-4712-9336-ee56965a6673/export"` // The spreadsheet download for the entry
	Payments string `json:"payments" example:"https://example.com/api/v1/payments?entry=d430d7c3-d14c-4712-9336-ee56965a6673"` // Payments recorded for the entry
}

// Entry is the representation of an Entry in API v1.
type Entry struct {
	models.DefaultModel
	EntryEditable
	GrandTotal  decimal.Decimal `json:"grandTotal" example:"15"`    // Total weight over all columns
	TotalEarned decimal.Decimal `json:"totalEarned" example:"450"`  // Earnings derived from the grand total and the rate
	Links       EntryLinks      `json:"links"`
}

// newEntry returns the API v1 representation of the resource
func newEntry(c *gin.Context, model models.Entry) Entry {
	url := c.GetString(string(models.DBContextURL))

	return Entry{
		DefaultModel: model.DefaultModel,
		EntryEditable: EntryEditable{
			Date:           model.Date,
			DealerName:     model.DealerName,
			Location:       model.Location,
			VehicleNumber:  model.VehicleNumber,
			Columns:        model.Columns,
			RatePer20Kg:    model.RatePer20Kg,
			PaymentDueDate: model.PaymentDueDate,
		},
		GrandTotal:  model.GrandTotal,
		TotalEarned: model.TotalEarned,
		Links: EntryLinks{
			Self:     fmt.Sprintf("%s/v1/entries/%s", url, model.ID),
			Export:   fmt.Sprintf("%s/v1/entries/%s/export", url, model.ID),
			Payments: fmt.Sprintf("%s/v1/payments?entry=%s", url, model.ID),
		},
	}
}

type EntryListResponse struct {
	Data       []Entry     `json:"data"`                                                          // List of entries
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type EntryCreateResponse struct {
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []EntryResponse `json:"data"`                                                          // List of created entries
}

func (r *EntryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, EntryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type EntryResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this entry
	Data  *Entry  `json:"data"`                                                          // The entry data, if creation was successful
}

type EntryQueryFilter struct {
	Date          time.Time `form:"date" filterField:"false"`      // Exact day. Time is ignored.
	FromDate      time.Time `form:"fromDate" filterField:"false"`  // Entries at and after this day. Time is ignored.
	UntilDate     time.Time `form:"untilDate" filterField:"false"` // Entries before and at this day. Time is ignored.
	Month         string    `form:"month" filterField:"false"`     // Entries in this month, in YYYY-MM format
	DealerName    string    `form:"dealer" filterField:"false"`    // Dealer name contains this string
	Location      string    `form:"location" filterField:"false"`  // Location contains this string
	VehicleNumber string    `form:"vehicle"`                       // Exact vehicle number
	Unpaid        bool      `form:"unpaid" filterField:"false"`    // Only entries without any recorded payment
	Offset        uint      `form:"offset" filterField:"false"`    // The offset of the first entry returned. Defaults to 0.
	Limit         int       `form:"limit" filterField:"false"`     // Maximum number of entries to return. Defaults to 50.
}

func (f EntryQueryFilter) model() (models.Entry, error) {
	// String and date fields are handled in the controller function
	return models.Entry{
		VehicleNumber: f.VehicleNumber,
	}, nil
}
