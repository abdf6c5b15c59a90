package model

import "time"

// Shift status constants.
const (
	ShiftStatusPosted    = "posted"
	ShiftStatusAssigned  = "assigned"
	ShiftStatusConfirmed = "confirmed"
)

// Shift is a single scheduled work period at a business. Posted shifts are
// open positions anyone can pick up; assigned shifts belong to an employee;
// confirmed shifts have had their worked hours acknowledged.
type Shift struct {
	// ID is the marketplace's identifier for this shift.
	ID string `json:"id" db:"id"`

	// BusinessID and BusinessName identify the posting business.
	BusinessID   string `json:"business_id" db:"business_id"`
	BusinessName string `json:"business_name" db:"business_name"`

	// EmployeeID is the assigned employee, empty while the shift is posted.
	EmployeeID string `json:"employee_id" db:"employee_id"`

	// Date is the calendar day the shift occurs on, formatted YYYY-MM-DD.
	// It is a date, not an instant: the same string means the same day in
	// every timezone.
	Date string `json:"date" db:"date"`

	// StartTime and EndTime are wall-clock times formatted HH:MM. A shift
	// whose end is at or before its start runs past midnight.
	StartTime string `json:"start_time" db:"start_time"`
	EndTime   string `json:"end_time" db:"end_time"`

	// Position is the role being filled (e.g., "barista", "line cook").
	Position string `json:"position" db:"position"`

	// Status is one of the ShiftStatus* constants.
	Status string `json:"status" db:"status"`

	// HourlyRateCents is the offered pay rate in cents.
	HourlyRateCents int64 `json:"hourly_rate_cents" db:"hourly_rate_cents"`

	// PostedAt is when the shift appeared on the marketplace. It is the
	// ordering signal for schedule notifications.
	PostedAt time.Time `json:"posted_at" db:"posted_at"`

	// FetchedAt is when this record was last retrieved from the marketplace.
	FetchedAt time.Time `json:"fetched_at" db:"fetched_at"`
}

// Duration returns the length of the shift. Shifts that run past midnight
// (end at or before start) are counted into the following day.
func (s Shift) Duration() time.Duration {
	start, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04", s.EndTime)
	if err != nil {
		return 0
	}

	d := end.Sub(start)
	if d <= 0 {
		d += 24 * time.Hour
	}
	return d
}
