package model

import "time"

// Earnings entry status constants.
const (
	EarningsPending  = "pending"
	EarningsApproved = "approved"
	EarningsPaid     = "paid"
)

// EarningsEntry is one week of confirmed hours at one business, as reported
// by the marketplace payroll endpoint. Approved entries carry ApprovedAt,
// the ordering signal for earnings notifications.
type EarningsEntry struct {
	ID           string `json:"id" db:"id"`
	EmployeeID   string `json:"employee_id" db:"employee_id"`
	BusinessID   string `json:"business_id" db:"business_id"`
	BusinessName string `json:"business_name" db:"business_name"`

	// WeekStart is the Sunday beginning the pay week, formatted YYYY-MM-DD.
	WeekStart string `json:"week_start" db:"week_start"`

	// Hours is the confirmed hour total for the week.
	Hours float64 `json:"hours" db:"hours"`

	// RateCents and GrossCents are the pay rate and gross amount in cents.
	RateCents  int64 `json:"rate_cents" db:"rate_cents"`
	GrossCents int64 `json:"gross_cents" db:"gross_cents"`

	// Status is one of the Earnings* constants.
	Status string `json:"status" db:"status"`

	// ApprovedAt is when the business approved the hours. Nil while pending.
	ApprovedAt *time.Time `json:"approved_at,omitempty" db:"approved_at"`

	FetchedAt time.Time `json:"fetched_at" db:"fetched_at"`
}
