package model

import "time"

// Join request status constants.
const (
	JoinRequestPending  = "pending"
	JoinRequestApproved = "approved"
	JoinRequestDeclined = "declined"
)

// JoinRequest is an employee's application to work for a business. The
// business approves or declines; either outcome stamps DecidedAt, which
// serves as the ordering signal for notifications.
type JoinRequest struct {
	ID           string `json:"id" db:"id"`
	EmployeeID   string `json:"employee_id" db:"employee_id"`
	EmployeeName string `json:"employee_name" db:"employee_name"`
	BusinessID   string `json:"business_id" db:"business_id"`
	BusinessName string `json:"business_name" db:"business_name"`

	// Status is one of the JoinRequest* constants.
	Status string `json:"status" db:"status"`

	// Note is the optional message attached by the employee.
	Note string `json:"note" db:"note"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// DecidedAt is when the business approved or declined the request.
	// Nil while the request is pending.
	DecidedAt *time.Time `json:"decided_at,omitempty" db:"decided_at"`

	FetchedAt time.Time `json:"fetched_at" db:"fetched_at"`
}

// Watermark returns the most recent event time on the request: the decision
// time once decided, the creation time before that.
func (r JoinRequest) Watermark() time.Time {
	if r.DecidedAt != nil && r.DecidedAt.After(r.CreatedAt) {
		return *r.DecidedAt
	}
	return r.CreatedAt
}
