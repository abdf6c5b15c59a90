package model

import "time"

// Support ticket status constants.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
)

// SupportTicket is an item in the admin support queue.
type SupportTicket struct {
	ID            string    `json:"id" db:"id"`
	RequesterID   string    `json:"requester_id" db:"requester_id"`
	RequesterName string    `json:"requester_name" db:"requester_name"`
	Subject       string    `json:"subject" db:"subject"`
	Body          string    `json:"body" db:"body"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
	FetchedAt     time.Time `json:"fetched_at" db:"fetched_at"`
}
