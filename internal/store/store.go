package store

import (
	"context"

	"github.com/shiftdesk/shiftdesk/internal/model"
)

// ShiftFilter controls filtering for shift queries. Day bounds are
// inclusive YYYY-MM-DD strings; zero values mean "no constraint".
type ShiftFilter struct {
	FromDay    string
	ToDay      string
	EmployeeID string
	BusinessID string
	Statuses   []string
}

// JoinRequestFilter controls filtering for join request queries.
type JoinRequestFilter struct {
	BusinessID string
	EmployeeID string
	Statuses   []string
}

// EarningsFilter controls filtering for earnings queries. WeekStarts
// lists the week-start days (YYYY-MM-DD) to include.
type EarningsFilter struct {
	EmployeeID string
	BusinessID string
	WeekStarts []string
}

// TicketFilter controls filtering for support ticket queries.
type TicketFilter struct {
	RequesterID string
	Statuses    []string
}

// Store defines the persistence interface for the local marketplace cache:
// shifts, join requests, earnings, and support tickets, all mirrored from
// the remote API and replaced wholesale on each sync.
type Store interface {
	UpsertShifts(ctx context.Context, shifts []model.Shift) error
	GetShifts(ctx context.Context, filter ShiftFilter) ([]model.Shift, error)
	DeleteShiftsBefore(ctx context.Context, day string) error

	UpsertJoinRequests(ctx context.Context, reqs []model.JoinRequest) error
	GetJoinRequests(ctx context.Context, filter JoinRequestFilter) ([]model.JoinRequest, error)

	UpsertEarnings(ctx context.Context, entries []model.EarningsEntry) error
	GetEarnings(ctx context.Context, filter EarningsFilter) ([]model.EarningsEntry, error)

	UpsertTickets(ctx context.Context, tickets []model.SupportTicket) error
	GetTickets(ctx context.Context, filter TicketFilter) ([]model.SupportTicket, error)
}
