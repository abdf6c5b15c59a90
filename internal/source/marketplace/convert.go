package marketplace

import (
	"time"

	"github.com/shiftdesk/shiftdesk/internal/model"
)

// parseAPITime parses an RFC 3339 timestamp from the API, returning the
// zero time for empty or malformed values.
func parseAPITime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// optionalAPITime parses an RFC 3339 timestamp into a nullable time.
func optionalAPITime(s string) *time.Time {
	t := parseAPITime(s)
	if t.IsZero() {
		return nil
	}
	return &t
}

// maxWatermark returns the later of the current watermark and t, both as
// RFC 3339 UTC strings. The zero time leaves the current value unchanged.
func maxWatermark(current string, t time.Time) string {
	if t.IsZero() {
		return current
	}
	ts := t.UTC().Format(time.RFC3339)
	if current == "" || ts > current {
		return ts
	}
	return current
}

// shiftToModel converts a wire shift record to a model.Shift.
func shiftToModel(r ShiftRecord, fetchedAt time.Time) model.Shift {
	return model.Shift{
		ID:              r.ID,
		BusinessID:      r.BusinessID,
		BusinessName:    r.BusinessName,
		EmployeeID:      r.EmployeeID,
		Date:            r.Date,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Position:        r.Position,
		Status:          r.Status,
		HourlyRateCents: r.HourlyRateCents,
		PostedAt:        parseAPITime(r.PostedAt),
		FetchedAt:       fetchedAt,
	}
}

// joinRequestToModel converts a wire join request record to a model.JoinRequest.
func joinRequestToModel(r JoinRequestRecord, fetchedAt time.Time) model.JoinRequest {
	return model.JoinRequest{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		BusinessID:   r.BusinessID,
		BusinessName: r.BusinessName,
		Status:       r.Status,
		Note:         r.Note,
		CreatedAt:    parseAPITime(r.CreatedAt),
		DecidedAt:    optionalAPITime(r.DecidedAt),
		FetchedAt:    fetchedAt,
	}
}

// earningsToModel converts a wire earnings record to a model.EarningsEntry.
func earningsToModel(r EarningsRecord, fetchedAt time.Time) model.EarningsEntry {
	return model.EarningsEntry{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		BusinessID:   r.BusinessID,
		BusinessName: r.BusinessName,
		WeekStart:    r.WeekStart,
		Hours:        r.Hours,
		RateCents:    r.RateCents,
		GrossCents:   r.GrossCents,
		Status:       r.Status,
		ApprovedAt:   optionalAPITime(r.ApprovedAt),
		FetchedAt:    fetchedAt,
	}
}

// ticketToModel converts a wire ticket record to a model.SupportTicket.
func ticketToModel(r TicketRecord, fetchedAt time.Time) model.SupportTicket {
	return model.SupportTicket{
		ID:            r.ID,
		RequesterID:   r.RequesterID,
		RequesterName: r.RequesterName,
		Subject:       r.Subject,
		Body:          r.Body,
		Status:        r.Status,
		CreatedAt:     parseAPITime(r.CreatedAt),
		UpdatedAt:     parseAPITime(r.UpdatedAt),
		FetchedAt:     fetchedAt,
	}
}
