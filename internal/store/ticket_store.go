package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/shiftdesk/shiftdesk/internal/model"
)

// UpsertTickets inserts or replaces a batch of support tickets.
func (s *SQLiteStore) UpsertTickets(
	ctx context.Context,
	tickets []model.SupportTicket,
) error {
	if len(tickets) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO tickets (
			id, requester_id, requester_name, subject, body,
			status, created_at, updated_at, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range tickets {
		_, err = stmt.ExecContext(ctx,
			t.ID, t.RequesterID, t.RequesterName, t.Subject, t.Body,
			t.Status, t.CreatedAt.UTC(), t.UpdatedAt.UTC(), t.FetchedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting ticket %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// GetTickets retrieves support tickets matching the provided filter,
// most recently updated first.
func (s *SQLiteStore) GetTickets(
	ctx context.Context,
	filter TicketFilter,
) ([]model.SupportTicket, error) {
	var conditions []string
	var args []interface{}

	if filter.RequesterID != "" {
		conditions = append(conditions, "requester_id = ?")
		args = append(args, filter.RequesterID)
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, st)
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := "SELECT * FROM tickets"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tickets: %w", err)
	}
	defer rows.Close()

	var tickets []model.SupportTicket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}

	return tickets, rows.Err()
}

// scanTicket scans a ticket row from sqlx.Rows.
func scanTicket(rows interface{ Scan(dest ...interface{}) error }) (model.SupportTicket, error) {
	var t model.SupportTicket

	err := rows.Scan(
		&t.ID, &t.RequesterID, &t.RequesterName, &t.Subject, &t.Body,
		&t.Status, &t.CreatedAt, &t.UpdatedAt, &t.FetchedAt,
	)
	if err != nil {
		return model.SupportTicket{}, fmt.Errorf("scanning ticket row: %w", err)
	}

	return t, nil
}
