package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shiftdesk/shiftdesk/internal/model"
)

// UpsertJoinRequests inserts or replaces a batch of join requests.
func (s *SQLiteStore) UpsertJoinRequests(
	ctx context.Context,
	reqs []model.JoinRequest,
) error {
	if len(reqs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO join_requests (
			id, employee_id, employee_name, business_id, business_name,
			status, note, created_at, decided_at, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range reqs {
		var decidedAt interface{}
		if r.DecidedAt != nil {
			decidedAt = r.DecidedAt.UTC()
		}

		_, err = stmt.ExecContext(ctx,
			r.ID, r.EmployeeID, r.EmployeeName, r.BusinessID, r.BusinessName,
			r.Status, r.Note, r.CreatedAt.UTC(), decidedAt, r.FetchedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting join request %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// GetJoinRequests retrieves join requests matching the provided filter,
// newest first.
func (s *SQLiteStore) GetJoinRequests(
	ctx context.Context,
	filter JoinRequestFilter,
) ([]model.JoinRequest, error) {
	var conditions []string
	var args []interface{}

	if filter.BusinessID != "" {
		conditions = append(conditions, "business_id = ?")
		args = append(args, filter.BusinessID)
	}
	if filter.EmployeeID != "" {
		conditions = append(conditions, "employee_id = ?")
		args = append(args, filter.EmployeeID)
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, st)
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := "SELECT * FROM join_requests"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying join requests: %w", err)
	}
	defer rows.Close()

	var reqs []model.JoinRequest
	for rows.Next() {
		r, err := scanJoinRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}

	return reqs, rows.Err()
}

// scanJoinRequest scans a join_request row from sqlx.Rows.
func scanJoinRequest(rows interface{ Scan(dest ...interface{}) error }) (model.JoinRequest, error) {
	var (
		r         model.JoinRequest
		decidedAt *time.Time
	)

	err := rows.Scan(
		&r.ID, &r.EmployeeID, &r.EmployeeName, &r.BusinessID, &r.BusinessName,
		&r.Status, &r.Note, &r.CreatedAt, &decidedAt, &r.FetchedAt,
	)
	if err != nil {
		return model.JoinRequest{}, fmt.Errorf("scanning join request row: %w", err)
	}

	r.DecidedAt = decidedAt

	return r, nil
}
