package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shiftdesk/shiftdesk/internal/model"
)

// UpsertEarnings inserts or replaces a batch of earnings entries.
func (s *SQLiteStore) UpsertEarnings(
	ctx context.Context,
	entries []model.EarningsEntry,
) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO earnings (
			id, employee_id, business_id, business_name,
			week_start, hours, rate_cents, gross_cents,
			status, approved_at, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		var approvedAt interface{}
		if e.ApprovedAt != nil {
			approvedAt = e.ApprovedAt.UTC()
		}

		_, err = stmt.ExecContext(ctx,
			e.ID, e.EmployeeID, e.BusinessID, e.BusinessName,
			e.WeekStart, e.Hours, e.RateCents, e.GrossCents,
			e.Status, approvedAt, e.FetchedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting earnings entry %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// GetEarnings retrieves earnings entries matching the provided filter,
// ordered by week start then business.
func (s *SQLiteStore) GetEarnings(
	ctx context.Context,
	filter EarningsFilter,
) ([]model.EarningsEntry, error) {
	var conditions []string
	var args []interface{}

	if filter.EmployeeID != "" {
		conditions = append(conditions, "employee_id = ?")
		args = append(args, filter.EmployeeID)
	}
	if filter.BusinessID != "" {
		conditions = append(conditions, "business_id = ?")
		args = append(args, filter.BusinessID)
	}
	if len(filter.WeekStarts) > 0 {
		placeholders := make([]string, len(filter.WeekStarts))
		for i, wk := range filter.WeekStarts {
			placeholders[i] = "?"
			args = append(args, wk)
		}
		conditions = append(conditions, "week_start IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := "SELECT * FROM earnings"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY week_start, business_name"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying earnings: %w", err)
	}
	defer rows.Close()

	var entries []model.EarningsEntry
	for rows.Next() {
		e, err := scanEarningsEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// scanEarningsEntry scans an earnings row from sqlx.Rows.
func scanEarningsEntry(rows interface{ Scan(dest ...interface{}) error }) (model.EarningsEntry, error) {
	var (
		e          model.EarningsEntry
		approvedAt *time.Time
	)

	err := rows.Scan(
		&e.ID, &e.EmployeeID, &e.BusinessID, &e.BusinessName,
		&e.WeekStart, &e.Hours, &e.RateCents, &e.GrossCents,
		&e.Status, &approvedAt, &e.FetchedAt,
	)
	if err != nil {
		return model.EarningsEntry{}, fmt.Errorf("scanning earnings row: %w", err)
	}

	e.ApprovedAt = approvedAt

	return e, nil
}
