package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/shiftdesk/shiftdesk/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// UpsertShifts inserts or replaces a batch of shifts.
func (s *SQLiteStore) UpsertShifts(ctx context.Context, shifts []model.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO shifts (
			id, business_id, business_name, employee_id,
			date, start_time, end_time,
			position, status, hourly_rate_cents,
			posted_at, fetched_at
		) VALUES (
			?, ?, ?, ?,
			?, ?, ?,
			?, ?, ?,
			?, ?
		)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, sh := range shifts {
		_, err = stmt.ExecContext(ctx,
			sh.ID, sh.BusinessID, sh.BusinessName, sh.EmployeeID,
			sh.Date, sh.StartTime, sh.EndTime,
			sh.Position, sh.Status, sh.HourlyRateCents,
			sh.PostedAt.UTC(), sh.FetchedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting shift %s: %w", sh.ID, err)
		}
	}

	return tx.Commit()
}

// GetShifts retrieves shifts matching the provided filter,
// ordered by date and start time.
func (s *SQLiteStore) GetShifts(
	ctx context.Context,
	filter ShiftFilter,
) ([]model.Shift, error) {
	var conditions []string
	var args []interface{}

	if filter.FromDay != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.FromDay)
	}
	if filter.ToDay != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.ToDay)
	}
	if filter.EmployeeID != "" {
		conditions = append(conditions, "employee_id = ?")
		args = append(args, filter.EmployeeID)
	}
	if filter.BusinessID != "" {
		conditions = append(conditions, "business_id = ?")
		args = append(args, filter.BusinessID)
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, st)
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := "SELECT * FROM shifts"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date, start_time"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, sh)
	}

	return shifts, rows.Err()
}

// DeleteShiftsBefore removes cached shifts older than the given day.
// The badge window never looks that far back, so they are dead weight.
func (s *SQLiteStore) DeleteShiftsBefore(ctx context.Context, day string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM shifts WHERE date < ?", day)
	if err != nil {
		return fmt.Errorf("pruning shifts before %s: %w", day, err)
	}
	return nil
}

// scanShift scans a shift row from sqlx.Rows.
func scanShift(rows interface{ Scan(dest ...interface{}) error }) (model.Shift, error) {
	var (
		sh        model.Shift
		postedAt  time.Time
		fetchedAt time.Time
	)

	err := rows.Scan(
		&sh.ID, &sh.BusinessID, &sh.BusinessName, &sh.EmployeeID,
		&sh.Date, &sh.StartTime, &sh.EndTime,
		&sh.Position, &sh.Status, &sh.HourlyRateCents,
		&postedAt, &fetchedAt,
	)
	if err != nil {
		return model.Shift{}, fmt.Errorf("scanning shift row: %w", err)
	}

	sh.PostedAt = postedAt
	sh.FetchedAt = fetchedAt

	return sh, nil
}
