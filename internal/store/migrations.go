package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS shifts (
	id                TEXT PRIMARY KEY,
	business_id       TEXT NOT NULL,
	business_name     TEXT NOT NULL DEFAULT '',
	employee_id       TEXT NOT NULL DEFAULT '',
	date              TEXT NOT NULL,
	start_time        TEXT NOT NULL,
	end_time          TEXT NOT NULL,
	position          TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL DEFAULT 'posted',
	hourly_rate_cents INTEGER NOT NULL DEFAULT 0,
	posted_at         DATETIME NOT NULL,
	fetched_at        DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS join_requests (
	id            TEXT PRIMARY KEY,
	employee_id   TEXT NOT NULL,
	employee_name TEXT NOT NULL DEFAULT '',
	business_id   TEXT NOT NULL,
	business_name TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT 'pending',
	note          TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL,
	decided_at    DATETIME,
	fetched_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS earnings (
	id            TEXT PRIMARY KEY,
	employee_id   TEXT NOT NULL,
	business_id   TEXT NOT NULL,
	business_name TEXT NOT NULL DEFAULT '',
	week_start    TEXT NOT NULL,
	hours         REAL NOT NULL DEFAULT 0,
	rate_cents    INTEGER NOT NULL DEFAULT 0,
	gross_cents   INTEGER NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT 'pending',
	approved_at   DATETIME,
	fetched_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS viewed_state (
	key        TEXT PRIMARY KEY,
	watermark  TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_shifts_date ON shifts(date);
CREATE INDEX IF NOT EXISTS idx_shifts_employee ON shifts(employee_id, date);
CREATE INDEX IF NOT EXISTS idx_shifts_business ON shifts(business_id, date);
CREATE INDEX IF NOT EXISTS idx_join_requests_business ON join_requests(business_id, status);
CREATE INDEX IF NOT EXISTS idx_join_requests_employee ON join_requests(employee_id);
CREATE INDEX IF NOT EXISTS idx_earnings_employee ON earnings(employee_id, week_start);
CREATE INDEX IF NOT EXISTS idx_earnings_business ON earnings(business_id, week_start);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS tickets (
	id             TEXT PRIMARY KEY,
	requester_id   TEXT NOT NULL,
	requester_name TEXT NOT NULL DEFAULT '',
	subject        TEXT NOT NULL,
	body           TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT 'open',
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL,
	fetched_at     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets(status);
CREATE INDEX IF NOT EXISTS idx_tickets_updated_at ON tickets(updated_at);
CREATE INDEX IF NOT EXISTS idx_shifts_status ON shifts(status, date);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
