// Package contracts/marketplace maps the marketplace REST API onto the
// source behavior. All endpoints sit under {baseUrl}/api/v1/ with
// Authorization: Bearer <token>.
package contracts

// Key endpoints mapped to Source implementations:
//
// ValidateConnection:
//   GET /api/v1/me
//   Returns: { id, display_name, email, role, business_id }
//
// Schedules source:
//   GET /api/v1/shifts?from=<sunday>&to=<saturday>&page=N&page_size=M
//     plus employee_id=<id> (employee accounts) or business_id=<id>
//     (business accounts)
//   Returns: { shifts: [...], page, page_size, total }
//   Paged until every record in [from, to] is fetched; rows dated before
//   the window's back edge are pruned from the cache after upsert.
//   Watermark: newest posted_at.
//
// Join-requests source:
//   GET /api/v1/join-requests?page=N&page_size=M
//     plus business_id=<id> or employee_id=<id> by role
//   Returns: { requests: [...], page, page_size, total }
//   Watermark: decided_at when set, else created_at.
//
// Earnings source:
//   GET /api/v1/earnings?from_week=<sunday>&to_week=<sunday>&page=N&page_size=M
//     plus employee_id=<id> or business_id=<id> by role
//   Returns: { entries: [...], page, page_size, total }
//   Watermark: newest approved_at.
//
// Tickets source (admin accounts):
//   GET /api/v1/tickets?status=open&status=in_progress&page=N&page_size=M
//   Returns: { tickets: [...], page, page_size, total }
//   Watermark: newest updated_at.
//
// Error shape: { code, message }. 401 marks the source auth-expired and
// is surfaced distinctly from transient failures; 429 honors Retry-After.
