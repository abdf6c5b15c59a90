package marketplace

// Account is the response from GET /api/v1/me.
type Account struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	BusinessID  string `json:"business_id,omitempty"`
}

// ShiftsResponse is the response from GET /api/v1/shifts.
type ShiftsResponse struct {
	Shifts   []ShiftRecord `json:"shifts"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int           `json:"total"`
}

// ShiftRecord represents a single shift from the REST API.
type ShiftRecord struct {
	ID              string `json:"id"`
	BusinessID      string `json:"business_id"`
	BusinessName    string `json:"business_name"`
	EmployeeID      string `json:"employee_id,omitempty"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Position        string `json:"position"`
	Status          string `json:"status"`
	HourlyRateCents int64  `json:"hourly_rate_cents"`
	PostedAt        string `json:"posted_at"`
}

// JoinRequestsResponse is the response from GET /api/v1/join-requests.
type JoinRequestsResponse struct {
	Requests []JoinRequestRecord `json:"requests"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Total    int                 `json:"total"`
}

// JoinRequestRecord represents a single join request from the REST API.
type JoinRequestRecord struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	BusinessID   string `json:"business_id"`
	BusinessName string `json:"business_name"`
	Status       string `json:"status"`
	Note         string `json:"note,omitempty"`
	CreatedAt    string `json:"created_at"`
	DecidedAt    string `json:"decided_at,omitempty"`
}

// EarningsResponse is the response from GET /api/v1/earnings.
type EarningsResponse struct {
	Entries  []EarningsRecord `json:"entries"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int              `json:"total"`
}

// EarningsRecord represents a single weekly earnings entry from the REST API.
type EarningsRecord struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	BusinessID   string  `json:"business_id"`
	BusinessName string  `json:"business_name"`
	WeekStart    string  `json:"week_start"`
	Hours        float64 `json:"hours"`
	RateCents    int64   `json:"rate_cents"`
	GrossCents   int64   `json:"gross_cents"`
	Status       string  `json:"status"`
	ApprovedAt   string  `json:"approved_at,omitempty"`
}

// TicketsResponse is the response from GET /api/v1/tickets.
type TicketsResponse struct {
	Tickets  []TicketRecord `json:"tickets"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int            `json:"total"`
}

// TicketRecord represents a single support ticket from the REST API.
type TicketRecord struct {
	ID            string `json:"id"`
	RequesterID   string `json:"requester_id"`
	RequesterName string `json:"requester_name"`
	Subject       string `json:"subject"`
	Body          string `json:"body,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// ErrorResponse is the standard marketplace error response format.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
