package model

// Category identifies a notification-contributing collection. Badge counts
// and viewed-state records are tracked per category.
type Category string

const (
	CategorySchedules    Category = "schedules"
	CategoryJoinRequests Category = "join_requests"
	CategoryEarnings     Category = "earnings"

	// CategoryTickets is the admin-only support queue. It follows the same
	// badge and viewed-state rules as the employee-facing categories.
	CategoryTickets Category = "support_tickets"
)

// AllCategories returns every known category in display order.
func AllCategories() []Category {
	return []Category{
		CategorySchedules,
		CategoryJoinRequests,
		CategoryEarnings,
		CategoryTickets,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySchedules, CategoryJoinRequests, CategoryEarnings, CategoryTickets:
		return true
	}
	return false
}

// DefaultCategories returns the categories a role polls when the config
// does not list them explicitly.
func DefaultCategories(role string) []Category {
	switch role {
	case RoleBusiness:
		return []Category{CategorySchedules, CategoryJoinRequests}
	case RoleAdmin:
		return []Category{CategoryTickets}
	default:
		return []Category{CategorySchedules, CategoryJoinRequests, CategoryEarnings}
	}
}
