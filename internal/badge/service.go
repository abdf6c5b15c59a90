// Package badge computes notification badges from the locally cached
// marketplace data and the user's viewed-state. Badges are recomputed on
// every poll; acknowledgment only ever happens through MarkSeen, never
// from the polling path.
package badge

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/shiftdesk/shiftdesk/internal/model"
	"github.com/shiftdesk/shiftdesk/internal/store"
	"github.com/shiftdesk/shiftdesk/internal/viewed"
	"github.com/shiftdesk/shiftdesk/internal/week"
)

// Badge is the rendered state of one notification category. Count is the
// number of items behind the badge; Unseen reports whether the badge
// should be shown at all.
type Badge struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
	Latest   string         `json:"latest,omitempty"`
	Unseen   bool           `json:"unseen"`
}

// Identity describes the account badges are computed for.
type Identity struct {
	UserID     string
	Role       string
	BusinessID string
}

// Windows holds the week windows badges are computed over: Schedule
// bounds the shift badge, Hours bounds the earnings badge.
type Windows struct {
	Schedule week.Window
	Hours    week.Window
}

// Service computes badges for a fixed set of categories. Computation is
// fail-safe: a category whose data cannot be read yields a zero badge
// rather than an error, so one bad query never takes down the refresh
// loop.
type Service struct {
	store      store.Store
	tracker    *viewed.Tracker
	id         Identity
	windows    Windows
	categories []model.Category
	log        *logrus.Entry
}

// NewService creates a badge service for the given identity. The windows
// bound which weeks contribute to the schedule and earnings badges;
// categories lists which badges this account shows at all.
func NewService(
	st store.Store,
	tracker *viewed.Tracker,
	id Identity,
	windows Windows,
	categories []model.Category,
) *Service {
	return &Service{
		store:      st,
		tracker:    tracker,
		id:         id,
		windows:    windows,
		categories: categories,
		log:        logrus.WithField("component", "badge"),
	}
}

// Refresh recomputes every configured badge. It never fails: categories
// that cannot be computed come back as zero badges.
func (s *Service) Refresh(ctx context.Context) []Badge {
	badges := make([]Badge, 0, len(s.categories))
	for _, cat := range s.categories {
		badges = append(badges, s.compute(ctx, cat))
	}
	return badges
}

// compute dispatches to the per-category badge logic.
func (s *Service) compute(ctx context.Context, cat model.Category) Badge {
	var (
		b   Badge
		err error
	)

	switch cat {
	case model.CategorySchedules:
		b, err = s.scheduleBadge(ctx)
	case model.CategoryJoinRequests:
		b, err = s.joinRequestBadge(ctx)
	case model.CategoryEarnings:
		b, err = s.earningsBadge(ctx)
	case model.CategoryTickets:
		b, err = s.ticketBadge(ctx)
	default:
		return Badge{Category: cat}
	}

	if err != nil {
		s.log.WithError(err).WithField("category", cat).
			Warn("badge computation failed, showing zero")
		return Badge{Category: cat}
	}
	return b
}

// scheduleBadge reports unseen shift activity. Viewed-state is scoped per
// week: each week in the window carries its own watermark, so opening one
// week does not acknowledge another.
func (s *Service) scheduleBadge(ctx context.Context) (Badge, error) {
	current := week.Current()
	from := current.AddWeeks(-s.windows.Schedule.Back)
	to := current.AddWeeks(s.windows.Schedule.Forward)

	shifts, err := s.store.GetShifts(ctx, store.ShiftFilter{
		FromDay:    from.String(),
		ToDay:      week.DayString(to.End()),
		EmployeeID: s.employeeFilter(),
		BusinessID: s.businessFilter(),
	})
	if err != nil {
		return Badge{}, err
	}

	b := Badge{Category: model.CategorySchedules}
	if len(shifts) == 0 {
		s.clearWindow(ctx, model.CategorySchedules, from, to)
		return b, nil
	}

	// Bucket shifts by week and compare each week's watermark separately.
	type weekActivity struct {
		count  int
		latest string
	}
	byWeek := make(map[string]*weekActivity)
	for _, sh := range shifts {
		day, err := week.ParseDay(sh.Date)
		if err != nil {
			continue
		}
		wk := week.StartOf(day).String()
		a := byWeek[wk]
		if a == nil {
			a = &weekActivity{}
			byWeek[wk] = a
		}
		a.count++
		a.latest = laterWatermark(a.latest, watermarkFor(sh.PostedAt))
	}

	for wk, a := range byWeek {
		b.Latest = laterWatermark(b.Latest, a.latest)
		key := s.key(model.CategorySchedules, wk)
		if !s.tracker.HasViewed(ctx, key, a.latest) {
			b.Unseen = true
			b.Count += a.count
		}
	}

	// Weeks that emptied out are forgotten so reappearing shifts count
	// as unseen.
	for wk := from; !wk.After(to); wk = wk.Next() {
		if byWeek[wk.String()] == nil {
			s.clear(ctx, s.key(model.CategorySchedules, wk.String()))
		}
	}

	return b, nil
}

// joinRequestBadge reports unseen join request activity. A business sees
// incoming pending requests; an employee sees decisions on their own.
func (s *Service) joinRequestBadge(ctx context.Context) (Badge, error) {
	filter := store.JoinRequestFilter{}
	if s.id.Role == model.RoleBusiness {
		filter.BusinessID = s.id.BusinessID
		filter.Statuses = []string{model.JoinRequestPending}
	} else {
		filter.EmployeeID = s.id.UserID
		filter.Statuses = []string{model.JoinRequestApproved, model.JoinRequestDeclined}
	}

	reqs, err := s.store.GetJoinRequests(ctx, filter)
	if err != nil {
		return Badge{}, err
	}

	b := Badge{Category: model.CategoryJoinRequests}
	key := s.key(model.CategoryJoinRequests, "")

	if len(reqs) == 0 {
		s.clear(ctx, key)
		return b, nil
	}

	for _, r := range reqs {
		b.Latest = laterWatermark(b.Latest, watermarkFor(r.Watermark()))
	}
	if !s.tracker.HasViewed(ctx, key, b.Latest) {
		b.Unseen = true
		b.Count = len(reqs)
	}
	return b, nil
}

// earningsBadge reports unseen earnings approvals inside the hours window.
func (s *Service) earningsBadge(ctx context.Context) (Badge, error) {
	current := week.Current()
	weeks := make([]string, 0, s.windows.Hours.Back+s.windows.Hours.Forward+1)
	for wk := current.AddWeeks(-s.windows.Hours.Back); !wk.After(current.AddWeeks(s.windows.Hours.Forward)); wk = wk.Next() {
		weeks = append(weeks, wk.String())
	}

	entries, err := s.store.GetEarnings(ctx, store.EarningsFilter{
		EmployeeID: s.employeeFilter(),
		BusinessID: s.businessFilter(),
		WeekStarts: weeks,
	})
	if err != nil {
		return Badge{}, err
	}

	b := Badge{Category: model.CategoryEarnings}
	key := s.key(model.CategoryEarnings, "")

	approved := 0
	for _, e := range entries {
		if e.ApprovedAt == nil {
			continue
		}
		approved++
		b.Latest = laterWatermark(b.Latest, watermarkFor(*e.ApprovedAt))
	}

	if approved == 0 {
		s.clear(ctx, key)
		return b, nil
	}

	if !s.tracker.HasViewed(ctx, key, b.Latest) {
		b.Unseen = true
		b.Count = approved
	}
	return b, nil
}

// ticketBadge reports unresolved support tickets for admin accounts.
func (s *Service) ticketBadge(ctx context.Context) (Badge, error) {
	tickets, err := s.store.GetTickets(ctx, store.TicketFilter{
		Statuses: []string{model.TicketOpen, model.TicketInProgress},
	})
	if err != nil {
		return Badge{}, err
	}

	b := Badge{Category: model.CategoryTickets}
	key := s.key(model.CategoryTickets, "")

	if len(tickets) == 0 {
		s.clear(ctx, key)
		return b, nil
	}

	for _, t := range tickets {
		b.Latest = laterWatermark(b.Latest, watermarkFor(t.UpdatedAt))
	}
	if !s.tracker.HasViewed(ctx, key, b.Latest) {
		b.Unseen = true
		b.Count = len(tickets)
	}
	return b, nil
}

// MarkSeen acknowledges a category up to its current watermark. For
// schedules an empty scope acknowledges every week in the window, the
// same way opening the schedule view shows the whole window at once.
func (s *Service) MarkSeen(ctx context.Context, cat model.Category, scope string) error {
	if cat == model.CategorySchedules && scope == "" {
		current := week.Current()
		from := current.AddWeeks(-s.windows.Schedule.Back)
		to := current.AddWeeks(s.windows.Schedule.Forward)
		for wk := from; !wk.After(to); wk = wk.Next() {
			if err := s.MarkSeen(ctx, cat, wk.String()); err != nil {
				return err
			}
		}
		return nil
	}

	latest, err := s.latestFor(ctx, cat, scope)
	if err != nil {
		return err
	}
	return s.tracker.MarkViewed(ctx, s.key(cat, scope), latest)
}

// latestFor computes the current watermark for a category/scope from the
// cached data, so acknowledgment covers exactly what the user can see.
func (s *Service) latestFor(ctx context.Context, cat model.Category, scope string) (string, error) {
	switch cat {
	case model.CategorySchedules:
		wk, err := week.Parse(scope)
		if err != nil {
			return "", err
		}
		shifts, err := s.store.GetShifts(ctx, store.ShiftFilter{
			FromDay:    wk.String(),
			ToDay:      week.DayString(wk.End()),
			EmployeeID: s.employeeFilter(),
			BusinessID: s.businessFilter(),
		})
		if err != nil {
			return "", err
		}
		latest := ""
		for _, sh := range shifts {
			latest = laterWatermark(latest, watermarkFor(sh.PostedAt))
		}
		return latest, nil
	default:
		b, err := s.badgeForCategory(ctx, cat)
		if err != nil {
			return "", err
		}
		return b.Latest, nil
	}
}

// badgeForCategory computes a single category badge without the fail-safe
// wrapper, for callers that need the error.
func (s *Service) badgeForCategory(ctx context.Context, cat model.Category) (Badge, error) {
	switch cat {
	case model.CategorySchedules:
		return s.scheduleBadge(ctx)
	case model.CategoryJoinRequests:
		return s.joinRequestBadge(ctx)
	case model.CategoryEarnings:
		return s.earningsBadge(ctx)
	case model.CategoryTickets:
		return s.ticketBadge(ctx)
	}
	return Badge{Category: cat}, nil
}

// key builds the viewed-state key for this identity.
func (s *Service) key(cat model.Category, scope string) viewed.Key {
	return viewed.Key{UserID: s.id.UserID, Category: cat, Scope: scope}
}

// clear drops a viewed-state record, logging rather than failing when the
// store is unavailable.
func (s *Service) clear(ctx context.Context, key viewed.Key) {
	if err := s.tracker.Clear(ctx, key); err != nil {
		s.log.WithError(err).Debug("clearing viewed state failed")
	}
}

// clearWindow drops the per-week records across a week range.
func (s *Service) clearWindow(ctx context.Context, cat model.Category, from, to week.Start) {
	for wk := from; !wk.After(to); wk = wk.Next() {
		s.clear(ctx, s.key(cat, wk.String()))
	}
}

// employeeFilter returns the employee-side store filter for this identity.
func (s *Service) employeeFilter() string {
	if s.id.Role == model.RoleEmployee {
		return s.id.UserID
	}
	return ""
}

// businessFilter returns the business-side store filter for this identity.
func (s *Service) businessFilter() string {
	if s.id.Role == model.RoleBusiness {
		return s.id.BusinessID
	}
	return ""
}
