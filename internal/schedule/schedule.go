// Package schedule assembles weekly schedule views from cached shifts and
// enforces the editing window policy.
package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shiftdesk/shiftdesk/internal/model"
	"github.com/shiftdesk/shiftdesk/internal/store"
	"github.com/shiftdesk/shiftdesk/internal/week"
)

// DaySchedule is one day of a weekly view.
type DaySchedule struct {
	Date   string        `json:"date"`
	Shifts []model.Shift `json:"shifts,omitempty"`
	Total  time.Duration `json:"total"`
}

// BusinessHours sums a week's shifts at a single business.
type BusinessHours struct {
	BusinessID   string        `json:"business_id"`
	BusinessName string        `json:"business_name"`
	Shifts       int           `json:"shifts"`
	Total        time.Duration `json:"total"`
}

// WeekView is a full week of shifts bucketed by day and by business.
type WeekView struct {
	Week       week.Start      `json:"-"`
	WeekStart  string          `json:"week_start"`
	Label      string          `json:"label"`
	Days       [7]DaySchedule  `json:"days"`
	Businesses []BusinessHours `json:"businesses,omitempty"`
	Total      time.Duration   `json:"total"`
	Editable   bool            `json:"editable"`
}

// Service builds schedule views for one account from the local cache.
type Service struct {
	store      store.Store
	employeeID string
	businessID string
	window     week.Window
}

// NewService creates a schedule service. Exactly one of employeeID or
// businessID should be set, matching the account role; window is the
// schedule editing window from configuration.
func NewService(st store.Store, employeeID, businessID string, window week.Window) *Service {
	return &Service{
		store:      st,
		employeeID: employeeID,
		businessID: businessID,
		window:     window,
	}
}

// WeekView loads the cached shifts for wk and buckets them by day and
// business.
func (s *Service) WeekView(ctx context.Context, wk week.Start) (*WeekView, error) {
	shifts, err := s.store.GetShifts(ctx, store.ShiftFilter{
		FromDay:    wk.String(),
		ToDay:      week.DayString(wk.End()),
		EmployeeID: s.employeeID,
		BusinessID: s.businessID,
	})
	if err != nil {
		return nil, fmt.Errorf("loading shifts for week %s: %w", wk, err)
	}

	view := BuildWeekView(wk, shifts)
	view.Editable = s.CanEdit(wk)
	return view, nil
}

// CanEdit reports whether wk falls inside the configured editing window.
func (s *Service) CanEdit(wk week.Start) bool {
	return s.window.Contains(week.Current(), wk)
}

// CanNavigateForward reports whether paging past wk is allowed: the week
// after wk must not lie beyond the editing window's forward bound.
func (s *Service) CanNavigateForward(wk week.Start) bool {
	return s.window.Contains(week.Current(), wk.Next())
}

// BuildWeekView buckets shifts into the seven days of wk and sums
// durations per day, per business, and for the whole week. Shifts dated
// outside wk are ignored.
func BuildWeekView(wk week.Start, shifts []model.Shift) *WeekView {
	view := &WeekView{
		Week:      wk,
		WeekStart: wk.String(),
		Label:     wk.FormatRange(),
	}
	for i := range view.Days {
		view.Days[i].Date = week.DayString(wk.Day(i))
	}

	byBusiness := make(map[string]*BusinessHours)
	for _, sh := range shifts {
		day, err := week.ParseDay(sh.Date)
		if err != nil {
			continue
		}
		idx := wk.DayIndex(day)
		if idx < 0 {
			continue
		}

		d := sh.Duration()
		view.Days[idx].Shifts = append(view.Days[idx].Shifts, sh)
		view.Days[idx].Total += d
		view.Total += d

		b := byBusiness[sh.BusinessID]
		if b == nil {
			b = &BusinessHours{
				BusinessID:   sh.BusinessID,
				BusinessName: sh.BusinessName,
			}
			byBusiness[sh.BusinessID] = b
		}
		b.Shifts++
		b.Total += d
	}

	for _, b := range byBusiness {
		view.Businesses = append(view.Businesses, *b)
	}
	sort.Slice(view.Businesses, func(i, j int) bool {
		return view.Businesses[i].BusinessName < view.Businesses[j].BusinessName
	})

	return view
}
