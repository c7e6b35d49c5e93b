package view

import (
	"slices"
	"time"

	"go-case-tracker/internal/authz"
	"go-case-tracker/internal/domain"
	"go-case-tracker/internal/store"
)

type TimeFilter struct {
	CaseID   string
	UserID   string
	Billable *bool      // nil matches both
	From     *time.Time // inclusive
	To       *time.Time // inclusive
}

func (f TimeFilter) match(e domain.TimeEntry) bool {
	if f.CaseID != "" && e.CaseID != f.CaseID {
		return false
	}
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if f.Billable != nil && e.Billable != *f.Billable {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	return true
}

// Totals are minutes.
type Totals struct {
	All       int `json:"all"`
	Billable  int `json:"billable"`
	Today     int `json:"today"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
}

// Sum adds up entries. Period totals count entries dated on or after the
// start of the period.
func Sum(entries []domain.TimeEntry, now time.Time) Totals {
	today, week, month := StartOfDay(now), StartOfWeek(now), StartOfMonth(now)
	var t Totals
	for _, e := range entries {
		t.All += e.Duration
		if e.Billable {
			t.Billable += e.Duration
		}
		if !e.Date.Before(today) {
			t.Today += e.Duration
		}
		if !e.Date.Before(week) {
			t.ThisWeek += e.Duration
		}
		if !e.Date.Before(month) {
			t.ThisMonth += e.Duration
		}
	}
	return t
}

type TimeView struct {
	List   []domain.TimeEntry // newest date first
	Totals Totals             // over List
}

func visibleEntries(snap store.Snapshot, principal *domain.User) []domain.TimeEntry {
	az := authz.New(principal)
	if az.Principal() == nil || !az.Principal().IsActive {
		return nil
	}
	if az.CanViewAllTime() {
		return slices.Clone(snap.TimeEntries)
	}
	var out []domain.TimeEntry
	for _, e := range snap.TimeEntries {
		if e.UserID == principal.ID {
			out = append(out, e)
		}
	}
	return out
}

// TimeEntries shows all entries to holders of time:view:all and only their
// own to everyone else.
func TimeEntries(snap store.Snapshot, principal *domain.User, f TimeFilter, now time.Time) TimeView {
	var v TimeView
	for _, e := range visibleEntries(snap, principal) {
		if f.match(e) {
			v.List = append(v.List, e)
		}
	}
	slices.SortStableFunc(v.List, func(a, b domain.TimeEntry) int { return b.Date.Compare(a.Date) })
	v.Totals = Sum(v.List, now)
	return v
}

// DashboardTotals sums the visibility-scoped entries, ignoring ad-hoc filters.
func DashboardTotals(snap store.Snapshot, principal *domain.User, now time.Time) Totals {
	return Sum(visibleEntries(snap, principal), now)
}

// CaseTimeTotal is the unscoped minute total logged against a case.
func CaseTimeTotal(snap store.Snapshot, caseID string) int {
	total := 0
	for _, e := range snap.TimeEntries {
		if e.CaseID == caseID {
			total += e.Duration
		}
	}
	return total
}
