// Package view derives permission-scoped, filtered, sorted and aggregated
// read models from a store snapshot. Nothing here mutates its inputs or
// reads the wall clock.
package view

import (
	"slices"
	"strings"

	"go-case-tracker/internal/authz"
	"go-case-tracker/internal/domain"
	"go-case-tracker/internal/store"
)

// CaseFilter fields are ANDed; zero values match everything.
type CaseFilter struct {
	Status     domain.CaseStatus
	Type       domain.CaseType
	AssignedTo string
	ClientID   string
	Search     string // case-insensitive over title, case number and description
}

func (f CaseFilter) match(c domain.Case) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	if f.AssignedTo != "" && !c.IsAssignedTo(f.AssignedTo) {
		return false
	}
	if f.ClientID != "" && c.ClientID != f.ClientID {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Title), term) &&
			!strings.Contains(strings.ToLower(c.CaseNumber), term) &&
			!strings.Contains(strings.ToLower(c.Description), term) {
			return false
		}
	}
	return true
}

type CaseView struct {
	List     []domain.Case // most recently updated first
	Open     []domain.Case
	Closed   []domain.Case
	ByStatus map[domain.CaseStatus][]domain.Case // every status present
}

// Cases drops what principal cannot view, applies f and sorts by updatedAt
// descending.
func Cases(snap store.Snapshot, principal *domain.User, f CaseFilter) CaseView {
	az := authz.New(principal)
	v := CaseView{ByStatus: make(map[domain.CaseStatus][]domain.Case, len(domain.CaseStatuses()))}
	for _, s := range domain.CaseStatuses() {
		v.ByStatus[s] = []domain.Case{}
	}

	for _, c := range snap.Cases {
		if az.CanViewCase(c) && f.match(c) {
			v.List = append(v.List, c)
		}
	}
	slices.SortStableFunc(v.List, func(a, b domain.Case) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	for _, c := range v.List {
		if c.IsOpen() {
			v.Open = append(v.Open, c)
		} else {
			v.Closed = append(v.Closed, c)
		}
		if _, ok := v.ByStatus[c.Status]; ok {
			v.ByStatus[c.Status] = append(v.ByStatus[c.Status], c)
		}
	}
	return v
}

func ListCases(snap store.Snapshot, principal *domain.User, f CaseFilter) []domain.Case {
	return Cases(snap, principal, f).List
}

// ClientCases lists every case of a client, unscoped, newest first.
func ClientCases(snap store.Snapshot, clientID string) []domain.Case {
	var out []domain.Case
	for _, c := range snap.Cases {
		if c.ClientID == clientID {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Case) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}
