package store

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go-case-tracker/internal/domain"
	"go-case-tracker/internal/lifecycle"
	"go-case-tracker/pkg/utils"
)

// FormatCaseNumber renders CASE-<year>-<seq>, seq padded to at least 3 digits.
func FormatCaseNumber(year, seq int) string {
	return fmt.Sprintf("CASE-%d-%03d", year, seq)
}

// nextCaseNumber continues after the highest sequence issued in year. Numbers
// from other years, or that do not parse, are ignored.
func nextCaseNumber(cases []domain.Case, year int) string {
	prefix := fmt.Sprintf("CASE-%d-", year)
	last := 0
	for _, c := range cases {
		rest, ok := strings.CutPrefix(c.CaseNumber, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			continue
		}
		last = max(last, n)
	}
	return FormatCaseNumber(year, last+1)
}

func (s *Store) caseIndex(id string) int {
	return slices.IndexFunc(s.cases, func(c domain.Case) bool { return c.ID == id })
}

// AddCase creates a case in status new with a fresh case number. Without
// explicit assignees the creator is assigned.
func (s *Store) AddCase(ctx context.Context, in NewCase) *domain.Case {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	createdBy := in.CreatedBy
	if createdBy == "" && s.currentUser != nil {
		createdBy = s.currentUser.ID
	}
	assigned := dedupe(in.AssignedTo)
	if len(assigned) == 0 && createdBy != "" {
		assigned = []string{createdBy}
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	c := domain.Case{
		ID:          utils.NewID(),
		CaseNumber:  nextCaseNumber(s.cases, now.Year()),
		Title:       in.Title,
		Description: in.Description,
		ClientID:    in.ClientID,
		Type:        in.Type,
		Status:      domain.CaseStatusNew,
		Priority:    priority,
		AssignedTo:  assigned,
		Deadline:    clonePtr(in.Deadline),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.cases = append(s.cases, c)
	save(ctx, s, KeyCases, s.cases)
	s.touch(KeyCases, "add")
	s.recordLocked(ctx, c.ID, domain.ActionCaseCreated, fmt.Sprintf("Case \"%s\" was created", c.Title))

	out := c.Clone()
	return &out
}

// UpdateCase merges u into the case. Unknown ids return nil.
func (s *Store) UpdateCase(ctx context.Context, id string, u CaseUpdate) *domain.Case {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.caseIndex(id)
	if i < 0 {
		return nil
	}
	title := s.cases[i].Title
	c := s.cases[i].Clone()
	u.apply(&c)
	c.UpdatedAt = s.now()
	s.cases[i] = c
	save(ctx, s, KeyCases, s.cases)
	s.touch(KeyCases, "update")
	s.recordLocked(ctx, id, domain.ActionCaseUpdated, fmt.Sprintf("Case \"%s\" was updated", title))

	out := c.Clone()
	return &out
}

// DeleteCase removes the case only; its tasks, entries and activities stay.
func (s *Store) DeleteCase(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.caseIndex(id)
	if i < 0 {
		return false
	}
	s.cases = slices.Delete(s.cases, i, i+1)
	save(ctx, s, KeyCases, s.cases)
	s.touch(KeyCases, "delete")
	return true
}

// ChangeCaseStatus applies a lifecycle transition. A transition outside the
// table returns an error wrapping domain.ErrInvalidTransition and changes
// nothing. Unknown ids return (nil, nil).
func (s *Store) ChangeCaseStatus(ctx context.Context, id string, to domain.CaseStatus) (*domain.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.caseIndex(id)
	if i < 0 {
		return nil, nil
	}
	next, err := lifecycle.Transition(s.cases[i].Clone(), to, s.now())
	if err != nil {
		return nil, fmt.Errorf("case %s: %w", s.cases[i].CaseNumber, err)
	}
	s.cases[i] = next
	save(ctx, s, KeyCases, s.cases)
	s.touch(KeyCases, "status")
	s.recordLocked(ctx, id, domain.ActionStatusChanged, fmt.Sprintf("Status changed to \"%s\"", to.Label()))

	out := next.Clone()
	return &out, nil
}

func (s *Store) GetCaseByID(id string) *domain.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.caseIndex(id)
	if i < 0 {
		return nil
	}
	out := s.cases[i].Clone()
	return &out
}
