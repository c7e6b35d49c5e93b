package store

import (
	"slices"

	"go-case-tracker/internal/domain"
)

// Snapshot is a point-in-time copy of every collection. It shares no memory
// with the store.
type Snapshot struct {
	CurrentUser   *domain.User
	Users         []domain.User
	Cases         []domain.Case
	Clients       []domain.Client
	Tasks         []domain.Task
	TimeEntries   []domain.TimeEntry
	Activities    []domain.Activity
	Notes         []domain.Note
	Notifications []domain.Notification
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		CurrentUser:   clonePtr(s.currentUser),
		Users:         slices.Clone(s.users),
		Clients:       slices.Clone(s.clients),
		TimeEntries:   slices.Clone(s.timeEntries),
		Activities:    slices.Clone(s.activities),
		Notes:         slices.Clone(s.notes),
		Notifications: slices.Clone(s.notifications),
	}
	snap.Cases = make([]domain.Case, len(s.cases))
	for i, c := range s.cases {
		snap.Cases[i] = c.Clone()
	}
	snap.Tasks = make([]domain.Task, len(s.tasks))
	for i, t := range s.tasks {
		snap.Tasks[i] = t.Clone()
	}
	return snap
}

func (snap Snapshot) CaseByID(id string) (domain.Case, bool) {
	i := slices.IndexFunc(snap.Cases, func(c domain.Case) bool { return c.ID == id })
	if i < 0 {
		return domain.Case{}, false
	}
	return snap.Cases[i], true
}
