package store

import (
	"context"
	"fmt"
	"slices"

	"go-case-tracker/internal/domain"
	"go-case-tracker/pkg/utils"
)

// Time entries, notes and notifications.

func (s *Store) currentUserID() string {
	if s.currentUser == nil {
		return ""
	}
	return s.currentUser.ID
}

func (s *Store) AddTimeEntry(ctx context.Context, in NewTimeEntry) *domain.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	userID := in.UserID
	if userID == "" {
		userID = s.currentUserID()
	}
	date := in.Date
	if date.IsZero() {
		date = now
	}
	e := domain.TimeEntry{
		ID:          utils.NewID(),
		CaseID:      in.CaseID,
		UserID:      userID,
		Description: in.Description,
		Duration:    in.Duration,
		Date:        date,
		Billable:    in.Billable,
		CreatedAt:   now,
	}
	s.timeEntries = append(s.timeEntries, e)
	save(ctx, s, KeyTimeEntries, s.timeEntries)
	s.touch(KeyTimeEntries, "add")
	s.recordLocked(ctx, e.CaseID, domain.ActionTimeLogged, fmt.Sprintf("%d minutes logged", e.Duration))
	return &e
}

func (s *Store) DeleteTimeEntry(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.timeEntries, func(e domain.TimeEntry) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	s.timeEntries = slices.Delete(s.timeEntries, i, i+1)
	save(ctx, s, KeyTimeEntries, s.timeEntries)
	s.touch(KeyTimeEntries, "delete")
	return true
}

func (s *Store) noteIndex(id string) int {
	return slices.IndexFunc(s.notes, func(n domain.Note) bool { return n.ID == id })
}

func (s *Store) AddNote(ctx context.Context, in NewNote) *domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	userID := in.UserID
	if userID == "" {
		userID = s.currentUserID()
	}
	n := domain.Note{
		ID:        utils.NewID(),
		CaseID:    in.CaseID,
		UserID:    userID,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append(s.notes, n)
	save(ctx, s, KeyNotes, s.notes)
	s.touch(KeyNotes, "add")
	s.recordLocked(ctx, n.CaseID, domain.ActionNoteAdded, "A note was added")
	return &n
}

func (s *Store) UpdateNote(ctx context.Context, id, content string) *domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.noteIndex(id)
	if i < 0 {
		return nil
	}
	s.notes[i].Content = content
	s.notes[i].UpdatedAt = s.now()
	save(ctx, s, KeyNotes, s.notes)
	s.touch(KeyNotes, "update")
	n := s.notes[i]
	return &n
}

func (s *Store) DeleteNote(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.noteIndex(id)
	if i < 0 {
		return false
	}
	s.notes = slices.Delete(s.notes, i, i+1)
	save(ctx, s, KeyNotes, s.notes)
	s.touch(KeyNotes, "delete")
	return true
}

func (s *Store) AddNotification(ctx context.Context, in NewNotification) *domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := domain.Notification{
		ID:            utils.NewID(),
		UserID:        in.UserID,
		Type:          in.Type,
		Title:         in.Title,
		Message:       in.Message,
		RelatedCaseID: in.RelatedCaseID,
		CreatedAt:     s.now(),
	}
	s.notifications = append([]domain.Notification{n}, s.notifications...)
	save(ctx, s, KeyNotifications, s.notifications)
	s.touch(KeyNotifications, "add")
	return &n
}

func (s *Store) MarkNotificationRead(ctx context.Context, id string) *domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.notifications, func(n domain.Notification) bool { return n.ID == id })
	if i < 0 {
		return nil
	}
	s.notifications[i].Read = true
	save(ctx, s, KeyNotifications, s.notifications)
	s.touch(KeyNotifications, "read")
	n := s.notifications[i]
	return &n
}
