package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go-case-tracker/internal/domain"
	"go-case-tracker/pkg/utils"
)

func (s *Store) taskIndex(id string) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool { return t.ID == id })
}

// stampCompletion keeps CompletedAt set exactly while the task is completed.
func stampCompletion(t *domain.Task, now time.Time) {
	if t.Status != domain.TaskStatusCompleted {
		t.CompletedAt = nil
		return
	}
	if t.CompletedAt == nil {
		t.CompletedAt = &now
	}
}

func (s *Store) AddTask(ctx context.Context, in NewTask) *domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.addTaskLocked(ctx, in)
	return &t
}

func (s *Store) addTaskLocked(ctx context.Context, in NewTask) domain.Task {
	now := s.now()
	status := in.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	t := domain.Task{
		ID:          utils.NewID(),
		CaseID:      in.CaseID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		AssignedTo:  in.AssignedTo,
		Deadline:    clonePtr(in.Deadline),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stampCompletion(&t, now)
	s.tasks = append(s.tasks, t)
	save(ctx, s, KeyTasks, s.tasks)
	s.touch(KeyTasks, "add")
	s.recordLocked(ctx, t.CaseID, domain.ActionTaskCreated, fmt.Sprintf("Task \"%s\" was created", t.Title))
	return t.Clone()
}

func (s *Store) UpdateTask(ctx context.Context, id string, u TaskUpdate) *domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return nil
	}
	now := s.now()
	t := s.tasks[i].Clone()
	u.apply(&t)
	stampCompletion(&t, now)
	t.UpdatedAt = now
	s.tasks[i] = t
	save(ctx, s, KeyTasks, s.tasks)
	s.touch(KeyTasks, "update")

	out := t.Clone()
	return &out
}

// CompleteTask marks the task completed and logs it against the task's case.
// Completing an already completed task changes nothing.
func (s *Store) CompleteTask(ctx context.Context, id string) *domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return nil
	}
	if s.tasks[i].Status == domain.TaskStatusCompleted {
		out := s.tasks[i].Clone()
		return &out
	}
	now := s.now()
	t := s.tasks[i].Clone()
	t.Status = domain.TaskStatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
	s.tasks[i] = t
	save(ctx, s, KeyTasks, s.tasks)
	s.touch(KeyTasks, "complete")
	s.recordLocked(ctx, t.CaseID, domain.ActionTaskCompleted, fmt.Sprintf("Task \"%s\" was completed", t.Title))

	out := t.Clone()
	return &out
}

func (s *Store) DeleteTask(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	save(ctx, s, KeyTasks, s.tasks)
	s.touch(KeyTasks, "delete")
	return true
}

func (s *Store) GetTaskByID(id string) *domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.taskIndex(id)
	if i < 0 {
		return nil
	}
	out := s.tasks[i].Clone()
	return &out
}

// ApplyTaskTemplates creates the default checklist for the case's practice
// area, assigned to assignee (or the first case assignee when empty).
// Unknown cases yield nil.
func (s *Store) ApplyTaskTemplates(ctx context.Context, caseID, assignee string) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.caseIndex(caseID)
	if i < 0 {
		return nil
	}
	c := s.cases[i]
	if assignee == "" && len(c.AssignedTo) > 0 {
		assignee = c.AssignedTo[0]
	}
	var out []domain.Task
	for _, title := range c.Type.TaskTemplates() {
		out = append(out, s.addTaskLocked(ctx, NewTask{
			CaseID:     caseID,
			Title:      title,
			Priority:   domain.PriorityMedium,
			AssignedTo: assignee,
		}))
	}
	return out
}
