package view

import (
	"slices"
	"time"

	"go-case-tracker/internal/authz"
	"go-case-tracker/internal/domain"
	"go-case-tracker/internal/store"
)

type TaskFilter struct {
	Status      domain.TaskStatus
	Priority    domain.Priority
	CaseID      string
	AssignedTo  string
	OverdueOnly bool
	DueSoonOnly bool
	DueSoonDays int // 0 means DefaultDueSoonDays
}

func (f TaskFilter) dueSoonDays() int {
	if f.DueSoonDays <= 0 {
		return DefaultDueSoonDays
	}
	return f.DueSoonDays
}

func (f TaskFilter) match(t domain.Task, now time.Time) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.CaseID != "" && t.CaseID != f.CaseID {
		return false
	}
	if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
		return false
	}
	if f.OverdueOnly && !TaskOverdue(t, now) {
		return false
	}
	if f.DueSoonOnly && !TaskDueSoon(t, now, f.dueSoonDays()) {
		return false
	}
	return true
}

// TaskOverdue is IsOverdue for tasks that are still open.
func TaskOverdue(t domain.Task, now time.Time) bool {
	return !t.Status.IsClosed() && IsOverdue(t.Deadline, now)
}

func TaskDueSoon(t domain.Task, now time.Time, days int) bool {
	return !t.Status.IsClosed() && IsDueSoon(t.Deadline, now, days)
}

// compareTasks orders by deadline ascending with undated tasks last; ties go
// to the most recently created.
func compareTasks(a, b domain.Task) int {
	switch {
	case a.Deadline != nil && b.Deadline != nil:
		if c := a.Deadline.Compare(*b.Deadline); c != 0 {
			return c
		}
	case a.Deadline != nil:
		return -1
	case b.Deadline != nil:
		return 1
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

// SortTasks sorts in place, stably.
func SortTasks(tasks []domain.Task) {
	slices.SortStableFunc(tasks, compareTasks)
}

type TaskView struct {
	List       []domain.Task
	Pending    []domain.Task
	InProgress []domain.Task
	Completed  []domain.Task
	Overdue    []domain.Task
}

// Tasks shows every task to holders of tasks:view:all and only their own
// tasks to everyone else.
func Tasks(snap store.Snapshot, principal *domain.User, f TaskFilter, now time.Time) TaskView {
	var v TaskView
	az := authz.New(principal)
	if az.Principal() == nil || !az.Principal().IsActive {
		return v
	}
	all := az.CanViewAllTasks()
	for _, t := range snap.Tasks {
		if !all && t.AssignedTo != principal.ID {
			continue
		}
		if f.match(t, now) {
			v.List = append(v.List, t)
		}
	}
	SortTasks(v.List)

	for _, t := range v.List {
		switch t.Status {
		case domain.TaskStatusPending:
			v.Pending = append(v.Pending, t)
		case domain.TaskStatusInProgress:
			v.InProgress = append(v.InProgress, t)
		case domain.TaskStatusCompleted:
			v.Completed = append(v.Completed, t)
		}
		if TaskOverdue(t, now) {
			v.Overdue = append(v.Overdue, t)
		}
	}
	return v
}

// TasksByCase is unscoped; detail screens authorize the case separately.
func TasksByCase(snap store.Snapshot, caseID string) []domain.Task {
	var out []domain.Task
	for _, t := range snap.Tasks {
		if t.CaseID == caseID {
			out = append(out, t)
		}
	}
	SortTasks(out)
	return out
}
