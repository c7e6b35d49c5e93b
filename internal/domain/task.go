package domain

import "time"

// Task belongs to a case and has a single assignee.
// CompletedAt is non-nil exactly when Status is completed.
type Task struct {
	ID          string     `json:"id"`
	CaseID      string     `json:"caseId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	AssignedTo  string     `json:"assignedTo"`
	Deadline    *time.Time `json:"deadline"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t Task) Clone() Task {
	t.Deadline = cloneTime(t.Deadline)
	t.CompletedAt = cloneTime(t.CompletedAt)
	return t
}

// TimeEntry is immutable once logged. Duration is in minutes.
type TimeEntry struct {
	ID          string    `json:"id"`
	CaseID      string    `json:"caseId"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Date        time.Time `json:"date"`
	Billable    bool      `json:"billable"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Note struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"caseId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Activity is an audit-trail entry. Append-only.
type Activity struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"caseId"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// Activity actions recorded by the store.
const (
	ActionCaseCreated   = "case_created"
	ActionCaseUpdated   = "case_updated"
	ActionStatusChanged = "status_changed"
	ActionTaskCreated   = "task_created"
	ActionTaskCompleted = "task_completed"
	ActionTimeLogged    = "time_logged"
	ActionNoteAdded     = "note_added"
)

type Notification struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	RelatedCaseID string           `json:"relatedCaseId,omitempty"`
	Read          bool             `json:"read"`
	CreatedAt     time.Time        `json:"createdAt"`
}
