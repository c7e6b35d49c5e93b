package store

import (
	"time"

	"go-case-tracker/internal/domain"
)

// NewCase is the caller-supplied part of a case. Status and case number are
// always derived by the store.
type NewCase struct {
	Title       string
	Description string
	ClientID    string
	Type        domain.CaseType
	Priority    domain.Priority
	AssignedTo  []string
	Deadline    *time.Time
	CreatedBy   string // defaults to the current user
}

// CaseUpdate merges non-nil fields. An empty AssignedTo leaves assignees as
// they are; status changes go through ChangeCaseStatus.
type CaseUpdate struct {
	Title         *string
	Description   *string
	ClientID      *string
	Type          *domain.CaseType
	Priority      *domain.Priority
	AssignedTo    []string
	Deadline      *time.Time
	ClearDeadline bool
}

func (u CaseUpdate) apply(c *domain.Case) {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.ClientID != nil {
		c.ClientID = *u.ClientID
	}
	if u.Type != nil {
		c.Type = *u.Type
	}
	if u.Priority != nil {
		c.Priority = *u.Priority
	}
	if ids := dedupe(u.AssignedTo); len(ids) > 0 {
		c.AssignedTo = ids
	}
	switch {
	case u.ClearDeadline:
		c.Deadline = nil
	case u.Deadline != nil:
		c.Deadline = clonePtr(u.Deadline)
	}
}

type NewClient struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Type    domain.ClientType
	Notes   string
}

type ClientUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Type    *domain.ClientType
	Notes   *string
}

func (u ClientUpdate) apply(c *domain.Client) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Address != nil {
		c.Address = *u.Address
	}
	if u.Type != nil {
		c.Type = *u.Type
	}
	if u.Notes != nil {
		c.Notes = *u.Notes
	}
}

type NewTask struct {
	CaseID      string
	Title       string
	Description string
	Status      domain.TaskStatus // defaults to pending
	Priority    domain.Priority   // defaults to medium
	AssignedTo  string
	Deadline    *time.Time
}

type TaskUpdate struct {
	Title         *string
	Description   *string
	Status        *domain.TaskStatus
	Priority      *domain.Priority
	AssignedTo    *string
	Deadline      *time.Time
	ClearDeadline bool
}

func (u TaskUpdate) apply(t *domain.Task) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.AssignedTo != nil {
		t.AssignedTo = *u.AssignedTo
	}
	switch {
	case u.ClearDeadline:
		t.Deadline = nil
	case u.Deadline != nil:
		t.Deadline = clonePtr(u.Deadline)
	}
}

type NewTimeEntry struct {
	CaseID      string
	UserID      string // defaults to the current user
	Description string
	Duration    int       // minutes
	Date        time.Time // defaults to now
	Billable    bool
}

type NewNote struct {
	CaseID  string
	UserID  string // defaults to the current user
	Content string
}

type NewNotification struct {
	UserID        string
	Type          domain.NotificationType
	Title         string
	Message       string
	RelatedCaseID string
}

type RegisterInput struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Name     string      `json:"name" validate:"required"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=admin attorney paralegal"`
}

type UserUpdate struct {
	Name        *string             `json:"name" validate:"omitnil,min=1"`
	Email       *string             `json:"email" validate:"omitnil,email"`
	Role        *domain.Role        `json:"role" validate:"omitnil,oneof=admin attorney paralegal"`
	Avatar      *string             `json:"avatar"`
	Preferences *domain.Preferences `json:"preferences"`
}

func (u UserUpdate) apply(usr *domain.User) {
	if u.Name != nil {
		usr.Name = *u.Name
	}
	if u.Email != nil {
		usr.Email = *u.Email
	}
	if u.Role != nil {
		usr.Role = *u.Role
	}
	if u.Avatar != nil {
		usr.Avatar = *u.Avatar
	}
	if u.Preferences != nil {
		usr.Preferences = *u.Preferences
	}
}

// dedupe drops blanks and repeats, keeping first-seen order.
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
