package domain

import (
	"slices"
	"time"
)

// Case is a legal matter. CaseNumber is assigned once and never changes.
type Case struct {
	ID          string     `json:"id"`
	CaseNumber  string     `json:"caseNumber"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ClientID    string     `json:"clientId"`
	Type        CaseType   `json:"type"`
	Status      CaseStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	AssignedTo  []string   `json:"assignedTo"`
	Deadline    *time.Time `json:"deadline"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (c Case) IsAssignedTo(userID string) bool {
	return userID != "" && slices.Contains(c.AssignedTo, userID)
}

func (c Case) IsOpen() bool { return c.Status != CaseStatusClosed }

// Clone returns a copy that shares no memory with c.
func (c Case) Clone() Case {
	c.AssignedTo = slices.Clone(c.AssignedTo)
	c.Deadline = cloneTime(c.Deadline)
	return c
}

type Client struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	Type      ClientType `json:"type"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
