package domain

import (
	"errors"
	"testing"
	"time"
)

func TestRole_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleAttorney, true},
		{RoleParalegal, true},
		{Role("client"), false},
		{Role(""), false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.role), func(t *testing.T) {
			t.Parallel()
			if got := tt.role.IsValid(); got != tt.want {
				t.Errorf("Role(%q).IsValid() = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestCaseStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range CaseStatuses() {
		if !s.IsValid() {
			t.Errorf("CaseStatus(%q).IsValid() = false, want true", s)
		}
	}
	if CaseStatus("archived").IsValid() {
		t.Error("CaseStatus(archived).IsValid() = true, want false")
	}
	if got := len(CaseStatuses()); got != 6 {
		t.Errorf("len(CaseStatuses()) = %d, want 6", got)
	}
}

func TestCaseStatus_Label(t *testing.T) {
	t.Parallel()
	if got := CaseStatusPendingClient.Label(); got != "Pending Client" {
		t.Errorf("got %q, want Pending Client", got)
	}
	if got := CaseStatus("odd").Label(); got != "odd" {
		t.Errorf("got %q, want odd", got)
	}
}

func TestCaseType_TaskTemplates(t *testing.T) {
	t.Parallel()

	types := []CaseType{
		CaseTypePersonalInjury, CaseTypeAutoAccident, CaseTypeImmigrationVisa,
		CaseTypeImmigrationCitizenship, CaseTypeFamilyDivorce, CaseTypeFamilyCustody,
	}
	for _, ct := range types {
		ct := ct
		t.Run(string(ct), func(t *testing.T) {
			t.Parallel()
			if !ct.IsValid() {
				t.Fatalf("%q should be valid", ct)
			}
			if got := len(ct.TaskTemplates()); got != 5 {
				t.Errorf("len(TaskTemplates()) = %d, want 5", got)
			}
			if ct.Category() == "" {
				t.Error("Category() is empty")
			}
		})
	}
	if CaseType("tax").TaskTemplates() != nil {
		t.Error("unknown type should have no templates")
	}
}

func TestTaskStatus_IsClosed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status TaskStatus
		want   bool
	}{
		{TaskStatusPending, false},
		{TaskStatusInProgress, false},
		{TaskStatusCompleted, true},
		{TaskStatusCancelled, true},
	}
	for _, tt := range tests {
		if got := tt.status.IsClosed(); got != tt.want {
			t.Errorf("TaskStatus(%q).IsClosed() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestCase_Clone(t *testing.T) {
	t.Parallel()

	d := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := Case{AssignedTo: []string{"u1"}, Deadline: &d}
	cp := c.Clone()
	cp.AssignedTo[0] = "u2"
	*cp.Deadline = d.AddDate(0, 0, 1)

	if c.AssignedTo[0] != "u1" {
		t.Error("clone shares AssignedTo")
	}
	if !c.Deadline.Equal(d) {
		t.Error("clone shares Deadline")
	}
	if !c.IsAssignedTo("u1") || c.IsAssignedTo("") {
		t.Error("IsAssignedTo mismatch")
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewValidationError("email", "invalid email")
	if !errors.Is(err, ErrValidation) {
		t.Error("expected errors.Is(err, ErrValidation)")
	}
	if got := err.Error(); got != "validation: email: invalid email" {
		t.Errorf("Error() = %q", got)
	}
}
