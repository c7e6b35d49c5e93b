// Package authz answers "may the current principal do X (to this record)?".
//
// Record-level checks combine a blanket ":all" permission with an
// ":assigned" permission plus assignment membership. Every predicate is a
// pure function of principal, record and catalog; with no principal (or an
// inactive one) all of them report false.
package authz

import (
	"go-case-tracker/internal/domain"
	"go-case-tracker/internal/permission"
)

type Authorizer struct {
	principal *domain.User
}

// New binds an Authorizer to principal. A nil principal is allowed.
func New(principal *domain.User) *Authorizer {
	return &Authorizer{principal: principal}
}

func (a *Authorizer) Principal() *domain.User {
	if a == nil {
		return nil
	}
	return a.principal
}

func (a *Authorizer) authenticated() bool {
	return a != nil && a.principal != nil && a.principal.IsActive
}

func (a *Authorizer) userID() string {
	if !a.authenticated() {
		return ""
	}
	return a.principal.ID
}

func (a *Authorizer) HasPermission(p permission.Permission) bool {
	if !a.authenticated() {
		return false
	}
	return permission.Has(a.principal.Role, p)
}

func (a *Authorizer) HasAnyPermission(ps ...permission.Permission) bool {
	if !a.authenticated() {
		return false
	}
	return permission.HasAny(a.principal.Role, ps...)
}

func (a *Authorizer) HasAllPermissions(ps ...permission.Permission) bool {
	if !a.authenticated() {
		return false
	}
	return permission.HasAll(a.principal.Role, ps...)
}

// IsAssigned reports whether the principal is one of the case assignees.
func (a *Authorizer) IsAssigned(c domain.Case) bool {
	return c.IsAssignedTo(a.userID())
}

func (a *Authorizer) CanViewAllCases() bool { return a.HasPermission(permission.CasesViewAll) }

func (a *Authorizer) CanViewCase(c domain.Case) bool {
	if a.HasPermission(permission.CasesViewAll) {
		return true
	}
	return a.HasPermission(permission.CasesViewAssigned) && a.IsAssigned(c)
}

func (a *Authorizer) CanEditCase(c domain.Case) bool {
	if a.HasPermission(permission.CasesEditAll) {
		return true
	}
	return a.HasPermission(permission.CasesEditAssigned) && a.IsAssigned(c)
}

func (a *Authorizer) CanChangeCaseStatus(c domain.Case) bool {
	if !a.HasPermission(permission.CasesChangeStatus) {
		return false
	}
	return a.HasPermission(permission.CasesEditAll) || a.IsAssigned(c)
}

func (a *Authorizer) CanCreateCase() bool  { return a.HasPermission(permission.CasesCreate) }
func (a *Authorizer) CanDeleteCase() bool  { return a.HasPermission(permission.CasesDelete) }
func (a *Authorizer) CanAssignCases() bool { return a.HasPermission(permission.CasesAssign) }

func (a *Authorizer) CanViewClients() bool  { return a.HasPermission(permission.ClientsView) }
func (a *Authorizer) CanCreateClient() bool { return a.HasPermission(permission.ClientsCreate) }
func (a *Authorizer) CanEditClient() bool   { return a.HasPermission(permission.ClientsEdit) }
func (a *Authorizer) CanDeleteClient() bool { return a.HasPermission(permission.ClientsDelete) }

func (a *Authorizer) CanViewAllTasks() bool { return a.HasPermission(permission.TasksViewAll) }
func (a *Authorizer) CanCreateTask() bool   { return a.HasPermission(permission.TasksCreate) }

// CanCompleteTask needs tasks:complete and either tasks:view:all or being
// the task's assignee.
func (a *Authorizer) CanCompleteTask(t domain.Task) bool {
	if !a.HasPermission(permission.TasksComplete) {
		return false
	}
	return a.HasPermission(permission.TasksViewAll) || (t.AssignedTo != "" && t.AssignedTo == a.userID())
}

func (a *Authorizer) CanViewAllTime() bool { return a.HasPermission(permission.TimeViewAll) }
func (a *Authorizer) CanLogTime() bool     { return a.HasPermission(permission.TimeCreate) }

func (a *Authorizer) CanViewSettings() bool { return a.HasPermission(permission.SettingsView) }

// CanManageUsers maps to users:view; the user screens gate on it.
func (a *Authorizer) CanManageUsers() bool { return a.HasPermission(permission.UsersView) }
