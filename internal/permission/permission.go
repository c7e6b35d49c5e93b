// Package permission is the static role -> permission catalog.
package permission

import (
	"slices"

	"go-case-tracker/internal/domain"
)

// Permission is "<resource>:<action>[:<scope>]". The scope suffix (":all",
// ":assigned", ":own") decides whether a grant covers every record or only
// the principal's.
type Permission string

const (
	CasesViewAll      Permission = "cases:view:all"
	CasesViewAssigned Permission = "cases:view:assigned"
	CasesCreate       Permission = "cases:create"
	CasesEditAll      Permission = "cases:edit:all"
	CasesEditAssigned Permission = "cases:edit:assigned"
	CasesDelete       Permission = "cases:delete"
	CasesChangeStatus Permission = "cases:status"
	CasesAssign       Permission = "cases:assign"

	ClientsView   Permission = "clients:view"
	ClientsCreate Permission = "clients:create"
	ClientsEdit   Permission = "clients:edit"
	ClientsDelete Permission = "clients:delete"

	TasksViewAll      Permission = "tasks:view:all"
	TasksViewAssigned Permission = "tasks:view:assigned"
	TasksCreate       Permission = "tasks:create"
	TasksComplete     Permission = "tasks:complete"

	TimeViewAll Permission = "time:view:all"
	TimeViewOwn Permission = "time:view:own"
	TimeCreate  Permission = "time:create"

	UsersView   Permission = "users:view"
	UsersCreate Permission = "users:create"
	UsersEdit   Permission = "users:edit"

	SettingsView Permission = "settings:view"
	SettingsEdit Permission = "settings:edit"
)

// All lists every known permission.
func All() []Permission {
	return []Permission{
		CasesViewAll, CasesViewAssigned, CasesCreate, CasesEditAll, CasesEditAssigned,
		CasesDelete, CasesChangeStatus, CasesAssign,
		ClientsView, ClientsCreate, ClientsEdit, ClientsDelete,
		TasksViewAll, TasksViewAssigned, TasksCreate, TasksComplete,
		TimeViewAll, TimeViewOwn, TimeCreate,
		UsersView, UsersCreate, UsersEdit,
		SettingsView, SettingsEdit,
	}
}

func (p Permission) String() string { return string(p) }

// For returns the permissions granted to role. Unknown roles get nothing.
// The returned slice is fresh on every call.
func For(role domain.Role) []Permission {
	switch role {
	case domain.RoleAdmin:
		return []Permission{
			CasesViewAll, CasesCreate, CasesEditAll, CasesDelete, CasesChangeStatus, CasesAssign,
			ClientsView, ClientsCreate, ClientsEdit, ClientsDelete,
			TasksViewAll, TasksCreate, TasksComplete,
			TimeViewAll, TimeCreate,
			UsersView, UsersCreate, UsersEdit,
			SettingsView, SettingsEdit,
		}
	case domain.RoleAttorney:
		return []Permission{
			CasesViewAssigned, CasesCreate, CasesEditAssigned, CasesChangeStatus,
			ClientsView, ClientsCreate, ClientsEdit,
			TasksViewAssigned, TasksCreate, TasksComplete,
			TimeViewOwn, TimeCreate,
		}
	case domain.RoleParalegal:
		return []Permission{
			CasesViewAssigned,
			ClientsView,
			TasksViewAssigned, TasksComplete,
			TimeViewOwn, TimeCreate,
		}
	}
	return nil
}

func Has(role domain.Role, p Permission) bool {
	return slices.Contains(For(role), p)
}

// HasAny is false for an empty list.
func HasAny(role domain.Role, ps ...Permission) bool {
	granted := For(role)
	for _, p := range ps {
		if slices.Contains(granted, p) {
			return true
		}
	}
	return false
}

// HasAll is true for an empty list.
func HasAll(role domain.Role, ps ...Permission) bool {
	granted := For(role)
	for _, p := range ps {
		if !slices.Contains(granted, p) {
			return false
		}
	}
	return true
}
