package view

import (
	"go-case-tracker/internal/authz"
	"go-case-tracker/internal/domain"
	"go-case-tracker/internal/store"
)

// CaseActivities returns a case's audit trail, newest first.
func CaseActivities(snap store.Snapshot, caseID string) []domain.Activity {
	var out []domain.Activity
	for _, a := range snap.Activities {
		if a.CaseID == caseID {
			out = append(out, a)
		}
	}
	return out
}

// RecentActivities returns up to limit entries on cases principal can view.
// Entries of deleted cases are dropped. limit <= 0 means no limit.
func RecentActivities(snap store.Snapshot, principal *domain.User, limit int) []domain.Activity {
	az := authz.New(principal)
	visible := make(map[string]bool, len(snap.Cases))
	for _, c := range snap.Cases {
		visible[c.ID] = az.CanViewCase(c)
	}
	var out []domain.Activity
	for _, a := range snap.Activities {
		if !visible[a.CaseID] {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Notifications returns principal's notifications, newest first.
func Notifications(snap store.Snapshot, principal *domain.User) []domain.Notification {
	if principal == nil {
		return nil
	}
	var out []domain.Notification
	for _, n := range snap.Notifications {
		if n.UserID == principal.ID {
			out = append(out, n)
		}
	}
	return out
}

func UnreadCount(snap store.Snapshot, principal *domain.User) int {
	n := 0
	for _, x := range Notifications(snap, principal) {
		if !x.Read {
			n++
		}
	}
	return n
}
