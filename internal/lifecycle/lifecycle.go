// Package lifecycle holds the case status state machine.
//
//	new            -> under_review, closed
//	under_review   -> in_progress, pending_client, closed
//	in_progress    -> pending_client, resolved, closed
//	pending_client -> in_progress, resolved, closed
//	resolved       -> closed, in_progress
//	closed         -> in_progress
//
// There is no terminal state: resolved and closed cases can be reopened.
package lifecycle

import (
	"fmt"
	"slices"
	"time"

	"go-case-tracker/internal/domain"
)

// Next returns the statuses reachable from from, in table order.
func Next(from domain.CaseStatus) []domain.CaseStatus {
	switch from {
	case domain.CaseStatusNew:
		return []domain.CaseStatus{domain.CaseStatusUnderReview, domain.CaseStatusClosed}
	case domain.CaseStatusUnderReview:
		return []domain.CaseStatus{domain.CaseStatusInProgress, domain.CaseStatusPendingClient, domain.CaseStatusClosed}
	case domain.CaseStatusInProgress:
		return []domain.CaseStatus{domain.CaseStatusPendingClient, domain.CaseStatusResolved, domain.CaseStatusClosed}
	case domain.CaseStatusPendingClient:
		return []domain.CaseStatus{domain.CaseStatusInProgress, domain.CaseStatusResolved, domain.CaseStatusClosed}
	case domain.CaseStatusResolved:
		return []domain.CaseStatus{domain.CaseStatusClosed, domain.CaseStatusInProgress}
	case domain.CaseStatusClosed:
		return []domain.CaseStatus{domain.CaseStatusInProgress}
	}
	return nil
}

func CanTransition(from, to domain.CaseStatus) bool {
	if from == to {
		return false
	}
	return slices.Contains(Next(from), to)
}

// Transition returns c moved to status to, stamped at now. On a transition
// outside the table it returns c unchanged and an error wrapping
// domain.ErrInvalidTransition.
func Transition(c domain.Case, to domain.CaseStatus, now time.Time) (domain.Case, error) {
	if !CanTransition(c.Status, to) {
		return c, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, c.Status, to)
	}
	c.Status = to
	c.UpdatedAt = now
	return c, nil
}
