package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-case-tracker/internal/domain"
	"go-case-tracker/internal/storage"
)

// Seed writes the demo practice once. It reports false when the seed flag is
// already present. Existing collections are overwritten.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seedLocked(ctx)
}

// Reset removes every key the store owns, writes the demo data again and
// reloads. Nobody is signed in afterwards.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range allKeys {
		if err := s.blob.Remove(ctx, s.key(k)); err != nil {
			s.blobFailed("remove", k, err)
			return fmt.Errorf("reset %s: %w", k, err)
		}
	}
	if _, err := s.seedLocked(ctx); err != nil {
		return err
	}
	s.loadLocked(ctx)
	s.log.Info("store reset to demo data")
	return nil
}

func (s *Store) seedLocked(ctx context.Context) (bool, error) {
	flag, err := s.blob.Get(ctx, s.key(KeySeedInitialized))
	if err != nil {
		return false, fmt.Errorf("read seed flag: %w", err)
	}
	if flag != nil {
		return false, nil
	}

	d := demoData(s.now())
	s.users, s.clients, s.cases, s.tasks = d.Users, d.Clients, d.Cases, d.Tasks
	s.timeEntries, s.activities, s.notes = d.TimeEntries, d.Activities, d.Notes
	s.notifications = nil

	save(ctx, s, KeyUsers, s.users)
	save(ctx, s, KeyClients, s.clients)
	save(ctx, s, KeyCases, s.cases)
	save(ctx, s, KeyTasks, s.tasks)
	save(ctx, s, KeyTimeEntries, s.timeEntries)
	save(ctx, s, KeyActivities, s.activities)
	save(ctx, s, KeyNotes, s.notes)
	save(ctx, s, KeyNotifications, s.notifications)
	if err := storage.SetJSON(ctx, s.blob, s.key(KeySeedInitialized), "true"); err != nil {
		return false, fmt.Errorf("write seed flag: %w", err)
	}
	s.refreshGauges()

	s.log.Info("seed data written",
		zap.Int("users", len(s.users)),
		zap.Int("cases", len(s.cases)),
		zap.Int("tasks", len(s.tasks)),
	)
	return true, nil
}

// demoData builds a small firm with dates relative to now.
func demoData(now time.Time) Snapshot {
	day := func(n int) time.Time { return now.AddDate(0, 0, n) }
	ptr := func(n int) *time.Time { t := day(n); return &t }
	num := func(seq int) string { return FormatCaseNumber(now.Year(), seq) }
	prefs := func(lang domain.Language) domain.Preferences {
		return domain.Preferences{Language: lang, Theme: domain.ThemeLight}
	}

	users := []domain.User{
		{ID: "user-1", Email: "admin@garcialaw.com", Password: "admin123", Name: "Roberto García", Role: domain.RoleAdmin, Preferences: prefs(domain.LanguageEnglish), IsActive: true, CreatedAt: day(-120)},
		{ID: "user-2", Email: "carlos@garcialaw.com", Password: "abogado123", Name: "Carlos Mendez", Role: domain.RoleAttorney, Preferences: prefs(domain.LanguageEnglish), IsActive: true, CreatedAt: day(-110)},
		{ID: "user-3", Email: "ana@garcialaw.com", Password: "abogado123", Name: "Ana Rodríguez", Role: domain.RoleAttorney, Preferences: prefs(domain.LanguageSpanish), IsActive: true, CreatedAt: day(-100)},
		{ID: "user-4", Email: "maria@garcialaw.com", Password: "paralegal123", Name: "María López", Role: domain.RoleParalegal, Preferences: prefs(domain.LanguageSpanish), IsActive: true, CreatedAt: day(-90)},
	}

	clients := []domain.Client{
		{ID: "client-1", Name: "Juan Pérez", Email: "juan.perez@email.com", Phone: "555-0101", Address: "123 Main St, Miami, FL 33101", Type: domain.ClientTypeIndividual, Notes: "Referred by existing client. Spanish speaker.", CreatedAt: day(-80), UpdatedAt: day(-80)},
		{ID: "client-2", Name: "María Santos", Email: "maria.santos@email.com", Phone: "555-0102", Address: "456 Oak Ave, Miami, FL 33102", Type: domain.ClientTypeIndividual, Notes: "Immigration case. Has valid work permit.", CreatedAt: day(-75), UpdatedAt: day(-75)},
		{ID: "client-3", Name: "Tech Solutions Inc.", Email: "legal@techsolutions.com", Phone: "555-0103", Address: "789 Business Blvd, Suite 100, Miami, FL 33103", Type: domain.ClientTypeBusiness, Notes: "Corporate client. Multiple ongoing matters.", CreatedAt: day(-70), UpdatedAt: day(-70)},
		{ID: "client-4", Name: "Carlos Ramírez", Email: "carlos.ramirez@email.com", Phone: "555-0104", Address: "321 Pine St, Miami, FL 33104", Type: domain.ClientTypeIndividual, Notes: "Auto accident victim. Medical treatment ongoing.", CreatedAt: day(-60), UpdatedAt: day(-60)},
		{ID: "client-5", Name: "Sarah Johnson", Email: "sarah.johnson@email.com", Phone: "555-0106", Address: "888 Maple Rd, Miami, FL 33106", Type: domain.ClientTypeIndividual, Notes: "Divorce case. Two minor children.", CreatedAt: day(-50), UpdatedAt: day(-50)},
	}

	cases := []domain.Case{
		{ID: "case-1", CaseNumber: num(1), Title: "Pérez v. ABC Insurance", Description: "Personal injury claim arising from workplace accident.", ClientID: "client-1", Type: domain.CaseTypePersonalInjury, Status: domain.CaseStatusInProgress, Priority: domain.PriorityHigh, AssignedTo: []string{"user-2"}, Deadline: ptr(30), CreatedBy: "user-1", CreatedAt: day(-60), UpdatedAt: day(-5)},
		{ID: "case-2", CaseNumber: num(2), Title: "Santos Immigration Visa Application", Description: "H-1B visa application for software engineer position.", ClientID: "client-2", Type: domain.CaseTypeImmigrationVisa, Status: domain.CaseStatusUnderReview, Priority: domain.PriorityMedium, AssignedTo: []string{"user-3"}, Deadline: ptr(45), CreatedBy: "user-1", CreatedAt: day(-45), UpdatedAt: day(-3)},
		{ID: "case-3", CaseNumber: num(3), Title: "Ramírez Auto Accident Claim", Description: "Multi-vehicle accident on I-95. Client was rear-ended.", ClientID: "client-4", Type: domain.CaseTypeAutoAccident, Status: domain.CaseStatusPendingClient, Priority: domain.PriorityHigh, AssignedTo: []string{"user-2", "user-4"}, Deadline: ptr(20), CreatedBy: "user-2", CreatedAt: day(-30), UpdatedAt: day(-2)},
		{ID: "case-4", CaseNumber: num(4), Title: "Santos Citizenship Application", Description: "N-400 naturalization application.", ClientID: "client-2", Type: domain.CaseTypeImmigrationCitizenship, Status: domain.CaseStatusInProgress, Priority: domain.PriorityMedium, AssignedTo: []string{"user-3"}, Deadline: ptr(90), CreatedBy: "user-3", CreatedAt: day(-20), UpdatedAt: day(-4)},
		{ID: "case-5", CaseNumber: num(5), Title: "Johnson Divorce Proceedings", Description: "Uncontested divorce filing. Asset division and custody arrangements needed.", ClientID: "client-5", Type: domain.CaseTypeFamilyDivorce, Status: domain.CaseStatusNew, Priority: domain.PriorityMedium, AssignedTo: []string{"user-3"}, Deadline: ptr(50), CreatedBy: "user-1", CreatedAt: day(-5), UpdatedAt: day(-5)},
		{ID: "case-6", CaseNumber: num(6), Title: "Tech Solutions Fleet Collision", Description: "Company vehicle collision. Liability settled.", ClientID: "client-3", Type: domain.CaseTypeAutoAccident, Status: domain.CaseStatusClosed, Priority: domain.PriorityLow, AssignedTo: []string{"user-2"}, Deadline: ptr(-30), CreatedBy: "user-1", CreatedAt: day(-90), UpdatedAt: day(-35)},
	}

	task := func(id, caseID, title string, st domain.TaskStatus, p domain.Priority, who string, deadline, created int, completed *time.Time) domain.Task {
		return domain.Task{ID: id, CaseID: caseID, Title: title, Status: st, Priority: p, AssignedTo: who, Deadline: ptr(deadline), CompletedAt: completed, CreatedAt: day(created), UpdatedAt: day(created)}
	}
	tasks := []domain.Task{
		task("task-1", "case-1", "Gather medical records", domain.TaskStatusCompleted, domain.PriorityHigh, "user-4", -10, -55, ptr(-12)),
		task("task-2", "case-1", "Prepare demand letter", domain.TaskStatusInProgress, domain.PriorityHigh, "user-2", 7, -10, nil),
		task("task-3", "case-1", "Schedule client meeting", domain.TaskStatusPending, domain.PriorityMedium, "user-2", 3, -5, nil),
		task("task-4", "case-2", "Review visa application", domain.TaskStatusInProgress, domain.PriorityHigh, "user-3", 5, -40, nil),
		task("task-5", "case-3", "Obtain police report", domain.TaskStatusCompleted, domain.PriorityHigh, "user-4", -20, -28, ptr(-22)),
		task("task-6", "case-3", "Follow up with client", domain.TaskStatusPending, domain.PriorityHigh, "user-2", 2, -5, nil),
		task("task-7", "case-3", "Request repair estimates", domain.TaskStatusPending, domain.PriorityMedium, "user-4", -1, -6, nil),
		task("task-8", "case-4", "Complete N-400 form", domain.TaskStatusInProgress, domain.PriorityHigh, "user-3", 14, -18, nil),
	}

	entry := func(id, caseID, userID, desc string, minutes, daysAgo int, billable bool) domain.TimeEntry {
		return domain.TimeEntry{ID: id, CaseID: caseID, UserID: userID, Description: desc, Duration: minutes, Date: day(-daysAgo), Billable: billable, CreatedAt: day(-daysAgo)}
	}
	timeEntries := []domain.TimeEntry{
		entry("time-1", "case-1", "user-2", "Initial client consultation", 60, 58, true),
		entry("time-2", "case-1", "user-4", "Organize case documents", 90, 35, false),
		entry("time-3", "case-2", "user-3", "Visa application review", 90, 20, true),
		entry("time-4", "case-3", "user-2", "Accident investigation", 150, 25, true),
		entry("time-5", "case-1", "user-2", "Client call - case update", 30, 2, true),
		entry("time-6", "case-4", "user-3", "Citizenship application prep", 60, 1, true),
	}

	activities := []domain.Activity{
		{ID: "act-5", CaseID: "case-3", UserID: "user-2", Action: domain.ActionStatusChanged, Details: "Status changed to \"Pending Client\"", Timestamp: day(-5)},
		{ID: "act-4", CaseID: "case-1", UserID: "user-4", Action: domain.ActionTaskCompleted, Details: "Task \"Gather medical records\" was completed", Timestamp: day(-12)},
		{ID: "act-3", CaseID: "case-3", UserID: "user-2", Action: domain.ActionCaseCreated, Details: "Case \"Ramírez Auto Accident Claim\" was created", Timestamp: day(-30)},
		{ID: "act-2", CaseID: "case-2", UserID: "user-1", Action: domain.ActionCaseCreated, Details: "Case \"Santos Immigration Visa Application\" was created", Timestamp: day(-45)},
		{ID: "act-1", CaseID: "case-1", UserID: "user-1", Action: domain.ActionCaseCreated, Details: "Case \"Pérez v. ABC Insurance\" was created", Timestamp: day(-60)},
	}

	notes := []domain.Note{
		{ID: "note-1", CaseID: "case-1", UserID: "user-2", Content: "Client confirmed surgery date for next month.", CreatedAt: day(-20), UpdatedAt: day(-20)},
		{ID: "note-2", CaseID: "case-3", UserID: "user-2", Content: "Client cannot return to work for at least 3 more months.", CreatedAt: day(-15), UpdatedAt: day(-15)},
	}

	return Snapshot{
		Users:       users,
		Clients:     clients,
		Cases:       cases,
		Tasks:       tasks,
		TimeEntries: timeEntries,
		Activities:  activities,
		Notes:       notes,
	}
}
