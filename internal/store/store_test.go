package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-case-tracker/internal/domain"
	"go-case-tracker/internal/lifecycle"
	"go-case-tracker/internal/storage"
)

var t0 = time.Date(2026, 5, 10, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store *Store
	blob  *storage.Memory
	clock *clockwork.FakeClock
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	blob := storage.NewMemory()
	clock := clockwork.NewFakeClockAt(t0)
	s := New(blob, WithClock(clock), WithLogger(zaptest.NewLogger(t)))
	s.Load(context.Background())
	return fixture{store: s, blob: blob, clock: clock}
}

func (f fixture) register(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := f.store.Register(context.Background(), RegisterInput{
		Email: email, Password: "secret1", Name: "User " + email, Role: role,
	})
	require.NoError(t, err)
	return u
}

func activitiesFor(s *Store, caseID string) []domain.Activity {
	var out []domain.Activity
	for _, a := range s.Snapshot().Activities {
		if a.CaseID == caseID {
			out = append(out, a)
		}
	}
	return out
}

func TestEndToEnd_CreateCloseReopen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.register(t, "admin@firm.test", domain.RoleAdmin)

	c := f.store.AddCase(ctx, NewCase{Title: "Test Case", Type: domain.CaseTypeFamilyDivorce})
	require.NotNil(t, c)
	assert.Equal(t, []string{admin.ID}, c.AssignedTo)
	assert.Equal(t, admin.ID, c.CreatedBy)
	assert.Equal(t, domain.CaseStatusNew, c.Status)
	assert.Equal(t, "CASE-2026-001", c.CaseNumber)

	acts := activitiesFor(f.store, c.ID)
	require.Len(t, acts, 1)
	assert.Equal(t, domain.ActionCaseCreated, acts[0].Action)
	assert.Equal(t, admin.ID, acts[0].UserID)
	assert.Equal(t, `Case "Test Case" was created`, acts[0].Details)

	assert.False(t, lifecycle.CanTransition(c.Status, domain.CaseStatusResolved))
	_, err := f.store.ChangeCaseStatus(ctx, c.ID, domain.CaseStatusResolved)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.CaseStatusNew, f.store.GetCaseByID(c.ID).Status)
	assert.Len(t, activitiesFor(f.store, c.ID), 1)

	f.clock.Advance(time.Hour)
	closed, err := f.store.ChangeCaseStatus(ctx, c.ID, domain.CaseStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusClosed, closed.Status)
	assert.Equal(t, t0.Add(time.Hour), closed.UpdatedAt)

	reopened, err := f.store.ChangeCaseStatus(ctx, c.ID, domain.CaseStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusInProgress, reopened.Status)

	acts = activitiesFor(f.store, c.ID)
	require.Len(t, acts, 3)
	assert.Equal(t, domain.ActionStatusChanged, acts[0].Action, "newest first")
	assert.Equal(t, `Status changed to "In Progress"`, acts[0].Details)
	assert.Equal(t, domain.ActionCaseCreated, acts[2].Action)
}

func TestChangeCaseStatus_UnknownID(t *testing.T) {
	f := newFixture(t)
	c, err := f.store.ChangeCaseStatus(context.Background(), "nope", domain.CaseStatusClosed)
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestCaseNumbering(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "a@firm.test", domain.RoleAdmin)

	// a case from last year is already on file
	require.NoError(t, storage.SetJSON(ctx, f.blob, DefaultKeyPrefix+KeyCases, []domain.Case{
		{ID: "old", CaseNumber: "CASE-2025-007", Status: domain.CaseStatusClosed, CreatedAt: t0.AddDate(-1, 0, 0)},
	}))
	f.store.Load(ctx)

	var numbers []string
	var ids []string
	for i := 0; i < 3; i++ {
		c := f.store.AddCase(ctx, NewCase{Title: "x"})
		numbers = append(numbers, c.CaseNumber)
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"CASE-2026-001", "CASE-2026-002", "CASE-2026-003"}, numbers)

	require.True(t, f.store.DeleteCase(ctx, ids[1]))
	next := f.store.AddCase(ctx, NewCase{Title: "after delete"})
	assert.Equal(t, "CASE-2026-004", next.CaseNumber, "numbers stay unique after a deletion")
}

func TestCaseNumbering_YearRollover(t *testing.T) {
	ctx := context.Background()
	blob := storage.NewMemory()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC))
	s := New(blob, WithClock(clock))

	assert.Equal(t, "CASE-2026-001", s.AddCase(ctx, NewCase{Title: "a"}).CaseNumber)
	clock.Advance(2 * time.Minute)
	assert.Equal(t, "CASE-2027-001", s.AddCase(ctx, NewCase{Title: "b"}).CaseNumber)
}

func TestNextCaseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		numbers []string
		want    string
	}{
		{"empty", nil, "CASE-2026-001"},
		{"other years only", []string{"CASE-2025-010", "CASE-20261-004"}, "CASE-2026-001"},
		{"gap", []string{"CASE-2026-001", "CASE-2026-005"}, "CASE-2026-006"},
		{"garbage ignored", []string{"CASE-2026-abc", "whatever"}, "CASE-2026-001"},
		{"beyond three digits", []string{"CASE-2026-999"}, "CASE-2026-1000"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var cases []domain.Case
			for _, n := range tt.numbers {
				cases = append(cases, domain.Case{CaseNumber: n})
			}
			assert.Equal(t, tt.want, nextCaseNumber(cases, 2026))
		})
	}
}

func TestAddCase_Defaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "att@firm.test", domain.RoleAttorney)

	c := f.store.AddCase(ctx, NewCase{Title: "t", AssignedTo: []string{"u2", "", "u2", u.ID}})
	assert.Equal(t, []string{"u2", u.ID}, c.AssignedTo)
	assert.Equal(t, domain.PriorityMedium, c.Priority)

	deadline := t0.AddDate(0, 1, 0)
	c = f.store.AddCase(ctx, NewCase{Title: "t2", Deadline: &deadline, CreatedBy: "someone"})
	assert.Equal(t, []string{"someone"}, c.AssignedTo)
	deadline = deadline.Add(time.Hour)
	assert.True(t, f.store.GetCaseByID(c.ID).Deadline.Equal(t0.AddDate(0, 1, 0)), "input pointer is not retained")
}

func TestUpdateCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "a@firm.test", domain.RoleAdmin)
	c := f.store.AddCase(ctx, NewCase{Title: "Original"})

	f.clock.Advance(time.Minute)
	title := "Renamed"
	prio := domain.PriorityUrgent
	updated := f.store.UpdateCase(ctx, c.ID, CaseUpdate{Title: &title, Priority: &prio, AssignedTo: []string{}})
	require.NotNil(t, updated)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, domain.PriorityUrgent, updated.Priority)
	assert.Equal(t, []string{u.ID}, updated.AssignedTo, "empty assignee list is ignored")
	assert.Equal(t, c.CaseNumber, updated.CaseNumber)
	assert.Equal(t, domain.CaseStatusNew, updated.Status)
	assert.Equal(t, t0.Add(time.Minute), updated.UpdatedAt)
	assert.Equal(t, t0, updated.CreatedAt)

	acts := activitiesFor(f.store, c.ID)
	require.Len(t, acts, 2)
	assert.Equal(t, domain.ActionCaseUpdated, acts[0].Action)
	assert.Equal(t, `Case "Original" was updated`, acts[0].Details)

	deadline := t0.AddDate(0, 0, 3)
	updated = f.store.UpdateCase(ctx, c.ID, CaseUpdate{Deadline: &deadline})
	require.NotNil(t, updated.Deadline)
	updated = f.store.UpdateCase(ctx, c.ID, CaseUpdate{ClearDeadline: true})
	assert.Nil(t, updated.Deadline)

	assert.Nil(t, f.store.UpdateCase(ctx, "missing", CaseUpdate{Title: &title}))
	assert.False(t, f.store.DeleteCase(ctx, "missing"))
}

func TestDeleteCase_NoCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "a@firm.test", domain.RoleAdmin)
	c := f.store.AddCase(ctx, NewCase{Title: "x"})
	f.store.AddTask(ctx, NewTask{CaseID: c.ID, Title: "t"})

	require.True(t, f.store.DeleteCase(ctx, c.ID))
	assert.Nil(t, f.store.GetCaseByID(c.ID))
	snap := f.store.Snapshot()
	assert.Len(t, snap.Tasks, 1)
	assert.NotEmpty(t, activitiesFor(f.store, c.ID))
}

func TestTasks_CompletedAtInvariant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "a@firm.test", domain.RoleAdmin)
	c := f.store.AddCase(ctx, NewCase{Title: "x"})

	task := f.store.AddTask(ctx, NewTask{CaseID: c.ID, Title: "Draft", AssignedTo: "u1"})
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.Nil(t, task.CompletedAt)

	done := domain.TaskStatusCompleted
	f.clock.Advance(time.Hour)
	task = f.store.UpdateTask(ctx, task.ID, TaskUpdate{Status: &done})
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, t0.Add(time.Hour), *task.CompletedAt)

	back := domain.TaskStatusInProgress
	task = f.store.UpdateTask(ctx, task.ID, TaskUpdate{Status: &back})
	assert.Nil(t, task.CompletedAt)

	f.clock.Advance(time.Hour)
	task = f.store.CompleteTask(ctx, task.ID)
	require.NotNil(t, task)
	assert.Equal(t, domain.TaskStatusCompleted, task.Status)
	assert.Equal(t, t0.Add(2*time.Hour), *task.CompletedAt)

	acts := activitiesFor(f.store, c.ID)
	assert.Equal(t, domain.ActionTaskCompleted, acts[0].Action)
	assert.Equal(t, `Task "Draft" was completed`, acts[0].Details)

	again := f.store.CompleteTask(ctx, task.ID)
	assert.Equal(t, *task.CompletedAt, *again.CompletedAt)
	assert.Len(t, activitiesFor(f.store, c.ID), len(acts))

	created := f.store.AddTask(ctx, NewTask{CaseID: c.ID, Title: "pre-done", Status: domain.TaskStatusCompleted})
	assert.NotNil(t, created.CompletedAt)

	assert.Nil(t, f.store.CompleteTask(ctx, "missing"))
	assert.Nil(t, f.store.UpdateTask(ctx, "missing", TaskUpdate{}))
	assert.True(t, f.store.DeleteTask(ctx, created.ID))
	assert.Nil(t, f.store.GetTaskByID(created.ID))
}

func TestApplyTaskTemplates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "a@firm.test", domain.RoleAdmin)
	c := f.store.AddCase(ctx, NewCase{Title: "x", Type: domain.CaseTypeImmigrationVisa, AssignedTo: []string{"att"}})

	tasks := f.store.ApplyTaskTemplates(ctx, c.ID, "")
	require.Len(t, tasks, 5)
	for i, task := range tasks {
		assert.Equal(t, domain.CaseTypeImmigrationVisa.TaskTemplates()[i], task.Title)
		assert.Equal(t, "att", task.AssignedTo)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
	}
	assert.Len(t, activitiesFor(f.store, c.ID), 6)
	assert.Nil(t, f.store.ApplyTaskTemplates(ctx, "missing", "x"))
}

func TestActivities_SkippedWithoutPrincipal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c := f.store.AddCase(ctx, NewCase{Title: "anon"})
	require.NotNil(t, c)
	assert.Empty(t, c.AssignedTo)
	f.store.AddNote(ctx, NewNote{CaseID: c.ID, Content: "n"})
	f.store.AddTimeEntry(ctx, NewTimeEntry{CaseID: c.ID, Duration: 15})
	assert.Nil(t, f.store.AddActivity(ctx, c.ID, "custom", "d"))
	assert.Empty(t, f.store.Snapshot().Activities)
}

func TestTimeEntriesNotesNotifications(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "p@firm.test", domain.RoleParalegal)
	c := f.store.AddCase(ctx, NewCase{Title: "x"})

	e := f.store.AddTimeEntry(ctx, NewTimeEntry{CaseID: c.ID, Description: "research", Duration: 90, Billable: true})
	assert.Equal(t, u.ID, e.UserID)
	assert.Equal(t, t0, e.Date)
	assert.Equal(t, "90 minutes logged", activitiesFor(f.store, c.ID)[0].Details)
	assert.True(t, f.store.DeleteTimeEntry(ctx, e.ID))
	assert.False(t, f.store.DeleteTimeEntry(ctx, e.ID))

	n := f.store.AddNote(ctx, NewNote{CaseID: c.ID, Content: "first"})
	assert.Equal(t, domain.ActionNoteAdded, activitiesFor(f.store, c.ID)[0].Action)
	f.clock.Advance(time.Minute)
	n = f.store.UpdateNote(ctx, n.ID, "second")
	assert.Equal(t, "second", n.Content)
	assert.Equal(t, t0.Add(time.Minute), n.UpdatedAt)
	assert.Nil(t, f.store.UpdateNote(ctx, "missing", "x"))
	assert.True(t, f.store.DeleteNote(ctx, n.ID))

	first := f.store.AddNotification(ctx, NewNotification{UserID: u.ID, Type: domain.NotificationAssignment, Title: "one"})
	f.store.AddNotification(ctx, NewNotification{UserID: u.ID, Type: domain.NotificationDeadline, Title: "two", RelatedCaseID: c.ID})
	snap := f.store.Snapshot()
	require.Len(t, snap.Notifications, 2)
	assert.Equal(t, "two", snap.Notifications[0].Title)

	read := f.store.MarkNotificationRead(ctx, first.ID)
	assert.True(t, read.Read)
	assert.Nil(t, f.store.MarkNotificationRead(ctx, "missing"))
}

func TestClients(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c := f.store.AddClient(ctx, NewClient{Name: "Acme", Email: "a@acme.test"})
	assert.Equal(t, domain.ClientTypeIndividual, c.Type)

	name := "Acme Corp"
	typ := domain.ClientTypeBusiness
	f.clock.Advance(time.Second)
	up := f.store.UpdateClient(ctx, c.ID, ClientUpdate{Name: &name, Type: &typ})
	assert.Equal(t, "Acme Corp", up.Name)
	assert.Equal(t, "a@acme.test", up.Email)
	assert.Equal(t, t0.Add(time.Second), up.UpdatedAt)
	assert.Nil(t, f.store.UpdateClient(ctx, "missing", ClientUpdate{Name: &name}))

	kase := f.store.AddCase(ctx, NewCase{Title: "x", ClientID: c.ID})
	require.True(t, f.store.DeleteClient(ctx, c.ID))
	assert.Nil(t, f.store.GetClientByID(c.ID))
	assert.Equal(t, c.ID, f.store.GetCaseByID(kase.ID).ClientID, "dangling reference is kept")
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "a@firm.test", domain.RoleAdmin)

	deadline := time.Date(2026, 6, 1, 17, 30, 0, 123_000_000, time.UTC)
	c := f.store.AddCase(ctx, NewCase{Title: "persist", Deadline: &deadline})
	task := f.store.AddTask(ctx, NewTask{CaseID: c.ID, Title: "t", Deadline: &deadline})
	f.store.CompleteTask(ctx, task.ID)
	f.store.AddTimeEntry(ctx, NewTimeEntry{CaseID: c.ID, Duration: 30, Date: deadline})

	reloaded := New(f.blob, WithClock(f.clock))
	reloaded.Load(ctx)

	got := reloaded.GetCaseByID(c.ID)
	require.NotNil(t, got)
	require.NotNil(t, got.Deadline)
	assert.True(t, got.Deadline.Equal(deadline))
	assert.True(t, got.CreatedAt.Equal(c.CreatedAt))
	assert.Equal(t, c.CaseNumber, got.CaseNumber)

	gotTask := reloaded.GetTaskByID(task.ID)
	require.NotNil(t, gotTask.CompletedAt)
	assert.True(t, gotTask.CompletedAt.Equal(t0))

	snap := reloaded.Snapshot()
	require.Len(t, snap.TimeEntries, 1)
	assert.True(t, snap.TimeEntries[0].Date.Equal(deadline))
	require.NotEmpty(t, snap.Activities)
	assert.True(t, snap.Activities[0].Timestamp.Equal(t0))
	require.NotNil(t, reloaded.CurrentUser())
	assert.Equal(t, "a@firm.test", reloaded.CurrentUser().Email)
}

func TestLoad_MalformedCollectionDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	blob := storage.NewMemory()
	require.NoError(t, blob.Set(ctx, DefaultKeyPrefix+KeyCases, []byte("{not json")))
	require.NoError(t, storage.SetJSON(ctx, blob, DefaultKeyPrefix+KeyClients, []domain.Client{{ID: "c1", Name: "ok"}}))

	s := New(blob)
	s.Load(ctx)
	snap := s.Snapshot()
	assert.Empty(t, snap.Cases)
	assert.Len(t, snap.Clients, 1)
}

func TestRefresh_DiscardsMemory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.AddClient(ctx, NewClient{Name: "x"})
	require.NoError(t, f.blob.Clear(ctx))

	f.store.Refresh(ctx)
	assert.Equal(t, Stats{}, f.store.Stats())
}

func TestWithKeyPrefix(t *testing.T) {
	ctx := context.Background()
	blob := storage.NewMemory()
	s := New(blob, WithKeyPrefix("firm2:"))
	s.AddClient(ctx, NewClient{Name: "x"})

	raw, err := blob.Get(ctx, "firm2:clients")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name":"x"`)
}

type blobMock struct{ mock.Mock }

func (m *blobMock) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *blobMock) Set(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *blobMock) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *blobMock) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestPersistenceFailure_IsSwallowed(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	m := &blobMock{}
	m.On("Get", mock.Anything, mock.Anything).Return(nil, boom)
	m.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(boom)
	m.On("Remove", mock.Anything, mock.Anything).Return(boom)

	s := New(m, WithClock(clockwork.NewFakeClockAt(t0)), WithLogger(zaptest.NewLogger(t)))
	s.Load(ctx)
	assert.Equal(t, Stats{}, s.Stats())

	u, err := s.Register(ctx, RegisterInput{Email: "a@firm.test", Password: "secret1", Name: "A", Role: domain.RoleAdmin})
	require.NoError(t, err)
	c := s.AddCase(ctx, NewCase{Title: "kept in memory"})
	require.NotNil(t, c)
	assert.Equal(t, []string{u.ID}, c.AssignedTo)
	assert.NotNil(t, s.GetCaseByID(c.ID))
	assert.Len(t, s.Snapshot().Activities, 1)
	s.Logout(ctx)
	assert.Nil(t, s.CurrentUser())

	_, err = s.Seed(ctx)
	assert.ErrorIs(t, err, boom)

	m.AssertCalled(t, "Set", mock.Anything, DefaultKeyPrefix+KeyCases, mock.Anything)
	m.AssertCalled(t, "Remove", mock.Anything, DefaultKeyPrefix+KeyCurrentUser)
}

func TestSnapshot_IsIndependent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "a@firm.test", domain.RoleAdmin)
	deadline := t0.AddDate(0, 0, 1)
	c := f.store.AddCase(ctx, NewCase{Title: "x", Deadline: &deadline})

	snap := f.store.Snapshot()
	snap.Cases[0].AssignedTo[0] = "hijack"
	*snap.Cases[0].Deadline = t0
	snap.CurrentUser.Role = domain.RoleParalegal

	got := f.store.GetCaseByID(c.ID)
	assert.NotEqual(t, "hijack", got.AssignedTo[0])
	assert.True(t, got.Deadline.Equal(deadline))
	assert.Equal(t, domain.RoleAdmin, f.store.CurrentUser().Role)

	found, ok := snap.CaseByID(c.ID)
	assert.True(t, ok)
	assert.Equal(t, c.ID, found.ID)
	_, ok = snap.CaseByID("missing")
	assert.False(t, ok)
}
