// Package store is the authoritative in-process record store. Every
// mutation is applied in memory, persisted write-through to a blob store and,
// where it changes a case, followed by an activity entry, all before the
// call returns.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"go-case-tracker/internal/domain"
	"go-case-tracker/internal/storage"
	"go-case-tracker/pkg/utils"
)

const DefaultKeyPrefix = "casetracker_"

// Collection keys, stored under the key prefix.
const (
	KeyUsers           = "users"
	KeyCurrentUser     = "current_user"
	KeyCases           = "cases"
	KeyClients         = "clients"
	KeyTasks           = "tasks"
	KeyTimeEntries     = "time_entries"
	KeyActivities      = "activities"
	KeyNotes           = "notes"
	KeyNotifications   = "notifications"
	KeySeedInitialized = "seed_initialized"
)

var allKeys = []string{
	KeyUsers, KeyCurrentUser, KeyCases, KeyClients, KeyTasks, KeyTimeEntries,
	KeyActivities, KeyNotes, KeyNotifications, KeySeedInitialized,
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithKeyPrefix(p string) Option {
	return func(s *Store) { s.prefix = p }
}

type Store struct {
	mu       sync.RWMutex
	blob     storage.BlobStore
	log      *zap.Logger
	clock    clockwork.Clock
	prefix   string
	validate *validator.Validate

	currentUser   *domain.User
	users         []domain.User
	cases         []domain.Case
	clients       []domain.Client
	tasks         []domain.Task
	timeEntries   []domain.TimeEntry
	activities    []domain.Activity // newest first
	notes         []domain.Note
	notifications []domain.Notification // newest first
}

// New builds an empty store over blob. Call Load to read persisted state.
func New(blob storage.BlobStore, opts ...Option) *Store {
	s := &Store{
		blob:   blob,
		log:    zap.NewNop(),
		clock:  clockwork.NewRealClock(),
		prefix: DefaultKeyPrefix,
	}
	for _, o := range opts {
		o(s)
	}
	s.validate = newValidator()
	return s
}

// Load replaces all in-memory state with what the blob store holds.
// Unreadable collections come back empty.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
}

// Refresh is Load under the name callers use after an external reset.
func (s *Store) Refresh(ctx context.Context) { s.Load(ctx) }

func (s *Store) loadLocked(ctx context.Context) {
	s.users = load[domain.User](ctx, s, KeyUsers)
	s.cases = load[domain.Case](ctx, s, KeyCases)
	s.clients = load[domain.Client](ctx, s, KeyClients)
	s.tasks = load[domain.Task](ctx, s, KeyTasks)
	s.timeEntries = load[domain.TimeEntry](ctx, s, KeyTimeEntries)
	s.activities = load[domain.Activity](ctx, s, KeyActivities)
	s.notes = load[domain.Note](ctx, s, KeyNotes)
	s.notifications = load[domain.Notification](ctx, s, KeyNotifications)

	cur, err := storage.GetJSON[domain.User](ctx, s.blob, s.key(KeyCurrentUser))
	if err != nil {
		s.blobFailed("get", KeyCurrentUser, err)
		cur = nil
	}
	s.currentUser = cur
	s.refreshGauges()

	s.log.Debug("store loaded",
		zap.Int("users", len(s.users)),
		zap.Int("cases", len(s.cases)),
		zap.Int("clients", len(s.clients)),
		zap.Int("tasks", len(s.tasks)),
		zap.Int("time_entries", len(s.timeEntries)),
		zap.Int("activities", len(s.activities)),
	)
}

func (s *Store) key(k string) string { return s.prefix + k }

func (s *Store) now() time.Time { return s.clock.Now() }

func load[T any](ctx context.Context, s *Store, key string) []T {
	v, err := storage.GetJSON[[]T](ctx, s.blob, s.key(key))
	if err != nil {
		s.blobFailed("get", key, err)
		return nil
	}
	if v == nil {
		return nil
	}
	return *v
}

// save writes a whole collection. Failures are logged and counted; the
// in-memory state stays authoritative.
func save[T any](ctx context.Context, s *Store, key string, v []T) {
	timer := prometheus.NewTimer(blobWriteSeconds)
	defer timer.ObserveDuration()
	if v == nil {
		v = []T{}
	}
	if err := storage.SetJSON(ctx, s.blob, s.key(key), v); err != nil {
		s.blobFailed("set", key, err)
	}
}

func (s *Store) saveCurrentUser(ctx context.Context) {
	if s.currentUser == nil {
		if err := s.blob.Remove(ctx, s.key(KeyCurrentUser)); err != nil {
			s.blobFailed("remove", KeyCurrentUser, err)
		}
		return
	}
	if err := storage.SetJSON(ctx, s.blob, s.key(KeyCurrentUser), *s.currentUser); err != nil {
		s.blobFailed("set", KeyCurrentUser, err)
	}
}

func (s *Store) blobFailed(op, key string, err error) {
	blobErrorsTotal.WithLabelValues(op).Inc()
	s.log.Warn("blob store "+op+" failed", zap.String("key", s.key(key)), zap.Error(err))
}

func (s *Store) touch(collection, op string) {
	mutationsTotal.WithLabelValues(collection, op).Inc()
	s.refreshGauges()
}

func (s *Store) refreshGauges() {
	storeRecords.WithLabelValues(KeyUsers).Set(float64(len(s.users)))
	storeRecords.WithLabelValues(KeyCases).Set(float64(len(s.cases)))
	storeRecords.WithLabelValues(KeyClients).Set(float64(len(s.clients)))
	storeRecords.WithLabelValues(KeyTasks).Set(float64(len(s.tasks)))
	storeRecords.WithLabelValues(KeyTimeEntries).Set(float64(len(s.timeEntries)))
	storeRecords.WithLabelValues(KeyActivities).Set(float64(len(s.activities)))
	storeRecords.WithLabelValues(KeyNotes).Set(float64(len(s.notes)))
	storeRecords.WithLabelValues(KeyNotifications).Set(float64(len(s.notifications)))
}

// AddActivity appends an audit entry for caseID on behalf of the current
// user. Without a current user nothing is recorded and nil is returned.
func (s *Store) AddActivity(ctx context.Context, caseID, action, details string) *domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordLocked(ctx, caseID, action, details)
}

func (s *Store) recordLocked(ctx context.Context, caseID, action, details string) *domain.Activity {
	if s.currentUser == nil {
		return nil
	}
	a := domain.Activity{
		ID:        utils.NewID(),
		CaseID:    caseID,
		UserID:    s.currentUser.ID,
		Action:    action,
		Details:   details,
		Timestamp: s.now(),
	}
	s.activities = append([]domain.Activity{a}, s.activities...)
	save(ctx, s, KeyActivities, s.activities)
	s.touch(KeyActivities, "add")
	return &a
}

type Stats struct {
	Users         int `json:"users"`
	Cases         int `json:"cases"`
	Clients       int `json:"clients"`
	Tasks         int `json:"tasks"`
	TimeEntries   int `json:"timeEntries"`
	Activities    int `json:"activities"`
	Notes         int `json:"notes"`
	Notifications int `json:"notifications"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Users:         len(s.users),
		Cases:         len(s.cases),
		Clients:       len(s.clients),
		Tasks:         len(s.tasks),
		TimeEntries:   len(s.timeEntries),
		Activities:    len(s.activities),
		Notes:         len(s.notes),
		Notifications: len(s.notifications),
	}
}
