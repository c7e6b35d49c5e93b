package store

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-case-tracker/internal/domain"
	"go-case-tracker/pkg/utils"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput maps validator failures onto domain.ValidationError.
func (s *Store) validateInput(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range ves {
		out.Errors = append(out.Errors, domain.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "is invalid"
}

func (s *Store) userIndexByEmail(email string) int {
	return slices.IndexFunc(s.users, func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *Store) userIndex(id string) int {
	return slices.IndexFunc(s.users, func(u domain.User) bool { return u.ID == id })
}

// Register creates an active account and makes it the current user.
func (s *Store) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userIndexByEmail(in.Email) >= 0 {
		return nil, domain.ErrAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = domain.RoleParalegal
	}
	u := domain.User{
		ID:          utils.NewID(),
		Email:       in.Email,
		Password:    in.Password,
		Name:        in.Name,
		Role:        role,
		Preferences: domain.DefaultPreferences(),
		IsActive:    true,
		CreatedAt:   s.now(),
	}
	s.users = append(s.users, u)
	save(ctx, s, KeyUsers, s.users)
	s.touch(KeyUsers, "add")

	s.currentUser = &u
	s.saveCurrentUser(ctx)
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", u.Role.String()))

	out := u
	return &out, nil
}

// Login matches email case-insensitively and the password exactly. Inactive
// accounts never match.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndexByEmail(strings.TrimSpace(email))
	if i < 0 || !s.users[i].IsActive || s.users[i].Password != password {
		return nil, domain.ErrInvalidCredentials
	}
	u := s.users[i]
	s.currentUser = &u
	s.saveCurrentUser(ctx)

	out := u
	return &out, nil
}

func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = nil
	s.saveCurrentUser(ctx)
}

// CurrentUser is the principal of every authorization check, nil when
// nobody is logged in.
func (s *Store) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return nil
	}
	u := *s.currentUser
	return &u
}

// UpdateUser merges u into the account. The session copy follows when the
// account is the current user. An unknown id returns nil, nil; an email
// already held by another account is rejected with ErrAlreadyExists.
func (s *Store) UpdateUser(ctx context.Context, id string, u UserUpdate) (*domain.User, error) {
	if u.Email != nil {
		email := strings.TrimSpace(*u.Email)
		u.Email = &email
	}
	if err := s.validateInput(u); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndex(id)
	if i < 0 {
		return nil, nil
	}
	if u.Email != nil {
		if j := s.userIndexByEmail(*u.Email); j >= 0 && j != i {
			return nil, domain.ErrAlreadyExists
		}
	}
	u.apply(&s.users[i])
	save(ctx, s, KeyUsers, s.users)
	s.touch(KeyUsers, "update")
	s.syncSessionLocked(ctx, i)

	out := s.users[i]
	return &out, nil
}

// DeactivateUser disables login for the account; a deactivated current user
// is logged out.
func (s *Store) DeactivateUser(ctx context.Context, id string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndex(id)
	if i < 0 {
		return nil
	}
	s.users[i].IsActive = false
	save(ctx, s, KeyUsers, s.users)
	s.touch(KeyUsers, "deactivate")
	s.syncSessionLocked(ctx, i)

	out := s.users[i]
	return &out
}

func (s *Store) syncSessionLocked(ctx context.Context, i int) {
	if s.currentUser == nil || s.currentUser.ID != s.users[i].ID {
		return
	}
	if !s.users[i].IsActive {
		s.currentUser = nil
	} else {
		u := s.users[i]
		s.currentUser = &u
	}
	s.saveCurrentUser(ctx)
}

func (s *Store) ListUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

func (s *Store) GetUserByID(id string) *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.userIndex(id)
	if i < 0 {
		return nil
	}
	u := s.users[i]
	return &u
}
