package store

import (
	"context"
	"slices"

	"go-case-tracker/internal/domain"
	"go-case-tracker/pkg/utils"
)

func (s *Store) clientIndex(id string) int {
	return slices.IndexFunc(s.clients, func(c domain.Client) bool { return c.ID == id })
}

func (s *Store) AddClient(ctx context.Context, in NewClient) *domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	typ := in.Type
	if typ == "" {
		typ = domain.ClientTypeIndividual
	}
	c := domain.Client{
		ID:        utils.NewID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Type:      typ,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.clients = append(s.clients, c)
	save(ctx, s, KeyClients, s.clients)
	s.touch(KeyClients, "add")
	return &c
}

func (s *Store) UpdateClient(ctx context.Context, id string, u ClientUpdate) *domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.clientIndex(id)
	if i < 0 {
		return nil
	}
	c := s.clients[i]
	u.apply(&c)
	c.UpdatedAt = s.now()
	s.clients[i] = c
	save(ctx, s, KeyClients, s.clients)
	s.touch(KeyClients, "update")
	return &c
}

// DeleteClient leaves cases that reference the client untouched.
func (s *Store) DeleteClient(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.clientIndex(id)
	if i < 0 {
		return false
	}
	s.clients = slices.Delete(s.clients, i, i+1)
	save(ctx, s, KeyClients, s.clients)
	s.touch(KeyClients, "delete")
	return true
}

func (s *Store) GetClientByID(id string) *domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.clientIndex(id)
	if i < 0 {
		return nil
	}
	c := s.clients[i]
	return &c
}
