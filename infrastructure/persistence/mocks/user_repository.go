// Package mocks provides in-memory implementations of the persistence
// interfaces for tests and local development without MySQL.
package mocks

import (
	"context"
	"sync"

	"dddkit/domain/shared"
	"dddkit/domain/user"
)

// InMemoryUserRepository is a map-backed user repository.
// It mirrors the optimistic locking semantics of the MySQL implementation
// so concurrency conflicts are testable without a database.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]user.ReconstructionDTO
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]user.ReconstructionDTO),
	}
}

func (r *InMemoryUserRepository) Save(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email().Value() && existing.ID != u.ID() {
			return user.NewEmailAlreadyExistsError(u.Email().Value())
		}
	}

	if u.IsNew() {
		u.IncrementVersionForSave()
		r.users[u.ID()] = snapshot(u)
		return nil
	}

	stored, exists := r.users[u.ID()]
	if !exists {
		return user.NewUserNotFoundError(u.ID())
	}
	if stored.Version != u.Version() {
		return user.NewConcurrentModificationError(u.ID())
	}

	u.IncrementVersionForSave()
	r.users[u.ID()] = snapshot(u)
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, exists := r.users[id]
	if !exists {
		return nil, shared.NewNotFoundError("user")
	}
	return user.RebuildFromDTO(dto), nil
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.users {
		if dto.Email == email {
			return user.RebuildFromDTO(dto), nil
		}
	}
	return nil, nil
}

func (r *InMemoryUserRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dto, exists := r.users[id]
	if !exists {
		return user.NewUserNotFoundError(id)
	}
	dto.IsActive = false
	r.users[id] = dto
	return nil
}

// Count reports the number of stored users.
func (r *InMemoryUserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func snapshot(u *user.User) user.ReconstructionDTO {
	return user.ReconstructionDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email().Value(),
		IsActive:  u.IsActive(),
		Version:   u.Version(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

var _ user.Repository = (*InMemoryUserRepository)(nil)
