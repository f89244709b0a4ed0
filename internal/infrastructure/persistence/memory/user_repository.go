package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/solemart/backend/internal/domain/identity"
	"github.com/solemart/backend/internal/domain/shared"
)

// UserRepository implements identity.Repository in memory
type UserRepository struct {
	store *Store
}

var _ identity.Repository = (*UserRepository)(nil)

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneUser(user), nil
}

// FindByUsername finds a user by username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, shared.ErrNotFound
}

// FindByEmail finds a user by email (case-insensitive)
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	needle := strings.ToLower(email)
	for _, user := range r.store.users {
		if user.Email == needle {
			return cloneUser(user), nil
		}
	}
	return nil, shared.ErrNotFound
}

// Save creates or updates a user
func (r *UserRepository) Save(ctx context.Context, user *identity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.users[user.ID] = cloneUser(user)
	return nil
}
