package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/repository"
)

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.usersByEmail[user.Email]; exists {
		return goerr.Wrap(repository.ErrAlreadyExists, "email already registered",
			goerr.V("email", user.Email),
		)
	}

	cpy := copyUser(user)
	r.usersByID[string(user.ID)] = cpy
	r.usersByEmail[user.Email] = cpy

	return nil
}

func (r *Repository) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.usersByID[string(id)]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "user not found",
			goerr.V("userID", id),
		)
	}

	return copyUser(user), nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.usersByEmail[email]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "user not found",
			goerr.V("email", email),
		)
	}

	return copyUser(user), nil
}

func copyUser(user *model.User) *model.User {
	if user == nil {
		return nil
	}
	cpy := *user
	return &cpy
}
