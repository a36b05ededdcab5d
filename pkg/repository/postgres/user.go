package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/repository"
)

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	const query = `
INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.pool.Exec(ctx, query,
		string(user.ID),
		user.Email,
		user.Name,
		user.PasswordHash,
		user.CreatedAt.UTC(),
		user.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return goerr.Wrap(repository.ErrAlreadyExists, "email already registered",
				goerr.V("email", user.Email),
			)
		}
		return goerr.Wrap(err, "failed to insert user",
			goerr.V("userID", user.ID),
		)
	}

	return nil
}

func (r *Repository) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	return r.getUser(ctx, "id = $1", string(id))
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, "email = $1", email)
}

func (r *Repository) getUser(ctx context.Context, cond string, arg any) (*model.User, error) {
	query := `
SELECT id, email, name, password_hash, created_at, updated_at
FROM users
WHERE ` + cond

	var user model.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goerr.Wrap(repository.ErrNotFound, "user not found")
		}
		return nil, goerr.Wrap(err, "failed to get user")
	}

	return &user, nil
}
