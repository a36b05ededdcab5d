package usecase

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/repository"
	"github.com/scanbook/scanbook/pkg/utils/logging"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// SignUp registers a new user with a bcrypt-hashed password.
func (x *UseCase) SignUp(ctx context.Context, email, password, name string) (*model.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, goerr.Wrap(types.ErrValidationFailed, "password is too short",
			goerr.V("minLength", minPasswordLength),
		)
	}
	if name == "" {
		return nil, goerr.Wrap(types.ErrValidationFailed, "name is empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           types.NewUserID(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := x.clients.UserRepository().CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("user registered", "userID", user.ID)

	return user, nil
}

// Login verifies credentials and returns a signed session token. Unknown
// email and wrong password are deliberately indistinguishable.
func (x *UseCase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := x.clients.UserRepository().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", goerr.Wrap(types.ErrUnauthenticated, "invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", goerr.Wrap(types.ErrUnauthenticated, "invalid credentials")
	}

	token, err := x.clients.TokenSource().Issue(user.ID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to issue session token")
	}

	return token, nil
}
