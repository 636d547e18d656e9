package user

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	userDomain "gamey/internal/domain/user"
	errs "gamey/internal/errors"
)

type UserStorage interface {
	// CreateUser returns ErrUserExists when the username is taken.
	CreateUser(ctx context.Context, u userDomain.User) error
}

type UserUseCase struct {
	storage UserStorage
	log     *zap.SugaredLogger
}

func NewUserUseCase(storage UserStorage, log *zap.SugaredLogger) *UserUseCase {
	return &UserUseCase{storage: storage, log: log}
}

func (u *UserUseCase) CreateUser(ctx context.Context, username string) (userDomain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return userDomain.User{}, errs.ErrUsernameRequired
	}

	newUser := userDomain.User{Username: username, CreatedAt: time.Now().UTC()}
	if err := u.storage.CreateUser(ctx, newUser); err != nil {
		return userDomain.User{}, err
	}
	u.log.Infow("user created", "username", username)
	return newUser, nil
}
