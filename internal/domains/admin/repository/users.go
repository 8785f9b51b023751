package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"yadoya/config"
	"yadoya/infras/otel"
	"yadoya/internal/domains/admin/model"
	"yadoya/shared/constant"
	"yadoya/shared/logger"
)

// Users is the credential file for backend login accounts. It sits
// outside the entity collection directory and stores username plus
// password hash pairs without ids.
type Users interface {
	List(ctx context.Context) ([]model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, bool, error)
	Add(ctx context.Context, user model.User) (bool, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) (bool, error)
	Delete(ctx context.Context, username string) error
}

type usersImpl struct {
	path string
	otel otel.Otel
	mu   sync.Mutex
}

func NewUsers(cfg *config.Config, otel otel.Otel) Users {
	return &usersImpl{
		path: cfg.Data.UsersFile,
		otel: otel,
	}
}

func (r *usersImpl) load() ([]model.User, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return []model.User{}, nil
	}
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("corrupt users file: %w", err)
	}

	return users, nil
}

func (r *usersImpl) save(users []model.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users file: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write users file: %w", err)
	}

	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace users file: %w", err)
	}

	return nil
}

func (r *usersImpl) List(ctx context.Context) (users []model.User, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".users.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

func (r *usersImpl) GetByUsername(ctx context.Context, username string) (user model.User, found bool, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".users.GetByUsername")
	defer scope.End()
	defer scope.TraceIfError(err)

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return user, false, err
	}

	for _, u := range users {
		if u.Username == username {
			return u, true, nil
		}
	}

	return user, false, nil
}

// Add reports false when the username is already taken.
func (r *usersImpl) Add(ctx context.Context, user model.User) (added bool, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".users.Add")
	defer scope.End()
	defer scope.TraceIfError(err)

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return false, err
	}

	for _, u := range users {
		if u.Username == user.Username {
			return false, nil
		}
	}

	users = append(users, user)

	return true, r.save(users)
}

func (r *usersImpl) UpdatePassword(ctx context.Context, username, passwordHash string) (found bool, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".users.UpdatePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return false, err
	}

	for i := range users {
		if users[i].Username == username {
			users[i].PasswordHash = passwordHash

			return true, r.save(users)
		}
	}

	return false, nil
}

// Delete removes the credential pair. Deleting an unknown username is
// a no-op success.
func (r *usersImpl) Delete(ctx context.Context, username string) (err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".users.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}

	kept := users[:0]
	for _, u := range users {
		if u.Username != username {
			kept = append(kept, u)
		}
	}

	return r.save(kept)
}
