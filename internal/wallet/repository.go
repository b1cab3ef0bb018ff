package wallet

import (
	"context"
	"errors"
	"sync"

	"bookit/pkg/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository stores users keyed by email.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdateBalance applies fn to the user's balance atomically. fn
	// returns the new balance or an error to abort unchanged.
	UpdateBalance(ctx context.Context, email string, fn func(current float64) (float64, error)) (float64, error)
}

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]*model.User),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return ErrDuplicateEmail
	}

	stored := *user
	r.users[user.Email] = &stored
	return nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}

	out := *user
	return &out, nil
}

func (r *memoryUserRepository) UpdateBalance(_ context.Context, email string, fn func(current float64) (float64, error)) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return 0, ErrUserNotFound
	}

	next, err := fn(user.Balance)
	if err != nil {
		return user.Balance, err
	}

	user.Balance = next
	return next, nil
}
