package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory UserRepository with injectable failures.
type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]User
	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return ErrUserAlreadyExists
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return User{}, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeUserRepo) List(context.Context) ([]User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// fakeTokens returns "token-<user id>".
type fakeTokens struct {
	err error
}

func (f *fakeTokens) Generate(_ context.Context, u User) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + u.ID.String(), nil
}

var errBoom = errors.New("boom")
