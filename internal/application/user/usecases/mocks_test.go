package usecases

import (
	"context"
	"sync"

	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

type mockUserRepository struct {
	CreateFunc     func(ctx context.Context, u *user.User) error
	GetByIDFunc    func(ctx context.Context, userID string) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	UpdateByIDFunc func(ctx context.Context, userID string, fn func(*user.User) error) (*user.User, error)
	ListFunc       func(ctx context.Context) ([]*user.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID string) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID)
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) UpdateByID(ctx context.Context, userID string, fn func(*user.User) error) (*user.User, error) {
	if m.UpdateByIDFunc != nil {
		return m.UpdateByIDFunc(ctx, userID, fn)
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func newInMemoryUserRepository() *mockUserRepository {
	var mu sync.Mutex
	var users []*user.User

	return &mockUserRepository{
		CreateFunc: func(ctx context.Context, u *user.User) error {
			mu.Lock()
			defer mu.Unlock()
			for _, existing := range users {
				if existing.Email() == u.Email() {
					return errors.NewConflictError("email already registered", u.Email())
				}
				if existing.DiscordID() == u.DiscordID() {
					return errors.NewConflictError("discord ID already registered", u.DiscordID())
				}
			}
			users = append(users, u)
			return nil
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			mu.Lock()
			defer mu.Unlock()
			email = user.NormalizeEmail(email)
			for _, u := range users {
				if u.Email() == email {
					return u, nil
				}
			}
			return nil, errors.NewNotFoundError("user not found")
		},
		UpdateByIDFunc: func(ctx context.Context, userID string, fn func(*user.User) error) (*user.User, error) {
			mu.Lock()
			defer mu.Unlock()
			for _, u := range users {
				if u.ID() == userID {
					if err := fn(u); err != nil {
						return nil, err
					}
					return u, nil
				}
			}
			return nil, errors.NewNotFoundError("user not found")
		},
	}
}

type mockAuditRecorder struct {
	mu      sync.Mutex
	actions []string
	users   []string
}

func (m *mockAuditRecorder) Record(ctx context.Context, action, description, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, action)
	m.users = append(m.users, userID)
}
