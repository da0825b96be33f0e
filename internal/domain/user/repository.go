package user

import "context"

// Repository defines the interface for user data operations
type Repository interface {
	// Create stores a new user, failing with a conflict when the email or
	// Discord ID is already registered.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, userID string) (*User, error)

	// GetByEmail retrieves a user by normalised email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdateByID runs fn against the stored user and saves the result
	// atomically; an error from fn aborts the write.
	UpdateByID(ctx context.Context, userID string, fn func(*User) error) (*User, error)

	// List returns all users in registration order
	List(ctx context.Context) ([]*User, error)
}
