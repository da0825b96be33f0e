package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/ticketdesk/ticketdesk/internal/shared/id"
	"github.com/ticketdesk/ticketdesk/internal/shared/validation"
)

// Audit actions recorded for user events.
const (
	ActionUserRegister = "user_register"
	ActionUserLogin    = "user_login"
	ActionAdminLogin   = "admin_login"
)

// User is a registered ticket submitter. Email is stored lower-cased and,
// like the Discord ID, is unique across users.
type User struct {
	id           string
	name         string
	email        string
	discordID    string
	passwordHash string
	registeredAt time.Time
	isActive     bool
}

// Registration is the raw sign-up form.
type Registration struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,mailbox"`
	DiscordID       string `json:"discordId" validate:"required,discordid"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// NewUser validates the form, hashes the password and assigns an ID.
func NewUser(form Registration, hasher PasswordHasher, now time.Time) (*User, error) {
	if err := validation.ValidateName(form.Name); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(form.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidateDiscordID(form.DiscordID); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(form.Password, form.ConfirmPassword); err != nil {
		return nil, err
	}

	hash, err := hasher.Hash(form.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := id.NewUserID(now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	return &User{
		id:           userID,
		name:         validation.NormalizeText(form.Name),
		email:        NormalizeEmail(form.Email),
		discordID:    strings.TrimSpace(form.DiscordID),
		passwordHash: hash,
		registeredAt: now,
		isActive:     true,
	}, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(userID, name, email, discordID, passwordHash string, registeredAt time.Time, isActive bool) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		id:           userID,
		name:         name,
		email:        email,
		discordID:    discordID,
		passwordHash: passwordHash,
		registeredAt: registeredAt,
		isActive:     isActive,
	}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) ID() string {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email
}

func (u *User) DiscordID() string {
	return u.discordID
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) RegisteredAt() time.Time {
	return u.registeredAt
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) Deactivate() {
	u.isActive = false
}
