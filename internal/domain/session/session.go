// Package session describes who is acting on the ticket core. A Session is
// an explicit value handed to every use case; nothing reads "the current
// user" from global state.
package session

import (
	"time"

	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultTTL matches the 24h lifetime of a browser login.
const DefaultTTL = 24 * time.Hour

// Identity used for admin-authored chat messages and audit entries.
const (
	AdminUserID = "admin"
	AdminName   = "Admin"
)

type Session struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	DiscordID string    `json:"discordId,omitempty"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewUserSession(userID, name, email, discordID string, issuedAt time.Time, ttl time.Duration) Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return Session{
		UserID:    userID,
		Name:      name,
		Email:     email,
		DiscordID: discordID,
		Role:      RoleUser,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(ttl),
	}
}

func NewAdminSession(issuedAt time.Time, ttl time.Duration) Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return Session{
		UserID:    AdminUserID,
		Name:      AdminName,
		Role:      RoleAdmin,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(ttl),
	}
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Valid reports whether the session identifies someone and has not expired
// at now.
func (s Session) Valid(now time.Time) bool {
	if s.UserID == "" || (s.Role != RoleUser && s.Role != RoleAdmin) {
		return false
	}
	return now.Before(s.ExpiresAt)
}

// Require returns an unauthorized error unless the session is valid at now.
func (s Session) Require(now time.Time) error {
	if s.UserID == "" {
		return errors.NewUnauthorizedError("login required")
	}
	if !s.Valid(now) {
		return errors.NewUnauthorizedError("session expired", "log in again")
	}
	return nil
}

// Subject is the policy subject used by the permission enforcer.
func (s Session) Subject() string {
	return string(s.Role)
}
