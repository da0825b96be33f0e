package user

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

func (plainHasher) NeedsRehash(hash string) bool { return false }

func validForm() Registration {
	return Registration{
		Name:            "Ana Souza",
		Email:           "  Ana@Example.COM ",
		DiscordID:       "123456789012345678",
		Password:        "segredo",
		ConfirmPassword: "segredo",
	}
}

func TestNewUser(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	u, err := NewUser(validForm(), plainHasher{}, now)
	require.NoError(t, err)

	assert.Regexp(t, `^USR-[0-9a-z]+-[0-9A-Z]{8}$`, u.ID())
	assert.Equal(t, "ana@example.com", u.Email())
	assert.Equal(t, "hashed:segredo", u.PasswordHash())
	assert.True(t, u.IsActive())
	assert.Equal(t, now, u.RegisteredAt())
}

func TestNewUser_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Registration)
		field  string
	}{
		{"short name", func(r *Registration) { r.Name = "A" }, "name"},
		{"bad email", func(r *Registration) { r.Email = "ana.example.com" }, "email"},
		{"bad discord", func(r *Registration) { r.DiscordID = "abc" }, "discordId"},
		{"short password", func(r *Registration) { r.Password, r.ConfirmPassword = "123", "123" }, "password"},
		{"mismatch", func(r *Registration) { r.ConfirmPassword = "outro123" }, "confirmPassword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			_, err := NewUser(form, plainHasher{}, time.Now())
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestUser_VerifyPassword(t *testing.T) {
	u, err := NewUser(validForm(), plainHasher{}, time.Now())
	require.NoError(t, err)

	assert.NoError(t, u.VerifyPassword("segredo", plainHasher{}))
	assert.Error(t, u.VerifyPassword("errado", plainHasher{}))

	u.Deactivate()
	assert.Error(t, u.VerifyPassword("segredo", plainHasher{}))
}

func TestUser_ReplacePasswordHash(t *testing.T) {
	u, err := NewUser(validForm(), plainHasher{}, time.Now())
	require.NoError(t, err)

	assert.Error(t, u.ReplacePasswordHash(""))
	assert.Equal(t, "hashed:segredo", u.PasswordHash(), "rejected hash leaves the old one")

	require.NoError(t, u.ReplacePasswordHash("rehashed"))
	assert.Equal(t, "rehashed", u.PasswordHash())
}
