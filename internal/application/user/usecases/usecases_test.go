package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/auth"
	"github.com/ticketdesk/ticketdesk/internal/shared/config"
	apperrors "github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

func validRegistration() RegisterUserCommand {
	return RegisterUserCommand{
		Name:            "Ana Souza",
		Email:           "Ana@Example.com",
		DiscordID:       "123456789012345678",
		Password:        "segredo1",
		ConfirmPassword: "segredo1",
	}
}

func TestRegisterUserUseCase_Execute_Success(t *testing.T) {
	repo := newInMemoryUserRepository()
	audit := &mockAuditRecorder{}
	uc := NewRegisterUserUseCase(repo, auth.NewBcryptPasswordHasher(bcrypt.MinCost), audit, logger.NewNop())

	result, err := uc.Execute(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.NotEmpty(t, result.UserID)
	assert.Equal(t, "ana@example.com", result.Email)
	assert.Equal(t, []string{user.ActionUserRegister}, audit.actions)
	assert.Equal(t, []string{result.UserID}, audit.users)

	stored, err := repo.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "segredo1", stored.PasswordHash())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash()), []byte("segredo1")))
}

func TestRegisterUserUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*RegisterUserCommand)
		wantField  string
		wantReason string
	}{
		{"short name", func(c *RegisterUserCommand) { c.Name = "A" }, "name", "too_short"},
		{"bad email", func(c *RegisterUserCommand) { c.Email = "ana.example.com" }, "email", "invalid_format"},
		{"short discord id", func(c *RegisterUserCommand) { c.DiscordID = "12345" }, "discordId", "invalid_format"},
		{"short password", func(c *RegisterUserCommand) { c.Password, c.ConfirmPassword = "123", "123" }, "password", "too_short"},
		{"mismatch", func(c *RegisterUserCommand) { c.ConfirmPassword = "outra123" }, "confirmPassword", "mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audit := &mockAuditRecorder{}
			uc := NewRegisterUserUseCase(newInMemoryUserRepository(), auth.NewBcryptPasswordHasher(bcrypt.MinCost), audit, logger.NewNop())

			cmd := validRegistration()
			tt.mutate(&cmd)

			_, err := uc.Execute(context.Background(), cmd)
			require.Error(t, err)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Equal(t, tt.wantReason, appErr.Reason)
			assert.Empty(t, audit.actions)
		})
	}
}

func TestRegisterUserUseCase_Execute_Duplicates(t *testing.T) {
	repo := newInMemoryUserRepository()
	uc := NewRegisterUserUseCase(repo, auth.NewBcryptPasswordHasher(bcrypt.MinCost), &mockAuditRecorder{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), validRegistration())
	require.NoError(t, err)

	sameEmail := validRegistration()
	sameEmail.DiscordID = "876543210987654321"
	_, err = uc.Execute(context.Background(), sameEmail)
	assert.True(t, apperrors.IsConflictError(err))

	sameDiscord := validRegistration()
	sameDiscord.Email = "outra@example.com"
	_, err = uc.Execute(context.Background(), sameDiscord)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestLoginUseCase_Execute(t *testing.T) {
	repo := newInMemoryUserRepository()
	hasher := auth.NewBcryptPasswordHasher(bcrypt.MinCost)
	_, err := NewRegisterUserUseCase(repo, hasher, &mockAuditRecorder{}, logger.NewNop()).
		Execute(context.Background(), validRegistration())
	require.NoError(t, err)

	audit := &mockAuditRecorder{}
	uc := NewLoginUseCase(repo, hasher, audit, config.AuthConfig{SessionHours: 24}, logger.NewNop())

	t.Run("valid credentials open a 24h session", func(t *testing.T) {
		s, err := uc.Execute(context.Background(), LoginCommand{Email: " ANA@example.com ", Password: "segredo1"})
		require.NoError(t, err)
		assert.Equal(t, session.RoleUser, s.Role)
		assert.Equal(t, "ana@example.com", s.Email)
		assert.Equal(t, "123456789012345678", s.DiscordID)
		assert.Equal(t, 24*time.Hour, s.ExpiresAt.Sub(s.IssuedAt))
		assert.True(t, s.Valid(time.Now().UTC()))
		assert.Equal(t, []string{user.ActionUserLogin}, audit.actions)
	})

	tests := []struct {
		name    string
		cmd     LoginCommand
		wantErr func(error) bool
	}{
		{"wrong password", LoginCommand{Email: "ana@example.com", Password: "errada"}, apperrors.IsUnauthorizedError},
		{"unknown email", LoginCommand{Email: "ninguem@example.com", Password: "segredo1"}, apperrors.IsUnauthorizedError},
		{"missing fields", LoginCommand{}, apperrors.IsValidationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
		})
	}
}

func TestLoginUseCase_Execute_RehashesOnCostChange(t *testing.T) {
	tests := []struct {
		name      string
		loginCost int
		wantCost  int
	}{
		{"same cost keeps hash", bcrypt.MinCost, bcrypt.MinCost},
		{"raised cost upgrades hash", bcrypt.MinCost + 1, bcrypt.MinCost + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := newInMemoryUserRepository()
			registered, err := NewRegisterUserUseCase(repo, auth.NewBcryptPasswordHasher(bcrypt.MinCost), &mockAuditRecorder{}, logger.NewNop()).
				Execute(ctx, validRegistration())
			require.NoError(t, err)

			before, err := repo.GetByEmail(ctx, "ana@example.com")
			require.NoError(t, err)
			oldHash := before.PasswordHash()

			hasher := auth.NewBcryptPasswordHasher(tt.loginCost)
			uc := NewLoginUseCase(repo, hasher, &mockAuditRecorder{}, config.AuthConfig{SessionHours: 24}, logger.NewNop())

			s, err := uc.Execute(ctx, LoginCommand{Email: "ana@example.com", Password: "segredo1"})
			require.NoError(t, err)
			assert.Equal(t, registered.UserID, s.UserID)

			after, err := repo.GetByEmail(ctx, "ana@example.com")
			require.NoError(t, err)
			cost, err := bcrypt.Cost([]byte(after.PasswordHash()))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cost)
			if tt.wantCost == bcrypt.MinCost {
				assert.Equal(t, oldHash, after.PasswordHash())
			}

			_, err = uc.Execute(ctx, LoginCommand{Email: "ana@example.com", Password: "segredo1"})
			assert.NoError(t, err, "upgraded hash still verifies")
		})
	}
}

func TestLoginUseCase_Execute_RehashFailureDoesNotBlockLogin(t *testing.T) {
	ctx := context.Background()
	repo := newInMemoryUserRepository()
	_, err := NewRegisterUserUseCase(repo, auth.NewBcryptPasswordHasher(bcrypt.MinCost), &mockAuditRecorder{}, logger.NewNop()).
		Execute(ctx, validRegistration())
	require.NoError(t, err)

	repo.UpdateByIDFunc = func(context.Context, string, func(*user.User) error) (*user.User, error) {
		return nil, apperrors.NewInternalError("store unavailable")
	}

	uc := NewLoginUseCase(repo, auth.NewBcryptPasswordHasher(bcrypt.MinCost+1), &mockAuditRecorder{}, config.AuthConfig{SessionHours: 24}, logger.NewNop())
	_, err = uc.Execute(ctx, LoginCommand{Email: "ana@example.com", Password: "segredo1"})
	assert.NoError(t, err)
}

func TestAdminLoginUseCase_Execute(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("admin-pass")
	require.NoError(t, err)
	cfg := config.AuthConfig{AdminUsername: "admin", AdminPasswordHash: hash, SessionHours: 24}

	t.Run("configured credentials", func(t *testing.T) {
		audit := &mockAuditRecorder{}
		uc := NewAdminLoginUseCase(hasher, audit, cfg, logger.NewNop())

		s, err := uc.Execute(context.Background(), AdminLoginCommand{Username: "admin", Password: "admin-pass"})
		require.NoError(t, err)
		assert.True(t, s.IsAdmin())
		assert.Equal(t, session.AdminUserID, s.UserID)
		assert.Equal(t, []string{user.ActionAdminLogin}, audit.actions)
	})

	tests := []struct {
		name string
		cfg  config.AuthConfig
		cmd  AdminLoginCommand
	}{
		{"wrong password", cfg, AdminLoginCommand{Username: "admin", Password: "admin123"}},
		{"wrong username", cfg, AdminLoginCommand{Username: "root", Password: "admin-pass"}},
		{"no hash configured", config.AuthConfig{AdminUsername: "admin"}, AdminLoginCommand{Username: "admin", Password: "admin-pass"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audit := &mockAuditRecorder{}
			uc := NewAdminLoginUseCase(hasher, audit, tt.cfg, logger.NewNop())

			_, err := uc.Execute(context.Background(), tt.cmd)
			assert.True(t, apperrors.IsUnauthorizedError(err))
			assert.Empty(t, audit.actions)
		})
	}
}
