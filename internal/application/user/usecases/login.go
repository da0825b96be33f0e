package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/config"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	audit    AuditRecorder
	config   config.AuthConfig
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	audit AuditRecorder,
	cfg config.AuthConfig,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		audit:    audit,
		config:   cfg,
		logger:   logger,
	}
}

// Execute checks the credentials and opens a user session. Unknown emails
// and wrong passwords fail the same way.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*session.Session, error) {
	email := user.NormalizeEmail(cmd.Email)
	uc.logger.Infow("executing login use case", "email", email)

	if email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Warnw("login for unknown email", "email", email)
			return nil, errors.NewUnauthorizedError("invalid email or password")
		}
		uc.logger.Errorw("failed to get user by email", "email", email, "error", err)
		return nil, err
	}

	if err := u.VerifyPassword(cmd.Password, uc.hasher); err != nil {
		uc.logger.Warnw("login rejected", "user_id", u.ID(), "error", err)
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	uc.upgradePasswordHash(ctx, u, cmd.Password)

	s := session.NewUserSession(u.ID(), u.Name(), u.Email(), u.DiscordID(), biztime.NowUTC(), sessionTTL(uc.config))

	uc.audit.Record(ctx, user.ActionUserLogin, "Login realizado: "+u.Email(), u.ID())

	uc.logger.Infow("user logged in successfully", "user_id", u.ID())

	return &s, nil
}

// upgradePasswordHash re-hashes the password with the current cost when the
// stored hash was made with another one. Failures only log; the login
// itself already succeeded.
func (uc *LoginUseCase) upgradePasswordHash(ctx context.Context, u *user.User, password string) {
	if !uc.hasher.NeedsRehash(u.PasswordHash()) {
		return
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		uc.logger.Warnw("failed to rehash password", "user_id", u.ID(), "error", err)
		return
	}

	_, err = uc.userRepo.UpdateByID(ctx, u.ID(), func(stored *user.User) error {
		return stored.ReplacePasswordHash(hash)
	})
	if err != nil {
		uc.logger.Warnw("failed to store rehashed password", "user_id", u.ID(), "error", err)
		return
	}

	uc.logger.Infow("password hash upgraded", "user_id", u.ID())
}
