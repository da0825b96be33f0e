package usecases

import (
	"context"
	"crypto/subtle"

	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/config"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type AdminLoginCommand struct {
	Username string
	Password string
}

// AdminLoginUseCase checks the single admin account configured under
// auth.admin_username and auth.admin_password_hash.
type AdminLoginUseCase struct {
	hasher user.PasswordHasher
	audit  AuditRecorder
	config config.AuthConfig
	logger logger.Interface
}

func NewAdminLoginUseCase(
	hasher user.PasswordHasher,
	audit AuditRecorder,
	cfg config.AuthConfig,
	logger logger.Interface,
) *AdminLoginUseCase {
	return &AdminLoginUseCase{
		hasher: hasher,
		audit:  audit,
		config: cfg,
		logger: logger,
	}
}

func (uc *AdminLoginUseCase) Execute(ctx context.Context, cmd AdminLoginCommand) (*session.Session, error) {
	uc.logger.Infow("executing admin login use case", "username", cmd.Username)

	if uc.config.AdminPasswordHash == "" {
		uc.logger.Warnw("admin login attempted but no admin password is configured")
		return nil, errors.NewUnauthorizedError("admin login is disabled")
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(cmd.Username), []byte(uc.config.AdminUsername)) == 1
	passwordErr := uc.hasher.Verify(cmd.Password, uc.config.AdminPasswordHash)
	if !usernameOK || passwordErr != nil {
		uc.logger.Warnw("admin login rejected", "username", cmd.Username)
		return nil, errors.NewUnauthorizedError("invalid admin credentials")
	}

	s := session.NewAdminSession(biztime.NowUTC(), sessionTTL(uc.config))

	uc.audit.Record(ctx, user.ActionAdminLogin, "Login administrativo realizado", s.UserID)

	uc.logger.Infow("admin logged in successfully")

	return &s, nil
}
