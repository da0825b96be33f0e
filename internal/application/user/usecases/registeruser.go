package usecases

import (
	"context"
	"time"

	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
	"github.com/ticketdesk/ticketdesk/internal/shared/validation"
)

type RegisterUserCommand struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,mailbox"`
	DiscordID       string `json:"discordId" validate:"required,discordid"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type RegisterUserResult struct {
	UserID       string    `json:"userId" yaml:"userId"`
	Name         string    `json:"name" yaml:"name"`
	Email        string    `json:"email" yaml:"email"`
	DiscordID    string    `json:"discordId" yaml:"discordId"`
	RegisteredAt time.Time `json:"registeredAt" yaml:"registeredAt"`
}

type RegisterUserUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	audit    AuditRecorder
	logger   logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	audit AuditRecorder,
	logger logger.Interface,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		audit:    audit,
		logger:   logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	uc.logger.Infow("executing register user use case", "email", user.NormalizeEmail(cmd.Email))

	if err := validation.ValidateStruct(cmd); err != nil {
		uc.logger.Warnw("invalid registration", "error", err)
		return nil, err
	}

	u, err := user.NewUser(user.Registration{
		Name:            cmd.Name,
		Email:           cmd.Email,
		DiscordID:       cmd.DiscordID,
		Password:        cmd.Password,
		ConfirmPassword: cmd.ConfirmPassword,
	}, uc.hasher, biztime.NowUTC())
	if err != nil {
		uc.logger.Warnw("failed to create user entity", "error", err)
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		uc.logger.Errorw("failed to save user", "email", u.Email(), "error", err)
		return nil, err
	}

	uc.audit.Record(ctx, user.ActionUserRegister, "Novo usuário registrado: "+u.Name(), u.ID())

	uc.logger.Infow("user registered successfully", "user_id", u.ID())

	return &RegisterUserResult{
		UserID:       u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		DiscordID:    u.DiscordID(),
		RegisteredAt: u.RegisteredAt(),
	}, nil
}
