package usecases

import (
	"context"
	"fmt"

	"github.com/ticketdesk/ticketdesk/internal/application/ticket/dto"
	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
	"github.com/ticketdesk/ticketdesk/internal/shared/validation"
)

type CreateTicketCommand struct {
	Session     session.Session
	Reason      string
	Description string
}

type CreateTicketUseCase struct {
	ticketRepo ticket.Repository
	authz      Authorizer
	sanitizer  TextSanitizer
	effects    *MutationEffects
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	authz Authorizer,
	sanitizer TextSanitizer,
	effects *MutationEffects,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		authz:      authz,
		sanitizer:  sanitizer,
		effects:    effects,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "user_id", cmd.Session.UserID, "reason", cmd.Reason)

	now := biztime.NowUTC()
	if err := authorize(uc.authz, cmd.Session, permission.ActionCreate, now); err != nil {
		uc.logger.Warnw("create ticket not allowed", "user_id", cmd.Session.UserID, "error", err)
		return nil, err
	}

	submitter := ticket.Submitter{
		UserID:    cmd.Session.UserID,
		Name:      cmd.Session.Name,
		DiscordID: cmd.Session.DiscordID,
		Email:     cmd.Session.Email,
	}

	description, err := plainDescription(uc.sanitizer, cmd.Description)
	if err != nil {
		uc.logger.Warnw("ticket description rejected", "user_id", cmd.Session.UserID, "error", err)
		return nil, err
	}

	t, err := ticket.NewTicket(submitter, vo.Reason(cmd.Reason), description, now)
	if err != nil {
		uc.logger.Errorw("failed to create ticket entity", "user_id", cmd.Session.UserID, "error", err)
		return nil, err
	}

	if err := uc.ticketRepo.Create(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	uc.effects.Apply(ctx, t.GetEvents())

	uc.logger.Infow("ticket created successfully", "ticket_id", t.ID())

	return dto.ToTicketDTO(t), nil
}

// plainDescription checks the length of what the user typed, then strips
// markup. Anything that looks like an HTML tag is dropped, so text that was
// long enough can still come out too short; that case gets its own message.
func plainDescription(sanitizer TextSanitizer, raw string) (string, error) {
	if err := validation.ValidateDescription(raw); err != nil {
		return "", err
	}

	text := sanitizer.PlainText(raw)
	if err := validation.ValidateDescription(text); err != nil {
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Reason == validation.ReasonRequired {
			return "", errors.NewFieldValidationError("description", validation.ReasonRequired,
				"description has no text once HTML tags are removed")
		}
		return "", errors.NewFieldValidationError("description", validation.ReasonTooShort,
			fmt.Sprintf("description must have at least %d characters once HTML tags are removed", validation.DescriptionMinLength))
	}
	return text, nil
}
