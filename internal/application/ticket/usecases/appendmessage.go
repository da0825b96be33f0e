package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/ticket/dto"
	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type AppendMessageCommand struct {
	Session  session.Session
	TicketID string
	Text     string
}

type AppendMessageUseCase struct {
	ticketRepo ticket.Repository
	authz      Authorizer
	sanitizer  TextSanitizer
	effects    *MutationEffects
	logger     logger.Interface
}

func NewAppendMessageUseCase(
	ticketRepo ticket.Repository,
	authz Authorizer,
	sanitizer TextSanitizer,
	effects *MutationEffects,
	logger logger.Interface,
) *AppendMessageUseCase {
	return &AppendMessageUseCase{
		ticketRepo: ticketRepo,
		authz:      authz,
		sanitizer:  sanitizer,
		effects:    effects,
		logger:     logger,
	}
}

// Execute adds a chat message. Resolved tickets still accept messages.
func (uc *AppendMessageUseCase) Execute(ctx context.Context, cmd AppendMessageCommand) (*dto.MessageDTO, error) {
	uc.logger.Infow("executing append message use case", "ticket_id", cmd.TicketID, "user_id", cmd.Session.UserID)

	now := biztime.NowUTC()
	if err := requireTicketTarget(cmd.Session, cmd.TicketID, now); err != nil {
		uc.logger.Warnw("append message not allowed", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	senderType := vo.SenderUser
	if cmd.Session.IsAdmin() {
		senderType = vo.SenderAdmin
	}
	text := uc.sanitizer.PlainText(cmd.Text)

	var msg *ticket.Message
	t, err := uc.ticketRepo.UpdateByID(ctx, cmd.TicketID, func(t *ticket.Ticket) error {
		if err := authorizeAccess(uc.authz, cmd.Session, t,
			permission.ActionMessageAny, permission.ActionMessageOwn, now); err != nil {
			return err
		}
		appended, err := t.AppendMessage(cmd.Session.UserID, cmd.Session.Name, senderType, text, now)
		if err != nil {
			return err
		}
		msg = appended
		return nil
	})
	if err != nil {
		uc.logger.Warnw("failed to append message", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.effects.Apply(ctx, t.GetEvents())

	uc.logger.Infow("message appended successfully", "ticket_id", cmd.TicketID, "message_id", msg.ID())

	result := dto.ToMessageDTO(msg)
	return &result, nil
}
