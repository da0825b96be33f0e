package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type DeleteTicketCommand struct {
	Session  session.Session
	TicketID string
}

type DeleteTicketUseCase struct {
	ticketRepo ticket.Repository
	authz      Authorizer
	effects    *MutationEffects
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.Repository,
	authz Authorizer,
	effects *MutationEffects,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		authz:      authz,
		effects:    effects,
		logger:     logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	uc.logger.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.Session.UserID)

	now := biztime.NowUTC()
	if err := authorize(uc.authz, cmd.Session, permission.ActionDelete, now); err != nil {
		uc.logger.Warnw("delete ticket not allowed", "user_id", cmd.Session.UserID, "error", err)
		return err
	}

	if err := uc.ticketRepo.Delete(ctx, cmd.TicketID); err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	uc.effects.Apply(ctx, []ticket.Event{ticket.TicketDeletedEvent{
		TicketID:  cmd.TicketID,
		DeletedBy: cmd.Session.UserID,
		Timestamp: now,
	}})

	uc.logger.Infow("ticket deleted successfully", "ticket_id", cmd.TicketID)
	return nil
}
