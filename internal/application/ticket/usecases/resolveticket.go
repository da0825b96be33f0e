package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/ticket/dto"
	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type ResolveTicketCommand struct {
	Session  session.Session
	TicketID string
}

type ResolveTicketUseCase struct {
	ticketRepo ticket.Repository
	authz      Authorizer
	effects    *MutationEffects
	notifier   ResolutionNotifier
	logger     logger.Interface
}

// NewResolveTicketUseCase builds the use case. notifier may be nil when
// email is disabled.
func NewResolveTicketUseCase(
	ticketRepo ticket.Repository,
	authz Authorizer,
	effects *MutationEffects,
	notifier ResolutionNotifier,
	logger logger.Interface,
) *ResolveTicketUseCase {
	return &ResolveTicketUseCase{
		ticketRepo: ticketRepo,
		authz:      authz,
		effects:    effects,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *ResolveTicketUseCase) Execute(ctx context.Context, cmd ResolveTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing resolve ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.Session.UserID)

	now := biztime.NowUTC()
	if err := authorize(uc.authz, cmd.Session, permission.ActionResolve, now); err != nil {
		uc.logger.Warnw("resolve ticket not allowed", "user_id", cmd.Session.UserID, "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.UpdateByID(ctx, cmd.TicketID, func(t *ticket.Ticket) error {
		return t.Resolve(cmd.Session.UserID, now)
	})
	if err != nil {
		uc.logger.Warnw("failed to resolve ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.effects.Apply(ctx, t.GetEvents())

	if uc.notifier != nil {
		if err := uc.notifier.NotifyTicketResolved(ctx, t); err != nil {
			uc.logger.Warnw("failed to send resolution email", "ticket_id", t.ID(), "error", err)
		}
	}

	uc.logger.Infow("ticket resolved successfully", "ticket_id", t.ID())

	return dto.ToTicketDTO(t), nil
}
