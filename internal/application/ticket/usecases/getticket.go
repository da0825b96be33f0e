package usecases

import (
	"context"
	"time"

	"github.com/ticketdesk/ticketdesk/internal/application/ticket/dto"
	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	Session  session.Session
	TicketID string
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	authz      Authorizer
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.Repository, authz Authorizer, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		authz:      authz,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing get ticket use case", "ticket_id", query.TicketID, "user_id", query.Session.UserID)

	t, err := loadAccessibleTicket(ctx, uc.ticketRepo, uc.authz, query.Session, query.TicketID,
		permission.ActionReadAny, permission.ActionReadOwn)
	if err != nil {
		uc.logger.Warnw("failed to get ticket", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	return dto.ToTicketDTO(t), nil
}

// loadAccessibleTicket fetches a ticket after checking the session may use
// it. The session is checked before the lookup so an expired session never
// learns whether an ID exists.
func loadAccessibleTicket(
	ctx context.Context,
	repo ticket.Repository,
	authz Authorizer,
	s session.Session,
	ticketID string,
	anyAction, ownAction string,
) (*ticket.Ticket, error) {
	now := biztime.NowUTC()
	if err := requireTicketTarget(s, ticketID, now); err != nil {
		return nil, err
	}

	t, err := repo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if err := authorizeAccess(authz, s, t, anyAction, ownAction, now); err != nil {
		return nil, err
	}
	return t, nil
}

// requireTicketTarget rejects dead sessions and empty ticket IDs before any
// lookup.
func requireTicketTarget(s session.Session, ticketID string, now time.Time) error {
	if err := s.Require(now); err != nil {
		return err
	}
	if ticketID == "" {
		return errors.NewFieldValidationError("ticketId", "required", "ticket ID is required")
	}
	return nil
}
