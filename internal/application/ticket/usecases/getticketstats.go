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

type GetTicketStatsQuery struct {
	Session session.Session
}

// GetTicketStatsUseCase counts tickets for the dashboard: global for admins,
// own tickets for users.
type GetTicketStatsUseCase struct {
	ticketRepo ticket.Repository
	authz      Authorizer
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(ticketRepo ticket.Repository, authz Authorizer, logger logger.Interface) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		authz:      authz,
		logger:     logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, query GetTicketStatsQuery) (*dto.StatsDTO, error) {
	uc.logger.Infow("executing get ticket stats use case", "user_id", query.Session.UserID)

	now := biztime.NowUTC()
	var filter ticket.Filter
	var err error
	if query.Session.IsAdmin() {
		err = authorize(uc.authz, query.Session, permission.ActionListAll, now)
	} else {
		err = authorize(uc.authz, query.Session, permission.ActionListOwn, now)
		filter.UserID = query.Session.UserID
	}
	if err != nil {
		return nil, err
	}

	tickets, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets for stats", "error", err)
		return nil, err
	}

	return dto.ToStatsDTO(ticket.ComputeStats(tickets, now)), nil
}
