package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/auditlog"
	"github.com/ticketdesk/ticketdesk/internal/application/ticket/dto"
	auditlogdomain "github.com/ticketdesk/ticketdesk/internal/domain/auditlog"
	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type ExportTicketsQuery struct {
	Session session.Session
}

// ExportTicketsUseCase dumps every ticket and the activity log for backup.
type ExportTicketsUseCase struct {
	ticketRepo ticket.Repository
	logRepo    auditlogdomain.Repository
	authz      Authorizer
	logger     logger.Interface
}

func NewExportTicketsUseCase(
	ticketRepo ticket.Repository,
	logRepo auditlogdomain.Repository,
	authz Authorizer,
	logger logger.Interface,
) *ExportTicketsUseCase {
	return &ExportTicketsUseCase{
		ticketRepo: ticketRepo,
		logRepo:    logRepo,
		authz:      authz,
		logger:     logger,
	}
}

func (uc *ExportTicketsUseCase) Execute(ctx context.Context, query ExportTicketsQuery) (*dto.ExportDTO, error) {
	uc.logger.Infow("executing export tickets use case", "user_id", query.Session.UserID)

	now := biztime.NowUTC()
	if err := authorize(uc.authz, query.Session, permission.ActionExport, now); err != nil {
		uc.logger.Warnw("export not allowed", "user_id", query.Session.UserID, "error", err)
		return nil, err
	}

	tickets, err := uc.ticketRepo.List(ctx, ticket.Filter{})
	if err != nil {
		uc.logger.Errorw("failed to list tickets for export", "error", err)
		return nil, err
	}

	entries, err := uc.logRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list logs for export", "error", err)
		return nil, err
	}

	stats := ticket.ComputeStats(tickets, now)

	uc.logger.Infow("tickets exported successfully", "tickets", len(tickets), "logs", len(entries))

	return &dto.ExportDTO{
		Tickets:      dto.ToTicketDTOs(tickets),
		Logs:         auditlog.ToEntryDTOs(entries),
		ExportDate:   now,
		TotalTickets: stats.Total,
		Statistics: dto.ExportStatisticsDTO{
			Pending:  stats.Pending,
			Resolved: stats.Resolved,
		},
	}, nil
}
