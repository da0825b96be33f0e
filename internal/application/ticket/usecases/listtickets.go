package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/ticket/dto"
	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// ListTicketsQuery filters by status and reason; empty means any.
type ListTicketsQuery struct {
	Session session.Session
	Status  string
	Reason  string
}

type ListTicketsResult struct {
	Tickets []*dto.TicketListItemDTO `json:"tickets" yaml:"tickets"`
	Total   int                      `json:"total" yaml:"total"`
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	authz      Authorizer
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, authz Authorizer, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		authz:      authz,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	uc.logger.Infow("executing list tickets use case",
		"user_id", query.Session.UserID,
		"status", query.Status,
		"reason", query.Reason,
	)

	filter, err := uc.buildFilter(query)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	if query.Session.IsAdmin() {
		err = authorize(uc.authz, query.Session, permission.ActionListAll, now)
	} else {
		err = authorize(uc.authz, query.Session, permission.ActionListOwn, now)
		filter.UserID = query.Session.UserID
	}
	if err != nil {
		uc.logger.Warnw("list tickets not allowed", "user_id", query.Session.UserID, "error", err)
		return nil, err
	}

	tickets, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	items := make([]*dto.TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.ToTicketListItemDTO(t))
	}

	uc.logger.Infow("tickets listed successfully", "count", len(items))

	return &ListTicketsResult{
		Tickets: items,
		Total:   len(items),
	}, nil
}

func (uc *ListTicketsUseCase) buildFilter(query ListTicketsQuery) (ticket.Filter, error) {
	var filter ticket.Filter

	if query.Status != "" {
		status := vo.TicketStatus(query.Status)
		if !status.IsValid() {
			return filter, errors.NewFieldValidationError("status", "invalid_value", "unknown ticket status: "+query.Status)
		}
		filter.Status = &status
	}

	if query.Reason != "" {
		reason, err := vo.NewReason(query.Reason)
		if err != nil {
			return filter, errors.NewFieldValidationError("reason", "invalid_value", err.Error())
		}
		filter.Reason = &reason
	}

	return filter, nil
}
