package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// MutationEffects runs the bookkeeping every ticket mutation owes: domain
// events go to the audit log and the stats snapshot is recomputed. Neither
// step can fail the mutation that triggered it.
type MutationEffects struct {
	ticketRepo ticket.Repository
	statsRepo  ticket.StatsRepository
	audit      AuditRecorder
	logger     logger.Interface
}

func NewMutationEffects(
	ticketRepo ticket.Repository,
	statsRepo ticket.StatsRepository,
	audit AuditRecorder,
	logger logger.Interface,
) *MutationEffects {
	return &MutationEffects{
		ticketRepo: ticketRepo,
		statsRepo:  statsRepo,
		audit:      audit,
		logger:     logger,
	}
}

func (e *MutationEffects) Apply(ctx context.Context, events []ticket.Event) {
	for _, evt := range events {
		e.audit.Record(ctx, evt.Action(), evt.Description(), evt.ActorID())
	}
	e.refreshStats(ctx)
}

func (e *MutationEffects) refreshStats(ctx context.Context) {
	if e.statsRepo == nil {
		return
	}

	tickets, err := e.ticketRepo.List(ctx, ticket.Filter{})
	if err != nil {
		e.logger.Warnw("failed to load tickets for stats", "error", err)
		return
	}

	if err := e.statsRepo.Save(ctx, ticket.ComputeStats(tickets, biztime.NowUTC())); err != nil {
		e.logger.Warnw("failed to save stats snapshot", "error", err)
	}
}

// authorize checks the session is live and its role may perform action on
// tickets.
func authorize(authz Authorizer, s session.Session, action string, now time.Time) error {
	if err := s.Require(now); err != nil {
		return err
	}

	allowed, err := authz.Enforce(s.Subject(), permission.ResourceTicket, action)
	if err != nil {
		return errors.NewInternalError("failed to check permission", err.Error())
	}
	if !allowed {
		return errors.NewForbiddenError(fmt.Sprintf("role %s may not %s tickets", s.Role, action))
	}
	return nil
}

// authorizeAccess picks the any/own flavour of action for the session and
// applies ownership for non-admins.
func authorizeAccess(authz Authorizer, s session.Session, t *ticket.Ticket, anyAction, ownAction string, now time.Time) error {
	if s.IsAdmin() {
		return authorize(authz, s, anyAction, now)
	}
	if err := authorize(authz, s, ownAction, now); err != nil {
		return err
	}
	if !t.CanBeAccessedBy(s) {
		return ticket.NewAccessDeniedError(t.ID())
	}
	return nil
}
