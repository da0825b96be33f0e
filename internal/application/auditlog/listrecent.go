package auditlog

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// DefaultRecentLimit is how many entries the admin panel shows.
const DefaultRecentLimit = 10

type Authorizer interface {
	Enforce(role, resource, action string) (bool, error)
}

type ListRecentQuery struct {
	Session session.Session
	// Limit defaults to DefaultRecentLimit; negative returns everything.
	Limit int
}

type ListRecentUseCase struct {
	recorder *Recorder
	authz    Authorizer
	logger   logger.Interface
}

func NewListRecentUseCase(recorder *Recorder, authz Authorizer, logger logger.Interface) *ListRecentUseCase {
	return &ListRecentUseCase{
		recorder: recorder,
		authz:    authz,
		logger:   logger,
	}
}

func (uc *ListRecentUseCase) Execute(ctx context.Context, query ListRecentQuery) ([]EntryDTO, error) {
	if err := query.Session.Require(biztime.NowUTC()); err != nil {
		return nil, err
	}

	allowed, err := uc.authz.Enforce(query.Session.Subject(), permission.ResourceLog, permission.ActionRead)
	if err != nil {
		uc.logger.Errorw("failed to check permission", "error", err)
		return nil, errors.NewInternalError("failed to check permission")
	}
	if !allowed {
		return nil, errors.NewForbiddenError("only admins can read the activity log")
	}

	limit := query.Limit
	if limit == 0 {
		limit = DefaultRecentLimit
	}

	entries, err := uc.recorder.Recent(ctx, limit)
	if err != nil {
		uc.logger.Errorw("failed to list audit entries", "error", err)
		return nil, err
	}

	return ToEntryDTOs(entries), nil
}
