package ticket

import (
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

func NewNotFoundError(ticketID string) error {
	return errors.NewNotFoundError("ticket not found", ticketID)
}

func NewAlreadyResolvedError(ticketID string) error {
	return errors.NewConflictError("ticket already resolved", ticketID)
}

func NewDuplicateIDError(ticketID string) error {
	return errors.NewConflictError("ticket ID already exists", ticketID)
}

func NewAccessDeniedError(ticketID string) error {
	return errors.NewForbiddenError("access to ticket denied", ticketID)
}
