package repository

import (
	"context"
	"fmt"

	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/mappers"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/recordstore"
	apperrors "github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

// TicketRepository keeps every ticket in one record-store collection.
// Tickets are listed in the order they were created.
type TicketRepository struct {
	tickets *recordstore.Collection[models.TicketRecord]
	mapper  mappers.TicketMapper
}

func NewTicketRepository(store *recordstore.Store) *TicketRepository {
	return &TicketRepository{
		tickets: recordstore.NewCollection[models.TicketRecord](store, recordstore.KeyTickets),
		mapper:  mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	record := r.mapper.ToRecord(t)

	err := r.tickets.Mutate(ctx, func(records []models.TicketRecord) ([]models.TicketRecord, error) {
		if indexOfTicket(records, record.ID) >= 0 {
			return nil, ticket.NewDuplicateIDError(record.ID)
		}
		return append(records, *record), nil
	})
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*ticket.Ticket, 0, len(all))
	for _, t := range all {
		if filter.Matches(t) {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *TicketRepository) FindByID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	records, err := r.tickets.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}

	idx := indexOfTicket(records, ticketID)
	if idx < 0 {
		return nil, ticket.NewNotFoundError(ticketID)
	}
	return r.toEntity(&records[idx])
}

// UpdateByID loads a ticket, applies fn and writes the result back inside a
// single collection mutation, so no other writer can slip in between the
// read and the write. Nothing is written when fn fails.
func (r *TicketRepository) UpdateByID(ctx context.Context, ticketID string, fn func(*ticket.Ticket) error) (*ticket.Ticket, error) {
	var updated *ticket.Ticket

	err := r.tickets.Mutate(ctx, func(records []models.TicketRecord) ([]models.TicketRecord, error) {
		idx := indexOfTicket(records, ticketID)
		if idx < 0 {
			return nil, ticket.NewNotFoundError(ticketID)
		}

		entity, err := r.toEntity(&records[idx])
		if err != nil {
			return nil, err
		}
		if err := fn(entity); err != nil {
			return nil, err
		}

		records[idx] = *r.mapper.ToRecord(entity)
		updated = entity
		return records, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	return updated, nil
}

func (r *TicketRepository) Delete(ctx context.Context, ticketID string) error {
	err := r.tickets.Mutate(ctx, func(records []models.TicketRecord) ([]models.TicketRecord, error) {
		idx := indexOfTicket(records, ticketID)
		if idx < 0 {
			return nil, ticket.NewNotFoundError(ticketID)
		}
		return append(records[:idx], records[idx+1:]...), nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) Count(ctx context.Context, filter ticket.Filter) (int, error) {
	tickets, err := r.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(tickets), nil
}

func (r *TicketRepository) loadAll(ctx context.Context) ([]*ticket.Ticket, error) {
	records, err := r.tickets.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}

	entities, err := r.mapper.ToEntities(records)
	if err != nil {
		return nil, apperrors.NewCorruptDataError(r.tickets.Key(), err)
	}
	return entities, nil
}

func (r *TicketRepository) toEntity(record *models.TicketRecord) (*ticket.Ticket, error) {
	entity, err := r.mapper.ToEntity(record)
	if err != nil {
		return nil, apperrors.NewCorruptDataError(r.tickets.Key(), err)
	}
	return entity, nil
}

func indexOfTicket(records []models.TicketRecord, ticketID string) int {
	for i := range records {
		if records[i].ID == ticketID {
			return i
		}
	}
	return -1
}
