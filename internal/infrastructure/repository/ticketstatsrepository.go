package repository

import (
	"context"
	"fmt"

	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/recordstore"
)

// TicketStatsRepository stores the dashboard snapshot as a single document.
type TicketStatsRepository struct {
	store *recordstore.Store
}

func NewTicketStatsRepository(store *recordstore.Store) *TicketStatsRepository {
	return &TicketStatsRepository{store: store}
}

func (r *TicketStatsRepository) Save(ctx context.Context, stats ticket.Stats) error {
	if err := r.store.SaveDocument(ctx, recordstore.KeyStats, stats); err != nil {
		return fmt.Errorf("failed to save ticket stats: %w", err)
	}
	return nil
}

func (r *TicketStatsRepository) Load(ctx context.Context) (*ticket.Stats, error) {
	var stats ticket.Stats
	found, err := r.store.LoadDocument(ctx, recordstore.KeyStats, &stats)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket stats: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &stats, nil
}
