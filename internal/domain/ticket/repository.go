package ticket

import (
	"context"

	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
)

// Repository persists Ticket aggregates. List returns tickets in insertion
// order. UpdateByID runs fn against the stored ticket and saves the result
// atomically; an error from fn aborts the write.
type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	List(ctx context.Context, filter Filter) ([]*Ticket, error)
	FindByID(ctx context.Context, ticketID string) (*Ticket, error)
	UpdateByID(ctx context.Context, ticketID string, fn func(*Ticket) error) (*Ticket, error)
	Delete(ctx context.Context, ticketID string) error
	Count(ctx context.Context, filter Filter) (int, error)
}

// Filter narrows List by equality. Nil / empty fields match everything.
type Filter struct {
	Status *vo.TicketStatus
	Reason *vo.Reason
	UserID string
}

func (f Filter) Matches(t *Ticket) bool {
	if f.Status != nil && t.Status() != *f.Status {
		return false
	}
	if f.Reason != nil && t.Reason() != *f.Reason {
		return false
	}
	if f.UserID != "" && t.UserID() != f.UserID {
		return false
	}
	return true
}

// StatsRepository stores the dashboard snapshot refreshed after each ticket
// mutation.
type StatsRepository interface {
	Save(ctx context.Context, stats Stats) error
	Load(ctx context.Context) (*Stats, error)
}
