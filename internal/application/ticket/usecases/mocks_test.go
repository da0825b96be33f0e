package usecases

import (
	"context"
	"sync"

	auditlogdomain "github.com/ticketdesk/ticketdesk/internal/domain/auditlog"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
)

type mockTicketRepository struct {
	CreateFunc     func(ctx context.Context, t *ticket.Ticket) error
	ListFunc       func(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error)
	FindByIDFunc   func(ctx context.Context, ticketID string) (*ticket.Ticket, error)
	UpdateByIDFunc func(ctx context.Context, ticketID string, fn func(*ticket.Ticket) error) (*ticket.Ticket, error)
	DeleteFunc     func(ctx context.Context, ticketID string) error
	CountFunc      func(ctx context.Context, filter ticket.Filter) (int, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTicketRepository) FindByID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, ticketID)
	}
	return nil, ticket.NewNotFoundError(ticketID)
}

func (m *mockTicketRepository) UpdateByID(ctx context.Context, ticketID string, fn func(*ticket.Ticket) error) (*ticket.Ticket, error) {
	if m.UpdateByIDFunc != nil {
		return m.UpdateByIDFunc(ctx, ticketID, fn)
	}
	return nil, ticket.NewNotFoundError(ticketID)
}

func (m *mockTicketRepository) Delete(ctx context.Context, ticketID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) Count(ctx context.Context, filter ticket.Filter) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filter)
	}
	return 0, nil
}

// newInMemoryTicketRepository wires the mock to an ordered slice so use
// cases can be exercised end to end.
func newInMemoryTicketRepository(seed ...*ticket.Ticket) *mockTicketRepository {
	var mu sync.Mutex
	tickets := append([]*ticket.Ticket{}, seed...)

	indexOf := func(id string) int {
		for i, t := range tickets {
			if t.ID() == id {
				return i
			}
		}
		return -1
	}

	return &mockTicketRepository{
		CreateFunc: func(ctx context.Context, t *ticket.Ticket) error {
			mu.Lock()
			defer mu.Unlock()
			if indexOf(t.ID()) >= 0 {
				return ticket.NewDuplicateIDError(t.ID())
			}
			tickets = append(tickets, t)
			return nil
		},
		ListFunc: func(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
			mu.Lock()
			defer mu.Unlock()
			result := make([]*ticket.Ticket, 0, len(tickets))
			for _, t := range tickets {
				if filter.Matches(t) {
					result = append(result, t)
				}
			}
			return result, nil
		},
		FindByIDFunc: func(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
			mu.Lock()
			defer mu.Unlock()
			if i := indexOf(ticketID); i >= 0 {
				return tickets[i], nil
			}
			return nil, ticket.NewNotFoundError(ticketID)
		},
		UpdateByIDFunc: func(ctx context.Context, ticketID string, fn func(*ticket.Ticket) error) (*ticket.Ticket, error) {
			mu.Lock()
			defer mu.Unlock()
			i := indexOf(ticketID)
			if i < 0 {
				return nil, ticket.NewNotFoundError(ticketID)
			}
			if err := fn(tickets[i]); err != nil {
				return nil, err
			}
			return tickets[i], nil
		},
		DeleteFunc: func(ctx context.Context, ticketID string) error {
			mu.Lock()
			defer mu.Unlock()
			i := indexOf(ticketID)
			if i < 0 {
				return ticket.NewNotFoundError(ticketID)
			}
			tickets = append(tickets[:i], tickets[i+1:]...)
			return nil
		},
	}
}

type mockStatsRepository struct {
	SaveFunc func(ctx context.Context, stats ticket.Stats) error
	LoadFunc func(ctx context.Context) (*ticket.Stats, error)
}

func (m *mockStatsRepository) Save(ctx context.Context, stats ticket.Stats) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, stats)
	}
	return nil
}

func (m *mockStatsRepository) Load(ctx context.Context) (*ticket.Stats, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return nil, nil
}

type recordedAudit struct {
	Action      string
	Description string
	UserID      string
}

type mockAuditRecorder struct {
	mu      sync.Mutex
	entries []recordedAudit
}

func (m *mockAuditRecorder) Record(ctx context.Context, action, description, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, recordedAudit{Action: action, Description: description, UserID: userID})
}

func (m *mockAuditRecorder) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	actions := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		actions = append(actions, e.Action)
	}
	return actions
}

type mockAuthorizer struct {
	EnforceFunc func(role, resource, action string) (bool, error)
}

func (m *mockAuthorizer) Enforce(role, resource, action string) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(role, resource, action)
	}
	return false, nil
}

type mockNotifier struct {
	NotifyFunc func(ctx context.Context, t *ticket.Ticket) error
	calls      int
}

func (m *mockNotifier) NotifyTicketResolved(ctx context.Context, t *ticket.Ticket) error {
	m.calls++
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, t)
	}
	return nil
}

type mockLogRepository struct {
	AppendFunc func(ctx context.Context, entry *auditlogdomain.Entry, limit int) error
	ListFunc   func(ctx context.Context) ([]*auditlogdomain.Entry, error)
}

func (m *mockLogRepository) Append(ctx context.Context, entry *auditlogdomain.Entry, limit int) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry, limit)
	}
	return nil
}

func (m *mockLogRepository) List(ctx context.Context) ([]*auditlogdomain.Entry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}
