package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/ticket/dto"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
)

// Authorizer answers role/resource/action questions. The casbin-backed
// permission.Enforcer satisfies it.
type Authorizer interface {
	Enforce(role, resource, action string) (bool, error)
}

// AuditRecorder appends to the activity log and never fails the caller.
type AuditRecorder interface {
	Record(ctx context.Context, action, description, userID string)
}

// TextSanitizer strips markup from user input.
type TextSanitizer interface {
	PlainText(input string) string
}

// TranscriptRenderer turns a Markdown transcript into safe HTML.
type TranscriptRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
	EscapeInline(s string) string
}

// ResolutionNotifier tells the submitter their ticket was resolved.
type ResolutionNotifier interface {
	NotifyTicketResolved(ctx context.Context, t *ticket.Ticket) error
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type AppendMessageExecutor interface {
	Execute(ctx context.Context, cmd AppendMessageCommand) (*dto.MessageDTO, error)
}

type ResolveTicketExecutor interface {
	Execute(ctx context.Context, cmd ResolveTicketCommand) (*dto.TicketDTO, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) error
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context, query GetTicketStatsQuery) (*dto.StatsDTO, error)
}

type ExportTicketsExecutor interface {
	Execute(ctx context.Context, query ExportTicketsQuery) (*dto.ExportDTO, error)
}

type RenderTranscriptExecutor interface {
	Execute(ctx context.Context, query RenderTranscriptQuery) (*RenderTranscriptResult, error)
}
