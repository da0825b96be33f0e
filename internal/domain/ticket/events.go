package ticket

import (
	"time"
)

// Audit actions recorded for ticket events.
const (
	ActionTicketCreate  = "ticket_create"
	ActionMessageSent   = "message_sent"
	ActionTicketResolve = "ticket_resolve"
	ActionTicketDelete  = "ticket_delete"
)

// Event is a domain event raised by the Ticket aggregate and drained by the
// application layer into the audit log.
type Event interface {
	Action() string
	ActorID() string
	Description() string
	OccurredAt() time.Time
}

type TicketCreatedEvent struct {
	TicketID  string
	UserID    string
	Reason    string
	Timestamp time.Time
}

func (e TicketCreatedEvent) Action() string        { return ActionTicketCreate }
func (e TicketCreatedEvent) ActorID() string       { return e.UserID }
func (e TicketCreatedEvent) OccurredAt() time.Time { return e.Timestamp }
func (e TicketCreatedEvent) Description() string {
	return "Ticket " + e.TicketID + " criado (" + e.Reason + ")"
}

type MessageSentEvent struct {
	TicketID   string
	MessageID  string
	SenderID   string
	SenderType string
	Timestamp  time.Time
}

func (e MessageSentEvent) Action() string        { return ActionMessageSent }
func (e MessageSentEvent) ActorID() string       { return e.SenderID }
func (e MessageSentEvent) OccurredAt() time.Time { return e.Timestamp }
func (e MessageSentEvent) Description() string {
	return "Mensagem enviada no ticket " + e.TicketID
}

type TicketResolvedEvent struct {
	TicketID   string
	ResolvedBy string
	Timestamp  time.Time
}

func (e TicketResolvedEvent) Action() string        { return ActionTicketResolve }
func (e TicketResolvedEvent) ActorID() string       { return e.ResolvedBy }
func (e TicketResolvedEvent) OccurredAt() time.Time { return e.Timestamp }
func (e TicketResolvedEvent) Description() string {
	return "Ticket " + e.TicketID + " marcado como resolvido"
}

// TicketDeletedEvent is raised by the delete use case; a deleted aggregate
// has nowhere to record it.
type TicketDeletedEvent struct {
	TicketID  string
	DeletedBy string
	Timestamp time.Time
}

func (e TicketDeletedEvent) Action() string        { return ActionTicketDelete }
func (e TicketDeletedEvent) ActorID() string       { return e.DeletedBy }
func (e TicketDeletedEvent) OccurredAt() time.Time { return e.Timestamp }
func (e TicketDeletedEvent) Description() string {
	return "Ticket " + e.TicketID + " excluído"
}
