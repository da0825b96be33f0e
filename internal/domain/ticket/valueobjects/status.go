package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusPending  TicketStatus = "pending"
	StatusResolved TicketStatus = "resolved"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusPending:  true,
	StatusResolved: true,
}

// Tickets only move forward; there is no reopen.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusPending: {StatusResolved},
}

var statusLabels = map[TicketStatus]string{
	StatusPending:  "⏳ Pendente",
	StatusResolved: "✅ Resolvido",
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	for _, allowed := range ticketStatusTransitions[ts] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (ts TicketStatus) IsPending() bool {
	return ts == StatusPending
}

func (ts TicketStatus) IsResolved() bool {
	return ts == StatusResolved
}

// Label is the badge text shown next to a ticket.
func (ts TicketStatus) Label() string {
	if label, ok := statusLabels[ts]; ok {
		return label
	}
	return string(ts)
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
