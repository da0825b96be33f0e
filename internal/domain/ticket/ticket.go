package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/shared/id"
	"github.com/ticketdesk/ticketdesk/internal/shared/validation"
)

const maxMessageIDAttempts = 5

// Submitter is the snapshot of the user taken when a ticket is opened. It
// never changes afterwards, even if the user edits their profile.
type Submitter struct {
	UserID    string
	Name      string
	DiscordID string
	Email     string
}

type Ticket struct {
	id          string
	userID      string
	userName    string
	discordID   string
	userEmail   string
	reason      vo.Reason
	description string
	status      vo.TicketStatus
	createdAt   time.Time
	updatedAt   time.Time
	messages    []*Message
	events      []Event
}

// NewTicket validates the submission and opens a pending ticket whose thread
// starts with the description as the submitter's first message.
func NewTicket(submitter Submitter, reason vo.Reason, description string, now time.Time) (*Ticket, error) {
	if strings.TrimSpace(submitter.UserID) == "" {
		return nil, fmt.Errorf("submitter user ID is required")
	}
	if err := validation.ValidateName(submitter.Name); err != nil {
		return nil, err
	}
	if err := validation.ValidateDiscordID(submitter.DiscordID); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(submitter.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidateReason(string(reason)); err != nil {
		return nil, err
	}
	if err := validation.ValidateDescription(description); err != nil {
		return nil, err
	}

	ticketID, err := id.NewTicketID(now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ticket ID: %w", err)
	}

	description = validation.NormalizeText(description)
	first, err := NewMessage(submitter.UserID, submitter.Name, vo.SenderUser, description, now)
	if err != nil {
		return nil, err
	}

	t := &Ticket{
		id:          ticketID,
		userID:      submitter.UserID,
		userName:    validation.NormalizeText(submitter.Name),
		discordID:   strings.TrimSpace(submitter.DiscordID),
		userEmail:   strings.ToLower(strings.TrimSpace(submitter.Email)),
		reason:      reason,
		description: description,
		status:      vo.StatusPending,
		createdAt:   now,
		updatedAt:   now,
		messages:    []*Message{first},
	}

	t.recordEvent(TicketCreatedEvent{
		TicketID:  ticketID,
		UserID:    submitter.UserID,
		Reason:    reason.Label(),
		Timestamp: now,
	})

	return t, nil
}

// ReconstructTicket rebuilds a ticket from storage. Reasons outside the
// current set are kept as-is so old records still load.
func ReconstructTicket(
	ticketID string,
	submitter Submitter,
	reason vo.Reason,
	description string,
	status vo.TicketStatus,
	createdAt, updatedAt time.Time,
	messages []*Message,
) (*Ticket, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}
	if messages == nil {
		messages = []*Message{}
	}

	return &Ticket{
		id:          ticketID,
		userID:      submitter.UserID,
		userName:    submitter.Name,
		discordID:   submitter.DiscordID,
		userEmail:   submitter.Email,
		reason:      reason,
		description: description,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		messages:    messages,
	}, nil
}

func (t *Ticket) ID() string {
	return t.id
}

func (t *Ticket) UserID() string {
	return t.userID
}

func (t *Ticket) UserName() string {
	return t.userName
}

func (t *Ticket) DiscordID() string {
	return t.discordID
}

func (t *Ticket) UserEmail() string {
	return t.userEmail
}

func (t *Ticket) Submitter() Submitter {
	return Submitter{
		UserID:    t.userID,
		Name:      t.userName,
		DiscordID: t.discordID,
		Email:     t.userEmail,
	}
}

func (t *Ticket) Reason() vo.Reason {
	return t.reason
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) Messages() []*Message {
	messagesCopy := make([]*Message, len(t.messages))
	copy(messagesCopy, t.messages)
	return messagesCopy
}

func (t *Ticket) MessageCount() int {
	return len(t.messages)
}

func (t *Ticket) LastMessage() *Message {
	if len(t.messages) == 0 {
		return nil
	}
	return t.messages[len(t.messages)-1]
}

// CanBeAccessedBy reports whether s may read or chat on the ticket.
func (t *Ticket) CanBeAccessedBy(s session.Session) bool {
	return s.IsAdmin() || (s.UserID != "" && s.UserID == t.userID)
}

// AppendMessage adds a chat message to the end of the thread.
func (t *Ticket) AppendMessage(senderID, senderName string, senderType vo.SenderType, text string, now time.Time) (*Message, error) {
	msg, err := t.newUniqueMessage(senderID, senderName, senderType, text, now)
	if err != nil {
		return nil, err
	}

	t.messages = append(t.messages, msg)
	t.touch(now)

	t.recordEvent(MessageSentEvent{
		TicketID:   t.id,
		MessageID:  msg.ID(),
		SenderID:   senderID,
		SenderType: senderType.String(),
		Timestamp:  now,
	})

	return msg, nil
}

// Resolve moves a pending ticket to resolved and appends exactly one system
// message. Resolving twice is a conflict.
func (t *Ticket) Resolve(resolvedBy string, now time.Time) error {
	if t.status.IsResolved() {
		return NewAlreadyResolvedError(t.id)
	}
	if !t.status.CanTransitionTo(vo.StatusResolved) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, vo.StatusResolved)
	}

	msg, err := t.newUniqueMessage(SystemSenderID, SystemSenderName, vo.SenderSystem, ResolvedSystemMessage, now)
	if err != nil {
		return err
	}

	t.status = vo.StatusResolved
	t.messages = append(t.messages, msg)
	t.touch(now)

	t.recordEvent(TicketResolvedEvent{
		TicketID:   t.id,
		ResolvedBy: resolvedBy,
		Timestamp:  now,
	})

	return nil
}

func (t *Ticket) newUniqueMessage(senderID, senderName string, senderType vo.SenderType, text string, now time.Time) (*Message, error) {
	for attempt := 0; attempt < maxMessageIDAttempts; attempt++ {
		msg, err := NewMessage(senderID, senderName, senderType, text, now)
		if err != nil {
			return nil, err
		}
		if !t.hasMessage(msg.ID()) {
			return msg, nil
		}
	}
	return nil, fmt.Errorf("failed to generate a unique message ID for ticket %s", t.id)
}

func (t *Ticket) hasMessage(messageID string) bool {
	for _, m := range t.messages {
		if m.ID() == messageID {
			return true
		}
	}
	return false
}

// touch bumps updatedAt without ever moving it backwards.
func (t *Ticket) touch(now time.Time) {
	if now.After(t.updatedAt) {
		t.updatedAt = now
	}
}

func (t *Ticket) recordEvent(event Event) {
	t.events = append(t.events, event)
}

// GetEvents returns and clears recorded domain events
func (t *Ticket) GetEvents() []Event {
	events := t.events
	t.events = nil
	return events
}
