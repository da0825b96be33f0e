package ticket

import (
	"fmt"
	"time"

	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/shared/id"
	"github.com/ticketdesk/ticketdesk/internal/shared/validation"
)

// System identity and text used when a ticket is resolved.
const (
	SystemSenderID        = "system"
	SystemSenderName      = "Sistema"
	ResolvedSystemMessage = "Ticket marcado como resolvido pelo administrador"
)

// Message is one entry of a ticket's chat thread. Messages are immutable once
// appended.
type Message struct {
	id         string
	senderID   string
	senderName string
	senderType vo.SenderType
	text       string
	timestamp  time.Time
}

func NewMessage(senderID, senderName string, senderType vo.SenderType, text string, now time.Time) (*Message, error) {
	if senderID == "" {
		return nil, fmt.Errorf("sender ID is required")
	}
	if !senderType.IsValid() {
		return nil, fmt.Errorf("invalid sender type: %s", senderType)
	}
	if err := validation.ValidateMessage(text); err != nil {
		return nil, err
	}

	messageID, err := id.NewMessageID(now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate message ID: %w", err)
	}

	return &Message{
		id:         messageID,
		senderID:   senderID,
		senderName: senderName,
		senderType: senderType,
		text:       validation.NormalizeText(text),
		timestamp:  now,
	}, nil
}

func ReconstructMessage(
	messageID string,
	senderID string,
	senderName string,
	senderType vo.SenderType,
	text string,
	timestamp time.Time,
) (*Message, error) {
	if messageID == "" {
		return nil, fmt.Errorf("message ID is required")
	}
	if !senderType.IsValid() {
		return nil, fmt.Errorf("invalid sender type: %s", senderType)
	}

	return &Message{
		id:         messageID,
		senderID:   senderID,
		senderName: senderName,
		senderType: senderType,
		text:       text,
		timestamp:  timestamp,
	}, nil
}

func (m *Message) ID() string {
	return m.id
}

func (m *Message) SenderID() string {
	return m.senderID
}

func (m *Message) SenderName() string {
	return m.senderName
}

func (m *Message) SenderType() vo.SenderType {
	return m.senderType
}

func (m *Message) Text() string {
	return m.text
}

func (m *Message) Timestamp() time.Time {
	return m.timestamp
}
