package dto

import (
	"time"

	"github.com/ticketdesk/ticketdesk/internal/application/auditlog"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
)

type MessageDTO struct {
	ID         string    `json:"id" yaml:"id"`
	SenderID   string    `json:"senderId" yaml:"senderId"`
	SenderName string    `json:"senderName" yaml:"senderName"`
	SenderType string    `json:"senderType" yaml:"senderType"`
	Message    string    `json:"message" yaml:"message"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
}

type TicketDTO struct {
	ID          string       `json:"id" yaml:"id"`
	UserID      string       `json:"userId" yaml:"userId"`
	UserName    string       `json:"userName" yaml:"userName"`
	DiscordID   string       `json:"discordId" yaml:"discordId"`
	UserEmail   string       `json:"userEmail" yaml:"userEmail"`
	Reason      string       `json:"reason" yaml:"reason"`
	ReasonLabel string       `json:"reasonLabel" yaml:"reasonLabel"`
	Description string       `json:"description" yaml:"description"`
	Status      string       `json:"status" yaml:"status"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" yaml:"updatedAt"`
	Messages    []MessageDTO `json:"messages" yaml:"messages"`
}

// TicketListItemDTO is the card shown in ticket lists.
type TicketListItemDTO struct {
	ID           string    `json:"id" yaml:"id"`
	UserName     string    `json:"userName" yaml:"userName"`
	Reason       string    `json:"reason" yaml:"reason"`
	ReasonLabel  string    `json:"reasonLabel" yaml:"reasonLabel"`
	Status       string    `json:"status" yaml:"status"`
	StatusLabel  string    `json:"statusLabel" yaml:"statusLabel"`
	MessageCount int       `json:"messageCount" yaml:"messageCount"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" yaml:"updatedAt"`
}

type StatsDTO struct {
	Total       int       `json:"total" yaml:"total"`
	Pending     int       `json:"pending" yaml:"pending"`
	Resolved    int       `json:"resolved" yaml:"resolved"`
	Recent      int       `json:"recent" yaml:"recent"`
	LastUpdated time.Time `json:"lastUpdated" yaml:"lastUpdated"`
}

type ExportStatisticsDTO struct {
	Pending  int `json:"pending" yaml:"pending"`
	Resolved int `json:"resolved" yaml:"resolved"`
}

// ExportDTO is the admin backup document.
type ExportDTO struct {
	Tickets      []*TicketDTO        `json:"tickets" yaml:"tickets"`
	Logs         []auditlog.EntryDTO `json:"logs" yaml:"logs"`
	ExportDate   time.Time           `json:"exportDate" yaml:"exportDate"`
	TotalTickets int                 `json:"totalTickets" yaml:"totalTickets"`
	Statistics   ExportStatisticsDTO `json:"statistics" yaml:"statistics"`
}

func ToMessageDTO(m *ticket.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID(),
		SenderID:   m.SenderID(),
		SenderName: m.SenderName(),
		SenderType: m.SenderType().String(),
		Message:    m.Text(),
		Timestamp:  m.Timestamp(),
	}
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	messages := t.Messages()
	messageDTOs := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		messageDTOs = append(messageDTOs, ToMessageDTO(m))
	}

	return &TicketDTO{
		ID:          t.ID(),
		UserID:      t.UserID(),
		UserName:    t.UserName(),
		DiscordID:   t.DiscordID(),
		UserEmail:   t.UserEmail(),
		Reason:      t.Reason().String(),
		ReasonLabel: t.Reason().Label(),
		Description: t.Description(),
		Status:      t.Status().String(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		Messages:    messageDTOs,
	}
}

func ToTicketDTOs(tickets []*ticket.Ticket) []*TicketDTO {
	result := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, ToTicketDTO(t))
	}
	return result
}

func ToTicketListItemDTO(t *ticket.Ticket) *TicketListItemDTO {
	if t == nil {
		return nil
	}
	return &TicketListItemDTO{
		ID:           t.ID(),
		UserName:     t.UserName(),
		Reason:       t.Reason().String(),
		ReasonLabel:  t.Reason().Label(),
		Status:       t.Status().String(),
		StatusLabel:  t.Status().Label(),
		MessageCount: t.MessageCount(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}
}

func ToStatsDTO(s ticket.Stats) *StatsDTO {
	return &StatsDTO{
		Total:       s.Total,
		Pending:     s.Pending,
		Resolved:    s.Resolved,
		Recent:      s.Recent,
		LastUpdated: s.LastUpdated,
	}
}
