package models

import "time"

// TicketRecord is the stored shape of a ticket. Field names follow the
// widget's export format.
type TicketRecord struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	UserName    string          `json:"userName"`
	DiscordID   string          `json:"discordId"`
	UserEmail   string          `json:"userEmail"`
	Reason      string          `json:"reason"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Messages    []MessageRecord `json:"messages"`
}

type MessageRecord struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	SenderType string    `json:"senderType"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}
