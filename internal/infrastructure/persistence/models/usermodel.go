package models

import "time"

type UserRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	DiscordID    string    `json:"discordId"`
	PasswordHash string    `json:"passwordHash"`
	RegisteredAt time.Time `json:"registeredAt"`
	IsActive     bool      `json:"isActive"`
}
