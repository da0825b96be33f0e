package models

import "time"

type LogRecord struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	UserID      string    `json:"userId"`
	Timestamp   time.Time `json:"timestamp"`
}
