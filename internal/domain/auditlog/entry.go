// Package auditlog models the append-only activity log shown on the admin
// panel.
package auditlog

import (
	"context"
	"fmt"
	"time"

	"github.com/ticketdesk/ticketdesk/internal/shared/id"
)

// MaxEntries is the number of most recent entries kept; older ones are
// evicted first.
const MaxEntries = 1000

type Entry struct {
	id          string
	action      string
	description string
	userID      string
	timestamp   time.Time
}

func NewEntry(action, description, userID string, now time.Time) (*Entry, error) {
	if action == "" {
		return nil, fmt.Errorf("action is required")
	}

	logID, err := id.NewLogID(now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate log ID: %w", err)
	}

	return &Entry{
		id:          logID,
		action:      action,
		description: description,
		userID:      userID,
		timestamp:   now,
	}, nil
}

func ReconstructEntry(entryID, action, description, userID string, timestamp time.Time) *Entry {
	return &Entry{
		id:          entryID,
		action:      action,
		description: description,
		userID:      userID,
		timestamp:   timestamp,
	}
}

func (e *Entry) ID() string           { return e.id }
func (e *Entry) Action() string       { return e.action }
func (e *Entry) Description() string  { return e.description }
func (e *Entry) UserID() string       { return e.userID }
func (e *Entry) Timestamp() time.Time { return e.timestamp }

// Repository stores entries oldest first.
type Repository interface {
	// Append adds the entry and evicts the oldest ones beyond limit.
	Append(ctx context.Context, entry *Entry, limit int) error
	List(ctx context.Context) ([]*Entry, error)
}
