// Package auditlog records user and admin activity and serves it back to the
// admin panel.
package auditlog

import (
	"context"
	"time"

	auditlogdomain "github.com/ticketdesk/ticketdesk/internal/domain/auditlog"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type EntryDTO struct {
	ID          string    `json:"id" yaml:"id"`
	Action      string    `json:"action" yaml:"action"`
	Description string    `json:"description" yaml:"description"`
	UserID      string    `json:"userId" yaml:"userId"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
}

func ToEntryDTO(e *auditlogdomain.Entry) EntryDTO {
	return EntryDTO{
		ID:          e.ID(),
		Action:      e.Action(),
		Description: e.Description(),
		UserID:      e.UserID(),
		Timestamp:   e.Timestamp(),
	}
}

func ToEntryDTOs(entries []*auditlogdomain.Entry) []EntryDTO {
	result := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		result = append(result, ToEntryDTO(e))
	}
	return result
}

// Recorder appends audit entries. A failed write is logged and swallowed:
// the mutation being audited has already happened.
type Recorder struct {
	repo   auditlogdomain.Repository
	limit  int
	logger logger.Interface
}

func NewRecorder(repo auditlogdomain.Repository, logger logger.Interface) *Recorder {
	return &Recorder{
		repo:   repo,
		limit:  auditlogdomain.MaxEntries,
		logger: logger,
	}
}

func (r *Recorder) Record(ctx context.Context, action, description, userID string) {
	r.RecordAt(ctx, action, description, userID, biztime.NowUTC())
}

func (r *Recorder) RecordAt(ctx context.Context, action, description, userID string, at time.Time) {
	entry, err := auditlogdomain.NewEntry(action, description, userID, at)
	if err != nil {
		r.logger.Warnw("failed to build audit entry", "action", action, "error", err)
		return
	}

	if err := r.repo.Append(ctx, entry, r.limit); err != nil {
		r.logger.Warnw("failed to record audit entry",
			"action", action,
			"user_id", userID,
			"error", err,
		)
	}
}

// Recent returns at most n entries, newest first. n <= 0 returns all.
func (r *Recorder) Recent(ctx context.Context, n int) ([]*auditlogdomain.Entry, error) {
	entries, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	reversed := make([]*auditlogdomain.Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
		if n > 0 && len(reversed) == n {
			break
		}
	}
	return reversed, nil
}
