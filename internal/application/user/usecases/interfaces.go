package usecases

import (
	"context"
	"time"

	"github.com/ticketdesk/ticketdesk/internal/shared/config"
)

// AuditRecorder appends to the activity log and never fails the caller.
type AuditRecorder interface {
	Record(ctx context.Context, action, description, userID string)
}

func sessionTTL(cfg config.AuthConfig) time.Duration {
	if cfg.SessionHours <= 0 {
		return 0
	}
	return time.Duration(cfg.SessionHours) * time.Hour
}
