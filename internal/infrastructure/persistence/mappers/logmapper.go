package mappers

import (
	"github.com/ticketdesk/ticketdesk/internal/domain/auditlog"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
)

func LogEntryToRecord(e *auditlog.Entry) models.LogRecord {
	return models.LogRecord{
		ID:          e.ID(),
		Action:      e.Action(),
		Description: e.Description(),
		UserID:      e.UserID(),
		Timestamp:   e.Timestamp(),
	}
}

func LogRecordToEntry(r models.LogRecord) *auditlog.Entry {
	return auditlog.ReconstructEntry(r.ID, r.Action, r.Description, r.UserID, r.Timestamp)
}
