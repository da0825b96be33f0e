package repository

import (
	"context"
	"fmt"

	"github.com/ticketdesk/ticketdesk/internal/domain/auditlog"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/mappers"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/recordstore"
)

type AuditLogRepository struct {
	logs *recordstore.Collection[models.LogRecord]
}

func NewAuditLogRepository(store *recordstore.Store) *AuditLogRepository {
	return &AuditLogRepository{
		logs: recordstore.NewCollection[models.LogRecord](store, recordstore.KeyLogs),
	}
}

func (r *AuditLogRepository) Append(ctx context.Context, entry *auditlog.Entry, limit int) error {
	record := mappers.LogEntryToRecord(entry)

	err := r.logs.Mutate(ctx, func(records []models.LogRecord) ([]models.LogRecord, error) {
		records = append(records, record)
		if limit > 0 && len(records) > limit {
			records = records[len(records)-limit:]
		}
		return records, nil
	})
	if err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) List(ctx context.Context) ([]*auditlog.Entry, error) {
	records, err := r.logs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load log entries: %w", err)
	}

	entries := make([]*auditlog.Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, mappers.LogRecordToEntry(rec))
	}
	return entries, nil
}
