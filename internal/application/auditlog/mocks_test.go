package auditlog

import (
	"context"

	auditlogdomain "github.com/ticketdesk/ticketdesk/internal/domain/auditlog"
)

type mockAuditLogRepository struct {
	AppendFunc func(ctx context.Context, entry *auditlogdomain.Entry, limit int) error
	ListFunc   func(ctx context.Context) ([]*auditlogdomain.Entry, error)
}

func (m *mockAuditLogRepository) Append(ctx context.Context, entry *auditlogdomain.Entry, limit int) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry, limit)
	}
	return nil
}

func (m *mockAuditLogRepository) List(ctx context.Context) ([]*auditlogdomain.Entry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

type mockAuthorizer struct {
	EnforceFunc func(role, resource, action string) (bool, error)
}

func (m *mockAuthorizer) Enforce(role, resource, action string) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(role, resource, action)
	}
	return false, nil
}
