package auditlog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditlogdomain "github.com/ticketdesk/ticketdesk/internal/domain/auditlog"
	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	apperrors "github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

func seededEntries(n int) []*auditlogdomain.Entry {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := make([]*auditlogdomain.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, auditlogdomain.ReconstructEntry(
			fmt.Sprintf("LOG-%d", i), "message_sent", "msg", "USR-1", base.Add(time.Duration(i)*time.Minute),
		))
	}
	return entries
}

func TestRecorder_Record_AppendsWithCap(t *testing.T) {
	var gotLimit int
	var got *auditlogdomain.Entry
	repo := &mockAuditLogRepository{
		AppendFunc: func(ctx context.Context, entry *auditlogdomain.Entry, limit int) error {
			got = entry
			gotLimit = limit
			return nil
		},
	}

	NewRecorder(repo, logger.NewNop()).Record(context.Background(), "ticket_create", "Ticket criado", "USR-1")

	require.NotNil(t, got)
	assert.Equal(t, auditlogdomain.MaxEntries, gotLimit)
	assert.Equal(t, "ticket_create", got.Action())
	assert.Equal(t, "USR-1", got.UserID())
	assert.NotEmpty(t, got.ID())
}

func TestRecorder_Record_SwallowsFailures(t *testing.T) {
	repo := &mockAuditLogRepository{
		AppendFunc: func(ctx context.Context, entry *auditlogdomain.Entry, limit int) error {
			return errors.New("quota exceeded")
		},
	}

	assert.NotPanics(t, func() {
		NewRecorder(repo, logger.NewNop()).Record(context.Background(), "user_login", "login", "USR-1")
	})
}

func TestRecorder_Recent_NewestFirst(t *testing.T) {
	entries := seededEntries(15)
	repo := &mockAuditLogRepository{
		ListFunc: func(ctx context.Context) ([]*auditlogdomain.Entry, error) {
			return entries, nil
		},
	}
	recorder := NewRecorder(repo, logger.NewNop())

	tests := []struct {
		name      string
		n         int
		wantLen   int
		wantFirst string
	}{
		{"last ten", 10, 10, "LOG-14"},
		{"more than stored", 50, 15, "LOG-14"},
		{"all", 0, 15, "LOG-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := recorder.Recent(context.Background(), tt.n)
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantFirst, got[0].ID())
			for i := 1; i < len(got); i++ {
				assert.True(t, got[i-1].Timestamp().After(got[i].Timestamp()))
			}
		})
	}
}

func TestListRecentUseCase_Execute(t *testing.T) {
	repo := &mockAuditLogRepository{
		ListFunc: func(ctx context.Context) ([]*auditlogdomain.Entry, error) {
			return seededEntries(12), nil
		},
	}
	enforcer, err := permission.NewEnforcer(logger.NewNop())
	require.NoError(t, err)
	uc := NewListRecentUseCase(NewRecorder(repo, logger.NewNop()), enforcer, logger.NewNop())

	now := time.Now().UTC()

	t.Run("admin gets default page", func(t *testing.T) {
		got, err := uc.Execute(context.Background(), ListRecentQuery{Session: session.NewAdminSession(now, 0)})
		require.NoError(t, err)
		assert.Len(t, got, DefaultRecentLimit)
		assert.Equal(t, "LOG-11", got[0].ID)
	})

	t.Run("admin gets everything with negative limit", func(t *testing.T) {
		got, err := uc.Execute(context.Background(), ListRecentQuery{Session: session.NewAdminSession(now, 0), Limit: -1})
		require.NoError(t, err)
		assert.Len(t, got, 12)
	})

	t.Run("user is forbidden", func(t *testing.T) {
		s := session.NewUserSession("USR-1", "Ana", "ana@example.com", "123456789012345678", now, 0)
		_, err := uc.Execute(context.Background(), ListRecentQuery{Session: s})
		assert.True(t, apperrors.IsForbiddenError(err))
	})

	t.Run("expired session is unauthorized", func(t *testing.T) {
		s := session.NewAdminSession(now.Add(-48*time.Hour), 0)
		_, err := uc.Execute(context.Background(), ListRecentQuery{Session: s})
		assert.True(t, apperrors.IsUnauthorizedError(err))
	})
}

func TestListRecentUseCase_Execute_EnforcerFailure(t *testing.T) {
	authz := &mockAuthorizer{
		EnforceFunc: func(role, resource, action string) (bool, error) {
			return false, errors.New("model not loaded")
		},
	}
	uc := NewListRecentUseCase(NewRecorder(&mockAuditLogRepository{}, logger.NewNop()), authz, logger.NewNop())

	_, err := uc.Execute(context.Background(), ListRecentQuery{Session: session.NewAdminSession(time.Now().UTC(), 0)})
	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.TypeOf(err))
}
