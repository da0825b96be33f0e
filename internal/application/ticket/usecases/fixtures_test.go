package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
	"github.com/ticketdesk/ticketdesk/internal/shared/services/markdown"
)

const validDescription = "Não consigo entrar no servidor desde ontem"

func userSession(userID, name string) session.Session {
	return session.NewUserSession(userID, name, "ana@example.com", "123456789012345678", time.Now().UTC(), 0)
}

func adminSession() session.Session {
	return session.NewAdminSession(time.Now().UTC(), 0)
}

func expiredSession() session.Session {
	return session.NewUserSession("USR-1", "Ana Souza", "ana@example.com", "123456789012345678",
		time.Now().UTC().Add(-48*time.Hour), 0)
}

func openTicket(t *testing.T, s session.Session, reason vo.Reason) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(ticket.Submitter{
		UserID:    s.UserID,
		Name:      s.Name,
		DiscordID: s.DiscordID,
		Email:     s.Email,
	}, reason, validDescription, time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)
	tk.GetEvents()
	return tk
}

type fixture struct {
	repo     *mockTicketRepository
	stats    *mockStatsRepository
	saved    []ticket.Stats
	audit    *mockAuditRecorder
	authz    *permission.Enforcer
	markdown markdown.MarkdownService
	effects  *MutationEffects
	log      logger.Interface
}

func newFixture(t *testing.T, seed ...*ticket.Ticket) *fixture {
	t.Helper()

	enforcer, err := permission.NewEnforcer(logger.NewNop())
	require.NoError(t, err)

	f := &fixture{
		repo:     newInMemoryTicketRepository(seed...),
		audit:    &mockAuditRecorder{},
		authz:    enforcer,
		markdown: markdown.NewMarkdownService(),
		log:      logger.NewNop(),
	}
	f.stats = &mockStatsRepository{
		SaveFunc: func(ctx context.Context, s ticket.Stats) error {
			f.saved = append(f.saved, s)
			return nil
		},
	}
	f.effects = NewMutationEffects(f.repo, f.stats, f.audit, f.log)
	return f
}
