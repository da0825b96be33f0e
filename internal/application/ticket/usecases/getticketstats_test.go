package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
)

func TestGetTicketStatsUseCase_Execute(t *testing.T) {
	ana := userSession("USR-ANA", "Ana Souza")
	bia := userSession("USR-BIA", "Bia Lima")

	old, err := ticket.ReconstructTicket("TK-OLD-00001", ticket.Submitter{UserID: "USR-ANA", Name: "Ana Souza"},
		vo.ReasonOther, validDescription, vo.StatusResolved,
		time.Now().UTC().Add(-72*time.Hour), time.Now().UTC().Add(-48*time.Hour), nil)
	require.NoError(t, err)
	fresh := openTicket(t, ana, vo.ReasonBugReport)
	other := openTicket(t, bia, vo.ReasonOther)

	tests := []struct {
		name  string
		query GetTicketStatsQuery
		want  [4]int
	}{
		{"admin sees global numbers", GetTicketStatsQuery{Session: adminSession()}, [4]int{3, 2, 1, 2}},
		{"user sees own numbers", GetTicketStatsQuery{Session: ana}, [4]int{2, 1, 1, 1}},
		{"user without resolved tickets", GetTicketStatsQuery{Session: bia}, [4]int{1, 1, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, old, fresh, other)
			uc := NewGetTicketStatsUseCase(f.repo, f.authz, f.log)

			stats, err := uc.Execute(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, [4]int{stats.Total, stats.Pending, stats.Resolved, stats.Recent})
		})
	}
}
