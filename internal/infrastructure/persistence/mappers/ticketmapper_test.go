package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
)

func TestTicketMapper_PreservesThread(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tk, err := ticket.NewTicket(ticket.Submitter{
		UserID:    "USR-1",
		Name:      "Maria",
		DiscordID: "123456789012345678",
		Email:     "maria@example.com",
	}, vo.ReasonSuggestion, "Adicionem um canal de memes", now)
	require.NoError(t, err)
	require.NoError(t, tk.Resolve(session.AdminUserID, now.Add(time.Hour)))

	m := NewTicketMapper()
	record := m.ToRecord(tk)

	assert.Equal(t, "resolved", record.Status)
	assert.Equal(t, "sugestao", record.Reason)
	require.Len(t, record.Messages, 2)
	assert.Equal(t, "system", record.Messages[1].SenderType)

	back, err := m.ToEntity(record)
	require.NoError(t, err)
	assert.Equal(t, tk.ID(), back.ID())
	assert.Equal(t, tk.UpdatedAt(), back.UpdatedAt())
	require.Len(t, back.Messages(), 2)
	assert.Equal(t, tk.Messages()[0].ID(), back.Messages()[0].ID())
}

func TestTicketMapper_RejectsUnknownStatus(t *testing.T) {
	_, err := NewTicketMapper().ToEntity(&models.TicketRecord{ID: "TK-1-AAAAA", Status: "closed"})
	assert.Error(t, err)
}

func TestTicketMapper_ToEntities(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	m := NewTicketMapper()

	var records []models.TicketRecord
	for _, reason := range []vo.Reason{vo.ReasonBugReport, vo.ReasonOther} {
		tk, err := ticket.NewTicket(ticket.Submitter{
			UserID:    "USR-1",
			Name:      "Maria",
			DiscordID: "123456789012345678",
			Email:     "maria@example.com",
		}, reason, "O bot parou de responder no canal geral", now)
		require.NoError(t, err)
		records = append(records, *m.ToRecord(tk))
	}

	entities, err := m.ToEntities(records)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, records[0].ID, entities[0].ID())
	assert.Equal(t, vo.ReasonOther, entities[1].Reason())

	records = append(records, models.TicketRecord{ID: "TK-1-AAAAA", Status: "closed"})
	_, err = m.ToEntities(records)
	assert.ErrorContains(t, err, "TK-1-AAAAA")
}
