package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	apperrors "github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

func TestGetTicketUseCase_Execute(t *testing.T) {
	owner := userSession("USR-ANA", "Ana Souza")
	tk := openTicket(t, owner, vo.ReasonSuggestion)

	tests := []struct {
		name     string
		query    GetTicketQuery
		wantErr  func(error) bool
		wantDesc string
	}{
		{
			name:     "owner reads own ticket",
			query:    GetTicketQuery{Session: owner, TicketID: tk.ID()},
			wantDesc: validDescription,
		},
		{
			name:     "admin reads any ticket",
			query:    GetTicketQuery{Session: adminSession(), TicketID: tk.ID()},
			wantDesc: validDescription,
		},
		{
			name:    "other user is forbidden",
			query:   GetTicketQuery{Session: userSession("USR-BIA", "Bia Lima"), TicketID: tk.ID()},
			wantErr: apperrors.IsForbiddenError,
		},
		{
			name:    "missing ticket",
			query:   GetTicketQuery{Session: owner, TicketID: "TK-NOPE-00000"},
			wantErr: apperrors.IsNotFoundError,
		},
		{
			name:    "empty id",
			query:   GetTicketQuery{Session: owner},
			wantErr: apperrors.IsValidationError,
		},
		{
			name:    "expired session",
			query:   GetTicketQuery{Session: expiredSession(), TicketID: tk.ID()},
			wantErr: apperrors.IsUnauthorizedError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tk)
			uc := NewGetTicketUseCase(f.repo, f.authz, f.log)

			result, err := uc.Execute(context.Background(), tt.query)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tk.ID(), result.ID)
			assert.Equal(t, tt.wantDesc, result.Description)
			assert.Equal(t, "Sugestão", result.ReasonLabel)
		})
	}
}
