package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	apperrors "github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

func TestCreateTicketUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateTicketUseCase(f.repo, f.authz, f.markdown, f.effects, f.log)

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Session:     userSession("USR-1", "Ana Souza"),
		Reason:      string(vo.ReasonTechnicalSupport),
		Description: validDescription,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "USR-1", result.UserID)
	assert.Equal(t, string(vo.StatusPending), result.Status)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, validDescription, result.Messages[0].Message)
	assert.Equal(t, string(vo.SenderUser), result.Messages[0].SenderType)

	stored, err := f.repo.List(context.Background(), ticket.Filter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, result.ID, stored[0].ID())

	assert.Equal(t, []string{ticket.ActionTicketCreate}, f.audit.actions())
	require.Len(t, f.saved, 1)
	assert.Equal(t, 1, f.saved[0].Total)
	assert.Equal(t, 1, f.saved[0].Pending)
}

func TestCreateTicketUseCase_Execute_UniqueIDs(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateTicketUseCase(f.repo, f.authz, f.markdown, f.effects, f.log)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		result, err := uc.Execute(context.Background(), CreateTicketCommand{
			Session:     userSession("USR-1", "Ana Souza"),
			Reason:      string(vo.ReasonOther),
			Description: validDescription,
		})
		require.NoError(t, err)
		assert.False(t, seen[result.ID], "duplicate id %s", result.ID)
		seen[result.ID] = true
	}
}

func TestCreateTicketUseCase_Execute_StripsMarkup(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateTicketUseCase(f.repo, f.authz, f.markdown, f.effects, f.log)

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Session:     userSession("USR-1", "Ana Souza"),
		Reason:      string(vo.ReasonBugReport),
		Description: "<b>O botão</b> de enviar não responde<script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.Equal(t, "O botão de enviar não responde", result.Description)
	assert.NotContains(t, result.Messages[0].Message, "<")
}

func TestCreateTicketUseCase_Execute_TagLikeTextIsDropped(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
		wantMessage string
	}{
		{
			name:        "long enough after stripping",
			description: "O comando <tag> não funciona no servidor",
			want:        "O comando  não funciona no servidor",
		},
		{
			name:        "raw length passes but visible text is short",
			description: "Falha <config-file-name>",
			wantMessage: "once HTML tags are removed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			uc := NewCreateTicketUseCase(f.repo, f.authz, f.markdown, f.effects, f.log)

			result, err := uc.Execute(context.Background(), CreateTicketCommand{
				Session:     userSession("USR-1", "Ana Souza"),
				Reason:      string(vo.ReasonOther),
				Description: tt.description,
			})
			if tt.wantMessage != "" {
				require.Error(t, err)
				appErr := apperrors.GetAppError(err)
				require.NotNil(t, appErr)
				assert.Equal(t, "too_short", appErr.Reason)
				assert.Contains(t, appErr.Message, tt.wantMessage)
				assert.Empty(t, f.saved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Description)
		})
	}
}

func TestCreateTicketUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		reason      string
		description string
		wantField   string
		wantReason  string
	}{
		{"missing reason", "", validDescription, "reason", "required"},
		{"unknown reason", "spam", validDescription, "reason", "invalid_value"},
		{"empty description", string(vo.ReasonOther), "   ", "description", "required"},
		{"short description", string(vo.ReasonOther), "short", "description", "too_short"},
		{"markup only description", string(vo.ReasonOther), "<script>alert('x')</script>", "description", "required"},
		{"too short once tags are removed", string(vo.ReasonOther), "<tag>Erro</tag> <b>aqui</b>", "description", "too_short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			uc := NewCreateTicketUseCase(f.repo, f.authz, f.markdown, f.effects, f.log)

			_, err := uc.Execute(context.Background(), CreateTicketCommand{
				Session:     userSession("USR-1", "Ana Souza"),
				Reason:      tt.reason,
				Description: tt.description,
			})
			require.Error(t, err)

			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Equal(t, tt.wantReason, appErr.Reason)
			assert.Empty(t, f.audit.actions())
			assert.Empty(t, f.saved)
		})
	}
}

func TestCreateTicketUseCase_Execute_SessionChecks(t *testing.T) {
	tests := []struct {
		name  string
		check func(error) bool
		build func() CreateTicketCommand
	}{
		{
			name:  "admin cannot open tickets",
			check: apperrors.IsForbiddenError,
			build: func() CreateTicketCommand {
				return CreateTicketCommand{Session: adminSession(), Reason: string(vo.ReasonOther), Description: validDescription}
			},
		},
		{
			name:  "expired session",
			check: apperrors.IsUnauthorizedError,
			build: func() CreateTicketCommand {
				return CreateTicketCommand{Session: expiredSession(), Reason: string(vo.ReasonOther), Description: validDescription}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			uc := NewCreateTicketUseCase(f.repo, f.authz, f.markdown, f.effects, f.log)

			_, err := uc.Execute(context.Background(), tt.build())
			assert.True(t, tt.check(err), "unexpected error: %v", err)

			count, _ := f.repo.List(context.Background(), ticket.Filter{})
			assert.Empty(t, count)
		})
	}
}

func TestCreateTicketUseCase_Execute_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.CreateFunc = func(ctx context.Context, tk *ticket.Ticket) error {
		return apperrors.NewStorageError("failed to save collection", assert.AnError)
	}
	uc := NewCreateTicketUseCase(f.repo, f.authz, f.markdown, f.effects, f.log)

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Session:     userSession("USR-1", "Ana Souza"),
		Reason:      string(vo.ReasonOther),
		Description: validDescription,
	})
	assert.True(t, apperrors.IsStorageError(err))
	assert.Empty(t, f.audit.actions())
}
