package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type RenderTranscriptQuery struct {
	Session  session.Session
	TicketID string
}

type RenderTranscriptResult struct {
	TicketID string `json:"ticketId" yaml:"ticketId"`
	Markdown string `json:"markdown" yaml:"markdown"`
	HTML     string `json:"html" yaml:"html"`
}

type RenderTranscriptUseCase struct {
	ticketRepo ticket.Repository
	authz      Authorizer
	renderer   TranscriptRenderer
	logger     logger.Interface
}

func NewRenderTranscriptUseCase(
	ticketRepo ticket.Repository,
	authz Authorizer,
	renderer TranscriptRenderer,
	logger logger.Interface,
) *RenderTranscriptUseCase {
	return &RenderTranscriptUseCase{
		ticketRepo: ticketRepo,
		authz:      authz,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *RenderTranscriptUseCase) Execute(ctx context.Context, query RenderTranscriptQuery) (*RenderTranscriptResult, error) {
	uc.logger.Infow("executing render transcript use case", "ticket_id", query.TicketID, "user_id", query.Session.UserID)

	t, err := loadAccessibleTicket(ctx, uc.ticketRepo, uc.authz, query.Session, query.TicketID,
		permission.ActionReadAny, permission.ActionReadOwn)
	if err != nil {
		uc.logger.Warnw("transcript not allowed", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	md := uc.buildMarkdown(t)

	html, err := uc.renderer.ToHTMLSanitized(md)
	if err != nil {
		uc.logger.Errorw("failed to render transcript", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to render transcript", err.Error())
	}

	return &RenderTranscriptResult{
		TicketID: t.ID(),
		Markdown: md,
		HTML:     html,
	}, nil
}

func (uc *RenderTranscriptUseCase) buildMarkdown(t *ticket.Ticket) string {
	esc := uc.renderer.EscapeInline

	var b strings.Builder
	fmt.Fprintf(&b, "# Ticket %s\n\n", esc(t.ID()))
	fmt.Fprintf(&b, "- **Usuário:** %s (Discord %s)\n", esc(t.UserName()), esc(t.DiscordID()))
	fmt.Fprintf(&b, "- **Motivo:** %s\n", esc(t.Reason().Label()))
	fmt.Fprintf(&b, "- **Status:** %s\n", esc(t.Status().Label()))
	fmt.Fprintf(&b, "- **Criado em:** %s\n", biztime.FormatDisplay(t.CreatedAt()))
	fmt.Fprintf(&b, "- **Atualizado em:** %s\n", biztime.FormatDisplay(t.UpdatedAt()))

	for _, m := range t.Messages() {
		b.WriteString("\n---\n\n")
		fmt.Fprintf(&b, "**%s** · %s\n\n", esc(m.SenderName()), biztime.FormatDisplay(m.Timestamp()))
		for _, line := range strings.Split(m.Text(), "\n") {
			fmt.Fprintf(&b, "> %s\n", esc(line))
		}
	}

	return b.String()
}
