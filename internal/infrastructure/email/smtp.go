package email

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/config"
)

// Sender delivers one composed message. gomail's dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// ResolvedTicket is what the notification needs to know about a ticket.
type ResolvedTicket struct {
	TicketID   string
	UserName   string
	UserEmail  string
	Reason     string
	ResolvedAt string
}

type SMTPEmailService struct {
	config config.EmailConfig
	sender Sender
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	return NewSMTPEmailServiceWithSender(cfg, gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword))
}

func NewSMTPEmailServiceWithSender(cfg config.EmailConfig, sender Sender) *SMTPEmailService {
	return &SMTPEmailService{config: cfg, sender: sender}
}

// SendTicketResolved tells the submitter their ticket was closed by the
// support team.
func (s *SMTPEmailService) SendTicketResolved(ctx context.Context, t ResolvedTicket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.UserEmail == "" {
		return fmt.Errorf("ticket %s has no submitter email", t.TicketID)
	}

	subject := fmt.Sprintf("Seu ticket %s foi resolvido", t.TicketID)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Olá, %s!</h2>
			<p>Seu ticket <strong>%s</strong> (%s) foi marcado como resolvido pela equipe de suporte.</p>
			<p>Resolvido em: %s</p>
			<p>Se o problema persistir, abra um novo ticket.</p>
		</body>
		</html>
	`, html.EscapeString(t.UserName), html.EscapeString(t.TicketID), html.EscapeString(t.Reason), html.EscapeString(t.ResolvedAt))

	plainBody := fmt.Sprintf(`
Olá, %s!

Seu ticket %s (%s) foi marcado como resolvido pela equipe de suporte.
Resolvido em: %s

Se o problema persistir, abra um novo ticket.
	`, t.UserName, t.TicketID, t.Reason, t.ResolvedAt)

	return s.sendEmail(t.UserEmail, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Date", m.FormatDate(biztime.NowUTC()))
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// NotifyTicketResolved adapts SendTicketResolved to the ticket aggregate.
func (s *SMTPEmailService) NotifyTicketResolved(ctx context.Context, t *ticket.Ticket) error {
	return s.SendTicketResolved(ctx, ResolvedTicket{
		TicketID:   t.ID(),
		UserName:   t.UserName(),
		UserEmail:  t.UserEmail(),
		Reason:     t.Reason().Label(),
		ResolvedAt: biztime.FormatDisplay(t.UpdatedAt()),
	})
}
