package ticket

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ticketdesk/ticketdesk/internal/application/ticket/dto"
	"github.com/ticketdesk/ticketdesk/internal/application/ticket/usecases"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/cli/app"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
)

func NewCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Open, answer and manage support tickets",
	}

	cmd.AddCommand(
		newCreateCommand(opts),
		newListCommand(opts),
		newShowCommand(opts),
		newReplyCommand(opts),
		newResolveCommand(opts),
		newDeleteCommand(opts),
		newStatsCommand(opts),
		newExportCommand(opts),
		newTranscriptCommand(opts),
	)

	return cmd
}

func reasonHelp() string {
	keys := make([]string, 0)
	for _, r := range vo.AllReasons() {
		keys = append(keys, fmt.Sprintf("%s (%s)", r, r.Label()))
	}
	return strings.Join(keys, ", ")
}

func newCreateCommand(opts *app.Options) *cobra.Command {
	var reason, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new ticket",
		Long:  "Open a new ticket as the logged-in user. Reasons: " + reasonHelp(),
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			s, err := a.Sessions.Load()
			if err != nil {
				return err
			}

			result, err := a.Tickets.Create.Execute(ctx, usecases.CreateTicketCommand{
				Session:     s,
				Reason:      reason,
				Description: description,
			})
			if err != nil {
				return err
			}

			return a.Printer.Print(result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Ticket %s criado com sucesso\n", result.ID)
				return err
			})
		}),
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Ticket reason key")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Problem description (10-1000 characters)")
	_ = cmd.MarkFlagRequired("reason")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newListCommand(opts *app.Options) *cobra.Command {
	var status, reason string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets (all for admins, own for users)",
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			s, err := a.Sessions.Load()
			if err != nil {
				return err
			}

			result, err := a.Tickets.List.Execute(ctx, usecases.ListTicketsQuery{
				Session: s,
				Status:  status,
				Reason:  reason,
			})
			if err != nil {
				return err
			}

			return a.Printer.Print(result, func(w io.Writer) error {
				if result.Total == 0 {
					_, err := fmt.Fprintln(w, "Nenhum ticket encontrado")
					return err
				}
				rows := make([][]string, 0, len(result.Tickets))
				for _, t := range result.Tickets {
					rows = append(rows, []string{
						t.ID,
						t.UserName,
						t.ReasonLabel,
						t.StatusLabel,
						strconv.Itoa(t.MessageCount),
						biztime.FormatDisplay(t.CreatedAt),
					})
				}
				return a.Printer.Table([]string{"ID", "USUÁRIO", "MOTIVO", "STATUS", "MSGS", "CRIADO EM"}, rows)
			})
		}),
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, resolved)")
	cmd.Flags().StringVar(&reason, "reason", "", "Filter by reason key")

	return cmd
}

func newShowCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ticket-id>",
		Short: "Show a ticket and its chat",
		Args:  cobra.ExactArgs(1),
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			s, err := a.Sessions.Load()
			if err != nil {
				return err
			}

			result, err := a.Tickets.Get.Execute(ctx, usecases.GetTicketQuery{Session: s, TicketID: args[0]})
			if err != nil {
				return err
			}

			return a.Printer.Print(result, func(w io.Writer) error {
				return writeTicket(w, result)
			})
		}),
	}
}

func writeTicket(w io.Writer, t *dto.TicketDTO) error {
	fmt.Fprintf(w, "Ticket:   %s\n", t.ID)
	fmt.Fprintf(w, "Usuário:  %s (Discord %s)\n", t.UserName, t.DiscordID)
	fmt.Fprintf(w, "Motivo:   %s\n", t.ReasonLabel)
	fmt.Fprintf(w, "Status:   %s\n", vo.TicketStatus(t.Status).Label())
	fmt.Fprintf(w, "Criado:   %s\n", biztime.FormatDisplay(t.CreatedAt))
	fmt.Fprintf(w, "Alterado: %s\n", biztime.FormatDisplay(t.UpdatedAt))

	for _, m := range t.Messages {
		if _, err := fmt.Fprintf(w, "\n[%s] %s (%s)\n%s\n", biztime.FormatDisplay(m.Timestamp), m.SenderName, m.SenderType, m.Message); err != nil {
			return err
		}
	}
	return nil
}

func newReplyCommand(opts *app.Options) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "reply <ticket-id>",
		Short: "Send a chat message on a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			s, err := a.Sessions.Load()
			if err != nil {
				return err
			}

			text := message
			if text == "-" {
				b, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read message from stdin: %w", err)
				}
				text = string(b)
			}

			result, err := a.Tickets.Reply.Execute(ctx, usecases.AppendMessageCommand{
				Session:  s,
				TicketID: args[0],
				Text:     text,
			})
			if err != nil {
				return err
			}

			return a.Printer.Print(result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Mensagem %s enviada\n", result.ID)
				return err
			})
		}),
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Message text, or - to read from stdin")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func newResolveCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <ticket-id>",
		Short: "Mark a ticket as resolved (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			s, err := a.Sessions.Load()
			if err != nil {
				return err
			}

			result, err := a.Tickets.Resolve.Execute(ctx, usecases.ResolveTicketCommand{Session: s, TicketID: args[0]})
			if err != nil {
				return err
			}

			return a.Printer.Print(result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Ticket %s marcado como resolvido\n", result.ID)
				return err
			})
		}),
	}
}

func newDeleteCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <ticket-id>",
		Short: "Delete a ticket (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			s, err := a.Sessions.Load()
			if err != nil {
				return err
			}

			if err := a.Tickets.Delete.Execute(ctx, usecases.DeleteTicketCommand{Session: s, TicketID: args[0]}); err != nil {
				return err
			}

			result := map[string]string{"deleted": args[0]}
			return a.Printer.Print(result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Ticket %s excluído\n", args[0])
				return err
			})
		}),
	}
}

func newStatsCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show ticket counters",
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			s, err := a.Sessions.Load()
			if err != nil {
				return err
			}

			result, err := a.Tickets.Stats.Execute(ctx, usecases.GetTicketStatsQuery{Session: s})
			if err != nil {
				return err
			}

			return a.Printer.Print(result, func(w io.Writer) error {
				return a.Printer.Table([]string{"TOTAL", "PENDENTES", "RESOLVIDOS", "ÚLTIMAS 24H"}, [][]string{{
					strconv.Itoa(result.Total),
					strconv.Itoa(result.Pending),
					strconv.Itoa(result.Resolved),
					strconv.Itoa(result.Recent),
				}})
			})
		}),
	}
}

func newExportCommand(opts *app.Options) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tickets and the activity log as JSON (admin)",
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			s, err := a.Sessions.Load()
			if err != nil {
				return err
			}

			result, err := a.Tickets.Export.Execute(ctx, usecases.ExportTicketsQuery{Session: s})
			if err != nil {
				return err
			}

			if outFile == "" {
				outFile = fmt.Sprintf("tickets-export-%s.json", result.ExportDate.Format("2006-01-02"))
			}

			f, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer f.Close()

			filePrinter, err := app.NewPrinterTo(app.FormatJSON, f)
			if err != nil {
				return err
			}
			if err := filePrinter.Print(result, nil); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			summary := map[string]interface{}{"file": outFile, "totalTickets": result.TotalTickets}
			return a.Printer.Print(summary, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Dados exportados com sucesso: %s (%d tickets)\n", outFile, result.TotalTickets)
				return err
			})
		}),
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Destination file (default: tickets-export-<date>.json)")

	return cmd
}

func newTranscriptCommand(opts *app.Options) *cobra.Command {
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:   "transcript <ticket-id>",
		Short: "Render a ticket's chat as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			s, err := a.Sessions.Load()
			if err != nil {
				return err
			}

			result, err := a.Tickets.Transcript.Execute(ctx, usecases.RenderTranscriptQuery{Session: s, TicketID: args[0]})
			if err != nil {
				return err
			}

			return a.Printer.Print(result, func(w io.Writer) error {
				body := result.HTML
				if asMarkdown {
					body = result.Markdown
				}
				_, err := io.WriteString(w, body)
				return err
			})
		}),
	}

	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Print the Markdown source instead of HTML")

	return cmd
}
