package logs

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/ticketdesk/ticketdesk/internal/application/auditlog"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/cli/app"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
)

func NewCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Inspect the activity log (admin)",
	}

	cmd.AddCommand(newRecentCommand(opts))

	return cmd
}

func newRecentCommand(opts *app.Options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent activity, newest first",
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			s, err := a.Sessions.Load()
			if err != nil {
				return err
			}

			entries, err := a.Logs.Execute(ctx, auditlog.ListRecentQuery{Session: s, Limit: limit})
			if err != nil {
				return err
			}

			return a.Printer.Print(entries, func(w io.Writer) error {
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{biztime.FormatDisplay(e.Timestamp), e.Action, e.UserID, e.Description})
				}
				return a.Printer.Table([]string{"QUANDO", "AÇÃO", "USUÁRIO", "DESCRIÇÃO"}, rows)
			})
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", auditlog.DefaultRecentLimit, "Number of entries (negative for all)")

	return cmd
}
