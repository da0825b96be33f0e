package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ticketdesk/ticketdesk/internal/interfaces/cli/app"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/cli/logs"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/cli/migrate"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/cli/ticket"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/cli/user"
	apperrors "github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

func main() {
	// .env is optional; TICKETDESK_* variables may come from the shell.
	_ = godotenv.Load()

	opts := &app.Options{}

	rootCmd := &cobra.Command{
		Use:           "ticketdesk",
		Short:         "TicketDesk - support tickets for a Discord community",
		Long:          `TicketDesk keeps support tickets, their chat threads and an activity log for a Discord community.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.BindFlags(rootCmd)

	rootCmd.AddCommand(
		ticket.NewCommand(opts),
		user.NewCommand(opts),
		logs.NewCommand(opts),
		migrate.NewCommand(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation:
		return 2
	case apperrors.ErrorTypeUnauthorized, apperrors.ErrorTypeForbidden:
		return 3
	case apperrors.ErrorTypeNotFound:
		return 4
	default:
		return 1
	}
}
