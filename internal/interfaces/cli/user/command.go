package user

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ticketdesk/ticketdesk/internal/application/user/usecases"
	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/auth"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/config"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/cli/app"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
)

func NewCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Register, log in and manage the CLI session",
	}

	cmd.AddCommand(
		newRegisterCommand(opts),
		newLoginCommand(opts),
		newAdminLoginCommand(opts),
		newLogoutCommand(opts),
		newWhoamiCommand(opts),
		newHashPasswordCommand(opts),
	)

	return cmd
}

func newRegisterCommand(opts *app.Options) *cobra.Command {
	var name, email, discordID string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user account",
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			password, err := app.ReadPassword("Senha: ")
			if err != nil {
				return err
			}
			confirm, err := app.ReadPassword("Confirmar senha: ")
			if err != nil {
				return err
			}

			result, err := a.Users.Register.Execute(ctx, usecases.RegisterUserCommand{
				Name:            name,
				Email:           email,
				DiscordID:       discordID,
				Password:        password,
				ConfirmPassword: confirm,
			})
			if err != nil {
				return err
			}

			return a.Printer.Print(result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Conta criada para %s (%s)\n", result.Name, result.Email)
				return err
			})
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&discordID, "discord-id", "", "Discord user ID (17-19 digits)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("discord-id")

	return cmd
}

func newLoginCommand(opts *app.Options) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a user",
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			password, err := app.ReadPassword("Senha: ")
			if err != nil {
				return err
			}

			s, err := a.Users.Login.Execute(ctx, usecases.LoginCommand{Email: email, Password: password})
			if err != nil {
				return err
			}
			return saveAndPrint(a, *s)
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAdminLoginCommand(opts *app.Options) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "admin-login",
		Short: "Log in to the admin panel",
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			password, err := app.ReadPassword("Senha do administrador: ")
			if err != nil {
				return err
			}

			s, err := a.Users.AdminLogin.Execute(ctx, usecases.AdminLoginCommand{Username: username, Password: password})
			if err != nil {
				return err
			}
			return saveAndPrint(a, *s)
		}),
	}

	cmd.Flags().StringVarP(&username, "username", "u", "admin", "Admin username")

	return cmd
}

func saveAndPrint(a *app.App, s session.Session) error {
	if err := a.Sessions.Save(s); err != nil {
		return err
	}
	return a.Printer.Print(s, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Bem-vindo, %s! Sessão válida até %s\n", s.Name, biztime.FormatDisplay(s.ExpiresAt))
		return err
	})
}

func newLogoutCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.NewSessionStore(opts.SessionFile)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada")
			return nil
		},
	}
}

func newWhoamiCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in identity",
		RunE: app.Run(opts, func(ctx context.Context, a *app.App, args []string) error {
			s, err := a.Sessions.Load()
			if err != nil {
				return err
			}
			return a.Printer.Print(s, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s (%s, %s) até %s\n", s.Name, s.UserID, s.Role, biztime.FormatDisplay(s.ExpiresAt))
				return err
			})
		}),
	}
}

// newHashPasswordCommand prints a bcrypt hash suitable for
// auth.admin_password_hash.
func newHashPasswordCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Hash a password for the admin login configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			password, err := app.ReadPassword("Senha: ")
			if err != nil {
				return err
			}

			hash, err := auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost).Hash(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
