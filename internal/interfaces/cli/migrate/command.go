package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ticketdesk/ticketdesk/internal/infrastructure/config"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/database"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/migration"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/cli/app"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

var steps int

func NewCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage the schema of the SQL storage drivers (sqlite, mysql).`,
	}

	cmd.AddCommand(
		newUpCommand(opts),
		newDownCommand(opts),
		newStatusCommand(opts),
	)

	return cmd
}

func newUpCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, log, err := initEnv(opts)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer database.Close()

			log.Infow("running up migrations")

			if err := strategy.Migrate(database.Get()); err != nil {
				log.Errorw("migration failed", "error", err)
				return fmt.Errorf("migration failed: %w", err)
			}

			log.Infow("migrations completed successfully")
			return nil
		},
	}
}

func newDownCommand(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, log, err := initEnv(opts)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer database.Close()

			log.Infow("running down migrations", "steps", steps)

			if err := strategy.MigrateDown(database.Get(), steps); err != nil {
				log.Errorw("down migration failed", "error", err)
				return fmt.Errorf("down migration failed: %w", err)
			}

			log.Infow("down migration completed successfully")
			return nil
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, log, err := initEnv(opts)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer database.Close()

			db := database.Get()
			version, err := strategy.GetVersion(db)
			if err != nil {
				log.Errorw("failed to get migration version", "error", err)
				return fmt.Errorf("failed to get migration version: %w", err)
			}
			pending, err := strategy.Pending(db)
			if err != nil {
				log.Errorw("failed to list pending migrations", "error", err)
				return fmt.Errorf("failed to list pending migrations: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Migration Status:\n")
			fmt.Fprintf(out, "  Current Version: %d\n", version)
			fmt.Fprintf(out, "  Pending:         %d\n", len(pending))
			for _, v := range pending {
				fmt.Fprintf(out, "    - %d\n", v)
			}
			return nil
		},
	}
}

func initEnv(opts *app.Options) (*migration.GooseStrategy, logger.Interface, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger().Named("migrate")

	driver := cfg.Storage.Driver
	if driver != app.StorageSQLite && driver != app.StorageMySQL {
		return nil, nil, fmt.Errorf("storage driver %q has no schema to migrate", driver)
	}

	strategy, err := migration.NewGooseStrategy(driver, log)
	if err != nil {
		return nil, nil, err
	}

	if err := database.Init(driver, &cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return strategy, log, nil
}
