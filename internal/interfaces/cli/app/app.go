package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	auditlogApp "github.com/ticketdesk/ticketdesk/internal/application/auditlog"
	ticketUsecases "github.com/ticketdesk/ticketdesk/internal/application/ticket/usecases"
	userUsecases "github.com/ticketdesk/ticketdesk/internal/application/user/usecases"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/auth"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/config"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/database"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/email"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/migration"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/permission"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/recordstore"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/repository"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
	"github.com/ticketdesk/ticketdesk/internal/shared/services/markdown"
)

// Storage drivers accepted in storage.driver.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageSQLite = database.DriverSQLite
	StorageMySQL  = database.DriverMySQL
)

type TicketUseCases struct {
	Create     *ticketUsecases.CreateTicketUseCase
	List       *ticketUsecases.ListTicketsUseCase
	Get        *ticketUsecases.GetTicketUseCase
	Reply      *ticketUsecases.AppendMessageUseCase
	Resolve    *ticketUsecases.ResolveTicketUseCase
	Delete     *ticketUsecases.DeleteTicketUseCase
	Stats      *ticketUsecases.GetTicketStatsUseCase
	Export     *ticketUsecases.ExportTicketsUseCase
	Transcript *ticketUsecases.RenderTranscriptUseCase
}

type UserUseCases struct {
	Register   *userUsecases.RegisterUserUseCase
	Login      *userUsecases.LoginUseCase
	AdminLogin *userUsecases.AdminLoginUseCase
}

// App is one CLI invocation's worth of wiring.
type App struct {
	Config   *config.Config
	Logger   logger.Interface
	Store    *recordstore.Store
	Sessions *SessionStore
	Printer  *Printer

	Tickets TicketUseCases
	Users   UserUseCases
	Logs    *auditlogApp.ListRecentUseCase

	closers []func() error
}

// Open loads configuration, connects the configured storage medium and
// builds every use case.
func Open(ctx context.Context, opts *Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger().Named("cli")

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	printer, err := NewPrinter(opts.Output)
	if err != nil {
		return nil, err
	}

	sessions, err := NewSessionStore(opts.SessionFile)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Logger:   log,
		Sessions: sessions,
		Printer:  printer,
	}

	medium, err := a.openMedium(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Store = recordstore.New(medium,
		recordstore.WithKeyPrefix(cfg.Storage.KeyPrefix),
		recordstore.WithMaxBytes(cfg.Storage.MaxBytes),
		recordstore.WithLogger(log.Named("recordstore")),
	)

	if err := a.wire(); err != nil {
		_ = a.Close()
		return nil, err
	}

	return a, nil
}

func (a *App) openMedium(ctx context.Context) (recordstore.Medium, error) {
	cfg := a.Config
	switch cfg.Storage.Driver {
	case StorageMemory:
		return recordstore.NewMemoryMedium(), nil

	case StorageFile, "":
		return recordstore.NewFileMedium(cfg.Storage.Dir)

	case StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
		}
		return recordstore.NewRedisMedium(client, ""), nil

	case StorageSQLite, StorageMySQL:
		db, err := a.openDatabase()
		if err != nil {
			return nil, err
		}
		return recordstore.NewGormMedium(db), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}

// openDatabase connects and makes sure the schema is current. SQLite files
// are migrated in place; MySQL must be migrated explicitly with
// "ticketdesk migrate up".
func (a *App) openDatabase() (*gorm.DB, error) {
	driver := a.Config.Storage.Driver
	if err := database.Init(driver, &a.Config.Database); err != nil {
		return nil, err
	}
	a.closers = append(a.closers, database.Close)
	db := database.Get()

	strategy, err := migration.NewGooseStrategy(driver, a.Logger.Named("migration"))
	if err != nil {
		return nil, err
	}

	if driver == StorageSQLite {
		if err := strategy.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
		return db, nil
	}

	pending, err := strategy.Pending(db)
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("database has %d pending migrations; run 'ticketdesk migrate up'", len(pending))
	}
	return db, nil
}

func (a *App) wire() error {
	log := a.Logger

	enforcer, err := permission.NewEnforcer(log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to build permission enforcer: %w", err)
	}

	ticketRepo := repository.NewTicketRepository(a.Store)
	userRepo := repository.NewUserRepository(a.Store)
	logRepo := repository.NewAuditLogRepository(a.Store)
	statsRepo := repository.NewTicketStatsRepository(a.Store)

	recorder := auditlogApp.NewRecorder(logRepo, log.Named("audit"))
	md := markdown.NewMarkdownService()
	hasher := auth.NewBcryptPasswordHasher(a.Config.Auth.BcryptCost)
	effects := ticketUsecases.NewMutationEffects(ticketRepo, statsRepo, recorder, log)

	var notifier ticketUsecases.ResolutionNotifier
	if a.Config.Email.Enabled {
		notifier = email.NewSMTPEmailService(a.Config.Email)
	}

	a.Tickets = TicketUseCases{
		Create:     ticketUsecases.NewCreateTicketUseCase(ticketRepo, enforcer, md, effects, log),
		List:       ticketUsecases.NewListTicketsUseCase(ticketRepo, enforcer, log),
		Get:        ticketUsecases.NewGetTicketUseCase(ticketRepo, enforcer, log),
		Reply:      ticketUsecases.NewAppendMessageUseCase(ticketRepo, enforcer, md, effects, log),
		Resolve:    ticketUsecases.NewResolveTicketUseCase(ticketRepo, enforcer, effects, notifier, log),
		Delete:     ticketUsecases.NewDeleteTicketUseCase(ticketRepo, enforcer, effects, log),
		Stats:      ticketUsecases.NewGetTicketStatsUseCase(ticketRepo, enforcer, log),
		Export:     ticketUsecases.NewExportTicketsUseCase(ticketRepo, logRepo, enforcer, log),
		Transcript: ticketUsecases.NewRenderTranscriptUseCase(ticketRepo, enforcer, md, log),
	}

	a.Users = UserUseCases{
		Register:   userUsecases.NewRegisterUserUseCase(userRepo, hasher, recorder, log),
		Login:      userUsecases.NewLoginUseCase(userRepo, hasher, recorder, a.Config.Auth, log),
		AdminLogin: userUsecases.NewAdminLoginUseCase(hasher, recorder, a.Config.Auth, log),
	}

	a.Logs = auditlogApp.NewListRecentUseCase(recorder, enforcer, log)

	return nil
}

// Close releases connections in reverse order of opening.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	_ = logger.Sync()
	return firstErr
}

// Run adapts fn to a cobra RunE, opening the app before and closing it
// after.
func Run(opts *Options, fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := Open(ctx, opts)
		if err != nil {
			return err
		}
		defer a.Close()

		return fn(ctx, a, args)
	}
}
