package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/expense-bot/internal"
	"github.com/frahmantamala/expense-bot/internal/amqp"
	"github.com/frahmantamala/expense-bot/internal/bot"
	"github.com/frahmantamala/expense-bot/internal/category"
	"github.com/frahmantamala/expense-bot/internal/core/events"
	"github.com/frahmantamala/expense-bot/internal/expense"
	expensePostgres "github.com/frahmantamala/expense-bot/internal/expense/postgres"
	"github.com/frahmantamala/expense-bot/internal/telegram"
	"github.com/frahmantamala/expense-bot/internal/transport"
	"github.com/frahmantamala/expense-bot/internal/transport/rest"
	"github.com/frahmantamala/expense-bot/internal/transport/swagger"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server receiving Telegram webhooks and serving the read API`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer(cmd.Context())
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *gorm.DB
	Catalog  category.Catalog
	Service  *expense.Service
	EventBus *events.EventBus
	Telegram *telegram.Client
	AMQP     *amqp.Publisher
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	config, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	lg := initLogger(config)

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := initializeDependencies(ctx, config, lg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	addr := fmt.Sprintf(":%d", config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: config.Server.ReadHeaderTimeout,
		ReadTimeout:       config.Server.ReadTimeout,
		WriteTimeout:      config.Server.WriteTimeout,
		IdleTimeout:       config.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lg.Info("starting HTTP server", "address", addr, "categories", deps.Catalog.Len())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		lg.Error("server stopped with error", "error", err)
		return err
	}

	lg.Info("server stopped")
	return nil
}

func initializeDependencies(ctx context.Context, config *internal.Config, lg *slog.Logger) (*Dependencies, error) {
	loc, err := config.Ledger.Location()
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(config)
	if err != nil {
		return nil, err
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps := &Dependencies{
		Config:  config,
		DB:      db,
		Catalog: catalog,
		Logger:  lg,
	}

	deps.EventBus = events.NewEventBus(lg)
	deps.EventBus.SubscribeAll(events.ExpenseEventTypes, events.LogHandler(lg))

	if config.AMQP.Enabled() {
		publisher, err := amqp.NewPublisher(config.AMQP.URL, config.AMQP.Exchange, lg)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to connect to AMQP: %w", err)
		}
		publisher.Subscribe(deps.EventBus)
		deps.AMQP = publisher
	}

	deps.Telegram = newTelegramClient(config.Telegram, lg)

	repo := expensePostgres.NewExpenseRepository(db)
	deps.Service = expense.NewService(repo, catalog, deps.EventBus, lg, expense.WithLocation(loc))

	spec, err := swagger.Load(ctx, config.Server.OpenAPIPath)
	if err != nil {
		deps.Close()
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	base := transport.NewBaseHandler(lg)
	deps.Router = chi.NewRouter()
	rest.RegisterAllRoutes(deps.Router, rest.Routes{
		Health:        rest.NewHealthHandler(base, map[string]rest.Pinger{"postgres": sqlDB}),
		Webhook:       bot.NewHandler(base, deps.Service, deps.Telegram),
		WebhookSecret: config.Telegram.WebhookSecret,
		Expenses:      expense.NewHandler(base, deps.Service),
		Categories:    category.NewHandler(base, catalog),
		Spec:          spec,
	}, lg)

	return deps, nil
}

// Close releases resources in reverse start order. In-flight event handlers
// are drained before the AMQP channel closes.
func (d *Dependencies) Close() {
	if d.Telegram != nil {
		d.Telegram.Shutdown()
	}
	if d.EventBus != nil {
		d.EventBus.Wait()
	}
	if d.AMQP != nil {
		if err := d.AMQP.Close(); err != nil {
			d.Logger.Error("amqp close error", "error", err)
		}
	}
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				d.Logger.Error("database close error", "error", err)
			}
		}
	}
}

func newTelegramClient(cfg internal.TelegramConfig, lg *slog.Logger) *telegram.Client {
	return telegram.NewClient(telegram.Config{
		APIURL:        cfg.APIURL,
		Token:         cfg.Token,
		SendTimeout:   cfg.SendTimeout,
		MaxWorkers:    cfg.MaxWorkers,
		QueueSize:     cfg.QueueSize,
		MaxRetries:    cfg.MaxRetries,
		RetryInterval: cfg.RetryInterval,
	}, lg)
}

// initDB opens the gorm Postgres connection and applies pool limits.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Source), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
