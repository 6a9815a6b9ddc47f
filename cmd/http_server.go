package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/auth"
	"github.com/cropmaint/machine-maintenance/internal/core/events"
	"github.com/cropmaint/machine-maintenance/internal/machine"
	machinePostgres "github.com/cropmaint/machine-maintenance/internal/machine/postgres"
	"github.com/cropmaint/machine-maintenance/internal/maintenance"
	maintenancePostgres "github.com/cropmaint/machine-maintenance/internal/maintenance/postgres"
	"github.com/cropmaint/machine-maintenance/internal/schedule"
	schedulePostgres "github.com/cropmaint/machine-maintenance/internal/schedule/postgres"
	"github.com/cropmaint/machine-maintenance/internal/transport/rest"
	"github.com/cropmaint/machine-maintenance/internal/user"
	userPostgres "github.com/cropmaint/machine-maintenance/internal/user/postgres"
	"github.com/cropmaint/machine-maintenance/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ORM: %w", err)
	}

	eventBus := events.NewEventBus(lg)
	subscribeEventLoggers(eventBus, lg)

	machineRepo := machinePostgres.NewMachineRepository(gormDB)
	logRepo := maintenancePostgres.NewLogRepository(gormDB)
	scheduleRepo := schedulePostgres.NewScheduleRepository(gormDB)
	userRepo := userPostgres.NewUserRepository(gormDB)

	hasher := user.NewBcryptHasher(config.Security.BCryptCost)

	machineService := machine.NewService(machineRepo, eventBus, lg)
	maintenanceService := maintenance.NewService(logRepo, machineRepo, eventBus, lg)
	scheduleService := schedule.NewService(scheduleRepo, machineRepo, userRepo, lg)
	userService := user.NewService(userRepo, hasher, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(userRepo, tokenGen, hasher, lg)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(
		router,
		db.DB,
		auth.NewHandler(authService),
		machine.NewHandler(machineService),
		maintenance.NewHandler(maintenanceService),
		schedule.NewHandler(scheduleService),
		user.NewHandler(userService),
		lg,
	)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// subscribeEventLoggers wires audit-style log lines for domain events.
func subscribeEventLoggers(bus *events.EventBus, lg *slog.Logger) {
	bus.Subscribe(events.EventTypeLogStatusChanged, func(ctx context.Context, event events.Event) error {
		lg.Info("maintenance log status changed",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})
	bus.Subscribe(events.EventTypeMachineDeleted, func(ctx context.Context, event events.Event) error {
		lg.Info("machine deleted with cascade",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})
}

// initDB opens the pgx-backed connection pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-open pool. TranslateError turns
// driver unique-violation errors into gorm.ErrDuplicatedKey, which the
// repositories map to conflicts.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		TranslateError: true,
	})
}
