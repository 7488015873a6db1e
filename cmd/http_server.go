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

	"github.com/frahmantamala/user-management/internal"
	"github.com/frahmantamala/user-management/internal/accesslevel"
	accesslevelPostgres "github.com/frahmantamala/user-management/internal/accesslevel/postgres"
	"github.com/frahmantamala/user-management/internal/auth"
	authPostgres "github.com/frahmantamala/user-management/internal/auth/postgres"
	"github.com/frahmantamala/user-management/internal/core/events"
	"github.com/frahmantamala/user-management/internal/transport/rest"
	"github.com/frahmantamala/user-management/internal/user"
	userPostgres "github.com/frahmantamala/user-management/internal/user/postgres"
	"github.com/frahmantamala/user-management/pkg/logger"

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
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	EventBus *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	tokenIssuer, err := auth.NewSessionTokenIssuer(deps.Config.Security)
	if err != nil {
		return fmt.Errorf("failed to build token issuer: %w", err)
	}

	hasher := auth.NewPasswordHasher(deps.Config.Security.BCryptCost)

	authRepo := authPostgres.NewRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenIssuer, hasher, deps.EventBus, deps.Logger)
	authHandler := auth.NewHandler(authService)

	rbac := auth.NewRBACAuthorization(deps.Logger)

	levelRepo := accesslevelPostgres.NewAccessLevelRepository(deps.GormDB)
	assignmentRepo := accesslevelPostgres.NewUserAccessLevelRepository(deps.GormDB)
	userRepo := userPostgres.NewUserRepository(deps.GormDB)

	levelService := accesslevel.NewService(levelRepo, assignmentRepo, userRepo, deps.EventBus, deps.Logger)
	levelHandler := accesslevel.NewHandler(levelService)

	policy := user.NewProvisioningPolicy(levelRepo)
	userService := user.NewService(userRepo, assignmentRepo, policy, hasher, deps.EventBus, deps.Logger)
	userHandler := user.NewHandler(userService)

	registerAuditSubscribers(deps.EventBus, deps.Logger)

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.Config.Server.AllowedOrigins,
		authHandler,
		rbac,
		userHandler,
		levelHandler,
		deps.Logger,
	)

	return nil
}

// registerAuditSubscribers logs domain events as an audit trail.
func registerAuditSubscribers(bus *events.EventBus, log *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		log.Info("audit event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload(),
		)
		return nil
	}

	bus.Subscribe(events.EventTypeUserCreated, audit)
	bus.Subscribe(events.EventTypeUserLoggedIn, audit)
	bus.Subscribe(events.EventTypeAccessLevelAssigned, audit)
	bus.Subscribe(events.EventTypeAccessLevelRevoked, audit)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm rides on the same pgx connection pool
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	if err := verifyBaselineLevel(gormDB); err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	return &Dependencies{
		Config:   config,
		Logger:   logger.LoggerWrapper(),
		DB:       db,
		GormDB:   gormDB,
		Router:   router,
		EventBus: events.NewEventBus(logger.LoggerWrapper()),
	}, nil
}

// verifyBaselineLevel fails startup when the default access level row is
// missing, instead of surfacing it later as registration errors.
func verifyBaselineLevel(db *gorm.DB) error {
	var count int64
	if err := db.Table("access_levels").Where("id = ?", accesslevel.DefaultLevelID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to verify baseline access level: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("baseline access level (id=%d) is missing; run migrations and seed first", accesslevel.DefaultLevelID)
	}
	return nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
