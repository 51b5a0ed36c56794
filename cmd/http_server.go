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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/timesheet-tracker/internal"
	"github.com/frahmantamala/timesheet-tracker/internal/auth"
	"github.com/frahmantamala/timesheet-tracker/internal/dashboard"
	"github.com/frahmantamala/timesheet-tracker/internal/project"
	projectPostgres "github.com/frahmantamala/timesheet-tracker/internal/project/postgres"
	"github.com/frahmantamala/timesheet-tracker/internal/timesheet"
	timesheetPostgres "github.com/frahmantamala/timesheet-tracker/internal/timesheet/postgres"
	"github.com/frahmantamala/timesheet-tracker/internal/transport/rest"
	"github.com/frahmantamala/timesheet-tracker/internal/transport/swagger"
	"github.com/frahmantamala/timesheet-tracker/internal/user"
	userPostgres "github.com/frahmantamala/timesheet-tracker/internal/user/postgres"
	"github.com/frahmantamala/timesheet-tracker/pkg/logger"
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
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.Handlers, deps.Config.Server.Origins(), deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "env", deps.Config.Env)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := internal.WithTimeout(context.Background(), deps.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	lg := logger.L()

	if _, err := swagger.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid embedded openapi document: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	userRepo := userPostgres.NewUserRepository(db)
	projectRepo := projectPostgres.NewProjectRepository(gdb)
	timesheetRepo := timesheetPostgres.NewTimesheetRepository(gdb)

	tokenGen := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.AccessTokenDuration)
	authService := auth.NewService(userRepo, tokenGen, config.Security.BCryptCost, lg)
	userService := user.NewService(userRepo, lg)
	projectService := project.NewService(projectRepo, lg)
	timesheetService := timesheet.NewService(timesheetRepo, projectRepo, lg)
	dashboardService := dashboard.NewService(timesheetRepo, projectRepo, userService, lg)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		GormDB: gdb,
		Router: chi.NewRouter(),
		Handlers: rest.Handlers{
			Health:    rest.NewHealthHandler(db),
			Auth:      auth.NewHandler(authService),
			User:      user.NewHandler(userService),
			Project:   project.NewHandler(projectService),
			Timesheet: timesheet.NewHandler(timesheetService),
			Dashboard: dashboard.NewHandler(dashboardService),
		},
	}, nil
}

// initDB opens the pgx pool shared by sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:                 gormLogger.Default.LogMode(gormLogger.Warn),
		SkipDefaultTransaction: true,
	})
}
