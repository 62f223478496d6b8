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

	"github.com/frahmantamala/workforce-portal/internal"
	"github.com/frahmantamala/workforce-portal/internal/attendance"
	attendanceSqlite "github.com/frahmantamala/workforce-portal/internal/attendance/sqlite"
	"github.com/frahmantamala/workforce-portal/internal/auth"
	authSqlite "github.com/frahmantamala/workforce-portal/internal/auth/sqlite"
	"github.com/frahmantamala/workforce-portal/internal/employee"
	employeeSqlite "github.com/frahmantamala/workforce-portal/internal/employee/sqlite"
	"github.com/frahmantamala/workforce-portal/internal/store"
	"github.com/frahmantamala/workforce-portal/internal/timelog"
	timelogSqlite "github.com/frahmantamala/workforce-portal/internal/timelog/sqlite"
	"github.com/frahmantamala/workforce-portal/internal/transport"
	"github.com/frahmantamala/workforce-portal/internal/transport/rest"
	"github.com/frahmantamala/workforce-portal/internal/transport/swagger"
	"github.com/frahmantamala/workforce-portal/internal/user"
	userSqlite "github.com/frahmantamala/workforce-portal/internal/user/sqlite"
	"github.com/frahmantamala/workforce-portal/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

// Application is the fully wired portal. Hosts that embed the portal use
// Handler directly instead of listening on a port.
type Application struct {
	Config  *internal.Config
	Store   *store.Store
	Handler http.Handler
	Logger  *slog.Logger

	Users      *user.Service
	Employees  *employee.Service
	Attendance *attendance.Service
	TimeLogs   *timelog.Service
	Auth       *auth.Service
}

// NewApplication loads the store and wires every service and route. A store
// that fails to load is fatal unless database.allow_degraded is set, in which
// case every database-backed route answers 503.
func NewApplication(ctx context.Context, cfg *internal.Config, lg *slog.Logger) (*Application, error) {
	if lg == nil {
		lg = logger.L()
	}

	s := store.New(cfg.Database.Path, lg)
	if err := s.Load(ctx); err != nil {
		if !cfg.Database.AllowDegraded {
			return nil, fmt.Errorf("failed to load database: %w", err)
		}
		lg.Error("database failed to load, serving in degraded mode", "path", cfg.Database.Path, "error", err)
	}

	hasher := auth.NewPasswordHasher(cfg.Security.BCryptCost)
	tokens := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenTTL)

	app := &Application{
		Config:     cfg,
		Store:      s,
		Logger:     lg,
		Users:      user.NewService(userSqlite.NewUserRepository(s), hasher, lg),
		Employees:  employee.NewService(employeeSqlite.NewEmployeeRepository(s), lg),
		Attendance: attendance.NewService(attendanceSqlite.NewAttendanceRepository(s), lg),
		TimeLogs:   timelog.NewService(timelogSqlite.NewTimeLogRepository(s), lg),
		Auth:       auth.NewService(authSqlite.NewRepository(s), tokens, hasher, lg),
	}

	if s.Ready() {
		if err := app.bootstrap(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
	}

	docs, err := swagger.Load(ctx)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	base := transport.NewBaseHandler(lg)
	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, s, rest.Handlers{
		Auth:       auth.NewHandler(base, app.Auth, cfg.IsProduction()),
		User:       user.NewHandler(base, app.Users),
		Employee:   employee.NewHandler(base, app.Employees),
		Attendance: attendance.NewHandler(base, app.Attendance),
		TimeLog:    timelog.NewHandler(base, app.TimeLogs),
		Docs:       docs,
	}, rest.RouterConfig{
		AllowedOrigins:   cfg.Server.Origins(),
		ProtectDirectory: cfg.Security.ProtectDirectory,
	}, lg)
	app.Handler = router

	return app, nil
}

// bootstrap seeds an empty database and upgrades plaintext passwords.
func (a *Application) bootstrap(ctx context.Context) error {
	if a.Config.Database.SeedOnEmpty {
		existing, err := a.Users.List(ctx, user.ListFilter{})
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if len(existing) == 0 {
			if err := seedDefaults(ctx, a.Users, a.Employees, a.Logger); err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}
		}
	}

	if _, err := a.Auth.MigrateLegacyPasswords(ctx); err != nil {
		return fmt.Errorf("failed to migrate legacy passwords: %w", err)
	}
	return nil
}

func (a *Application) Close() error {
	return a.Store.Close()
}

func startHTTPServer() {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	lg := logger.Configure(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	app, err := NewApplication(context.Background(), cfg, lg)
	if err != nil {
		lg.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if cfg.Server.Embedded {
		lg.Info("Embedded mode: application built, not listening")
		if err := app.Close(); err != nil {
			lg.Error("Database close error", "error", err)
		}
		return
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	lg.Info("Starting HTTP server", "address", addr, "database", cfg.Database.Path, "ready", app.Store.Ready())

	server := &http.Server{
		Addr:              addr,
		Handler:           app.Handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
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
		lg.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			lg.Error("Graceful shutdown timed out, forcing close", "error", err)
			_ = server.Close()
			_ = app.Close()
			os.Exit(1)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("Server failed to start", "error", err)
			_ = app.Close()
			os.Exit(1)
		}
	}

	if err := app.Close(); err != nil {
		lg.Error("Database close error", "error", err)
	}
	lg.Info("Server stopped")
}
