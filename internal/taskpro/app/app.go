package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/NituAlexandru/TaskPro-backend/internal/taskpro/http"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/service"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store"
	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store/drivers/sqlite"
	"github.com/NituAlexandru/TaskPro-backend/pkg/cryptox"
	"github.com/NituAlexandru/TaskPro-backend/pkg/jwtx"
	"github.com/NituAlexandru/TaskPro-backend/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application wires every dependency of the TaskPro API together and owns
// its lifecycle.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier

	authService         *service.AuthService
	boardService        *service.BoardService
	columnService       *service.ColumnService
	cardService         *service.CardService
	invitationService   *service.InvitationService
	userService         *service.UserService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "taskpro-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initKeys(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("taskpro api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops background workers, and closes
// the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down taskpro api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("taskpro api stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied")
	return nil
}

// initKeys loads or generates the Ed25519 signing keypair. Persisting it
// keeps issued tokens verifiable across restarts.
func (app *Application) initKeys() error {
	kp, err := jwtx.LoadOrGenerateKeyPair(app.cfg.KeyFile)
	if err != nil {
		return fmt.Errorf("failed to initialize signing keys: %w", err)
	}

	signer, err := jwtx.NewSigner(kp)
	if err != nil {
		return fmt.Errorf("failed to build signer: %w", err)
	}

	app.signer = signer
	app.verifier = jwtx.NewVerifier(jwtx.NewKeySet(kp), app.cfg.Issuer)
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:      app.db,
		Signer:     app.signer,
		Verifier:   app.verifier,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}

	if app.cfg.GoogleClientID != "" {
		app.authService.Google = service.NewGoogleExchanger(
			app.cfg.GoogleClientID,
			app.cfg.GoogleClientSecret,
			app.cfg.GoogleRedirectURL,
		)
		app.logger.Info("google sign-in enabled")
	}

	app.boardService = &service.BoardService{Store: app.db}
	app.columnService = &service.ColumnService{Store: app.db}
	app.cardService = &service.CardService{Store: app.db}
	app.invitationService = &service.InvitationService{Store: app.db}
	app.userService = &service.UserService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.RefreshTTL,
	)
}

func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.cfg.AvatarDir,
		app.db,
		app.logger,
	)
	app.router.AuthService = app.authService
	app.router.BoardService = app.boardService
	app.router.ColumnService = app.columnService
	app.router.CardService = app.cardService
	app.router.InvitationService = app.invitationService
	app.router.UserService = app.userService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
