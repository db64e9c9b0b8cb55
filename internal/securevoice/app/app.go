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
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/ephemeral"
	httpapi "github.com/securevoice/securevoice/internal/securevoice/http"
	"github.com/securevoice/securevoice/internal/securevoice/notify"
	"github.com/securevoice/securevoice/internal/securevoice/service"
	"github.com/securevoice/securevoice/internal/securevoice/session"
	"github.com/securevoice/securevoice/internal/securevoice/store"
	"github.com/securevoice/securevoice/internal/securevoice/store/drivers/sqlite"
	"github.com/securevoice/securevoice/pkg/cryptox"
	"github.com/securevoice/securevoice/pkg/jwtx"
	"github.com/securevoice/securevoice/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	sessionIssuer = "securevoice"

	// Redis keeps entries this long past their deadline so an expired code
	// can still be told apart from an unknown one.
	redisGrace = 5 * time.Minute
)

// Application encapsulates the identity service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db          store.Store
	redis       redis.UniversalClient // nil with the memory backend
	otps        ephemeral.Store[domain.OTPRecord]
	regSessions ephemeral.Store[domain.RegistrationSession]
	records     ephemeral.Store[session.Record]
	sessions    *session.Manager
	notifier    *notify.Dispatcher

	// Services
	auditor             *service.Auditor
	registrationService *service.RegistrationService
	userAuthService     *service.UserAuthService
	approvalService     *service.AdminApprovalService
	adminAuthService    *service.AdminAuthService
	superAdminService   *service.SuperAdminService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "securevoice",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			File:    cfg.LogFile,
			MaxAge:  cfg.LogMaxAge,
		}),
	}

	// Set pepper path for password hashing and fail fast when it is unreadable
	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initEphemeral(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initNotifier()
	app.initServices()
	if err := app.initSessions(); err != nil {
		app.closeStores()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("securevoice starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"ephemeral_backend", app.cfg.EphemeralBackend,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			app.closeStores()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down securevoice...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("securevoice stopped")
	return nil
}

func (app *Application) closeStores() error {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore("file:" + app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initEphemeral selects where registration codes, registration sessions and
// login sessions live.
func (app *Application) initEphemeral() error {
	switch app.cfg.EphemeralBackend {
	case "", "memory":
		app.otps = ephemeral.NewMemory[domain.OTPRecord]()
		app.regSessions = ephemeral.NewMemory[domain.RegistrationSession]()
		app.records = ephemeral.NewMemory[session.Record]()
		app.logger.Info("ephemeral records kept in process memory")

	case "redis":
		client := ephemeral.NewRedisClient(ephemeral.RedisOptions{
			Addrs:    app.cfg.RedisAddrs,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return fmt.Errorf("failed to connect to redis: %w", err)
		}

		app.redis = client
		app.otps = ephemeral.NewRedis[domain.OTPRecord](client, "securevoice:otp", redisGrace)
		app.regSessions = ephemeral.NewRedis[domain.RegistrationSession](client, "securevoice:registration", redisGrace)
		app.records = ephemeral.NewRedis[session.Record](client, "securevoice:session", redisGrace)
		app.logger.Info("ephemeral records kept in redis", "addrs", app.cfg.RedisAddrs)

	default:
		return fmt.Errorf("unknown ephemeral backend %q (want memory or redis)", app.cfg.EphemeralBackend)
	}
	return nil
}

func (app *Application) initSessions() error {
	secret := app.cfg.SessionSecret
	if secret == "" {
		generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		secret = generated
		app.logger.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}

	signer, err := jwtx.NewHS256([]byte(secret), sessionIssuer)
	if err != nil {
		return fmt.Errorf("invalid session secret: %w", err)
	}

	app.sessions = session.NewManager(app.records, signer, session.Options{
		TTL:      app.cfg.SessionTTL,
		Secure:   app.cfg.Production(),
		Validate: app.adminAuthService.ValidateSession,
	})
	return nil
}

func (app *Application) initNotifier() {
	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUser,
		Password: app.cfg.SMTPPass,
		From:     app.cfg.SMTPFrom,
	})
	if mailer.DevMode() {
		app.logger.Warn("EMAIL_USER or EMAIL_PASS not set, emails are logged instead of sent")
	}
	app.notifier = notify.NewDispatcher(mailer, app.cfg.FrontendURL, app.cfg.SuperAdminEmail)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	devEcho := !app.cfg.Production()

	app.auditor = &service.Auditor{Store: app.db}
	app.registrationService = &service.RegistrationService{
		Store:            app.db,
		OTPs:             app.otps,
		Sessions:         app.regSessions,
		Notifier:         app.notifier,
		EnforceStepOrder: app.cfg.EnforceStepOrder,
		DevEcho:          devEcho,
	}
	app.userAuthService = &service.UserAuthService{Store: app.db}
	app.approvalService = &service.AdminApprovalService{
		Store:    app.db,
		Notifier: app.notifier,
		Audit:    app.auditor,
	}
	app.adminAuthService = &service.AdminAuthService{
		Store:    app.db,
		Notifier: app.notifier,
		Audit:    app.auditor,
		DevEcho:  devEcho,
	}
	app.superAdminService = &service.SuperAdminService{Store: app.db, Audit: app.auditor}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.SweepInterval,
		map[string]service.Sweeper{
			"registration_otps":     app.otps,
			"registration_sessions": app.regSessions,
			"login_sessions":        app.records,
		},
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.records,
		app.sessions,
		[]string{app.cfg.FrontendURL},
		app.logger,
	)

	// Wire services to router
	router.RegistrationService = app.registrationService
	router.UserAuthService = app.userAuthService
	router.AdminApprovalService = app.approvalService
	router.AdminAuthService = app.adminAuthService
	router.SuperAdminService = app.superAdminService
	router.Auditor = app.auditor
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
