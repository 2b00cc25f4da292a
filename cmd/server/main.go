package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adlaunch/adlaunch-api/internal/config"
	"github.com/adlaunch/adlaunch-api/internal/facebook"
	"github.com/adlaunch/adlaunch-api/internal/handlers"
	"github.com/adlaunch/adlaunch-api/internal/middleware"
	"github.com/adlaunch/adlaunch-api/internal/migration"
	"github.com/adlaunch/adlaunch-api/internal/notification"
	"github.com/adlaunch/adlaunch-api/internal/queue"
	"github.com/adlaunch/adlaunch-api/internal/repository"
	"github.com/adlaunch/adlaunch-api/internal/routes"
	h "github.com/gorilla/handlers"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type application struct {
	config        *config.Config
	db            *sql.DB
	logger        zerolog.Logger
	notifications notification.Service
	queue         *queue.Queue
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	gooseAdapter := migration.NewGooseAdapter(logger)
	goose.SetLogger(gooseAdapter)

	// Load configuration.
	cfg := config.Load()

	// Initialize database connection.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Run database migrations.
	migration.RunMigrations(cfg.DatabaseURL, logger)

	// Initialize notification service.
	notificationRepo := repository.NewNotificationRepository(db)
	notificationService := notification.NewService(notificationRepo, logger)

	// Initialize the remote ad platform client and the submission queue.
	fbClient := facebook.NewClient(cfg.Facebook)
	submissionQueue := queue.New(queue.Config{
		Jobs:          repository.NewJobRepository(db),
		Campaigns:     repository.NewCampaignRepository(db),
		Accounts:      repository.NewAccountRepository(db),
		Assets:        repository.NewAssetRepository(db),
		Platform:      fbClient,
		Notifications: notificationService,
		Logger:        logger,
	})

	// Create the application instance.
	app := &application{
		config:        cfg,
		db:            db,
		logger:        logger,
		notifications: notificationService,
		queue:         submissionQueue,
	}

	// Initialize the HTTP router and middleware.
	router := app.initRouter(fbClient, logger)
	loggedRouter := middleware.LoggingMiddleware(app.logger)(router)
	corsHandler := h.CORS(
		h.AllowedOrigins([]string{cfg.CORSOrigin}),
		h.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		h.AllowCredentials(),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler, logger)

	logger.Info().Msg("Application terminated.")
}

// initRouter sets up all HTTP handlers and returns the router.
func (app *application) initRouter(fbClient *facebook.Client, logger zerolog.Logger) http.Handler {
	// Repositories
	accountRepo := repository.NewAccountRepository(app.db)
	campaignRepo := repository.NewCampaignRepository(app.db)
	jobRepo := repository.NewJobRepository(app.db)
	assetRepo := repository.NewAssetRepository(app.db)

	// Handlers
	authHandler := handlers.NewAuthHandler(app.db, app.config, logger)
	accountHandler := handlers.NewAccountHandler(accountRepo, fbClient, logger)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo, jobRepo, app.queue, logger)
	jobHandler := handlers.NewJobHandler(jobRepo, campaignRepo, app.queue, logger)
	assetHandler := handlers.NewAssetHandler(assetRepo, logger)
	notificationHandler := handlers.NewNotificationHandler(app.notifications, logger)

	return routes.NewRouter(authHandler, accountHandler, campaignHandler, jobHandler, assetHandler, notificationHandler)
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler, logger zerolog.Logger) {
	server := &http.Server{
		Addr:    ":" + app.config.ServerPort,
		Handler: handler,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server. In-flight submissions finish on
	// their own; queued entries are lost with the process, their records stay
	// pending and can be retried.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}
}
