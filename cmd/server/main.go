package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/staffdesk/staffdesk/config"
	"github.com/staffdesk/staffdesk/internal/api"
	"github.com/staffdesk/staffdesk/internal/api/handlers"
	"github.com/staffdesk/staffdesk/internal/api/middleware"
	"github.com/staffdesk/staffdesk/internal/core/actions"
	"github.com/staffdesk/staffdesk/internal/core/favorites"
	"github.com/staffdesk/staffdesk/internal/core/layout"
	"github.com/staffdesk/staffdesk/internal/core/session"
	"github.com/staffdesk/staffdesk/internal/core/validation"
	"github.com/staffdesk/staffdesk/internal/settings"
	"github.com/staffdesk/staffdesk/internal/storage/postgres"
	"github.com/staffdesk/staffdesk/internal/upstream"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Server.Mode == "release" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	if cfg.Session.Secret == "" {
		logger.Fatal("SESSION_SECRET environment variable is required")
	}
	if cfg.Upstream.BaseURL == "" {
		logger.Fatal("UPSTREAM_BASE_URL environment variable is required")
	}

	// View settings live in Postgres when a database is configured,
	// otherwise in a local JSON directory.
	var (
		store settings.Store
		db    *postgres.Client
	)
	if cfg.Settings.DatabaseURL != "" {
		var err error
		db, err = postgres.NewClientFromURL(cfg.Settings.DatabaseURL)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to settings database")
		}
		defer db.Close()
		store = settings.NewPostgresStore(db.DB)
		logger.Info("using postgres settings store")
	} else {
		fileStore, err := settings.NewFileStore(cfg.Settings.Dir)
		if err != nil {
			logger.WithError(err).Fatal("failed to open settings directory")
		}
		store = fileStore
		logger.WithField("dir", cfg.Settings.Dir).Info("using file settings store")
	}

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.RequestTimeout, logger)
	sessions := session.NewManager(&cfg.Session)
	validator := validation.NewValidator()
	dispatcher := actions.NewDispatcher(client)
	layouts := layout.NewStore(store)
	favs := favorites.NewStore(store)

	sessionMiddleware := middleware.NewSessionMiddleware(sessions, cfg.Session.CookieName)

	router := api.NewRouter(
		cfg,
		logger,
		sessionMiddleware,
		handlers.NewAuthHandler(client, sessions, &cfg.Session),
		handlers.NewJobSeekerHandler(client, dispatcher, validator, logger),
		handlers.NewTaskHandler(client, logger),
		handlers.NewDocumentHandler(client, logger),
		handlers.NewOnboardingHandler(client),
		handlers.NewLookupHandler(client),
		handlers.NewViewHandler(client, layouts, favs, logger),
		handlers.NewAdminHandler(client),
	)

	engine := router.Setup(cfg.Server.Mode)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down server")
		if db != nil {
			db.Close()
		}
		os.Exit(0)
	}()

	logger.WithField("port", cfg.Server.Port).Info("starting server")
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("failed to start server")
	}
}
