package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damacus/newsdesk/internal/config"
	"github.com/damacus/newsdesk/internal/handlers"
	customMiddleware "github.com/damacus/newsdesk/internal/middleware"
	"github.com/damacus/newsdesk/internal/notify"
	"github.com/damacus/newsdesk/internal/renderer"
	"github.com/damacus/newsdesk/internal/services"
	"github.com/damacus/newsdesk/internal/utils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

const (
	sweepInterval  = time.Minute
	sessionMaxIdle = 30 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := cfg.NewLogger()
	log.Debug(cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg, &services.RealMinioFactory{}, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open report store")
	}

	hub := notify.NewHub(notify.TimerToolkit{}, log, notify.WithDelay(cfg.ToastDelay))
	go hub.Run(ctx, sweepInterval, sessionMaxIdle)

	e := newServer(cfg, store, hub, log)

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.ListenAddr,
			"backend": cfg.StorageBackend,
		}).Info("Starting server")
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}

// newStore opens the report store for the configured backend
func newStore(ctx context.Context, cfg *config.Config, factory services.MinioClientFactory, log logrus.FieldLogger) (services.ReportStore, error) {
	switch cfg.StorageBackend {
	case config.BackendMinio:
		creds := services.Credentials{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
		}
		store, err := services.NewMinioReportStore(factory, creds, cfg.MinioBucket, log)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendFS:
		store, err := services.NewFSReportStore(cfg.ReportsDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func newServer(cfg *config.Config, store services.ReportStore, hub *notify.Hub, log logrus.FieldLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Services
	sessions := services.NewSessionService(cfg.SessionKey)
	translator := notify.NewTranslator(log)
	view := handlers.View{Locale: cfg.Locale}

	dashboardHandler := handlers.NewDashboardHandler(store, cfg.StorageBackend, translator, view)
	reportsHandler := handlers.NewReportsHandler(store, translator, view)
	toastsHandler := handlers.NewToastsHandler()
	settingsHandler := handlers.NewSettingsHandler(cfg.Settings(), view)

	// Middleware
	e.Use(customMiddleware.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(customMiddleware.SecurityHeaders(renderer.AssetOrigins()...))
	e.Use(customMiddleware.CSRF())
	// Session middleware skips /health internally
	e.Use(customMiddleware.Session(sessions, hub))

	// Template Renderer
	e.Renderer = renderer.New(utils.NewDateFormatter(cfg.Locale, cfg.Location))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/", dashboardHandler.Dashboard)
	e.GET("/api/storage/widget", dashboardHandler.GetStorageWidget)

	// Reports
	e.GET("/reports", reportsHandler.ListReports)
	e.POST("/reports", reportsHandler.CreateReport)
	e.GET("/reports/table", reportsHandler.ReportsTable)
	e.GET("/reports/:id", reportsHandler.ViewReport)
	e.GET("/reports/:id/download", reportsHandler.DownloadReport)
	e.POST("/reports/:id/delete", reportsHandler.DeleteReport)

	// Notifications
	e.GET("/toasts", toastsHandler.ListToasts)
	e.POST("/toasts/:id/dismiss", toastsHandler.DismissToast)

	e.GET("/settings", settingsHandler.ShowSettings)
	e.POST("/settings/notify", settingsHandler.TestNotification)

	return e
}
