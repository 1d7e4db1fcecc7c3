package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/totegamma/jobtrack/internal/config"
	"github.com/totegamma/jobtrack/internal/infra/providers"
	"github.com/totegamma/jobtrack/internal/infra/repository"
	"github.com/totegamma/jobtrack/internal/infra/telemetry"
	"github.com/totegamma/jobtrack/internal/metrics"
	"github.com/totegamma/jobtrack/internal/present/rest"
	restmiddleware "github.com/totegamma/jobtrack/internal/present/rest/middleware"
	"github.com/totegamma/jobtrack/internal/service"
	"github.com/totegamma/jobtrack/internal/usecase"
)

const (
	serviceName    = "jobtrack"
	serviceVersion = "0.1.0"
)

func main() {
	ctx := context.Background()

	configPath := os.Getenv("JOBTRACK_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if _, err := os.Stat(configPath); err != nil {
		configPath = ""
	}

	conf, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()), slog.String("module", "main"))
		os.Exit(1)
	}

	if conf.Server.EnableTrace {
		shutdown, err := telemetry.SetupTraceProvider(ctx, conf.Server.TraceEndpoint, serviceName, serviceVersion)
		if err != nil {
			slog.Error("failed to setup tracer", slog.String("error", err.Error()), slog.String("module", "main"))
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("failed to shutdown tracer", slog.String("error", err.Error()), slog.String("module", "main"))
			}
		}()
	}

	db, err := providers.NewDatabase(conf.Server)
	if err != nil {
		panic("failed to connect database")
	}

	signal, err := providers.NewSignal(ctx, conf.Server)
	if err != nil {
		panic("failed to connect redis")
	}
	var events usecase.EventPublisher
	if signal != nil {
		events = signal
	}

	dashboardCache := providers.NewDashboardCache(conf.Server, conf.Dashboard)

	applicationRepo := repository.NewApplicationRepository(db)
	contactRepo := repository.NewContactRepository(db)
	linkRepo := repository.NewLinkRepository(db)

	appOpts := []usecase.ApplicationOption{usecase.WithApplicationCache(dashboardCache)}
	if events != nil {
		appOpts = append(appOpts, usecase.WithApplicationEvents(events))
	}
	if conf.Server.TransactionalLinks {
		appOpts = append(appOpts, usecase.WithTransactionalLinks())
	}

	applicationUsecase := usecase.NewApplicationUsecase(applicationRepo, contactRepo, linkRepo, appOpts...)
	contactUsecase := usecase.NewContactUsecase(contactRepo, events, dashboardCache)
	searchUsecase := usecase.NewSearchUsecase(applicationRepo, contactRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(
		applicationRepo,
		contactRepo,
		dashboardCache,
		usecase.SystemClock{},
		providers.NewDashboardPolicy(conf.Dashboard),
	)

	authService := service.NewAuthService(conf.Server.RequireUUIDOwner)
	authMiddleware := restmiddleware.NewAuthMiddleware(authService)

	handler := rest.NewHandler(applicationUsecase, contactUsecase, searchUsecase, dashboardUsecase, signal)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "If-None-Match", "X-Owner-ID"},
		ExposeHeaders: []string{"ETag"},
	}))
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware(serviceName))
	}
	if conf.Server.EnableMetrics {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	handler.RegisterRoutes(e, authMiddleware)

	slog.Info(
		"jobtrack started",
		slog.String("listen", conf.Server.Listen),
		slog.Bool("transactionalLinks", conf.Server.TransactionalLinks),
		slog.Bool("realtime", signal != nil),
		slog.String("module", "main"),
	)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}
