package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bookeasy/bookeasy-backend/api/routes"
	"github.com/bookeasy/bookeasy-backend/internal/admin"
	"github.com/bookeasy/bookeasy-backend/internal/bookings"
	"github.com/bookeasy/bookeasy-backend/internal/contact"
	"github.com/bookeasy/bookeasy-backend/internal/feedback"
	"github.com/bookeasy/bookeasy-backend/internal/identity"
	"github.com/bookeasy/bookeasy-backend/internal/intent"
	"github.com/bookeasy/bookeasy-backend/internal/rooms"
	"github.com/bookeasy/bookeasy-backend/pkg/config"
	"github.com/bookeasy/bookeasy-backend/pkg/db"
	"github.com/bookeasy/bookeasy-backend/pkg/logger"
	"github.com/bookeasy/bookeasy-backend/pkg/metrics"
	"github.com/bookeasy/bookeasy-backend/pkg/migrate"
	"github.com/bookeasy/bookeasy-backend/pkg/redis"
	"github.com/bookeasy/bookeasy-backend/pkg/session"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	reservationMetrics := metrics.NewReservationMetrics(registry)

	sessions, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	tracker, err := intent.NewTracker(intent.TrackerParams{
		Redis:   redisClient,
		Config:  cfg.Session,
		Logger:  logg,
		Metrics: reservationMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create intent tracker", err)
		os.Exit(1)
	}

	identityService, err := identity.NewService(identity.ServiceParams{
		DB:             dbClient,
		UserRepo:       identity.NewRepository(dbClient.DB()),
		SessionManager: sessions,
		SessionConfig:  cfg.Session,
		PasswordConfig: cfg.Password,
		Logger:         logg,
		Metrics:        reservationMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}

	adminService, err := admin.NewService(admin.ServiceParams{
		AdminRepo:      admin.NewRepository(dbClient.DB()),
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	bookingService, err := bookings.NewService(bookings.ServiceParams{
		Repo:    bookings.NewRepository(dbClient.DB()),
		Metrics: reservationMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create booking service", err)
		os.Exit(1)
	}

	roomService, err := rooms.NewService(rooms.ServiceParams{
		Repo:   rooms.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create room service", err)
		os.Exit(1)
	}

	feedbackService, err := feedback.NewService(feedback.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create feedback service", err)
		os.Exit(1)
	}

	contactService, err := contact.NewService(contact.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessions,
			tracker,
			identityService,
			adminService,
			bookingService,
			roomService,
			feedbackService,
			contactService,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
