package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fixnest/fixnest-backend/api/routes"
	authsvc "github.com/fixnest/fixnest-backend/internal/auth"
	"github.com/fixnest/fixnest-backend/internal/blogs"
	"github.com/fixnest/fixnest-backend/internal/booking"
	"github.com/fixnest/fixnest-backend/internal/cart"
	"github.com/fixnest/fixnest-backend/internal/catalog"
	"github.com/fixnest/fixnest-backend/internal/faqs"
	"github.com/fixnest/fixnest-backend/internal/locationpages"
	"github.com/fixnest/fixnest-backend/internal/media"
	"github.com/fixnest/fixnest-backend/internal/notifications"
	"github.com/fixnest/fixnest-backend/internal/reviews"
	"github.com/fixnest/fixnest-backend/pkg/auth/session"
	"github.com/fixnest/fixnest-backend/pkg/config"
	"github.com/fixnest/fixnest-backend/pkg/db"
	"github.com/fixnest/fixnest-backend/pkg/logger"
	"github.com/fixnest/fixnest-backend/pkg/metrics"
	"github.com/fixnest/fixnest-backend/pkg/migrate"
	"github.com/fixnest/fixnest-backend/pkg/redis"
	"github.com/fixnest/fixnest-backend/pkg/storage/gcs"
)

const shutdownGrace = 15 * time.Second

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

	promRegistry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)
	domainMetrics := metrics.NewDomainMetrics(promRegistry)

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	faqRepo := faqs.NewRepository(dbClient.DB())
	bookingRepo := booking.NewRepository(dbClient.DB())

	reviewService, err := reviews.NewService(reviews.NewRepository(dbClient.DB()), catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo, faqRepo, dbClient, reviewService, reviewService)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	blogService, err := blogs.NewService(blogs.NewRepository(dbClient.DB()), faqRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create blog service", err)
		os.Exit(1)
	}

	locationService, err := locationpages.NewService(locationpages.NewRepository(dbClient.DB()), faqRepo, catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create location page service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(redisClient, cfg.Cart.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStore, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	var notificationService *notifications.Service
	if cfg.SMTP.Enabled() {
		sender, err := notifications.NewSMTPSender(cfg.SMTP)
		if err != nil {
			logg.Error(context.Background(), "failed to create smtp sender", err)
			os.Exit(1)
		}
		notificationService, err = notifications.NewService(sender, cfg.SMTP.OpsAddress, domainMetrics, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create notification service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "smtp not configured, outbound email disabled")
	}

	draftStore, err := booking.NewDraftStore(redisClient, cfg.Cart.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create draft store", err)
		os.Exit(1)
	}
	persister, err := booking.NewTxPersister(dbClient, bookingRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create booking persister", err)
		os.Exit(1)
	}

	var bookingService booking.Service
	if notificationService != nil {
		bookingService, err = booking.NewService(draftStore, cartService, bookingRepo, persister, redisClient, notificationService, domainMetrics, logg, cfg.Cart.SubmitLock)
	} else {
		bookingService, err = booking.NewService(draftStore, cartService, bookingRepo, persister, redisClient, nil, domainMetrics, logg, cfg.Cart.SubmitLock)
	}
	if err != nil {
		logg.Error(context.Background(), "failed to create booking service", err)
		os.Exit(1)
	}

	var mediaService *media.Service
	var gcsClient *gcs.Client
	if cfg.GCS.BucketName != "" {
		gcsClient, err = gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap gcs", err)
			os.Exit(1)
		}
		defer func() {
			if err := gcsClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing gcs", err)
			}
		}()
		mediaService, err = media.NewService(gcsClient, cfg.Media.MaxUploadBytes, domainMetrics)
		if err != nil {
			logg.Error(context.Background(), "failed to create media service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "gcs bucket not configured, media uploads disabled")
	}

	authService, err := authsvc.NewService(authsvc.NewRepository(dbClient.DB()), sessionManager, cfg.JWT, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:        cfg,
		Logger:        logg,
		HTTPMetrics:   httpMetrics,
		PromRegistry:  promRegistry,
		Database:      dbClient,
		Cache:         redisClient,
		Sessions:      sessionManager,
		Auth:          authService,
		Catalog:       catalogService,
		Reviews:       reviewService,
		Blogs:         blogService,
		LocationPages: locationService,
		Cart:          cartService,
		Booking:       bookingService,
		Notifications: notificationService,
		Media:         mediaService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}
