package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/lunorlabs/lunor/config"
	"github.com/lunorlabs/lunor/internal/catalog"
	"github.com/lunorlabs/lunor/internal/email"
	"github.com/lunorlabs/lunor/internal/health"
	"github.com/lunorlabs/lunor/internal/infrastructure/postgres"
	ctxlog "github.com/lunorlabs/lunor/internal/log"
	"github.com/lunorlabs/lunor/internal/metrics"
	"github.com/lunorlabs/lunor/internal/session"
	httptransport "github.com/lunorlabs/lunor/internal/transport/http"
	"github.com/lunorlabs/lunor/internal/transport/http/handler"
	"github.com/lunorlabs/lunor/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	// Sessions
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret, err = session.NewSecret()
		if err != nil {
			stop()
			log.Fatalf("session secret: %v", err)
		}
		logger.Warn("SESSION_SECRET not set, generated a random one; sessions will not survive a restart")
	}
	sessions := session.NewAuthenticator(secret, time.Duration(cfg.SessionTTLMinutes)*time.Minute)

	// Users
	userRepo := postgres.NewUserRepository(pool)
	authUsecase := usecase.NewAuthUsecase(userRepo, sessions)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Catalog
	productRepo := postgres.NewProductRepository(pool)
	catalogUsecase := usecase.NewCatalogUsecase(productRepo)
	featured, err := catalog.NewFeaturedCache(productRepo, logger, cfg.FeaturedBrand, cfg.FeaturedLimit, cfg.FeaturedRefreshCron)
	if err != nil {
		stop()
		log.Fatalf("featured cache: %v", err)
	}
	catalogHandler := handler.NewCatalogHandler(catalogUsecase, featured, logger)

	// Cart and checkout
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	orderUsecase := usecase.NewOrderUsecase(catalogUsecase, sender, cfg.OrdersEmail)
	cartHandler := handler.NewCartHandler(catalogUsecase, orderUsecase, logger, cfg.CartCookieMaxAge)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, sessions, authHandler, catalogHandler, cartHandler),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go featured.Start(ctx)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
