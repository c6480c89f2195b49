package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/incredible-trails/trips-service/docs"
	"github.com/incredible-trails/trips-service/internal/config"
	api "github.com/incredible-trails/trips-service/internal/http"
	applog "github.com/incredible-trails/trips-service/internal/log"
	"github.com/incredible-trails/trips-service/internal/metrics"
	"github.com/incredible-trails/trips-service/internal/queue"
	"github.com/incredible-trails/trips-service/internal/repo"
)

// @title Incredible Trails API
// @version 1.0.0
// @description Trip planning API: registration, login, JWT-protected plans.
// @schemes http https
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger, err := applog.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.UsingDefaultSecret() {
		if cfg.IsProduction() {
			logger.Fatal("JWT_SECRET is the built-in development default; refusing to start in production")
		}
		logger.Warn("JWT_SECRET is the built-in development default; set JWT_SECRET before deploying")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	rds := repo.NewRedis(cfg.RedisAddr)
	if err := rds.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		rds = nil
	} else {
		defer rds.Close()
	}

	pub := queue.NewNoop()
	if cfg.RabbitURL != "" {
		p, err := queue.NewRabbit(cfg.RabbitURL, queue.Exchange)
		if err != nil {
			logger.Warn("rabbit unavailable, events disabled", zap.Error(err))
		} else {
			pub = p
		}
	}
	defer pub.Close()

	metrics.MustRegister()
	docs.SwaggerInfo.BasePath = "/"

	h := api.NewHandler(store, pub, logger, cfg.JWTSecret, cfg.AccessTTLDays, cfg.BcryptCost)

	var limiter api.Limiter
	if rds != nil {
		limiter = rds
	}
	r := api.NewRouter(h, limiter, cfg.RateLimitPerMin, logger)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	logger.Info("trips-service listening", zap.String("port", cfg.Port))

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}
}
