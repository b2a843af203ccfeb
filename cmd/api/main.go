// @title                      Storefront Shop API
// @version                    1.0
// @description                Accounts, catalog and order lifecycle for the storefront.
// @BasePath                   /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"
	"golang.org/x/sync/errgroup"

	_ "github.com/storefront/shop-api/docs"
	"github.com/storefront/shop-api/internal/api"
	"github.com/storefront/shop-api/internal/api/middleware"
	"github.com/storefront/shop-api/internal/core/service"
	"github.com/storefront/shop-api/internal/infrastructure/db/mongo"
	"github.com/storefront/shop-api/internal/infrastructure/db/redis"
	ophttp "github.com/storefront/shop-api/internal/infrastructure/http"
	"github.com/storefront/shop-api/internal/infrastructure/http/handlers"
	"github.com/storefront/shop-api/internal/infrastructure/tracing"
	"github.com/storefront/shop-api/internal/pkg/config"
	"github.com/storefront/shop-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Pretty:  cfg.IsDevelopment(),
		Service: cfg.ServiceName,
		Env:     cfg.Env,
		File:    cfg.Log.File,
	})

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing.Endpoint, cfg.ServiceName)
	if err != nil {
		log.Fatal().Err(err).Msg("setup tracing")
	}

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  cfg.ServiceName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}

	// --- Dependencies ---
	userRepo := mongo.NewUserRepository(db)
	orderRepo := mongo.NewOrderRepository(db)
	categoryRepo := mongo.NewCategoryRepository(db)
	productRepo := mongo.NewProductRepository(db)

	tokens := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)

	limiter, err := middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("create rate limiter")
	}

	e := api.NewRouter(api.Dependencies{
		Log:         log,
		Tokens:      tokens,
		Users:       userRepo,
		Auth:        service.NewAuthService(userRepo, tokens, log),
		Orders:      service.NewOrderService(orderRepo, log),
		Categories:  service.NewCategoryService(categoryRepo, redis.NewCache(rdb), cfg.Redis.CategoryCacheTTL, log),
		Products:    service.NewProductService(productRepo, categoryRepo, log),
		Limiter:     limiter,
		ServiceName: cfg.ServiceName,
		Tracing:     cfg.Tracing.Endpoint != "",
	})
	ophttp.RegisterOpsRoutes(e, map[string]handlers.CheckFunc{
		"mongodb": handlers.MongoCheck(db),
		"redis":   handlers.RedisCheck(rdb),
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("tracing shutdown")
		}
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}
