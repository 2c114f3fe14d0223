package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	_ "flux-backend/docs"
	"flux-backend/src/config"
	"flux-backend/src/controllers"
	"flux-backend/src/database"
	"flux-backend/src/logger"
	"flux-backend/src/middleware"
	"flux-backend/src/routes"
	"flux-backend/src/services/applications"
	"flux-backend/src/services/auth"
	"flux-backend/src/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title                       FLUX Application Intake API
// @version                     1.0
// @description                 Membership applications for the FLUX technical society.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	logg := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.ConnectMongoDB(ctx, cfg.MongoURI, cfg.DBTimeout, logg)
	if err != nil {
		logg.Fatal("❌ Error connecting to the database", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	repo := applications.NewMongoRepository(mongoClient.Collection(cfg.MongoDatabase, cfg.MongoCollection))
	indexGate := applications.NewIndexGate()
	go func() {
		_ = indexGate.Run(ctx, repo, cfg.DBTimeout, 5*time.Second, logg)
	}()

	validator := validation.New()
	serviceOpts := []applications.Option{
		applications.WithTimeout(cfg.DBTimeout),
		applications.WithIndexGate(indexGate),
	}

	var submitLimiter fiber.Handler
	if cfg.RedisURL != "" {
		redisClient, asynqClient := connectRedis(ctx, cfg.RedisURL, logg)
		if redisClient != nil {
			defer redisClient.Close()
			submitLimiter = middleware.NewRateLimiter(redisClient, "applications", cfg.RateLimitMax, cfg.RateLimitWindow, logg).Handler()
		}
		if asynqClient != nil {
			defer asynqClient.Close()
			serviceOpts = append(serviceOpts, applications.WithNotifier(applications.NewAsynqNotifier(asynqClient)))
		}
	} else {
		logg.Warn("⚠️ REDIS_URL not set: submission rate limiting and confirmation emails are disabled")
	}

	var listGuard fiber.Handler
	if cfg.AdminAuthEnabled() {
		listGuard = middleware.AuthJWT([]byte(cfg.JWTSecret), auth.RoleAdmin)
	} else {
		logg.Warn("⚠️ JWT_SECRET not set: GET /api/applications is readable without authentication")
	}

	service := applications.NewService(repo, validator, logg, serviceOpts...)
	app := routes.NewApp(logg, cfg.AllowedOrigins, routes.Handlers{
		Applications:  controllers.NewApplicationController(service),
		Auth:          controllers.NewAuthController(auth.NewService(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecret), validator),
		Health:        controllers.NewHealthController(service, startedAt),
		SubmitLimiter: submitLimiter,
		ListGuard:     listGuard,
	})

	go func() {
		<-ctx.Done()
		logg.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logg.Error("❌ shutdown failed", zap.Error(err))
		}
	}()

	logg.Info("Server is running on port " + cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		logg.Error("❌ server stopped", zap.Error(err))
	}
}

func connectRedis(ctx context.Context, redisURL string, logg *zap.Logger) (*redis.Client, *asynq.Client) {
	redisClient, err := database.NewRedisClient(ctx, redisURL)
	if err != nil {
		logg.Warn("⚠️ Redis not available, rate limiting disabled", zap.Error(err))
		return nil, nil
	}

	asynqClient, err := database.NewAsynqClient(redisURL)
	if err != nil {
		logg.Warn("⚠️ Asynq client not initialized", zap.Error(err))
		return redisClient, nil
	}
	logg.Info("✅ Redis and Asynq client initialized successfully")
	return redisClient, asynqClient
}
