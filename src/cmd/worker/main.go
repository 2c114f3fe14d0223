package main

import (
	"log"

	"flux-backend/src/config"
	"flux-backend/src/database"
	"flux-backend/src/jobs"
	"flux-backend/src/logger"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	logg := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logg.Sync() }()

	if cfg.RedisURL == "" {
		logg.Fatal("❌ REDIS_URL is required to run the worker")
	}
	redisOpt, err := database.AsynqRedisOpt(cfg.RedisURL)
	if err != nil {
		logg.Fatal("❌ invalid REDIS_URL", zap.Error(err))
	}

	sender, err := jobs.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	if err != nil {
		logg.Fatal("❌ mail sender not configured", zap.Error(err))
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Queues: map[string]int{
			jobs.QueueNotifications: 1,
		},
		Logger: logg.Sugar(),
	})

	mux := asynq.NewServeMux()
	jobs.RegisterHandlers(mux, sender, logg)

	logg.Info("🎯 worker started", zap.Int("concurrency", cfg.WorkerConcurrency))
	if err := srv.Run(mux); err != nil {
		logg.Fatal("❌ worker stopped", zap.Error(err))
	}
}
