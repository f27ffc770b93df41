package main

import (
	"context"
	_ "embed"

	"go.uber.org/zap"

	"hwstars/internal/auth"
	"hwstars/internal/config"
	"hwstars/internal/logger"
	"hwstars/internal/service"
	"hwstars/internal/store"
)

//go:embed seed.json
var seedJSON []byte

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(false).Fatal("load config", zap.Error(err))
	}

	log := logger.New(cfg.LogDebug)
	defer func() { _ = log.Sync() }()
	log.Info("starting seed script")

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatal("open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer st.Close()

	data, err := parseSeedData(seedJSON)
	if err != nil {
		log.Fatal("load seed data", zap.Error(err))
	}

	// The seeder never needs the session cache.
	authService := service.NewAuthService(st, auth.NewSessionIssuer(cfg.SessionTTL), auth.NewSessionCache(nil))
	homeworkService := service.NewHomeworkService(st)

	res, err := seedStore(context.Background(), authService, homeworkService, data)
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}

	log.Info("seed completed successfully",
		zap.Int("users_created", res.UsersCreated),
		zap.Int("users_existing", res.UsersExisting),
		zap.Int("homeworks_created", res.HomeworksCreated),
		zap.Int("homeworks_skipped", res.HomeworksSkipped),
	)
}
