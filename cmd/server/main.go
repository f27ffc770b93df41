package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "hwstars/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hwstars/internal/auth"
	"hwstars/internal/cache"
	"hwstars/internal/config"
	"hwstars/internal/handler"
	"hwstars/internal/logger"
	"hwstars/internal/router"
	"hwstars/internal/service"
	"hwstars/internal/store"
)

const shutdownTimeout = 10 * time.Second

// @title Homework Stars API
// @version 1.0
// @description Homework and feedback tracker for a teacher and students, with stars redeemable for room decoration.
// @host localhost:3000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(false).Fatal("load config", zap.Error(err))
	}

	log := logger.New(cfg.LogDebug)
	defer func() { _ = log.Sync() }()

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatal("open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()
	log.Info("store ready", zap.String("driver", cfg.StoreDriver), zap.String("path", cfg.StorePath))

	if cfg.ResetStore {
		log.Warn("RESET_STORE=true detected, emptying the store")
		if err := store.Reset(context.Background(), st); err != nil {
			log.Fatal("reset store", zap.Error(err))
		}
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient != nil {
		defer cacheClient.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheClient.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable, sessions resolve from the store", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
	}

	// Initialize auth components
	issuer := auth.NewSessionIssuer(cfg.SessionTTL)
	sessionCache := auth.NewSessionCache(cacheClient)

	// Initialize services
	authService := service.NewAuthService(st, issuer, sessionCache)
	homeworkService := service.NewHomeworkService(st)
	submissionService := service.NewSubmissionService(st)
	feedbackService := service.NewFeedbackService(st)
	rewardService := service.NewRewardService(st)

	e := echo.New()
	router.Register(e, cfg, log, authService, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Homework:   handler.NewHomeworkHandler(homeworkService),
		Submission: handler.NewSubmissionHandler(submissionService),
		Feedback:   handler.NewFeedbackHandler(feedbackService),
		Student:    handler.NewStudentHandler(rewardService),
	})

	log.Info("swagger documentation available", zap.String("url", swaggerURL(cfg)))

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server starting", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
