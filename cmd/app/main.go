package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pointpal/config"
	"pointpal/internal/application"
	"pointpal/internal/infrastructure/cache"
	"pointpal/internal/infrastructure/repository"
	"pointpal/internal/infrastructure/security"
	"pointpal/internal/middleware"
	handlers "pointpal/internal/transport/http"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := db.AutoMigrate(
		&repository.UserModel{},
		&repository.ReferralModel{},
		&repository.RedemptionModel{},
	); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	redemptionRepo := repository.NewRedemptionRepository(db)
	sessions := cache.NewSessionCache(rdb)
	hasher := security.NewPasswordHasher(cfg.BcryptCost)
	tokens := security.NewTokenManager(cfg.AccessSecret)

	engine := application.NewReferralEngine(userRepo, referralRepo)
	authUseCase := application.NewAuthUseCase(
		userRepo, sessions, engine, hasher, tokens, log,
		time.Duration(cfg.AuthDelayMS)*time.Millisecond,
	)
	rewardsUseCase := application.NewRewardsUseCase(
		userRepo, referralRepo, redemptionRepo, sessions, application.DefaultCatalog, log,
	)

	authHandler := handlers.NewAuthHandler(authUseCase)
	rewardsHandler := handlers.NewRewardsHandler(rewardsUseCase)
	authMW := middleware.AuthMiddleware(tokens, sessions)
	limiter := middleware.NewRateLimiter(rdb)

	allowOrigins := []string{"http://localhost:5173"}
	if cfg.FrontendURL != "" {
		allowOrigins = []string{cfg.FrontendURL}
	}
	router := handlers.NewRouter(authHandler, rewardsHandler, authMW, limiter, allowOrigins)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Point Pal service running on %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
	}
}
