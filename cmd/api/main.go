package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/devconnector/backend/config"
	"github.com/devconnector/backend/internal/api"
	"github.com/devconnector/backend/internal/database"
	"github.com/devconnector/backend/internal/router"
	"github.com/devconnector/backend/internal/server"
	"github.com/devconnector/backend/internal/service"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	var cache *redis.Client
	if cfg.RedisHost != "" || cfg.RedisURL != "" {
		cache, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("connect redis: %v", err)
		}
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	profileService := service.NewProfileService(db)
	postService := service.NewPostService(db)
	githubService := service.NewGithubService(cfg.GithubToken, cache)

	var avatarService *service.AvatarService
	if cfg.S3Bucket != "" {
		s3Config, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatalf("setup s3: %v", err)
		}
		if err := s3Config.SetupBucketPolicy(context.Background()); err != nil {
			log.Warnf("apply bucket policy: %v", err)
		}
		avatarService = service.NewAvatarService(db, s3Config)
	}

	if config.GetEnvironment() == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	corsOrigins := strings.Split(os.Getenv("CORS_ORIGINS"), ",")
	if len(corsOrigins) == 1 && corsOrigins[0] == "" {
		corsOrigins = nil
	}

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewUserHandler(authService, avatarService),
		api.NewProfileHandler(profileService, authService, githubService),
		api.NewPostHandler(postService, authService),
		corsOrigins,
	)

	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Infof("listening on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-quit:
		log.Infof("received signal: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
	log.Info("server stopped")
}
