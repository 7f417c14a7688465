package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"atelier/internal/auth"
	"atelier/internal/cache"
	"atelier/internal/config"
	"atelier/internal/db"
	"atelier/internal/handler"
	"atelier/internal/mail"
	"atelier/internal/model"
	"atelier/internal/repository"
	"atelier/internal/router"
	"atelier/internal/service"
)

// @title Atelier Studio API
// @version 1.0
// @description Backend for the studio marketing site: portfolio projects, contact intake, and JWT-authenticated administration.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Contact{},
		&model.Project{},
	); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)

	// Auth components
	tokenExpiry := time.Duration(cfg.JWTExpiresMin) * time.Minute
	jwtService := auth.NewJWTService(cfg.JWTSecret, tokenExpiry)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	mailer := mail.NewMailer(cfg, logger)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	projectService := service.NewProjectService(projectRepo)
	contactService := service.NewContactService(contactRepo, mailer, logger)
	uploadService, err := service.NewUploadService(cfg.UploadDir, cfg.MaxUploadSize)
	if err != nil {
		logger.Fatal("upload dir init", zap.Error(err))
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.CookieName, tokenExpiry)
	projectHandler := handler.NewProjectHandler(projectService, uploadService)
	contactHandler := handler.NewContactHandler(contactService)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		cfg,
		userRepo,
		tokenStore,
		authHandler,
		projectHandler,
		contactHandler,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server start", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.ServerPort))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
