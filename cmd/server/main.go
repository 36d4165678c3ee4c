package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"reciclothes/docs"
	"reciclothes/internal/cache"
	"reciclothes/internal/config"
	"reciclothes/internal/db"
	"reciclothes/internal/handler"
	"reciclothes/internal/logger"
	"reciclothes/internal/model"
	"reciclothes/internal/password"
	"reciclothes/internal/repository"
	"reciclothes/internal/router"
	"reciclothes/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Reciclothes Storefront API
// @version 1.0
// @description Customer signup, login and product catalog.
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Error("server exited", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) error {
	gormDB, err := db.NewMySQL(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			appLogger.Error("database close", "error", err)
		}
	}()

	// Productos is owned outside this service and is never migrated here.
	if cfg.DBAutoMigrate {
		if err := gormDB.AutoMigrate(&model.Account{}); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	db.LogTableStructure(ctx, gormDB, appLogger, model.Account{}.TableName(), &model.Account{})

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		appLogger.Warn("redis unreachable, product cache will miss", "addr", cfg.RedisAddr, "error", err)
	}
	defer cacheClient.Close()

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	// Initialize services
	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	authService := service.NewAuthService(accountRepo, hasher, appLogger, service.AuthOptions{
		UniformErrors: cfg.LoginUniformErrors,
	})
	productService := service.NewProductService(productRepo, cacheClient, cfg.ProductCacheTTL)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, appLogger)
	productHandler := handler.NewProductHandler(productService, appLogger)
	pageHandler := handler.NewPageHandler(cfg.PublicDir)

	e := echo.New()
	router.Register(e, cfg, appLogger, authHandler, productHandler, pageHandler)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}

	return serve(ctx, e, ":"+cfg.ServerPort, appLogger)
}

// serve runs e until ctx is cancelled or the listener fails.
func serve(ctx context.Context, e *echo.Echo, addr string, appLogger *slog.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("server listening", "addr", addr, "swagger", "/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server start: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	appLogger.Info("server stopped")
	return nil
}
