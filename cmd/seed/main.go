package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"reciclothes/internal/cache"
	"reciclothes/internal/config"
	"reciclothes/internal/db"
	"reciclothes/internal/logger"
	"reciclothes/internal/model"
	"reciclothes/internal/repository"
	"reciclothes/internal/service"
)

// Seeds the Productos table from a JSON catalog in the same shape GET /api/products returns.
func main() {
	file := flag.String("file", "seed/products.json", "path to the product catalog JSON file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(context.Background(), cfg, appLogger, *file); err != nil {
		appLogger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger *slog.Logger, file string) error {
	products, err := loadCatalog(file)
	if err != nil {
		return err
	}
	appLogger.Info("catalog loaded", "file", file, "products", len(products))

	gormDB, err := db.NewMySQL(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			appLogger.Error("database close", "error", err)
		}
	}()

	affected, err := repository.NewProductRepository(gormDB).Upsert(ctx, products)
	if err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	service.InvalidateProductCache(ctx, cacheClient)

	appLogger.Info("seed completed", "products", len(products), "rows_affected", affected)
	return nil
}

// loadCatalog reads product views and decodes their base64 images.
func loadCatalog(path string) ([]model.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var views []model.ProductView
	if err := json.Unmarshal(data, &views); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	products := make([]model.Product, 0, len(views))
	for i, v := range views {
		p, err := v.Product()
		if err != nil {
			return nil, fmt.Errorf("product %d (%s): decode image: %w", i, v.Name, err)
		}
		products = append(products, p)
	}
	return products, nil
}
