package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reciclothes/internal/config"
)

// NewMySQL returns a connected GORM DB backed by a bounded connection pool.
// Every query borrows a pooled connection and returns it when done.
func NewMySQL(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	start := time.Now()

	gormDB, err := gorm.Open(mysql.Open(cfg.DSN()), GormConfig(logger.Default.LogMode(logger.Warn)))
	if err != nil {
		log.Error("database connection failed", "error", err)
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		log.Error("database ping failed", "error", err)
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	log.Info("database connection established",
		"host", cfg.DBHost,
		"database", cfg.DBName,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return gormDB, nil
}

// GormConfig is the configuration every connection is opened with.
// Single statements run on their own, without a BEGIN/COMMIT around them.
func GormConfig(gormLogger logger.Interface) *gorm.Config {
	return &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	}
}

// Close releases the pool behind gormDB.
func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Column describes one column of a table as reported by the database.
type Column struct {
	Name     string
	Type     string
	Nullable bool
}

// DescribeTable lists the columns of the table behind model.
func DescribeTable(ctx context.Context, gormDB *gorm.DB, model any) ([]Column, error) {
	types, err := gormDB.WithContext(ctx).Migrator().ColumnTypes(model)
	if err != nil {
		return nil, fmt.Errorf("describe table: %w", err)
	}

	columns := make([]Column, 0, len(types))
	for _, ct := range types {
		nullable, _ := ct.Nullable()
		columns = append(columns, Column{
			Name:     ct.Name(),
			Type:     ct.DatabaseTypeName(),
			Nullable: nullable,
		})
	}
	return columns, nil
}

// LogTableStructure logs the columns of the table behind model at debug level.
// Failures are logged, never returned.
func LogTableStructure(ctx context.Context, gormDB *gorm.DB, log *slog.Logger, table string, model any) {
	columns, err := DescribeTable(ctx, gormDB, model)
	if err != nil {
		log.WarnContext(ctx, "table structure check failed", "table", table, "error", err)
		return
	}
	for _, c := range columns {
		log.DebugContext(ctx, "table column", "table", table, "column", c.Name, "type", c.Type, "nullable", c.Nullable)
	}
	log.InfoContext(ctx, "table structure checked", "table", table, "columns", len(columns))
}
