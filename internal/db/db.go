package db

import (
	"fmt"
	"os"
	"path/filepath"

	"tintaku/internal/config"
	"tintaku/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects the local database and runs migrations. A postgres DSN in
// DATABASE_URL takes precedence; otherwise an embedded sqlite file is used.
func Open(cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var (
		conn *gorm.DB
		err  error
	)
	if cfg.DatabaseURL != "" {
		conn, err = gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	} else {
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		conn, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logrus.Info("database connection established")
	return conn, nil
}

// Migrate creates or updates the cerpen tables.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Cerpen{},
		&models.Comment{},
		&models.LikeCounter{},
	)
}
