package database

import (
	"strings"
	"time"

	"github.com/marinsprosper/minha-plataforma/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the SQLite store. The DSN comes from DB_PATH (default
// data.sqlite); WAL keeps readers from blocking the short write transactions
// this service does.
func Connect() (*gorm.DB, error) {
	if DB != nil {
		return DB, nil
	}

	dsn := utils.Getenv("DB_PATH", "data.sqlite")
	if !strings.Contains(dsn, "?") && !strings.HasPrefix(dsn, "file:") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	var gormLogger logger.Interface
	if strings.ToLower(utils.Getenv("ENV", "development")) == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY churn.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	return DB, nil
}
