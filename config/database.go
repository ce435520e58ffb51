package config

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrey156p/taskflow/models"
)

var DB *gorm.DB

// InitDB opens the sqlite database and migrates the tasks table.
func InitDB(config Config) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(config.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// sqlite tolerates one writer; keep the pool small.
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrateDB(); err != nil {
		return fmt.Errorf("database migration failed: %v", err)
	}

	return nil
}

func migrateDB() error {
	return DB.AutoMigrate(&models.Task{})
}
