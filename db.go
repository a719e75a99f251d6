package main

import (
	"fmt"
	"log/slog"

	"fintrack/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// autoMigrate migrates models individually so a failure on one doesn't block
// the others. Permission errors are logged and ignored.
func autoMigrate(db *gorm.DB) {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		slog.Warn("migration warning", "table", "users", "error", err)
	}
	if err := db.AutoMigrate(&models.Income{}); err != nil {
		slog.Warn("migration warning", "table", "incomes", "error", err)
	}
	if err := db.AutoMigrate(&models.Expense{}); err != nil {
		slog.Warn("migration warning", "table", "expenses", "error", err)
	}
}
