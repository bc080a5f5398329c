package common

import (
	"log/slog"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDb opens the sqlite database named by the sqlite_db environment
// variable. Returns nil when the variable is unset or the open fails.
func ConnectDb() *gorm.DB {
	dbFile := os.Getenv("sqlite_db")
	if dbFile == "" {
		slog.Error("sqlite_db not set")
		return nil
	}

	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		slog.Error("opening sqlite db", "path", dbFile, "error", err)
		return nil
	}

	slog.Info("opened sqlite db", "path", dbFile)
	return db
}
