// Package db opens the database connection used across the application
package db

import (
	"bitwise74/voice-api/model"
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New connects to Postgres when database.dsn is set and falls back
// to a local SQLite file otherwise, then migrates the schema
func New() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	if dsn := viper.GetString("database.dsn"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres, %w", err)
		}
	} else {
		db, err = gorm.Open(sqlite.Open(viper.GetString("database.path")))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
		}
	}

	err = db.AutoMigrate(model.User{}, model.Voice{}, model.GeneratedAudio{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
