// Package storage holds the gorm/Postgres persistence layer: connection
// setup, schema migration and the store implementations used by the service.
package storage

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fintrack/models"
)

// Open connects to Postgres with the given DSN and optionally runs
// AutoMigrate for the application models. Migration failures on individual
// models are logged and do not block the others.
func Open(dsn string, migrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if migrate {
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Transaction{}); err != nil {
			log.Printf("migration warning (transactions): %v", err)
		}
	}
	return db, nil
}
