package main

import (
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"fintrack/storage"
)

func initDB() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	db, err := storage.Open(dsn, shouldMigrate)
	if err != nil {
		log.Fatal("failed to connect postgres database: ", err)
	}
	return db
}
