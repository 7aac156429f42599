package database

import (
	"log"

	"school-builder/config"
	"school-builder/internal/infra/kvstore"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB connects to postgres and migrates the site state table. It is only
// called when STORE_DRIVER is postgres.
func InitDB() {
	dsn := config.DB_URL
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(&kvstore.Entry{}); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	log.Println("[store] connected to postgres and migrated")
}
