package database

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/brainworksstudio2-dev/brain-works/models"
)

var DB *gorm.DB

func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "db"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), port)

	var err error
	// TranslateError maps driver errors to gorm.ErrDuplicatedKey and friends,
	// which the booking store relies on to detect lost code races.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
}

func AutoMigrate() {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.SequenceCounter{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Receipt{},
		&models.Booking{},
		&models.IdempotencyKey{},
	); err != nil {
		log.Fatalf("automigrate failed: %v", err)
	}
	if err := Harden(); err != nil {
		log.Fatalf("schema hardening failed: %v", err)
	}
}
