package db

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/carlafber/APIsupermercado/models"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Connect opens a Postgres connection from the DB_* environment variables and
// returns the handle. Callers pass it down to the route layer; there is no
// package-global connection.
func Connect() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	logger.Info().Str("host", os.Getenv("DB_HOST")).Str("dbname", os.Getenv("DB_NAME")).Msg("Connected to the database")
	return conn, nil
}

// Migrate creates or updates the tables for all entities.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.Supermarket{},
		&models.Category{},
		&models.Product{},
		&models.User{},
		&models.ShoppingList{},
		&models.ShoppingListItem{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	logger.Info().Msg("Database migrated successfully")
	return nil
}
