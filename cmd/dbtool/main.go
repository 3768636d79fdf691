package main

import (
	"database/sql"
	"os"
	"strings"

	"driver-performance-service/internal/adapters/repositories"
	"driver-performance-service/internal/config"
	"driver-performance-service/internal/logging"
	"driver-performance-service/internal/platform/db"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	logging.Init(logging.Config{
		Level:  config.Get("APP_LOG_LEVEL", "info"),
		Format: config.Get("APP_LOG_FORMAT", "console"),
	})

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/fleet.json")
	initAndSeed(database, seedPath)
}

func initAndSeed(database *sql.DB, seedPath string) {
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(database); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}
	log.Info().Msg("schema ready")

	log.Info().Str("path", seedPath).Msg("seeding database")
	if err := repositories.SeedFromJSON(database, seedPath); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("seeding complete")
}
