package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"driver-performance-service/internal/adapters/cache"
	"driver-performance-service/internal/adapters/repositories"
	"driver-performance-service/internal/api"
	"driver-performance-service/internal/config"
	"driver-performance-service/internal/logging"
	"driver-performance-service/internal/platform/db"
	"driver-performance-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	logging.Init(logging.Config{
		Level:  config.Get("APP_LOG_LEVEL", "info"),
		Format: config.Get("APP_LOG_FORMAT", "console"),
	})

	port := config.Get("PORT", "8080")
	kmPerFuelUnit := config.GetFloat("KM_PER_FUEL_UNIT", services.DefaultKMPerFuelUnit)

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	// Redis caches scorecard responses; the engine stays correct without it,
	// so a missing REDIS_ADDR just disables caching.
	var scorecardCache *cache.RedisScorecardCache
	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", addr).Msg("verify redis connection")
		}

		ttl := time.Duration(config.GetInt("SCORECARD_CACHE_TTL_SECONDS", 300)) * time.Second
		scorecardCache = cache.NewRedisScorecardCache(client, ttl, "scorecards")
	}

	drivers := repositories.NewSQLDriverRepository(database)
	tours := repositories.NewSQLTourRepository(database)

	var router http.Handler
	if scorecardCache != nil {
		router = api.NewRouter(drivers, tours, scorecardCache, kmPerFuelUnit)
	} else {
		router = api.NewRouter(drivers, tours, nil, kmPerFuelUnit)
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}
}
