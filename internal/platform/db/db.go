package db

import (
	"database/sql"
	"fmt"
	"time"

	"driver-performance-service/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects to Postgres through the pgx stdlib driver and verifies the
// connection. Pool sizing is env-tunable with conservative defaults.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(config.GetInt("DB_MAX_OPEN_CONNS", 10))
	db.SetMaxIdleConns(config.GetInt("DB_MAX_IDLE_CONNS", 10))
	db.SetConnMaxLifetime(time.Duration(config.GetInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}
