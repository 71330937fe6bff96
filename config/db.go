package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

const (
	connectTimeout = 10 * time.Second
	retryDelay     = 5 * time.Second
)

// OpenDBWithRetry attempts to open the PostgreSQL pool with retries. The
// returned handle is owned by the caller; there is no package-level pool.
func OpenDBWithRetry(maxRetries int) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < maxRetries; i++ {
		db, err = OpenDB()
		if err == nil {
			return db, nil
		}
		log.Printf("Failed to connect to PostgreSQL (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err)
}

// OpenDB opens the connection pool, verifies connectivity and checks that the
// booths table exists so a mispointed DB fails at startup rather than on the
// first request.
func OpenDB() (*sql.DB, error) {
	connStr := getPostgresConnString()

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening PostgreSQL database: %v", err)
	}

	// Pool sizing is a deployment concern; defaults match a small dyno.
	db.SetMaxOpenConns(getEnvAsInt("DB_MAX_OPEN_CONNS", 25))
	db.SetMaxIdleConns(getEnvAsInt("DB_MAX_IDLE_CONNS", 5))
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to PostgreSQL database: %v", err)
	}

	var tableExists bool
	err = db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'booths'
		)`).Scan(&tableExists)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error checking booths table: %v", err)
	}
	if !tableExists {
		db.Close()
		return nil, fmt.Errorf("booths table does not exist in the database")
	}

	log.Printf("Successfully connected to PostgreSQL database")
	return db, nil
}
