package db

import (
	"database/sql"
	"fmt"
	"os"

	"finance-advisor/api/logger"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// InitDB opens the Postgres connection and ensures the schema exists.
func InitDB() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}

	var err error
	DB, err = sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("error connecting to the database: %w", err)
	}

	if err = initSchema(); err != nil {
		return fmt.Errorf("error initializing schema: %w", err)
	}

	logger.Get().Info("successfully connected to Postgres")
	return nil
}

// initSchema creates the two tables on first run. The financial state is one
// opaque JSONB blob per user, stored verbatim.
func initSchema() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			preferred_lang TEXT DEFAULT 'EN',
			telegram_user_id BIGINT,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS financial_states (
			id SERIAL PRIMARY KEY,
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			state JSONB NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(user_id)
		);
	`)
	return err
}

// CloseDB closes the database connection.
func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
