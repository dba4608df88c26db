package datafeed

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

var DB *sql.DB

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func InitDatabase() error {
	config := DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "localhost"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"), // Required - no default
		DBName:   getEnvOrDefault("DB_NAME", "stocksage"),
		SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return createTables()
}

func CloseDatabase() {
	if DB != nil {
		DB.Close()
	}
}

func createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS news_articles (
		id SERIAL PRIMARY KEY,
		symbol TEXT NOT NULL,
		title TEXT NOT NULL,
		url TEXT,
		source TEXT,
		sentiment DOUBLE PRECISION NOT NULL DEFAULT 0,
		published_at TEXT,
		summary TEXT,
		fetched_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_news_articles_symbol ON news_articles (symbol, fetched_at DESC);

	CREATE TABLE IF NOT EXISTS screening_runs (
		id SERIAL PRIMARY KEY,
		universe TEXT NOT NULL,
		total_analyzed INTEGER NOT NULL,
		failed_count INTEGER NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS screening_results (
		id SERIAL PRIMARY KEY,
		run_id INTEGER NOT NULL REFERENCES screening_runs(id) ON DELETE CASCADE,
		rank INTEGER NOT NULL,
		symbol TEXT NOT NULL,
		recommendation TEXT NOT NULL,
		current_price NUMERIC NOT NULL,
		combined_score NUMERIC NOT NULL,
		attractiveness_score NUMERIC NOT NULL,
		confidence NUMERIC NOT NULL
	);`

	if _, err := DB.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
