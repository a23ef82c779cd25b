package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"time"

	_ "github.com/lib/pq"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	MaxConns int

	MaxRetries int
	RetryDelay time.Duration
}

func (cfg Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func NewPostgresDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 10
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	var db *sql.DB
	var err error

	for i := 1; i <= cfg.MaxRetries; i++ {
		log.Printf("Connecting to database (Attempt %d/%d)...", i, cfg.MaxRetries)
		db, err = sql.Open("postgres", cfg.DSN())
		if err == nil {
			err = db.PingContext(ctx)
		}

		if err == nil {
			log.Println("Database connected successfully!")
			if cfg.MaxConns > 0 {
				db.SetMaxOpenConns(cfg.MaxConns)
				db.SetMaxIdleConns(cfg.MaxConns)
			}
			db.SetConnMaxLifetime(5 * time.Minute)
			return db, nil
		}

		if db != nil {
			_ = db.Close()
		}

		log.Printf("Database not ready yet. Waiting %s...", cfg.RetryDelay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database: %w", err)
}
