package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/config"
)

const connectRetryInterval = 5 * time.Second

// Connect opens the Postgres connection. In production a failure is fatal
// to the caller; elsewhere the connection is retried until the database
// comes up, which covers compose stacks where Postgres starts slower than
// the API.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := open(cfg.DatabaseURL)
	if err == nil {
		return db, nil
	}
	if cfg.Env == config.Production {
		return nil, err
	}

	log.Printf("database not ready, retrying every %s: %v", connectRetryInterval, err)
	for {
		time.Sleep(connectRetryInterval)
		db, err = open(cfg.DatabaseURL)
		if err == nil {
			return db, nil
		}
		log.Printf("database still not ready: %v", err)
	}
}

func open(url string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Printf("Successfully connected to database")
	return db, nil
}

// HealthCheck pings the underlying connection.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Monitor pings the database every five seconds until the context is
// cancelled, logging when the connection drops or recovers.
func Monitor(ctx context.Context, db *gorm.DB) {
	ticker := time.NewTicker(connectRetryInterval)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := HealthCheck(ctx, db)
			switch {
			case err != nil && healthy:
				healthy = false
				log.Printf("database connection lost: %v", err)
			case err == nil && !healthy:
				healthy = true
				log.Printf("database connection restored")
			}
		}
	}
}
